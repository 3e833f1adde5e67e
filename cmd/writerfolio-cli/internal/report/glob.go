package report

import (
	"fmt"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// ExpandGlobs resolves patterns (with ** support) into a sorted list of
// unique files. A pattern that matches nothing is an error.
func ExpandGlobs(patterns []string) ([]string, error) {
	seen := map[string]bool{}
	var files []string
	for _, p := range patterns {
		matches, err := doublestar.FilepathGlob(p, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", p, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no files match %q", p)
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				files = append(files, m)
			}
		}
	}
	sort.Strings(files)
	return files, nil
}
