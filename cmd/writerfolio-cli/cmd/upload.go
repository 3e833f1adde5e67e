package cmd

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/nfrund/writerfolio/cmd/writerfolio-cli/internal/report"
	"github.com/nfrund/writerfolio/internal/api"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var uploadCmd = &cobra.Command{
	Use:   "upload <glob>...",
	Short: "Upload images and print their URLs",
	Long: `Uploads every file matching the given patterns to the backend's upload
endpoint and prints "file -> url" for each. Patterns support ** for
recursive matches, e.g. writerfolio-cli upload 'assets/**/*.png'.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		files, err := report.ExpandGlobs(args)
		if err != nil {
			return err
		}
		client, err := newClient()
		if err != nil {
			return err
		}
		token, err := ensureToken(ctx, client)
		if err != nil {
			return err
		}

		bar := progressbar.Default(int64(len(files)), "uploading")
		urls := make([]string, len(files))
		for i, path := range files {
			url, err := uploadFile(cmd, client, token, path)
			if err != nil {
				_ = bar.Exit()
				return friendly(err, "uploading "+path)
			}
			urls[i] = url
			_ = bar.Add(1)
		}

		out := cmd.OutOrStdout()
		for i, path := range files {
			fmt.Fprintf(out, "%s -> %s\n", path, client.ResolveAsset(urls[i]))
		}
		return nil
	},
}

func uploadFile(cmd *cobra.Command, client *api.Client, token, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	contentType := mime.TypeByExtension(filepath.Ext(path))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return client.UploadImage(cmd.Context(), token, api.File{
		Filename:    filepath.Base(path),
		ContentType: contentType,
		Content:     f,
	})
}

func init() {
	rootCmd.AddCommand(uploadCmd)
}
