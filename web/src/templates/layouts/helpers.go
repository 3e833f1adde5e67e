package layouts

import "github.com/nfrund/writerfolio/internal/domain"

// CalculateTitle handles the conditional logic for the page title.
func CalculateTitle(title, siteName string) string {
	site := domain.Or(siteName, domain.DefaultBusinessName)
	if title != "" {
		return title + " | " + site
	}
	return site
}
