package cmd

import (
	"fmt"

	"github.com/nfrund/writerfolio/cmd/writerfolio-cli/internal/report"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write services, portfolio and testimonials to an Excel workbook",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}

		var content report.Content
		g, ctx := errgroup.WithContext(cmd.Context())
		g.Go(func() (err error) { content.Services, err = client.Services(ctx); return err })
		g.Go(func() (err error) { content.Projects, err = client.Projects(ctx); return err })
		g.Go(func() (err error) { content.Testimonials, err = client.Testimonials(ctx); return err })
		if err := g.Wait(); err != nil {
			return friendly(err, "loading content")
		}

		if err := report.Export(exportOut, content); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Exported %d services, %d portfolio items and %d testimonials to %s\n",
			len(content.Services), len(content.Projects), len(content.Testimonials), exportOut)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "content.xlsx", "output workbook path")
	rootCmd.AddCommand(exportCmd)
}
