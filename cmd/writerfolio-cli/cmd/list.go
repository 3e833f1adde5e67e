package cmd

import (
	"github.com/nfrund/writerfolio/cmd/writerfolio-cli/internal/report"
	"github.com/nfrund/writerfolio/internal/domain"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:       "list services|projects|testimonials|settings",
	Short:     "Print a collection as YAML",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"services", "projects", "portfolio", "testimonials", "settings"},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		client, err := newClient()
		if err != nil {
			return err
		}

		var v any
		if args[0] == "settings" {
			v, err = client.Settings(ctx)
		} else {
			var kind domain.Kind
			if kind, err = domain.ParseKind(args[0]); err != nil {
				return err
			}
			switch kind {
			case domain.KindService:
				v, err = client.Services(ctx)
			case domain.KindProject:
				v, err = client.Projects(ctx)
			case domain.KindTestimonial:
				v, err = client.Testimonials(ctx)
			}
		}
		if err != nil {
			return friendly(err, "loading "+args[0])
		}
		return report.WriteYAML(cmd.OutOrStdout(), v)
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
