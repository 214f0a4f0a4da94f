package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"findex/internal/api"
)

func newSubsCommand(ctx *commandContext) *cobra.Command {
	var lang string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "subs <url>",
		Short: "Fetch and clean the subtitles of a video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger := ctx.cliLogger()
			fetcher, err := ctx.fetcher(logger)
			if err != nil {
				return err
			}

			service := api.NewSubtitleService(fetcher, nil, logger, cfg.Fetch.DefaultLanguage)
			resp, err := service.Subtitles(cmd.Context(), api.SubsRequest{URL: args[0], Lang: lang})
			if asJSON {
				if encErr := writeJSON(cmd, resp); encErr != nil {
					return encErr
				}
				return err
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), resp.Subtitles)
			return nil
		},
	}

	cmd.Flags().StringVarP(&lang, "lang", "l", "", "Subtitle language (defaults to fetch.default_language)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the API response as JSON")
	return cmd
}
