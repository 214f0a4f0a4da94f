package main

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"findex/internal/api"
)

func newInfoCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool
	var withTranscript bool

	cmd := &cobra.Command{
		Use:   "info <url>",
		Short: "Show video metadata and transcript availability",
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

			service := api.NewInfoService(fetcher, fetcher, nil, logger).WithBudget(cfg.FetchTimeout())
			info, err := service.VideoInfo(cmd.Context(), api.VideoInfoRequest{URL: args[0]})
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, info)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderVideoInfo(info))
			if withTranscript && info.Transcript != nil {
				fmt.Fprintln(out)
				fmt.Fprintln(out, *info.Transcript)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the API response as JSON")
	cmd.Flags().BoolVar(&withTranscript, "transcript", false, "Print the cleaned English transcript after the summary")
	return cmd
}

func renderVideoInfo(info api.VideoInfo) string {
	transcriptState := "unavailable"
	if info.Transcript != nil {
		transcriptState = fmt.Sprintf("available (%s)", humanize.Bytes(uint64(len(*info.Transcript))))
	}
	rows := [][]string{
		{"Title", info.Title},
		{"Channel", info.Uploader},
		{"Duration", formatDuration(info.Duration)},
		{"Uploaded", formatUploadDate(info.UploadDate)},
		{"Views", humanize.Comma(info.ViewCount)},
		{"Likes", humanize.Comma(info.LikeCount)},
		{"Tags", joinOrDash(info.Tags)},
		{"Categories", joinOrDash(info.Categories)},
		{"Transcript", transcriptState},
	}
	return renderTable([]string{"Field", "Value"}, rows, []columnAlignment{alignLeft, alignLeft})
}

func formatDuration(seconds int) string {
	if seconds <= 0 {
		return "-"
	}
	h, m, s := seconds/3600, (seconds%3600)/60, seconds%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// formatUploadDate renders yt-dlp's YYYYMMDD dates as YYYY-MM-DD.
func formatUploadDate(value string) string {
	if len(value) == 8 && strings.Trim(value, "0123456789") == "" {
		return value[:4] + "-" + value[4:6] + "-" + value[6:]
	}
	if value == "" {
		return "-"
	}
	return value
}

func joinOrDash(values []string) string {
	if len(values) == 0 {
		return "-"
	}
	return strings.Join(values, ", ")
}
