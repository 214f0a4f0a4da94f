package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"findex/internal/transcript"
)

func newCleanCommand() *cobra.Command {
	var stageName string
	var showReport bool

	cmd := &cobra.Command{
		Use:   "clean [file]",
		Short: "Clean a subtitle payload read from a file or stdin",
		Long: fmt.Sprintf("Run the transcript cleaning pipeline over a WebVTT/SRT payload.\n\n"+
			"With --stage only the named step runs. Stages: %s.",
			strings.Join(transcript.StageNames(), ", ")),
		Args:        cobra.MaximumNArgs(1),
		Annotations: map[string]string{skipConfigLoad: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readPayload(cmd, args)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if stageName != "" {
				if showReport {
					return fmt.Errorf("--report cannot be combined with --stage")
				}
				stage, err := transcript.StageByName(stageName)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, stage.Apply(raw))
				return nil
			}

			cleaned, report := transcript.CleanWithReport(raw)
			if cleaned != "" {
				fmt.Fprintln(out, cleaned)
			}
			if showReport {
				fmt.Fprintln(cmd.ErrOrStderr(), renderCleanReport(report))
			}
			if report.Empty() && strings.TrimSpace(raw) != "" {
				return fmt.Errorf("payload contained no spoken text")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&stageName, "stage", "", "Run a single pipeline stage by name")
	cmd.Flags().BoolVar(&showReport, "report", false, "Print a per-stage size report to stderr")
	return cmd
}

func readPayload(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("read payload: %w", err)
	}
	return string(data), nil
}

func renderCleanReport(report transcript.Report) string {
	rows := make([][]string, 0, len(report.Stages)+1)
	for _, trace := range report.Stages {
		rows = append(rows, []string{
			trace.Stage,
			humanize.Bytes(uint64(trace.InputBytes)),
			humanize.Bytes(uint64(trace.OutputBytes)),
			shrinkPercent(trace.InputBytes, trace.OutputBytes),
		})
	}
	rows = append(rows, []string{
		"total",
		humanize.Bytes(uint64(report.RawBytes)),
		humanize.Bytes(uint64(report.CleanBytes)),
		shrinkPercent(report.RawBytes, report.CleanBytes),
	})
	table := renderTable(
		[]string{"Stage", "In", "Out", "Removed"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignRight, alignRight},
	)
	return fmt.Sprintf("%s\nLines: %s", table, humanize.Comma(int64(report.Lines)))
}

func shrinkPercent(in, out int) string {
	if in <= 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f%%", float64(in-out)*100/float64(in))
}
