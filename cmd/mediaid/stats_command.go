package main

import (
	"fmt"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func newStatsCommand(configFlag *string) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show request history and model token usage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := bootstrap(cmd.Context(), *configFlag)
			if err != nil {
				return err
			}
			defer rt.Close()

			total, last24h, err := rt.store.RequestCounts(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Requests: %d total, %d in the last 24 hours\n\n", total, last24h)

			records, err := rt.store.RecentRequests(cmd.Context(), limit)
			if err != nil {
				return err
			}
			rows := make([]table.Row, 0, len(records))
			for _, rec := range records {
				rows = append(rows, table.Row{
					rec.ReceivedAt.Local().Format("2006-01-02 15:04:05"),
					rec.Endpoint,
					rec.Filename,
					rec.ResultStatus,
					fmt.Sprintf("%.2fs", rec.ElapsedTime),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				table.Row{"Received", "Endpoint", "Filename", "Status", "Elapsed"},
				rows, 4, 5))

			usage, err := rt.store.UsageSummary(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout())
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				table.Row{"Model calls", "Input", "Cached", "Output", "Reasoning", "Total"},
				[]table.Row{{
					strconv.FormatInt(usage.Calls, 10),
					strconv.FormatInt(usage.InputTokens, 10),
					strconv.FormatInt(usage.CachedTokens, 10),
					strconv.FormatInt(usage.OutputTokens, 10),
					strconv.FormatInt(usage.ReasoningTokens, 10),
					strconv.FormatInt(usage.TotalTokens, 10),
				}}, 1, 2, 3, 4, 5, 6))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Number of recent requests to show")

	return cmd
}
