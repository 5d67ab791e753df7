package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"alchemist/internal/auditlog"
)

func newRecentCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "recent",
		Short: "Show the most recently organized documents",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *auditlog.Store) error {
				records, err := store.Recent(cmd.Context(), limit)
				if err != nil {
					return err
				}
				return writeRecords(cmd, records, jsonOut)
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Maximum number of records to show")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON instead of a table")
	return cmd
}

func newListCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every organized document",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *auditlog.Store) error {
				records, err := store.All(cmd.Context())
				if err != nil {
					return err
				}
				return writeRecords(cmd, records, jsonOut)
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON instead of a table")
	return cmd
}

func newSearchCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "search <keywords...>",
		Short: "Find documents whose summary contains every keyword",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *auditlog.Store) error {
				records, err := store.SearchSummary(cmd.Context(), strings.Join(args, " "))
				if err != nil {
					return err
				}
				return writeRecords(cmd, records, jsonOut)
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON instead of a table")
	return cmd
}

type jsonRecord struct {
	ID               int64  `json:"id"`
	OriginalFilename string `json:"original_filename"`
	NewFilename      string `json:"new_filename"`
	Category         string `json:"category"`
	Summary          string `json:"summary"`
	DestPath         string `json:"dest_path,omitempty"`
	Timestamp        string `json:"timestamp"`
}

func writeRecords(cmd *cobra.Command, records []auditlog.Record, jsonOut bool) error {
	if jsonOut {
		items := make([]jsonRecord, 0, len(records))
		for _, r := range records {
			items = append(items, jsonRecord{
				ID:               r.ID,
				OriginalFilename: r.OriginalFilename,
				NewFilename:      r.NewFilename,
				Category:         r.Category,
				Summary:          r.Summary,
				DestPath:         r.DestPath,
				Timestamp:        r.Timestamp,
			})
		}
		return writeJSON(cmd, map[string]any{"records": items})
	}

	out := cmd.OutOrStdout()
	if len(records) == 0 {
		fmt.Fprintln(out, "No records found.")
		return nil
	}

	headers := []string{"ID", "When", "Original", "Filed As", "Category", "Summary"}
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			strconv.FormatInt(r.ID, 10),
			shortTimestamp(r.Timestamp),
			r.OriginalFilename,
			r.NewFilename,
			r.Category,
			truncate(r.Summary, 60),
		})
	}
	aligns := []columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft, alignLeft}
	fmt.Fprintln(out, renderTable(headers, rows, aligns))
	return nil
}

// shortTimestamp trims sub-second precision and zone detail for table display.
func shortTimestamp(ts string) string {
	if len(ts) >= 19 {
		return strings.Replace(ts[:19], "T", " ", 1)
	}
	return ts
}

func truncate(s string, max int) string {
	if max <= 3 || len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
