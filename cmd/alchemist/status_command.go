package main

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"alchemist/internal/auditlog"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show library statistics and configured paths",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			return ctx.withStore(func(store *auditlog.Store) error {
				stats, err := store.Stats(cmd.Context())
				if err != nil {
					return err
				}

				if jsonOut {
					return writeJSON(cmd, map[string]any{
						"watch_dir":      cfg.Paths.WatchDir,
						"library_dir":    cfg.Paths.LibraryDir,
						"database_path":  cfg.DatabasePath(),
						"total_records":  stats.TotalRecords,
						"by_category":    stats.ByCategory,
						"last_organized": stats.LastTimestamp,
					})
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Watch folder:  %s\n", cfg.Paths.WatchDir)
				fmt.Fprintf(out, "Library:       %s\n", cfg.Paths.LibraryDir)
				fmt.Fprintf(out, "Database:      %s\n", cfg.DatabasePath())
				fmt.Fprintf(out, "Organized:     %d documents\n", stats.TotalRecords)
				if stats.LastTimestamp != "" {
					fmt.Fprintf(out, "Last activity: %s\n", shortTimestamp(stats.LastTimestamp))
				}
				if len(stats.ByCategory) > 0 {
					fmt.Fprintln(out)
					fmt.Fprintln(out, renderTable(
						[]string{"Category", "Documents"},
						categoryRows(stats),
						[]columnAlignment{alignLeft, alignRight},
					))
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON instead of text")
	return cmd
}

func categoryRows(stats auditlog.Stats) [][]string {
	categories := make([]string, 0, len(stats.ByCategory))
	for category := range stats.ByCategory {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	rows := make([][]string, 0, len(categories))
	for _, category := range categories {
		rows = append(rows, []string{category, strconv.FormatInt(stats.ByCategory[category], 10)})
	}
	return rows
}
