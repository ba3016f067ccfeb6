package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"go-grafik/internal/report"
	"go-grafik/internal/stats"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type renderFlags struct {
	roster string
	font   string
	out    string
}

func (f *renderFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.roster, "roster", "r", "", "Roster JSON file giving the row order")
	cmd.Flags().StringVar(&f.font, "font", os.Getenv("REPORT_FONT_PATH"), "TTF font with Polish glyphs")
	cmd.Flags().StringVarP(&f.out, "out", "o", "", "Output path (default: generated file name)")
}

func gridCmd() *cobra.Command {
	var flags renderFlags

	cmd := &cobra.Command{
		Use:   "grid DOCUMENT.json",
		Short: "Render the monthly grid PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readDocument(args[0])
			if err != nil {
				return err
			}
			order, err := readRosterNames(flags.roster)
			if err != nil {
				return err
			}

			layout, err := report.BuildGrid(doc, order)
			if err != nil {
				return err
			}
			body, err := report.NewPDFRenderer(flags.font).Grid(layout)
			if err != nil {
				return err
			}
			return writeOutput(cmd, flags.out, layout.FileName(), body)
		},
	}
	flags.bind(cmd)
	return cmd
}

func cardsCmd() *cobra.Command {
	var flags renderFlags

	cmd := &cobra.Command{
		Use:   "cards DOCUMENT.json",
		Short: "Render monthly work cards, one page per employee",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readDocument(args[0])
			if err != nil {
				return err
			}
			order, err := readRosterNames(flags.roster)
			if err != nil {
				return err
			}

			layout, err := report.BuildCards(doc, order)
			if err != nil {
				return err
			}
			body, err := report.NewPDFRenderer(flags.font).Cards(layout)
			if err != nil {
				return err
			}
			return writeOutput(cmd, flags.out, layout.FileName(), body)
		},
	}
	flags.bind(cmd)
	return cmd
}

func statsCmd() *cobra.Command {
	var rosterPath string

	cmd := &cobra.Command{
		Use:   "stats DOCUMENT.json...",
		Short: "Count worked Sundays/holidays, sick days and workdays",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			months, present, err := readMonths(args)
			if err != nil {
				return err
			}

			employees, err := readRosterNames(rosterPath)
			if err != nil {
				return err
			}
			if len(employees) == 0 {
				employees = present
			}

			counts, err := stats.Compute(employees, months)
			if err != nil {
				return err
			}
			logger.Info("stats computed", zap.Int("months", len(months)), zap.Int("employees", len(employees)))

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(counts)
		},
	}
	cmd.Flags().StringVarP(&rosterPath, "roster", "r", "", "Roster JSON file limiting the employees")
	return cmd
}

func writeOutput(cmd *cobra.Command, out, fallback string, body []byte) error {
	if out == "" {
		out = fallback
	}
	if err := os.WriteFile(out, body, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	logger.Info("pdf written", zap.String("path", out), zap.Int("bytes", len(body)))
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
