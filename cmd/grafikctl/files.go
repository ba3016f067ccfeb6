package main

import (
	"fmt"
	"os"

	"go-grafik/internal/attendance"
	"go-grafik/internal/calendar"
	"go-grafik/internal/roster"
	"go-grafik/internal/stats"
)

// readDocument loads an exported attendance document. Numeric months are
// resolved to their names.
func readDocument(path string) (attendance.GridDocument, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return attendance.GridDocument{}, err
	}
	doc, err := attendance.DecodeDocument(b)
	if err != nil {
		return attendance.GridDocument{}, fmt.Errorf("%s: %w", path, err)
	}
	month, err := calendar.ResolveMonth(doc.Month)
	if err != nil {
		return attendance.GridDocument{}, fmt.Errorf("%s: %w", path, err)
	}
	doc.Month = month
	return doc, nil
}

// readRosterNames returns the roster order, or nil without a path.
func readRosterNames(path string) ([]string, error) {
	if path == "" {
		return nil, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	profiles, _, err := roster.DecodeRoster(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	names := make([]string, 0, len(profiles))
	for _, p := range profiles {
		names = append(names, p.Name)
	}
	return names, nil
}

// readMonths loads several documents for statistics and collects every
// employee name found in them.
func readMonths(paths []string) ([]stats.MonthGrid, []string, error) {
	months := make([]stats.MonthGrid, 0, len(paths))
	present := map[string]struct{}{}
	for _, path := range paths {
		doc, err := readDocument(path)
		if err != nil {
			return nil, nil, err
		}
		year, err := calendar.ParseYear(doc.Year)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", path, err)
		}
		months = append(months, stats.MonthGrid{
			Period: stats.MonthYear{Month: doc.Month, Year: year},
			Rows:   doc.Data,
		})
		for _, n := range doc.Data.Names() {
			present[n] = struct{}{}
		}
	}
	return months, sortedKeys(present), nil
}
