package stats_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"go-grafik/internal/attendance"
	"go-grafik/internal/roster"
	"go-grafik/internal/stats"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type fakeGrids struct {
	docs  map[string]attendance.Rows
	calls []string
	err   error
}

func (f *fakeGrids) LoadDocument(_ context.Context, group, month, year string) (attendance.GridDocument, error) {
	f.calls = append(f.calls, month+" "+year)
	if f.err != nil {
		return attendance.GridDocument{}, f.err
	}
	rows, ok := f.docs[month+" "+year]
	if !ok {
		rows = attendance.NewRows()
	}
	return attendance.GridDocument{Group: group, Month: month, Year: year, Data: rows}, nil
}

type fakeRoster struct {
	profiles []roster.ProfileResponse
	lastQ    string
}

func (f *fakeRoster) List(_ context.Context, _ string, q string) ([]roster.ProfileResponse, error) {
	f.lastQ = q
	return f.profiles, nil
}

func TestStatsService_Panel(t *testing.T) {
	ctx := context.Background()
	days := 12

	mayRows := attendance.NewRows()
	mayRows.Set("Adam", filled(31, "1"))
	grids := &fakeGrids{docs: map[string]attendance.Rows{"Maj 2025": mayRows}}
	rost := &fakeRoster{profiles: []roster.ProfileResponse{
		{Name: "Adam", Position: "Magazynier", ExamDaysLeft: &days, ExamSoon: true},
		{Name: "Ewa"},
	}}
	svc := stats.NewService(grids, rost)

	rows, err := svc.Panel(ctx, "Magazyn", stats.PanelQuery{
		Q: "a", FromMonth: "Kwiecień", FromYear: "2025", ToMonth: "Maj", ToYear: "2025",
	})
	require.NoError(t, err)
	assert.Equal(t, "a", rost.lastQ)
	assert.Equal(t, []string{"Kwiecień 2025", "Maj 2025"}, grids.calls)

	require.Len(t, rows, 2)
	assert.Equal(t, 25, rows[0].Workdays)
	assert.Equal(t, 6, rows[0].SundaysHolidaysWorked)
	assert.Equal(t, "Magazynier", rows[0].Position)
	assert.True(t, rows[0].ExamSoon)
	assert.Equal(t, 0, rows[1].Workdays)
	assert.Nil(t, rows[1].ExamDaysLeft)
}

func TestStatsService_Compute(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults to whole roster", func(t *testing.T) {
		grids := &fakeGrids{}
		rost := &fakeRoster{profiles: []roster.ProfileResponse{{Name: "Adam"}, {Name: "Ewa"}}}
		svc := stats.NewService(grids, rost)

		resp, err := svc.Compute(ctx, "Magazyn", stats.ComputeRequest{
			FromMonth: "Styczeń", FromYear: "2025", ToMonth: "Marzec", ToYear: "2025",
		})
		require.NoError(t, err)
		assert.Len(t, resp.Months, 3)
		assert.Len(t, resp.Stats, 2)
	})

	t.Run("loader error", func(t *testing.T) {
		svc := stats.NewService(&fakeGrids{err: errors.New("db down")}, &fakeRoster{})
		_, err := svc.Compute(ctx, "Magazyn", stats.ComputeRequest{
			Employees: []string{"Adam"},
			FromMonth: "Styczeń", FromYear: "2025", ToMonth: "Styczeń", ToYear: "2025",
		})
		assert.Error(t, err)
	})
}

func TestStatsService_ExportXLSX(t *testing.T) {
	ctx := context.Background()
	days := 5

	rows := attendance.NewRows()
	rows.Set("Adam", filled(31, "1"))
	svc := stats.NewService(
		&fakeGrids{docs: map[string]attendance.Rows{"Maj 2025": rows}},
		&fakeRoster{profiles: []roster.ProfileResponse{{Name: "Adam", ExamDaysLeft: &days, ExamSoon: true}}},
	)

	body, fileName, err := svc.ExportXLSX(ctx, "Dział A", stats.PanelQuery{
		FromMonth: "Maj", FromYear: "2025", ToMonth: "Maj", ToYear: "2025",
	})
	require.NoError(t, err)
	assert.Equal(t, "statystyki_Dział_A_Maj_2025-Maj_2025.xlsx", fileName)

	f, err := excelize.OpenReader(bytes.NewReader(body))
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue("Statystyki", "A3")
	require.NoError(t, err)
	assert.Equal(t, "Nazwisko i imię", header)

	name, _ := f.GetCellValue("Statystyki", "A4")
	workdays, _ := f.GetCellValue("Statystyki", "E4")
	red, _ := f.GetCellValue("Statystyki", "F4")
	exam, _ := f.GetCellValue("Statystyki", "H4")
	assert.Equal(t, "Adam", name)
	assert.Equal(t, "25", workdays)
	assert.Equal(t, "6", red)
	assert.Equal(t, "5", exam)
}
