package stats

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go-grafik/internal/attendance"
	"go-grafik/internal/calendar"
	"go-grafik/internal/roster"
	"go-grafik/internal/shared/contextutil"

	"go.uber.org/zap"
)

// GridLoader reads one month of attendance; missing months are empty.
type GridLoader interface {
	LoadDocument(ctx context.Context, group, month, year string) (attendance.GridDocument, error)
}

// RosterLister lists profiles in roster order, optionally filtered by name.
type RosterLister interface {
	List(ctx context.Context, group, q string) ([]roster.ProfileResponse, error)
}

//go:generate mockgen -source=stats_service.go -destination=mock/stats_service_mock.go -package=mock
type Service interface {
	Compute(ctx context.Context, group string, req ComputeRequest) (ComputeResponse, error)
	Panel(ctx context.Context, group string, q PanelQuery) ([]PanelRow, error)
	ExportXLSX(ctx context.Context, group string, q PanelQuery) ([]byte, string, error)
}

type service struct {
	grids  GridLoader
	roster RosterLister
	now    func() time.Time
	logger *zap.Logger
}

func NewService(grids GridLoader, roster RosterLister, logger ...*zap.Logger) Service {
	l := zap.L().Named("stats.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("stats.service")
	}
	return &service{grids: grids, roster: roster, now: time.Now, logger: l}
}

func (s *service) load(ctx context.Context, group string, months []MonthYear) ([]MonthGrid, error) {
	out := make([]MonthGrid, 0, len(months))
	for _, my := range months {
		doc, err := s.grids.LoadDocument(ctx, group, my.Month, strconv.Itoa(my.Year))
		if err != nil {
			return nil, err
		}
		out = append(out, MonthGrid{Period: my, Rows: doc.Data})
	}
	return out, nil
}

func (s *service) Compute(ctx context.Context, group string, req ComputeRequest) (ComputeResponse, error) {
	months, err := MonthsBetween(req.FromMonth, req.FromYear, req.ToMonth, req.ToYear)
	if err != nil {
		return ComputeResponse{}, err
	}

	employees := req.Employees
	if len(employees) == 0 {
		profiles, err := s.roster.List(ctx, group, "")
		if err != nil {
			return ComputeResponse{}, err
		}
		for _, p := range profiles {
			employees = append(employees, p.Name)
		}
	}

	grids, err := s.load(ctx, group, months)
	if err != nil {
		return ComputeResponse{}, err
	}

	counts, err := Compute(employees, grids)
	if err != nil {
		return ComputeResponse{}, err
	}

	contextutil.GetLogger(ctx, s.logger).Debug("stats computed",
		zap.String("group", group),
		zap.Int("months", len(months)),
		zap.Int("employees", len(employees)),
	)
	return ComputeResponse{Months: months, Stats: counts}, nil
}

func (s *service) withDefaults(q PanelQuery) PanelQuery {
	year := strconv.Itoa(s.now().Year())
	if strings.TrimSpace(q.FromMonth) == "" {
		q.FromMonth = calendar.Months[0]
	}
	if strings.TrimSpace(q.FromYear) == "" {
		q.FromYear = year
	}
	if strings.TrimSpace(q.ToMonth) == "" {
		q.ToMonth = calendar.Months[11]
	}
	if strings.TrimSpace(q.ToYear) == "" {
		q.ToYear = year
	}
	return q
}

// Panel joins profile data with the range statistics for the visible employees.
func (s *service) Panel(ctx context.Context, group string, q PanelQuery) ([]PanelRow, error) {
	q = s.withDefaults(q)

	months, err := MonthsBetween(q.FromMonth, q.FromYear, q.ToMonth, q.ToYear)
	if err != nil {
		return nil, err
	}

	profiles, err := s.roster.List(ctx, group, q.Q)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(profiles))
	for _, p := range profiles {
		names = append(names, p.Name)
	}

	grids, err := s.load(ctx, group, months)
	if err != nil {
		return nil, err
	}
	counts, err := Compute(names, grids)
	if err != nil {
		return nil, err
	}

	rows := make([]PanelRow, 0, len(profiles))
	for _, p := range profiles {
		c := counts[p.Name]
		rows = append(rows, PanelRow{
			Name:                  p.Name,
			Position:              p.Position,
			Contact:               p.Contact,
			Email:                 p.Email,
			Workdays:              c.Workdays,
			SundaysHolidaysWorked: c.SundaysHolidaysWorked,
			SickDays:              c.SickDays,
			ExamDaysLeft:          p.ExamDaysLeft,
			ExamSoon:              p.ExamSoon,
		})
	}
	return rows, nil
}

func (s *service) ExportXLSX(ctx context.Context, group string, q PanelQuery) ([]byte, string, error) {
	q = s.withDefaults(q)

	rows, err := s.Panel(ctx, group, q)
	if err != nil {
		return nil, "", err
	}

	title := fmt.Sprintf("%s %s %s - %s %s", group, q.FromMonth, q.FromYear, q.ToMonth, q.ToYear)
	body, err := writePanelXLSX(title, rows)
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("stats xlsx export failed", zap.Error(err))
		return nil, "", err
	}

	fileName := fmt.Sprintf("statystyki_%s_%s_%s-%s_%s.xlsx",
		strings.ReplaceAll(group, " ", "_"), q.FromMonth, q.FromYear, q.ToMonth, q.ToYear)
	return body, fileName, nil
}
