package report

import (
	"context"

	"go-grafik/internal/attendance"
	"go-grafik/internal/shared/contextutil"

	"go.uber.org/zap"
)

// GridLoader reads one month of attendance; missing months are empty.
type GridLoader interface {
	LoadDocument(ctx context.Context, group, month, year string) (attendance.GridDocument, error)
}

// RosterNames gives the printing order of a group.
type RosterNames interface {
	Names(ctx context.Context, group string) ([]string, error)
}

//go:generate mockgen -source=report_service.go -destination=mock/report_service_mock.go -package=mock
type Service interface {
	Grid(ctx context.Context, group, month, year string) ([]byte, string, error)
	Cards(ctx context.Context, group, month, year string) ([]byte, string, error)
}

type service struct {
	grids    GridLoader
	roster   RosterNames
	renderer Renderer
	logger   *zap.Logger
}

func NewService(grids GridLoader, roster RosterNames, renderer Renderer, logger ...*zap.Logger) Service {
	l := zap.L().Named("report.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("report.service")
	}
	return &service{grids: grids, roster: roster, renderer: renderer, logger: l}
}

func (s *service) load(ctx context.Context, group, month, year string) (attendance.GridDocument, []string, error) {
	doc, err := s.grids.LoadDocument(ctx, group, month, year)
	if err != nil {
		return attendance.GridDocument{}, nil, err
	}
	order, err := s.roster.Names(ctx, group)
	if err != nil {
		return attendance.GridDocument{}, nil, err
	}
	return doc, order, nil
}

func (s *service) Grid(ctx context.Context, group, month, year string) ([]byte, string, error) {
	doc, order, err := s.load(ctx, group, month, year)
	if err != nil {
		return nil, "", err
	}

	layout, err := BuildGrid(doc, order)
	if err != nil {
		return nil, "", err
	}

	body, err := s.renderer.Grid(layout)
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("grid render failed",
			zap.String("group", group),
			zap.String("month", doc.Month),
			zap.String("year", doc.Year),
			zap.Error(err),
		)
		return nil, "", err
	}

	contextutil.GetLogger(ctx, s.logger).Info("grid rendered",
		zap.String("group", group),
		zap.Int("pages", len(layout.Pages)),
	)
	return body, layout.FileName(), nil
}

func (s *service) Cards(ctx context.Context, group, month, year string) ([]byte, string, error) {
	doc, order, err := s.load(ctx, group, month, year)
	if err != nil {
		return nil, "", err
	}

	layout, err := BuildCards(doc, order)
	if err != nil {
		return nil, "", err
	}

	body, err := s.renderer.Cards(layout)
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("cards render failed",
			zap.String("group", group),
			zap.String("month", doc.Month),
			zap.String("year", doc.Year),
			zap.Error(err),
		)
		return nil, "", err
	}

	contextutil.GetLogger(ctx, s.logger).Info("cards rendered",
		zap.String("group", group),
		zap.Int("cards", len(layout.Cards)),
	)
	return body, layout.FileName(), nil
}
