package attendance

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	attendanceerrors "go-grafik/internal/attendance/errors"
	"go-grafik/internal/calendar"
	"go-grafik/internal/shared/contextutil"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RosterNames lists a group's employees in roster order.
type RosterNames interface {
	Names(ctx context.Context, group string) ([]string, error)
}

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	LoadDocument(ctx context.Context, group, month, year string) (GridDocument, error)
	GetGrid(ctx context.Context, group, month, year string) (GridResponse, error)
	SaveGrid(ctx context.Context, group, month, year string, rows []GridRow) (GridResponse, error)
	SetCell(ctx context.Context, group string, req SetCellRequest) error
	ExportMonthCSV(ctx context.Context, group, month, year string) ([]byte, string, error)
	ImportMonthCSV(ctx context.Context, group, month, year string, r io.Reader) (ImportResult, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	roster RosterNames
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, roster RosterNames, logger ...*zap.Logger) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	return &service{db: db, repo: repo, roster: roster, logger: l}
}

type period struct {
	month string
	year  string
	days  int
}

func resolvePeriod(month, year string) (period, error) {
	name, err := calendar.ResolveMonth(month)
	if err != nil {
		return period{}, err
	}
	y, err := calendar.ParseYear(year)
	if err != nil {
		return period{}, err
	}
	days, err := calendar.DaysInMonth(name, strconv.Itoa(y))
	if err != nil {
		return period{}, err
	}
	return period{month: name, year: strconv.Itoa(y), days: days}, nil
}

// load reads a document through repo. A missing or unreadable document is an
// empty grid; only storage errors are returned.
func (s *service) load(ctx context.Context, repo Repository, group string, p period) (GridDocument, error) {
	empty := GridDocument{Group: group, Month: p.month, Year: p.year, Data: NewRows()}

	row, err := repo.Find(ctx, group, p.month, p.year)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return empty, nil
		}
		return GridDocument{}, err
	}

	doc, err := DecodeDocument([]byte(row.Payload))
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Warn("malformed attendance document, treating as empty",
			zap.String("group", group),
			zap.String("month", p.month),
			zap.String("year", p.year),
			zap.Error(err),
		)
		return empty, nil
	}

	doc.Group, doc.Month, doc.Year = group, p.month, p.year
	return doc, nil
}

func (s *service) store(ctx context.Context, repo Repository, doc GridDocument) error {
	payload, err := EncodeDocument(doc)
	if err != nil {
		return err
	}
	return repo.Upsert(ctx, &Document{
		GroupName: doc.Group,
		Month:     doc.Month,
		Year:      doc.Year,
		Payload:   string(payload),
	})
}

func (s *service) LoadDocument(ctx context.Context, group, month, year string) (GridDocument, error) {
	p, err := resolvePeriod(month, year)
	if err != nil {
		return GridDocument{}, err
	}
	return s.load(ctx, s.repo, group, p)
}

func (s *service) GetGrid(ctx context.Context, group, month, year string) (GridResponse, error) {
	p, err := resolvePeriod(month, year)
	if err != nil {
		return GridResponse{}, err
	}

	doc, err := s.load(ctx, s.repo, group, p)
	if err != nil {
		return GridResponse{}, err
	}

	names, err := s.roster.Names(ctx, group)
	if err != nil {
		return GridResponse{}, err
	}

	return toGridResponse(doc, names, p.days), nil
}

// SaveGrid replaces the whole month. Cells are trimmed and every row is
// cut or padded to the month length.
func (s *service) SaveGrid(ctx context.Context, group, month, year string, rows []GridRow) (GridResponse, error) {
	logger := contextutil.GetLogger(ctx, s.logger)

	p, err := resolvePeriod(month, year)
	if err != nil {
		return GridResponse{}, err
	}

	doc := GridDocument{Group: group, Month: p.month, Year: p.year, Data: NewRows()}
	for _, r := range rows {
		name := strings.TrimSpace(r.Name)
		if name == "" {
			return GridResponse{}, attendanceerrors.ErrMissingFields
		}
		cells := make([]string, p.days)
		for i := 0; i < p.days && i < len(r.Cells); i++ {
			cells[i] = strings.TrimSpace(r.Cells[i])
		}
		doc.Data.Set(name, cells)
	}

	if err := s.store(ctx, s.repo, doc); err != nil {
		logger.Error("save attendance grid failed", zap.String("group", group), zap.Error(err))
		return GridResponse{}, err
	}

	logger.Info("attendance grid saved",
		zap.String("group", group),
		zap.String("month", p.month),
		zap.String("year", p.year),
		zap.Int("rows", doc.Data.Len()),
	)

	return toGridResponse(doc, doc.Data.Names(), p.days), nil
}

// SetCell writes one cell. Every roster row and the target row are padded
// to the month length first, so the stored document is always rectangular.
func (s *service) SetCell(ctx context.Context, group string, req SetCellRequest) error {
	logger := contextutil.GetLogger(ctx, s.logger)

	userName := strings.TrimSpace(req.UserName)
	if req.Month == "" || req.Year == "" || req.Day == "" || userName == "" {
		return attendanceerrors.ErrMissingFields
	}

	p, err := resolvePeriod(string(req.Month), string(req.Year))
	if err != nil {
		return err
	}

	day, err := strconv.Atoi(string(req.Day))
	if err != nil {
		return fmt.Errorf("%w: day %q", attendanceerrors.ErrDayOutOfRange, req.Day)
	}

	names, err := s.roster.Names(ctx, group)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("set cell begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	doc, err := s.load(ctx, qtx, group, p)
	if err != nil {
		return err
	}

	targets := append(append([]string{}, names...), userName)
	for _, name := range targets {
		doc.Data.Set(name, PadRow(doc.Data.Get(name), p.days))
	}

	if day < 1 || day > p.days {
		return attendanceerrors.ErrDayOutOfRange
	}

	row := doc.Data.Get(userName)
	row[day-1] = strings.TrimSpace(req.Value)

	if err := s.store(ctx, qtx, doc); err != nil {
		logger.Error("set cell store failed", zap.Error(err))
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	logger.Debug("attendance cell saved",
		zap.String("group", group),
		zap.String("employee", userName),
		zap.Int("day", day),
	)
	return nil
}

func (s *service) ExportMonthCSV(ctx context.Context, group, month, year string) ([]byte, string, error) {
	grid, err := s.GetGrid(ctx, group, month, year)
	if err != nil {
		return nil, "", err
	}

	body, err := writeMonthCSV(grid)
	if err != nil {
		return nil, "", err
	}

	fileName := fmt.Sprintf("%s_%s_%s.csv", strings.ReplaceAll(group, " ", "_"), grid.Month, grid.Year)
	return body, fileName, nil
}

// ImportMonthCSV merges imported rows into the stored month; rows not present
// in the file are left alone.
func (s *service) ImportMonthCSV(ctx context.Context, group, month, year string, r io.Reader) (ImportResult, error) {
	logger := contextutil.GetLogger(ctx, s.logger)

	p, err := resolvePeriod(month, year)
	if err != nil {
		return ImportResult{}, err
	}

	imported, err := readMonthCSV(r, p.days)
	if err != nil {
		return ImportResult{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ImportResult{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	doc, err := s.load(ctx, qtx, group, p)
	if err != nil {
		return ImportResult{}, err
	}

	for _, row := range imported {
		doc.Data.Set(row.Name, row.Cells)
	}

	if err := s.store(ctx, qtx, doc); err != nil {
		logger.Error("import month csv store failed", zap.Error(err))
		return ImportResult{}, err
	}
	if err := tx.Commit(); err != nil {
		return ImportResult{}, err
	}

	logger.Info("attendance csv imported", zap.String("group", group), zap.Int("rows", len(imported)))
	return ImportResult{Imported: len(imported)}, nil
}

func toGridResponse(doc GridDocument, names []string, days int) GridResponse {
	rows := make([]GridRow, 0, len(names))
	for _, name := range names {
		cells := make([]string, days)
		copy(cells, doc.Data.Get(name))
		rows = append(rows, GridRow{Name: name, Cells: cells})
	}
	return GridResponse{
		Group: doc.Group,
		Month: doc.Month,
		Year:  doc.Year,
		Days:  days,
		Rows:  rows,
	}
}
