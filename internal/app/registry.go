package app

import (
	"database/sql"

	"go-grafik/internal/attendance"
	"go-grafik/internal/config"
	"go-grafik/internal/group"
	"go-grafik/internal/messaging/kafka"
	"go-grafik/internal/middleware"
	"go-grafik/internal/notification"
	"go-grafik/internal/report"
	"go-grafik/internal/roster"
	"go-grafik/internal/stats"
	"go-grafik/internal/template"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

// Entities lists every table the API owns, in migration order.
func Entities() []any {
	return []any{
		&group.Group{},
		&roster.Document{},
		&roster.Skill{},
		&attendance.Document{},
		&template.Template{},
		&kafka.OutboxEvent{},
	}
}

func registerModules(
	router *gin.Engine,
	cfg *config.Config,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	logger *zap.Logger,
) {
	cacheTTL := cfg.Settings.GetCacheTTL()

	// --- Repositories ---
	groupRepo := group.NewRepository(gormDB)
	rosterRepo := roster.NewRepository(gormDB)
	attendanceRepo := attendance.NewRepository(gormDB)
	templateRepo := template.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(gormDB)

	// --- Services ---
	rosterService := roster.NewService(db, rosterRepo, groupRepo, rdb, cacheTTL, logger)
	attendanceService := attendance.NewService(db, attendanceRepo, rosterService, logger)
	templateService := template.NewService(db, templateRepo, rdb, cacheTTL, logger)
	statsService := stats.NewService(attendanceService, rosterService, logger)
	reportService := report.NewService(attendanceService, rosterService, report.NewPDFRenderer(cfg.Report.FontPath), logger)
	notificationService := notification.NewService(db, rosterService, outboxRepo, notification.ParseAddressList(cfg.Notify.To), logger)

	// rosters, grids and templates are keyed by group name
	cascades := []group.Cascade{
		func(tx *sql.Tx) group.Scoped { return rosterRepo.WithTx(tx) },
		func(tx *sql.Tx) group.Scoped { return attendanceRepo.WithTx(tx) },
		func(tx *sql.Tx) group.Scoped { return templateRepo.WithTx(tx) },
	}
	groupService := group.NewService(db, groupRepo, group.Invalidators{rosterService, templateService}, cascades, logger)

	// --- Handlers ---
	groupHandler := group.NewHandler(groupService, logger)
	rosterHandler := roster.NewHandler(rosterService, logger)
	attendanceHandler := attendance.NewHandler(attendanceService, logger)
	statsHandler := stats.NewHandler(statsService, logger)
	reportHandler := report.NewHandler(reportService, logger)
	templateHandler := template.NewHandler(templateService, logger)
	notificationHandler := notification.NewHandler(notificationService, logger)

	// --- Routes Registration ---
	router.Use(middleware.ContextLogger(logger))

	api := router.Group("/api/v1")
	api.Use(
		middleware.RateLimitByIP(rate.Limit(cfg.Settings.RateLimitRPS), cfg.Settings.RateLimitBurst),
		middleware.Idempotency(rdb),
	)
	{
		group.RegisterRoutes(api, groupHandler)
		roster.RegisterSkillRoutes(api, rosterHandler)

		scoped := api.Group("/groups/:group", groupHandler.RequireGroup())
		roster.RegisterRoutes(scoped, rosterHandler)
		attendance.RegisterRoutes(scoped, attendanceHandler)
		stats.RegisterRoutes(scoped, statsHandler)
		report.RegisterRoutes(scoped, reportHandler)
		template.RegisterRoutes(scoped, templateHandler)
		notification.RegisterRoutes(scoped, notificationHandler)
	}
}
