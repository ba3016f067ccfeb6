package report

import (
	"go-grafik/internal/shared/apperror"
	"go-grafik/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("report.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("report.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("report request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Grid(c *gin.Context) {
	var q MonthQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	body, fileName, err := h.service.Grid(c.Request.Context(), c.Param("group"), q.Month, q.Year)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Attachment(c, response.ContentTypePDF, fileName, body)
}

func (h *Handler) Cards(c *gin.Context) {
	var q MonthQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	body, fileName, err := h.service.Cards(c.Request.Context(), c.Param("group"), q.Month, q.Year)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Attachment(c, response.ContentTypePDF, fileName, body)
}
