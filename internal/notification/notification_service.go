package notification

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"go-grafik/internal/events"
	"go-grafik/internal/messaging/kafka"
	notificationerrors "go-grafik/internal/notification/errors"
	"go-grafik/internal/roster"
	"go-grafik/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const aggregateType = "group"

// ProfileSource reads the roster of a group.
type ProfileSource interface {
	Profiles(ctx context.Context, group string) ([]roster.Profile, error)
}

//go:generate mockgen -source=notification_service.go -destination=mock/notification_service_mock.go -package=mock
type Service interface {
	Notify(ctx context.Context, group string, req NotifyRequest) (NotifyResponse, error)
}

type service struct {
	db       *sql.DB
	profiles ProfileSource
	outbox   kafka.OutboxRepository
	extra    []string
	now      func() time.Time
	logger   *zap.Logger
}

// NewService queues notifications through the outbox. extra addresses are
// added to every notification.
func NewService(db *sql.DB, profiles ProfileSource, outbox kafka.OutboxRepository, extra []string, logger ...*zap.Logger) Service {
	l := zap.L().Named("notification.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.service")
	}
	return &service{
		db:       db,
		profiles: profiles,
		outbox:   outbox,
		extra:    extra,
		now:      time.Now,
		logger:   l,
	}
}

// ParseAddressList splits a comma separated list, as used for NOTIFY_TO.
func ParseAddressList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// collectRecipients picks profile addresses, optionally only for the named
// employees, and reports the named employees without a valid address.
func collectRecipients(profiles []roster.Profile, only []string, extra []string) (recipients, missing []string) {
	filter := make(map[string]struct{}, len(only))
	for _, n := range only {
		filter[n] = struct{}{}
	}

	set := map[string]struct{}{}
	missing = []string{}
	for _, p := range profiles {
		if len(filter) > 0 {
			if _, ok := filter[p.Name]; !ok {
				continue
			}
		}
		email := strings.TrimSpace(p.Email)
		if email != "" && roster.ValidEmail(email) {
			set[email] = struct{}{}
			continue
		}
		if len(filter) > 0 {
			missing = append(missing, p.Name)
		}
	}
	for _, e := range extra {
		if e = strings.TrimSpace(e); roster.ValidEmail(e) {
			set[e] = struct{}{}
		}
	}

	recipients = make([]string, 0, len(set))
	for e := range set {
		recipients = append(recipients, e)
	}
	sort.Strings(recipients)
	return recipients, missing
}

func (s *service) Notify(ctx context.Context, group string, req NotifyRequest) (NotifyResponse, error) {
	logger := contextutil.GetLogger(ctx, s.logger)

	subject := strings.TrimSpace(req.Subject)
	if subject == "" {
		subject = "Grafik " + group
	}
	message := strings.TrimSpace(req.Message)
	if message == "" {
		message = fmt.Sprintf("Został zaktualizowany grafik dla działu %s.", group)
	}
	if hasLineBreak(subject) {
		return NotifyResponse{}, notificationerrors.ErrInvalidHeader
	}

	profiles, err := s.profiles.Profiles(ctx, group)
	if err != nil {
		return NotifyResponse{}, err
	}

	extra := append(append([]string{}, req.Extra...), s.extra...)
	recipients, missing := collectRecipients(profiles, req.Employees, extra)
	if len(recipients) == 0 {
		logger.Warn("notify without recipients", zap.String("group", group), zap.Strings("missing", missing))
		return NotifyResponse{}, notificationerrors.NoRecipients(missing)
	}

	payload, err := json.Marshal(events.NotificationRequestedEvent{
		EventType:   events.NotificationRequestedType,
		Group:       group,
		Subject:     subject,
		Message:     message,
		Recipients:  recipients,
		RequestedBy: contextutil.GetActor(ctx),
		OccurredAt:  s.now().UTC(),
	})
	if err != nil {
		return NotifyResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("notify begin tx failed", zap.Error(err))
		return NotifyResponse{}, err
	}
	defer tx.Rollback()

	eventID := uuid.NewString()
	if err := s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            eventID,
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: aggregateType,
		AggregateID:   group,
		EventType:     events.NotificationRequestedType,
		Topic:         events.NotificationRequestedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}); err != nil {
		logger.Error("notify outbox write failed", zap.String("group", group), zap.Error(err))
		return NotifyResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return NotifyResponse{}, err
	}

	logger.Info("notification queued",
		zap.String("group", group),
		zap.String("event_id", eventID),
		zap.Int("recipients", len(recipients)),
	)
	return NotifyResponse{
		Queued:          true,
		EventID:         eventID,
		Recipients:      recipients,
		MissingEmailFor: missing,
	}, nil
}
