package notification_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"go-grafik/internal/events"
	"go-grafik/internal/messaging/kafka"
	kafkaMock "go-grafik/internal/messaging/kafka/mock"
	"go-grafik/internal/notification"
	notificationerrors "go-grafik/internal/notification/errors"
	"go-grafik/internal/roster"
	"go-grafik/internal/shared/apperror"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fakeProfiles struct {
	profiles []roster.Profile
	err      error
}

func (f *fakeProfiles) Profiles(_ context.Context, _ string) ([]roster.Profile, error) {
	return f.profiles, f.err
}

var team = []roster.Profile{
	{Name: "Anna", Email: "anna@firma.pl"},
	{Name: "Jan", Email: " jan@firma.pl "},
	{Name: "Ola", Email: "nie-mail"},
	{Name: "Piotr"},
	{Name: "Ewa", Email: "anna@firma.pl"},
}

type serviceDeps struct {
	sqlMock sqlmock.Sqlmock
	outbox  *kafkaMock.MockOutboxRepository
	service notification.Service
}

func setupServiceTest(t *testing.T, profiles *fakeProfiles, extra ...string) *serviceDeps {
	ctrl := gomock.NewController(t)
	db, sqlMock, _ := sqlmock.New()
	t.Cleanup(func() { _ = db.Close() })

	outbox := kafkaMock.NewMockOutboxRepository(ctrl)
	svc := notification.NewService(db, profiles, outbox, extra)
	return &serviceDeps{sqlMock: sqlMock, outbox: outbox, service: svc}
}

func TestNotificationService_Notify(t *testing.T) {
	ctx := context.Background()

	t.Run("queues an event with defaults", func(t *testing.T) {
		deps := setupServiceTest(t, &fakeProfiles{profiles: team}, "kierownik@firma.pl")

		var stored kafka.OutboxEvent
		deps.sqlMock.ExpectBegin()
		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, e kafka.OutboxEvent) error {
			stored = e
			return nil
		})
		deps.sqlMock.ExpectCommit()

		resp, err := deps.service.Notify(ctx, "Magazyn", notification.NotifyRequest{})
		require.NoError(t, err)
		assert.True(t, resp.Queued)
		assert.Equal(t, []string{"anna@firma.pl", "jan@firma.pl", "kierownik@firma.pl"}, resp.Recipients)
		assert.Empty(t, resp.MissingEmailFor)

		assert.Equal(t, resp.EventID, stored.ID)
		assert.Equal(t, events.NotificationRequestedTopic, stored.Topic)
		assert.Equal(t, "Magazyn", stored.AggregateID)
		assert.Equal(t, kafka.OutboxStatusPending, stored.Status)

		var payload events.NotificationRequestedEvent
		require.NoError(t, json.Unmarshal(stored.Payload, &payload))
		assert.Equal(t, "Grafik Magazyn", payload.Subject)
		assert.Equal(t, "Został zaktualizowany grafik dla działu Magazyn.", payload.Message)
		assert.Equal(t, resp.Recipients, payload.Recipients)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("employee filter reports missing addresses", func(t *testing.T) {
		deps := setupServiceTest(t, &fakeProfiles{profiles: team})

		deps.sqlMock.ExpectBegin()
		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().Create(ctx, gomock.Any()).Return(nil)
		deps.sqlMock.ExpectCommit()

		resp, err := deps.service.Notify(ctx, "Magazyn", notification.NotifyRequest{
			Subject:   "  Zmiana  ",
			Employees: []string{"Jan", "Ola", "Piotr"},
			Extra:     []string{"zly adres", "szef@firma.pl"},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"jan@firma.pl", "szef@firma.pl"}, resp.Recipients)
		assert.Equal(t, []string{"Ola", "Piotr"}, resp.MissingEmailFor)
	})

	t.Run("no recipients lists the missing names", func(t *testing.T) {
		deps := setupServiceTest(t, &fakeProfiles{profiles: team})

		_, err := deps.service.Notify(ctx, "Magazyn", notification.NotifyRequest{Employees: []string{"Ola", "Piotr"}})
		assert.ErrorIs(t, err, notificationerrors.ErrNoRecipients)

		httpErr := apperror.ToHTTP(err)
		assert.Equal(t, 400, httpErr.Status)
		assert.Contains(t, httpErr.Message, "Missing e-mail for: Ola, Piotr")
	})

	t.Run("empty roster", func(t *testing.T) {
		deps := setupServiceTest(t, &fakeProfiles{})

		_, err := deps.service.Notify(ctx, "Magazyn", notification.NotifyRequest{})
		assert.Equal(t, notificationerrors.ErrNoRecipients, err)
	})

	t.Run("subject with line break", func(t *testing.T) {
		deps := setupServiceTest(t, &fakeProfiles{profiles: team})

		_, err := deps.service.Notify(ctx, "Magazyn", notification.NotifyRequest{Subject: "Grafik\r\nBcc: x@y.pl"})
		assert.ErrorIs(t, err, notificationerrors.ErrInvalidHeader)
	})

	t.Run("roster error", func(t *testing.T) {
		deps := setupServiceTest(t, &fakeProfiles{err: errors.New("db down")})

		_, err := deps.service.Notify(ctx, "Magazyn", notification.NotifyRequest{})
		assert.EqualError(t, err, "db down")
	})

	t.Run("outbox error rolls back", func(t *testing.T) {
		deps := setupServiceTest(t, &fakeProfiles{profiles: team})

		deps.sqlMock.ExpectBegin()
		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().Create(ctx, gomock.Any()).Return(errors.New("insert failed"))
		deps.sqlMock.ExpectRollback()

		_, err := deps.service.Notify(ctx, "Magazyn", notification.NotifyRequest{})
		assert.EqualError(t, err, "insert failed")
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestParseAddressList(t *testing.T) {
	assert.Equal(t, []string{"a@b.pl", "c@d.pl"}, notification.ParseAddressList(" a@b.pl, ,c@d.pl "))
	assert.Nil(t, notification.ParseAddressList(""))
}
