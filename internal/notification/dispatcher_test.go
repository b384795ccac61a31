package notification_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"go-teamplanner/internal/calendar"
	"go-teamplanner/internal/mailer"
	"go-teamplanner/internal/notification"
	notificationerrors "go-teamplanner/internal/notification/errors"
	"go-teamplanner/internal/preference"
)

type fakeNotificationRepository struct {
	createFn               func(ctx context.Context, n *notification.Notification) error
	findAllByRecipientFn   func(ctx context.Context, companyID, recipientID string) ([]notification.Notification, error)
	findByIDAndRecipientFn func(ctx context.Context, companyID, recipientID, id string) (*notification.Notification, error)
	updateFn               func(ctx context.Context, n *notification.Notification) error
	markAllReadFn          func(ctx context.Context, companyID, recipientID string, readAt time.Time) (int64, error)
	deleteAllFn            func(ctx context.Context, companyID, recipientID string) (int64, error)
	countUnreadFn          func(ctx context.Context, companyID, recipientID string) (int64, error)
	created                []*notification.Notification
}

func (f *fakeNotificationRepository) Create(ctx context.Context, n *notification.Notification) error {
	if f.createFn != nil {
		if err := f.createFn(ctx, n); err != nil {
			return err
		}
	}
	f.created = append(f.created, n)
	return nil
}

func (f *fakeNotificationRepository) FindAllByRecipient(ctx context.Context, companyID, recipientID string) ([]notification.Notification, error) {
	if f.findAllByRecipientFn != nil {
		return f.findAllByRecipientFn(ctx, companyID, recipientID)
	}
	return nil, nil
}

func (f *fakeNotificationRepository) FindByIDAndRecipient(ctx context.Context, companyID, recipientID, id string) (*notification.Notification, error) {
	if f.findByIDAndRecipientFn != nil {
		return f.findByIDAndRecipientFn(ctx, companyID, recipientID, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeNotificationRepository) Update(ctx context.Context, n *notification.Notification) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, n)
	}
	return nil
}

func (f *fakeNotificationRepository) MarkAllRead(ctx context.Context, companyID, recipientID string, readAt time.Time) (int64, error) {
	if f.markAllReadFn != nil {
		return f.markAllReadFn(ctx, companyID, recipientID, readAt)
	}
	return 0, nil
}

func (f *fakeNotificationRepository) DeleteAllByRecipient(ctx context.Context, companyID, recipientID string) (int64, error) {
	if f.deleteAllFn != nil {
		return f.deleteAllFn(ctx, companyID, recipientID)
	}
	return 0, nil
}

func (f *fakeNotificationRepository) CountUnread(ctx context.Context, companyID, recipientID string) (int64, error) {
	if f.countUnreadFn != nil {
		return f.countUnreadFn(ctx, companyID, recipientID)
	}
	return 0, nil
}

type fakePreferenceService struct {
	getOrCreateFn func(ctx context.Context, companyID, userID string) (*preference.Preference, error)
}

func (f *fakePreferenceService) GetOrCreate(ctx context.Context, companyID, userID string) (*preference.Preference, error) {
	if f.getOrCreateFn != nil {
		return f.getOrCreateFn(ctx, companyID, userID)
	}
	return &preference.Preference{
		ID:    uuid.New(),
		InApp: preference.DefaultChannelPrefs(),
		Email: preference.DefaultChannelPrefs(),
	}, nil
}

func (f *fakePreferenceService) Update(ctx context.Context, companyID, userID string, req preference.UpdatePreferenceRequest) (preference.PreferenceResponse, error) {
	return preference.PreferenceResponse{}, nil
}

type fakeEmailLogRepository struct {
	entries []*mailer.EmailLog
	findFn  func(ctx context.Context, companyID, recipientID string, limit int) ([]mailer.EmailLog, error)
}

func (f *fakeEmailLogRepository) Append(ctx context.Context, entry *mailer.EmailLog) error {
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeEmailLogRepository) FindByRecipient(ctx context.Context, companyID, recipientID string, limit int) ([]mailer.EmailLog, error) {
	if f.findFn != nil {
		return f.findFn(ctx, companyID, recipientID, limit)
	}
	return nil, nil
}

type fakeSender struct {
	sendFn func(ctx context.Context, msg mailer.Message) error
	sent   []mailer.Message
}

func (f *fakeSender) Send(ctx context.Context, msg mailer.Message) error {
	if f.sendFn != nil {
		if err := f.sendFn(ctx, msg); err != nil {
			return err
		}
	}
	f.sent = append(f.sent, msg)
	return nil
}

type dispatcherDeps struct {
	repo       *fakeNotificationRepository
	prefs      *fakePreferenceService
	emails     *fakeEmailLogRepository
	sender     *fakeSender
	dispatcher notification.Dispatcher
}

func setupDispatcherTest(t *testing.T, now time.Time) *dispatcherDeps {
	t.Helper()

	repo := &fakeNotificationRepository{}
	prefs := &fakePreferenceService{}
	emails := &fakeEmailLogRepository{}
	sender := &fakeSender{}

	d := notification.NewDispatcherWithClock(
		repo, prefs, emails, sender, calendar.NewBuilder("example.test"),
		func() time.Time { return now },
	)

	return &dispatcherDeps{repo: repo, prefs: prefs, emails: emails, sender: sender, dispatcher: d}
}

func noon() time.Time {
	return time.Date(2026, 6, 10, 12, 0, 0, 0, time.UTC)
}

func basicInput(userID string) notification.NotifyInput {
	return notification.NotifyInput{
		Recipient: notification.Recipient{UserID: userID, Email: "worker@example.test"},
		Kind:      notification.KindShiftAssigned,
		Title:     "New shift",
		Message:   "You have been assigned a shift.",
		Email: &notification.EmailContent{
			Subject:  "New shift",
			TextBody: "You have been assigned a shift.",
		},
	}
}

func TestDispatcherNotify(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	userID := uuid.New().String()

	t.Run("both channels on defaults", func(t *testing.T) {
		deps := setupDispatcherTest(t, noon())

		res, err := deps.dispatcher.Notify(ctx, companyID, basicInput(userID))

		assert.NoError(t, err)
		assert.True(t, res.InApp)
		assert.True(t, res.Email)
		if assert.Len(t, deps.repo.created, 1) {
			assert.Equal(t, string(notification.KindShiftAssigned), deps.repo.created[0].Type)
		}
		if assert.Len(t, deps.emails.entries, 1) {
			assert.True(t, deps.emails.entries[0].Success)
			assert.Equal(t, "worker@example.test", deps.emails.entries[0].RecipientEmail)
		}
	})

	t.Run("unknown kind is a caller bug", func(t *testing.T) {
		deps := setupDispatcherTest(t, noon())

		in := basicInput(userID)
		in.Kind = notification.Kind("PIGEON")

		_, err := deps.dispatcher.Notify(ctx, companyID, in)

		assert.ErrorIs(t, err, notificationerrors.ErrUnknownKind)
		assert.Empty(t, deps.repo.created)
	})

	t.Run("malformed recipient is a caller bug", func(t *testing.T) {
		deps := setupDispatcherTest(t, noon())

		in := basicInput("not-a-uuid")

		_, err := deps.dispatcher.Notify(ctx, companyID, in)

		assert.ErrorIs(t, err, notificationerrors.ErrInvalidRecipient)
	})

	t.Run("all channels disabled yields empty result without error", func(t *testing.T) {
		deps := setupDispatcherTest(t, noon())

		deps.prefs.getOrCreateFn = func(ctx context.Context, companyID, userID string) (*preference.Preference, error) {
			return &preference.Preference{ID: uuid.New()}, nil
		}

		res, err := deps.dispatcher.Notify(ctx, companyID, basicInput(userID))

		assert.NoError(t, err)
		assert.False(t, res.InApp)
		assert.False(t, res.Email)
		assert.Empty(t, deps.repo.created)
		assert.Empty(t, deps.emails.entries)
	})

	t.Run("per-kind opt-out only silences that kind", func(t *testing.T) {
		deps := setupDispatcherTest(t, noon())

		prefs := preference.DefaultChannelPrefs()
		prefs.ShiftAssigned = false
		deps.prefs.getOrCreateFn = func(ctx context.Context, companyID, userID string) (*preference.Preference, error) {
			return &preference.Preference{ID: uuid.New(), InApp: preference.DefaultChannelPrefs(), Email: prefs}, nil
		}

		res, err := deps.dispatcher.Notify(ctx, companyID, basicInput(userID))

		assert.NoError(t, err)
		assert.True(t, res.InApp)
		assert.False(t, res.Email)
		assert.Empty(t, deps.sender.sent)
	})

	t.Run("missing email content skips the channel", func(t *testing.T) {
		deps := setupDispatcherTest(t, noon())

		in := basicInput(userID)
		in.Email = nil

		res, err := deps.dispatcher.Notify(ctx, companyID, in)

		assert.NoError(t, err)
		assert.True(t, res.InApp)
		assert.False(t, res.Email)
		assert.Empty(t, deps.emails.entries)
	})

	t.Run("missing address skips the send and the audit row", func(t *testing.T) {
		deps := setupDispatcherTest(t, noon())

		in := basicInput(userID)
		in.Recipient.Email = ""

		res, err := deps.dispatcher.Notify(ctx, companyID, in)

		assert.NoError(t, err)
		assert.True(t, res.InApp)
		assert.False(t, res.Email)
		assert.Empty(t, deps.emails.entries)
	})

	t.Run("transport failure is audited, not returned", func(t *testing.T) {
		deps := setupDispatcherTest(t, noon())

		deps.sender.sendFn = func(ctx context.Context, msg mailer.Message) error {
			return errors.New("dial tcp: connection refused")
		}

		res, err := deps.dispatcher.Notify(ctx, companyID, basicInput(userID))

		assert.NoError(t, err)
		assert.True(t, res.InApp)
		assert.False(t, res.Email)
		if assert.Len(t, deps.emails.entries, 1) {
			assert.False(t, deps.emails.entries[0].Success)
			assert.Contains(t, deps.emails.entries[0].ErrorText, "connection refused")
		}
	})

	t.Run("bad calendar attachment is audited, not returned", func(t *testing.T) {
		deps := setupDispatcherTest(t, noon())

		in := basicInput(userID)
		in.Email.Attachment = &calendar.IcsEvent{
			Summary: "", // unbuildable
			Start:   noon(),
			End:     noon().Add(time.Hour),
		}

		res, err := deps.dispatcher.Notify(ctx, companyID, in)

		assert.NoError(t, err)
		assert.False(t, res.Email)
		assert.Empty(t, deps.sender.sent)
		if assert.Len(t, deps.emails.entries, 1) {
			assert.False(t, deps.emails.entries[0].Success)
			assert.Contains(t, deps.emails.entries[0].ErrorText, "calendar attachment")
		}
	})

	t.Run("calendar attachment rides along on success", func(t *testing.T) {
		deps := setupDispatcherTest(t, noon())

		in := basicInput(userID)
		in.Email.Attachment = &calendar.IcsEvent{
			Summary: "Morning shift",
			Start:   noon(),
			End:     noon().Add(8 * time.Hour),
		}

		res, err := deps.dispatcher.Notify(ctx, companyID, in)

		assert.NoError(t, err)
		assert.True(t, res.Email)
		if assert.Len(t, deps.sender.sent, 1) && assert.NotNil(t, deps.sender.sent[0].Attachment) {
			assert.Equal(t, "text/calendar", deps.sender.sent[0].Attachment.MIME)
			assert.Contains(t, string(deps.sender.sent[0].Attachment.Content), "BEGIN:VCALENDAR")
		}
	})

	t.Run("failed insert does not block the email channel", func(t *testing.T) {
		deps := setupDispatcherTest(t, noon())

		deps.repo.createFn = func(ctx context.Context, n *notification.Notification) error {
			return errors.New("insert failed")
		}

		res, err := deps.dispatcher.Notify(ctx, companyID, basicInput(userID))

		assert.NoError(t, err)
		assert.False(t, res.InApp)
		assert.True(t, res.Email)
	})
}

func TestDispatcherQuietHours(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	userID := uuid.New().String()

	quietPrefs := func(start, end string) func(ctx context.Context, companyID, userID string) (*preference.Preference, error) {
		return func(ctx context.Context, companyID, userID string) (*preference.Preference, error) {
			return &preference.Preference{
				ID:              uuid.New(),
				InApp:           preference.DefaultChannelPrefs(),
				Email:           preference.DefaultChannelPrefs(),
				QuietHoursStart: &start,
				QuietHoursEnd:   &end,
			}, nil
		}
	}

	t.Run("email suppressed inside quiet hours, in-app unaffected", func(t *testing.T) {
		deps := setupDispatcherTest(t, time.Date(2026, 6, 10, 23, 30, 0, 0, time.UTC))
		deps.prefs.getOrCreateFn = quietPrefs("22:00", "06:00")

		res, err := deps.dispatcher.Notify(ctx, companyID, basicInput(userID))

		assert.NoError(t, err)
		assert.True(t, res.InApp)
		assert.False(t, res.Email)
		assert.Empty(t, deps.sender.sent)
		assert.Empty(t, deps.emails.entries)
	})

	t.Run("wrapping range still quiet after midnight", func(t *testing.T) {
		deps := setupDispatcherTest(t, time.Date(2026, 6, 11, 5, 59, 0, 0, time.UTC))
		deps.prefs.getOrCreateFn = quietPrefs("22:00", "06:00")

		res, err := deps.dispatcher.Notify(ctx, companyID, basicInput(userID))

		assert.NoError(t, err)
		assert.False(t, res.Email)
	})

	t.Run("outside quiet hours email goes through", func(t *testing.T) {
		deps := setupDispatcherTest(t, time.Date(2026, 6, 10, 12, 0, 0, 0, time.UTC))
		deps.prefs.getOrCreateFn = quietPrefs("22:00", "06:00")

		res, err := deps.dispatcher.Notify(ctx, companyID, basicInput(userID))

		assert.NoError(t, err)
		assert.True(t, res.Email)
	})
}

func TestDispatcherNotifyMany(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()

	t.Run("keeps going past bad recipients", func(t *testing.T) {
		deps := setupDispatcherTest(t, noon())

		recipients := []notification.Recipient{
			{UserID: uuid.New().String(), Email: "a@example.test"},
			{UserID: "broken", Email: "b@example.test"},
			{UserID: uuid.New().String(), Email: "c@example.test"},
			{UserID: uuid.New().String(), Email: "d@example.test"},
			{UserID: uuid.New().String(), Email: "e@example.test"},
		}

		in := basicInput("ignored")
		in.Kind = notification.KindSchedulePublished

		batch, err := deps.dispatcher.NotifyMany(ctx, companyID, recipients, in)

		assert.NoError(t, err)
		assert.Equal(t, 5, batch.Total)
		assert.Equal(t, 4, batch.Success)
		assert.Len(t, deps.repo.created, 4)
	})

	t.Run("one failed email transport does not stop the batch", func(t *testing.T) {
		deps := setupDispatcherTest(t, noon())

		deps.sender.sendFn = func(ctx context.Context, msg mailer.Message) error {
			if msg.To[0] == "b@example.test" {
				return errors.New("smtp: connection reset")
			}
			return nil
		}

		recipients := []notification.Recipient{
			{UserID: uuid.New().String(), Email: "a@example.test"},
			{UserID: uuid.New().String(), Email: "b@example.test"},
			{UserID: uuid.New().String(), Email: "c@example.test"},
		}

		batch, err := deps.dispatcher.NotifyMany(ctx, companyID, recipients, basicInput("ignored"))

		assert.NoError(t, err)
		assert.Equal(t, 3, batch.Total)
		// In-app still lands for everyone, so the failed email does not
		// demote the recipient to a miss.
		assert.Equal(t, 3, batch.Success)
		assert.Len(t, deps.repo.created, 3)

		// Every attempt is audited, the failed one with its transport error.
		if assert.Len(t, deps.emails.entries, 3) {
			byEmail := map[string]*mailer.EmailLog{}
			for _, e := range deps.emails.entries {
				byEmail[e.RecipientEmail] = e
			}
			assert.True(t, byEmail["a@example.test"].Success)
			assert.True(t, byEmail["c@example.test"].Success)
			if assert.NotNil(t, byEmail["b@example.test"]) {
				assert.False(t, byEmail["b@example.test"].Success)
				assert.Contains(t, byEmail["b@example.test"].ErrorText, "connection reset")
			}
		}
	})

	t.Run("unknown kind rejected up front", func(t *testing.T) {
		deps := setupDispatcherTest(t, noon())

		in := basicInput("ignored")
		in.Kind = notification.Kind("NOPE")

		_, err := deps.dispatcher.NotifyMany(ctx, companyID, []notification.Recipient{}, in)

		assert.ErrorIs(t, err, notificationerrors.ErrUnknownKind)
	})

	t.Run("fully muted recipient counts as a miss", func(t *testing.T) {
		deps := setupDispatcherTest(t, noon())

		deps.prefs.getOrCreateFn = func(ctx context.Context, companyID, userID string) (*preference.Preference, error) {
			return &preference.Preference{ID: uuid.New()}, nil
		}

		batch, err := deps.dispatcher.NotifyMany(ctx, companyID, []notification.Recipient{
			{UserID: uuid.New().String(), Email: "a@example.test"},
		}, basicInput("ignored"))

		assert.NoError(t, err)
		assert.Equal(t, 1, batch.Total)
		assert.Equal(t, 0, batch.Success)
	})
}
