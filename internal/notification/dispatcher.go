package notification

import (
	"context"
	"encoding/json"
	"time"

	"go-teamplanner/internal/calendar"
	"go-teamplanner/internal/mailer"
	notificationerrors "go-teamplanner/internal/notification/errors"
	"go-teamplanner/internal/preference"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Recipient struct {
	UserID string
	Email  string
}

// EmailContent is what the caller must supply for the email channel to be
// attempted at all: a subject and at least one body representation.
type EmailContent struct {
	Subject    string
	TextBody   string
	HTMLBody   string
	Attachment *calendar.IcsEvent
}

type NotifyInput struct {
	Recipient Recipient
	Kind      Kind
	Title     string
	Message   string
	ShiftID   *string
	LeaveID   *string
	SwapID    *string
	ActionURL string
	Data      map[string]any
	Email     *EmailContent
}

type Result struct {
	InApp bool `json:"inapp"`
	Email bool `json:"email"`
}

type BatchResult struct {
	Total   int `json:"total"`
	Success int `json:"success"`
}

// Dispatcher decides channels per recipient and records outcomes. Expected
// failures (disabled preference, quiet hours, missing address, transport
// errors) come back as false results, never as errors; the only error return
// is a malformed kind or recipient, which is a caller bug.
//
//go:generate mockgen -source=dispatcher.go -destination=mock/dispatcher_mock.go -package=mock
type Dispatcher interface {
	Notify(ctx context.Context, companyID string, in NotifyInput) (Result, error)
	NotifyMany(ctx context.Context, companyID string, recipients []Recipient, in NotifyInput) (BatchResult, error)
}

type dispatcher struct {
	repo   Repository
	prefs  preference.Service
	emails mailer.LogRepository
	sender mailer.Sender
	ics    *calendar.Builder
	now    func() time.Time
	logger *zap.Logger
}

func NewDispatcher(
	repo Repository,
	prefs preference.Service,
	emails mailer.LogRepository,
	sender mailer.Sender,
	ics *calendar.Builder,
	logger ...*zap.Logger,
) Dispatcher {
	return NewDispatcherWithClock(repo, prefs, emails, sender, ics, time.Now, logger...)
}

// NewDispatcherWithClock injects the clock used for quiet-hours checks.
func NewDispatcherWithClock(
	repo Repository,
	prefs preference.Service,
	emails mailer.LogRepository,
	sender mailer.Sender,
	ics *calendar.Builder,
	now func() time.Time,
	logger ...*zap.Logger,
) Dispatcher {
	l := zap.L().Named("notification.dispatcher")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.dispatcher")
	}
	return &dispatcher{
		repo:   repo,
		prefs:  prefs,
		emails: emails,
		sender: sender,
		ics:    ics,
		now:    now,
		logger: l,
	}
}

func (d *dispatcher) Notify(ctx context.Context, companyID string, in NotifyInput) (Result, error) {
	if !in.Kind.Valid() {
		return Result{}, notificationerrors.ErrUnknownKind
	}
	recipientUUID, err := uuid.Parse(in.Recipient.UserID)
	if err != nil {
		return Result{}, notificationerrors.ErrInvalidRecipient
	}
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return Result{}, notificationerrors.ErrInvalidRecipient
	}

	p, err := d.prefs.GetOrCreate(ctx, companyID, in.Recipient.UserID)
	if err != nil {
		return Result{}, err
	}

	quiet := p.InQuietHours(d.now())

	var res Result
	// In-app ignores quiet hours; a failed insert is logged and the
	// dispatch keeps going.
	if channelEnabled(p.InApp, in.Kind) {
		res.InApp = d.createRecord(ctx, companyUUID, recipientUUID, in)
	}

	if d.shouldAttemptEmail(p, quiet, in) {
		res.Email = d.sendEmail(ctx, companyUUID, recipientUUID, in)
	}

	return res, nil
}

func (d *dispatcher) NotifyMany(ctx context.Context, companyID string, recipients []Recipient, in NotifyInput) (BatchResult, error) {
	if !in.Kind.Valid() {
		return BatchResult{}, notificationerrors.ErrUnknownKind
	}

	batch := BatchResult{Total: len(recipients)}
	for _, r := range recipients {
		perRecipient := in
		perRecipient.Recipient = r

		res, err := d.Notify(ctx, companyID, perRecipient)
		if err != nil {
			d.logger.Warn("broadcast recipient skipped",
				zap.String("recipient_id", r.UserID),
				zap.String("kind", string(in.Kind)),
				zap.Error(err),
			)
			continue
		}
		if res.InApp || res.Email {
			batch.Success++
		}
	}

	d.logger.Info("broadcast dispatched",
		zap.String("company_id", companyID),
		zap.String("kind", string(in.Kind)),
		zap.Int("total", batch.Total),
		zap.Int("success", batch.Success),
	)
	return batch, nil
}

func (d *dispatcher) createRecord(ctx context.Context, companyID, recipientID uuid.UUID, in NotifyInput) bool {
	n := &Notification{
		ID:          uuid.New(),
		CompanyID:   companyID,
		RecipientID: recipientID,
		Type:        string(in.Kind),
		Title:       in.Title,
		Message:     in.Message,
		ActionURL:   in.ActionURL,
	}
	n.ShiftID = parseOptionalID(in.ShiftID)
	n.LeaveID = parseOptionalID(in.LeaveID)
	n.SwapID = parseOptionalID(in.SwapID)

	if len(in.Data) > 0 {
		payload, err := json.Marshal(in.Data)
		if err != nil {
			d.logger.Warn("encode notification payload failed",
				zap.String("kind", string(in.Kind)),
				zap.Error(err),
			)
		} else {
			n.Payload = payload
		}
	}

	if err := d.repo.Create(ctx, n); err != nil {
		d.logger.Error("create in-app notification failed",
			zap.String("recipient_id", recipientID.String()),
			zap.String("kind", string(in.Kind)),
			zap.Error(err),
		)
		return false
	}
	return true
}

func (d *dispatcher) shouldAttemptEmail(p *preference.Preference, quiet bool, in NotifyInput) bool {
	if quiet || !channelEnabled(p.Email, in.Kind) {
		return false
	}
	if in.Email == nil || in.Email.Subject == "" {
		return false
	}
	if in.Email.TextBody == "" && in.Email.HTMLBody == "" {
		return false
	}
	// No address means no attempt, so no audit row either.
	return in.Recipient.Email != ""
}

// sendEmail attempts the send and appends an EmailLog row whatever the
// outcome. Transport errors never propagate past here.
func (d *dispatcher) sendEmail(ctx context.Context, companyID, recipientID uuid.UUID, in NotifyInput) bool {
	msg := mailer.Message{
		To:       []string{in.Recipient.Email},
		Subject:  in.Email.Subject,
		TextBody: in.Email.TextBody,
		HTMLBody: in.Email.HTMLBody,
	}

	if in.Email.Attachment != nil {
		icsBytes, err := d.ics.Build(*in.Email.Attachment)
		if err != nil {
			d.logger.Warn("build calendar attachment failed",
				zap.String("recipient_id", recipientID.String()),
				zap.Error(err),
			)
			d.appendEmailLog(ctx, companyID, recipientID, in, false, "calendar attachment: "+err.Error())
			return false
		}
		msg.Attachment = &mailer.Attachment{
			Filename: "event.ics",
			MIME:     "text/calendar",
			Content:  icsBytes,
		}
	}

	sendErr := d.sender.Send(ctx, msg)
	if sendErr != nil {
		d.appendEmailLog(ctx, companyID, recipientID, in, false, sendErr.Error())
		return false
	}

	d.appendEmailLog(ctx, companyID, recipientID, in, true, "")
	return true
}

func (d *dispatcher) appendEmailLog(ctx context.Context, companyID, recipientID uuid.UUID, in NotifyInput, success bool, errText string) {
	entry := &mailer.EmailLog{
		ID:             uuid.New(),
		CompanyID:      companyID,
		RecipientID:    recipientID,
		RecipientEmail: in.Recipient.Email,
		Subject:        in.Email.Subject,
		EmailType:      string(in.Kind),
		Success:        success,
		ErrorText:      errText,
	}
	if err := d.emails.Append(ctx, entry); err != nil {
		d.logger.Error("append email log failed",
			zap.String("recipient_id", recipientID.String()),
			zap.Error(err),
		)
	}
}

func parseOptionalID(v *string) *uuid.UUID {
	if v == nil || *v == "" {
		return nil
	}
	id, err := uuid.Parse(*v)
	if err != nil {
		return nil
	}
	return &id
}
