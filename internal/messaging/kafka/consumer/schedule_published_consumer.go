package consumer

import (
	"context"
	"encoding/json"
	"fmt"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"go-teamplanner/internal/employee"
	"go-teamplanner/internal/events"
	"go-teamplanner/internal/notification"
)

// ConsumeSchedulePublished fans a published schedule out to every active
// employee of the company. Per-recipient failures are absorbed by the
// dispatcher; the message is committed as long as the batch itself ran.
func ConsumeSchedulePublished(
	ctx context.Context,
	reader *kafkago.Reader,
	employeeRepo employee.Repository,
	dispatcher notification.Dispatcher,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.schedule_published")
	log.Info("schedule published consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("schedule published consumer stopped")
				return
			}
			log.Error("fetch schedule published message failed", zap.Error(err))
			continue
		}

		var event events.SchedulePublishedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode schedule_published event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		employees, err := employeeRepo.FindAllActiveByCompany(ctx, event.CompanyID)
		if err != nil {
			log.Error("list active employees failed",
				zap.String("company_id", event.CompanyID),
				zap.Error(err),
			)
			continue
		}

		recipients := make([]notification.Recipient, 0, len(employees))
		for _, emp := range employees {
			recipients = append(recipients, notification.Recipient{
				UserID: emp.ID.String(),
				Email:  emp.Email,
			})
		}

		message := fmt.Sprintf("Schedule %q for %s to %s has been published.",
			event.Name, event.PeriodStart, event.PeriodEnd)

		result, err := dispatcher.NotifyMany(ctx, event.CompanyID, recipients, notification.NotifyInput{
			Kind:    notification.KindSchedulePublished,
			Title:   "Schedule published",
			Message: message,
			Data: map[string]any{
				"schedule_id":  event.ScheduleID,
				"period_start": event.PeriodStart,
				"period_end":   event.PeriodEnd,
			},
			Email: &notification.EmailContent{
				Subject:  fmt.Sprintf("Schedule published: %s", event.Name),
				TextBody: message,
			},
		})
		if err != nil {
			log.Error("notify schedule published failed",
				zap.String("schedule_id", event.ScheduleID),
				zap.String("company_id", event.CompanyID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit schedule published message failed", zap.Error(err))
			continue
		}

		log.Info("schedule published notifications dispatched",
			zap.String("schedule_id", event.ScheduleID),
			zap.String("company_id", event.CompanyID),
			zap.Int("total", result.Total),
			zap.Int("success", result.Success),
		)
	}
}
