package events

import "time"

const SchedulePublishedTopic = "planner.schedule.lifecycle.v1"

type SchedulePublishedEvent struct {
	EventType   string    `json:"event_type"`
	ScheduleID  string    `json:"schedule_id"`
	CompanyID   string    `json:"company_id"`
	Name        string    `json:"name"`
	PeriodStart string    `json:"period_start"`
	PeriodEnd   string    `json:"period_end"`
	PublishedBy string    `json:"published_by"`
	OccurredAt  time.Time `json:"occurred_at"`
}
