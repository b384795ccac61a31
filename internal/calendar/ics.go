package calendar

import (
	"errors"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"
)

// IcsEvent is the structured calendar payload derived from a shift or an
// approved leave. Building it has no side effects.
type IcsEvent struct {
	Summary     string
	Description string
	Location    string
	Start       time.Time
	End         time.Time
}

var ErrInvalidEvent = errors.New("ics event needs a summary and end after start")

// Builder serializes IcsEvents with UIDs unique across deployments:
// random component plus the configured domain suffix.
type Builder struct {
	domain string
}

func NewBuilder(domain string) *Builder {
	if domain == "" {
		domain = "teamplanner.local"
	}
	return &Builder{domain: domain}
}

func (b *Builder) Build(ev IcsEvent) ([]byte, error) {
	if ev.Summary == "" || !ev.End.After(ev.Start) {
		return nil, ErrInvalidEvent
	}

	uid := uuid.New().String() + "@" + b.domain

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodRequest)

	e := cal.AddEvent(uid)
	e.SetDtStampTime(time.Now().UTC())
	e.SetStartAt(ev.Start.UTC())
	e.SetEndAt(ev.End.UTC())
	e.SetSummary(ev.Summary)
	if ev.Description != "" {
		e.SetDescription(ev.Description)
	}
	if ev.Location != "" {
		e.SetLocation(ev.Location)
	}

	return []byte(cal.Serialize()), nil
}
