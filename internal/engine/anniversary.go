package engine

import (
	"bytes"
	"fmt"
	"log/slog"
	"time"

	"github.com/emersion/go-ical"
	"github.com/tartampluch/go-age/internal/calendar"
	"github.com/tartampluch/go-age/internal/config"
)

// Anniversary is a named date whose yearly recurrences are exported.
type Anniversary struct {
	UID  string
	Name string
	Date calendar.Date
}

// NewAnniversary builds an Anniversary with a deterministic UID.
func NewAnniversary(name string, date calendar.Date) Anniversary {
	return Anniversary{UID: contactUID(name, date), Name: name, Date: date}
}

// CalendarBuilder renders anniversaries as an iCalendar document.
type CalendarBuilder struct {
	Clock Clock

	// Reminder is an ISO8601 duration (e.g. "-P1D"); empty means no VALARM.
	Reminder string

	// FormatSummary allows the caller to inject localized strings into the logic layer.
	// age is the number of years completed on the event date.
	FormatSummary func(name string, age int) string
}

// Build generates one all-day event per anniversary for the previous, the
// current and the next year, never before the anniversary's own year.
//
// DTSTAMP is the reference day at midnight UTC, so the content of an export
// only changes when the day does.
func (b *CalendarBuilder) Build(items []Anniversary) ([]byte, error) {
	today := calendar.Today(b.Clock)

	dtStampProp := ical.NewProp(config.PropDTStamp)
	dtStampProp.SetDateTime(today.Time())

	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	for _, item := range items {
		for _, e := range b.events(item, today) {
			e.Props.Set(dtStampProp)
			cal.Children = append(cal.Children, e.Component)
		}
	}

	if len(cal.Children) == 0 {
		// A valid, empty VCALENDAR keeps clients from flagging the feed as broken.
		return []byte(config.StubVCalendar), nil
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}

	slog.Debug(config.MsgCalendarBuilt,
		config.LogKeyComponent, config.CompEngine,
		config.LogKeySizeBytes, buf.Len())
	return buf.Bytes(), nil
}

// events creates the yearly occurrences of item around today.
func (b *CalendarBuilder) events(item Anniversary, today calendar.Date) []*ical.Event {
	var events []*ical.Event

	for y := today.Year - config.AnniversarySpan; y <= today.Year+config.AnniversarySpan; y++ {
		if y < item.Date.Year {
			continue
		}
		age := y - item.Date.Year

		event := ical.NewEvent()
		event.Props.SetText(config.PropUID, fmt.Sprintf(config.FormatUID, item.UID, y, config.ICalDomain))

		summary := b.summary(item.Name, age)
		event.Props.SetText(config.PropSummary, summary)

		// Feb 29th falls on March 1st in common years, as time.Date normalizes it.
		eventDate := time.Date(y, item.Date.Month, item.Date.Day, 0, 0, 0, 0, time.UTC)
		dtStartProp := ical.NewProp(config.PropDTStart)
		dtStartProp.SetDate(eventDate)
		event.Props.Set(dtStartProp)

		if b.Reminder != "" {
			addAlarm(event, b.Reminder, summary)
		}
		events = append(events, event)
	}
	return events
}

func (b *CalendarBuilder) summary(name string, age int) string {
	if b.FormatSummary != nil {
		return b.FormatSummary(name, age)
	}
	if age == 0 {
		return fmt.Sprintf(config.FallbackSummaryZero, name)
	}
	return fmt.Sprintf(config.FallbackSummary, name, age)
}

// addAlarm appends a DISPLAY alarm (notification) to the event.
func addAlarm(event *ical.Event, trigger, description string) {
	alarm := ical.NewComponent(config.ICalComponent)
	alarm.Props.SetText(config.PropAction, config.ICalAction)
	alarm.Props.SetText(config.PropDescription, description)

	// Set trigger manually to avoid "VALUE=TEXT" param
	triggerProp := ical.NewProp(config.PropTrigger)
	triggerProp.Value = trigger
	alarm.Props.Set(triggerProp)

	event.Children = append(event.Children, alarm)
}
