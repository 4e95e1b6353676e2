package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aeroassist/aero/domain/entities"
	"github.com/aeroassist/aero/domain/repositories"
)

const calendarPrompt = `Extract the calendar event from this request. Today is %s.

Reply with only a JSON object, no prose, in exactly this shape:
{"title": "...", "date": "YYYY-MM-DD", "start": "HH:MM", "end": "HH:MM"}

If no end time is given, make the event one hour long.

Request: %q`

// CalendarEvent is the model-extracted event, validated before use.
type CalendarEvent struct {
	Title string `json:"title"`
	Date  string `json:"date"`
	Start string `json:"start"`
	End   string `json:"end"`
}

// Calendar extracts an event from the utterance and hands it to the desktop
// calendar as an .ics file.
type Calendar struct {
	model  repositories.LanguageModel
	runner CommandRunner
	dir    string
	now    func() time.Time
	logger *zap.Logger
}

var _ repositories.Handler = (*Calendar)(nil)

// NewCalendar creates the calendar handler. Files land in dir; empty means
// the system temp directory.
func NewCalendar(model repositories.LanguageModel, runner CommandRunner, dir string, logger *zap.Logger) *Calendar {
	if dir == "" {
		dir = os.TempDir()
	}
	return &Calendar{model: model, runner: runner, dir: dir, now: time.Now, logger: logger}
}

func (h *Calendar) Category() entities.IntentCategory { return entities.CategoryCalendar }

func (h *Calendar) Handle(ctx context.Context, utterance string) (*string, error) {
	raw, err := h.model.Complete(ctx, fmt.Sprintf(calendarPrompt, h.now().Format("2006-01-02"), utterance))
	if err != nil {
		return nil, fmt.Errorf("calendar: extract event: %w", err)
	}

	event, err := ParseCalendarEvent(raw)
	if err != nil {
		h.logger.Warn("Event extraction unusable", zap.String("raw", raw), zap.Error(err))
		response := "I couldn't work out the event details. Try naming the title, date and time."
		return &response, nil
	}

	path := filepath.Join(h.dir, fmt.Sprintf("aero_event_%s.ics", time.Now().Format("20060102_150405")))
	if err := os.WriteFile(path, []byte(BuildICS(event, time.Now(), uuid.NewString())), 0o644); err != nil {
		return nil, fmt.Errorf("calendar: write %s: %w", path, err)
	}

	if err := openPath(ctx, h.runner, path); err != nil {
		h.logger.Warn("Could not open calendar file", zap.String("path", path), zap.Error(err))
	}

	response := fmt.Sprintf("I've added %s on %s at %s to your calendar.", event.Title, event.Date, event.Start)
	return &response, nil
}

// ParseCalendarEvent parses and validates the model's JSON reply. Models wrap
// JSON in code fences often enough that we strip them first.
func ParseCalendarEvent(raw string) (CalendarEvent, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var event CalendarEvent
	if err := json.Unmarshal([]byte(cleaned), &event); err != nil {
		return CalendarEvent{}, fmt.Errorf("calendar: decode event: %w", err)
	}
	if strings.TrimSpace(event.Title) == "" {
		return CalendarEvent{}, fmt.Errorf("calendar: event has no title")
	}
	if _, err := time.Parse("2006-01-02", event.Date); err != nil {
		return CalendarEvent{}, fmt.Errorf("calendar: bad date %q: %w", event.Date, err)
	}
	start, err := time.Parse("15:04", event.Start)
	if err != nil {
		return CalendarEvent{}, fmt.Errorf("calendar: bad start time %q: %w", event.Start, err)
	}
	if event.End == "" {
		event.End = start.Add(time.Hour).Format("15:04")
	} else if _, err := time.Parse("15:04", event.End); err != nil {
		return CalendarEvent{}, fmt.Errorf("calendar: bad end time %q: %w", event.End, err)
	}
	return event, nil
}

// BuildICS renders the event as a minimal iCalendar document with local
// floating times.
func BuildICS(event CalendarEvent, stamp time.Time, uid string) string {
	date := strings.ReplaceAll(event.Date, "-", "")
	start := strings.ReplaceAll(event.Start, ":", "") + "00"
	end := strings.ReplaceAll(event.End, ":", "") + "00"

	var sb strings.Builder
	sb.WriteString("BEGIN:VCALENDAR\r\n")
	sb.WriteString("VERSION:2.0\r\n")
	sb.WriteString("PRODID:-//AERO//Voice Assistant//EN\r\n")
	sb.WriteString("BEGIN:VEVENT\r\n")
	fmt.Fprintf(&sb, "UID:%s\r\n", uid)
	fmt.Fprintf(&sb, "DTSTAMP:%s\r\n", stamp.UTC().Format("20060102T150405Z"))
	fmt.Fprintf(&sb, "DTSTART:%sT%s\r\n", date, start)
	fmt.Fprintf(&sb, "DTEND:%sT%s\r\n", date, end)
	fmt.Fprintf(&sb, "SUMMARY:%s\r\n", escapeICSText(event.Title))
	sb.WriteString("END:VEVENT\r\n")
	sb.WriteString("END:VCALENDAR\r\n")
	return sb.String()
}

func escapeICSText(text string) string {
	replacer := strings.NewReplacer("\\", "\\\\", ";", "\\;", ",", "\\,", "\n", "\\n")
	return replacer.Replace(text)
}
