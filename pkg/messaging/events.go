package messaging

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event types
const (
	// Timecard events
	EventTimecardHoursAdded = "timecard.hours.added"

	// Audit events
	EventAuditMissingTimecards = "timecard.audit.missing"
)

// Exchange names
const (
	ExchangeTimecardEvents = "timecard.events"
)

// Event is the base event structure
type Event struct {
	ID            string          `json:"id"`
	Type          string          `json:"type"`
	Source        string          `json:"source"`
	Timestamp     time.Time       `json:"timestamp"`
	CorrelationID string          `json:"correlation_id"`
	Data          json.RawMessage `json:"data"`
}

// NewEvent creates a new event with the given type and data
func NewEvent(eventType, source, correlationID string, data interface{}) (*Event, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Event{
		ID:            GenerateEventID(),
		Type:          eventType,
		Source:        source,
		Timestamp:     time.Now().UTC(),
		CorrelationID: correlationID,
		Data:          dataBytes,
	}, nil
}

// UnmarshalData unmarshals the event data into the provided struct
func (e *Event) UnmarshalData(v interface{}) error {
	return json.Unmarshal(e.Data, v)
}

// Timecard Events

// TimecardHoursAddedEvent is published when hours are recorded against a
// timecard line item.
type TimecardHoursAddedEvent struct {
	TimecardID  int64     `json:"timecard_id"`
	UserID      int64     `json:"user_id"`
	Username    string    `json:"username"`
	ProjectID   int64     `json:"project_id"`
	ProjectName string    `json:"project_name"`
	HoursAdded  string    `json:"hours_added"`
	TotalHours  string    `json:"total_hours"`
	LineItemNew bool      `json:"line_item_new"`
	PeriodStart time.Time `json:"period_start"`
	PeriodEnd   time.Time `json:"period_end"`
}

// AuditMissingTimecardsEvent is published when a reporting period audit finds
// current employees without a submitted timecard.
type AuditMissingTimecardsEvent struct {
	PeriodStart  time.Time `json:"period_start"`
	MissingCount int       `json:"missing_count"`
	Usernames    []string  `json:"usernames"`
}

// GenerateEventID generates a unique event ID
func GenerateEventID() string {
	return uuid.New().String()
}
