package storage

import (
	"errors"
	"fmt"
	"time"
)

// Event describes one assistant reply inside a widget session. Only
// metadata is kept; the conversation text itself is never written out.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	SessionID string    `json:"session_id"`
	Page      string    `json:"page,omitempty"`
	Directive string    `json:"directive,omitempty"`
	Source    string    `json:"source,omitempty"`
	Failed    bool      `json:"failed,omitempty"`
}

// Recorder abstracts persistence of interaction events.
// LoadInteractions should return events in chronological order.
// Implementations must be safe for concurrent use.
type Recorder interface {
	AppendInteraction(event Event) error
	LoadInteractions() ([]Event, error)
}

var ErrUnknownDriver = errors.New("unknown storage driver")

const (
	DriverJSONL  = "jsonl"
	DriverSQLite = "sqlite"
	DriverNone   = "none"
)

// Open builds the recorder for driver. path is the JSONL file or the SQLite
// database depending on the driver.
func Open(driver, path string) (Recorder, error) {
	switch driver {
	case DriverJSONL, "":
		return NewFileRecorder(path)
	case DriverSQLite:
		return NewSQLiteRecorder(path)
	case DriverNone:
		return Nop{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}
}

// Nop drops every event.
type Nop struct{}

func (Nop) AppendInteraction(Event) error      { return nil }
func (Nop) LoadInteractions() ([]Event, error) { return nil, nil }
