package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Status is the lifecycle state of an order or a debt-capacity request.
// It carries a stable catalog id (persisted) and a display name (rendered).
type Status uint8

const (
	StatusUnknown Status = iota
	StatusPending
	StatusApproved
	StatusRejected
	StatusProcessing
	StatusCompleted
	StatusCancelled
	StatusManualReview
)

var statusIDs = [...]string{
	StatusPending:      "550e8400-e29b-41d4-a716-446655440001",
	StatusApproved:     "550e8400-e29b-41d4-a716-446655440002",
	StatusRejected:     "550e8400-e29b-41d4-a716-446655440003",
	StatusProcessing:   "550e8400-e29b-41d4-a716-446655440004",
	StatusCompleted:    "550e8400-e29b-41d4-a716-446655440005",
	StatusCancelled:    "550e8400-e29b-41d4-a716-446655440006",
	StatusManualReview: "550e8400-e29b-41d4-a716-446655440007",
}

var statusNames = [...]string{
	StatusPending:      "PENDING",
	StatusApproved:     "APPROVED",
	StatusRejected:     "REJECTED",
	StatusProcessing:   "PROCESSING",
	StatusCompleted:    "COMPLETED",
	StatusCancelled:    "CANCELLED",
	StatusManualReview: "MANUAL_REVIEW",
}

// Statuses lists every known status in catalog order.
func Statuses() []Status {
	return []Status{
		StatusPending, StatusApproved, StatusRejected, StatusProcessing,
		StatusCompleted, StatusCancelled, StatusManualReview,
	}
}

// ID returns the stable catalog identifier, or "" for StatusUnknown.
func (s Status) ID() string {
	if !s.Valid() {
		return ""
	}
	return statusIDs[s]
}

// Name returns the display name, or "UNKNOWN" for StatusUnknown.
func (s Status) Name() string {
	if !s.Valid() {
		return "UNKNOWN"
	}
	return statusNames[s]
}

func (s Status) String() string {
	return s.Name()
}

func (s Status) Valid() bool {
	return s > StatusUnknown && s <= StatusManualReview
}

func StatusFromID(id string) (Status, bool) {
	for _, s := range Statuses() {
		if statusIDs[s] == id {
			return s, true
		}
	}
	return StatusUnknown, false
}

func StatusFromName(name string) (Status, bool) {
	for _, s := range Statuses() {
		if statusNames[s] == name {
			return s, true
		}
	}
	return StatusUnknown, false
}

// Scan reads a status catalog id from the database.
func (s *Status) Scan(src any) error {
	var id string
	switch v := src.(type) {
	case string:
		id = v
	case []byte:
		id = string(v)
	default:
		return fmt.Errorf("status: unsupported scan type %T", src)
	}

	status, ok := StatusFromID(id)
	if !ok {
		return fmt.Errorf("status: unknown id %q", id)
	}
	*s = status
	return nil
}

// Value persists the status as its catalog id.
func (s Status) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("status: cannot persist %d", uint8(s))
	}
	return s.ID(), nil
}

func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Name())
}

func (s *Status) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	status, ok := StatusFromName(name)
	if !ok {
		return fmt.Errorf("status: unknown name %q", name)
	}
	*s = status
	return nil
}
