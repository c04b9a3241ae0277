package enums

import "fmt"

// EventType names the topics carried by the in-process event bus.
type EventType string

const (
	EventInventoryUpdated EventType = "inventory.updated"
	EventInventoryAlerts  EventType = "inventory.alerts"
)

var validEventTypes = []EventType{
	EventInventoryUpdated,
	EventInventoryAlerts,
}

// String implements fmt.Stringer.
func (e EventType) String() string {
	return string(e)
}

// IsValid reports whether the value is a known EventType.
func (e EventType) IsValid() bool {
	for _, candidate := range validEventTypes {
		if candidate == e {
			return true
		}
	}
	return false
}

// ParseEventType converts raw input into an EventType.
func ParseEventType(value string) (EventType, error) {
	for _, candidate := range validEventTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid event type %q", value)
}
