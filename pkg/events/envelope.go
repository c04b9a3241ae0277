package events

import (
	"encoding/json"
	"time"

	"github.com/maisonvelour/storefront-backend/pkg/enums"
)

const envelopeVersion = 1

// ActorRef identifies who produced the event.
type ActorRef struct {
	UserID string `json:"userId"`
	Role   string `json:"role,omitempty"`
}

// Envelope is the transport form of an event, shared by local and remote delivery.
type Envelope struct {
	Version    int             `json:"version"`
	EventID    string          `json:"eventId"`
	Type       enums.EventType `json:"type"`
	Origin     string          `json:"origin"`
	OccurredAt time.Time       `json:"occurredAt"`
	Actor      *ActorRef       `json:"actor,omitempty"`
	Data       json.RawMessage `json:"data"`
}

// Event is a decoded envelope handed to typed subscribers.
type Event[T any] struct {
	ID         string
	Type       enums.EventType
	OccurredAt time.Time
	Actor      *ActorRef
	Data       T
}

// Topic binds an event type to its payload shape.
type Topic[T any] struct {
	Type enums.EventType
}

var (
	InventoryUpdated = Topic[InventoryUpdatedPayload]{Type: enums.EventInventoryUpdated}
	InventoryAlerts  = Topic[InventoryAlertsPayload]{Type: enums.EventInventoryAlerts}
)

// InventoryUpdatedPayload is published after an admin edits stock counts.
type InventoryUpdatedPayload struct {
	ProductID             uint `json:"productId"`
	Quantity              int  `json:"quantity"`
	StoreQuantity         int  `json:"storeQuantity"`
	PreviousQuantity      int  `json:"previousQuantity"`
	PreviousStoreQuantity int  `json:"previousStoreQuantity"`
}

// InventoryAlertsPayload summarizes one alert scan.
type InventoryAlertsPayload struct {
	GeneratedAt time.Time        `json:"generatedAt"`
	Critical    int              `json:"critical"`
	Total       int              `json:"total"`
	Items       []AlertEventItem `json:"items"`
}

// AlertEventItem is the slim per-product view carried in alert events.
type AlertEventItem struct {
	ProductID             uint    `json:"productId"`
	Name                  string  `json:"name"`
	DaysUntilStockout     int     `json:"daysUntilStockout"`
	Trend                 string  `json:"trend"`
	SalesVelocity         float64 `json:"salesVelocity"`
	RestockRecommendation int     `json:"restockRecommendation"`
}
