package notify

import (
	"encoding/json"
	"fmt"
	"time"
)

// DefaultDuration is how long an auto-closing notification stays visible.
const DefaultDuration = 5 * time.Second

type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindInfo    Kind = "info"
	KindWarning Kind = "warning"
)

type ActionKind string

const (
	ActionViewCart        ActionKind = "view-cart"
	ActionViewAppointment ActionKind = "view-appointment"
	ActionTrackOrder      ActionKind = "track-order"
)

// Action is a button offered with a notification. The front-end decides
// what to do for each Kind; Payload carries the id it needs, if any.
type Action struct {
	Label   string     `json:"label"`
	Kind    ActionKind `json:"kind"`
	Payload string     `json:"payload,omitempty"`
}

type Notification struct {
	ID        uint64        `json:"id"`
	Kind      Kind          `json:"kind"`
	Title     string        `json:"title"`
	Message   string        `json:"message"`
	Action    *Action       `json:"action,omitempty"`
	AutoClose bool          `json:"autoClose"`
	Duration  time.Duration `json:"-"`
	CreatedAt time.Time     `json:"createdAt"`
}

// MarshalJSON reports Duration in milliseconds, which is what browsers schedule with.
func (n Notification) MarshalJSON() ([]byte, error) {
	type plain Notification
	return json.Marshal(struct {
		plain
		DurationMs int64 `json:"durationMs"`
	}{plain: plain(n), DurationMs: n.Duration.Milliseconds()})
}

// New builds a notification with the default policy: errors stay until
// dismissed, everything else closes after DefaultDuration.
func New(kind Kind, title, message string) Notification {
	return Notification{
		Kind:      kind,
		Title:     title,
		Message:   message,
		AutoClose: kind != KindError,
		Duration:  DefaultDuration,
	}
}

func (n Notification) WithAction(label string, kind ActionKind, payload string) Notification {
	n.Action = &Action{Label: label, Kind: kind, Payload: payload}
	return n
}

func Success(title, message string) Notification { return New(KindSuccess, title, message) }
func Error(title, message string) Notification   { return New(KindError, title, message) }
func Info(title, message string) Notification    { return New(KindInfo, title, message) }
func Warning(title, message string) Notification { return New(KindWarning, title, message) }

func CartAdded(itemTitle, itemID string) Notification {
	return Success("Added to Cart", fmt.Sprintf("%s has been added to your cart.", itemTitle)).
		WithAction("View Cart", ActionViewCart, itemID)
}

func AppointmentBooked(service, date, itemID string) Notification {
	if date == "" {
		date = "your selected date"
	}
	return Success("Appointment Booked", fmt.Sprintf("Your %s appointment for %s has been confirmed.", service, date)).
		WithAction("View Details", ActionViewAppointment, itemID)
}

func OrderConfirmed(orderNumber string) Notification {
	return Success("Order Confirmed", fmt.Sprintf("Your order #%s has been confirmed and is being processed.", orderNumber)).
		WithAction("Track Order", ActionTrackOrder, orderNumber)
}
