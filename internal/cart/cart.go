// Package cart implements the shopping cart as an immutable value. Every
// mutation returns a new Cart; a rejected mutation returns the receiver
// unchanged together with an error describing why.
package cart

import (
	"errors"
	"fmt"

	"github.com/bhushan0206/HeartAndHands/internal/models"
)

// MaxQuantity caps the units held by a single line.
const MaxQuantity = 999

var (
	ErrInvalidQuantity     = fmt.Errorf("quantity must be between 1 and %d", MaxQuantity)
	ErrAppointmentQuantity = fmt.Errorf("%w: appointment quantity is fixed at 1", ErrInvalidQuantity)
	ErrPaymentMethod       = errors.New("payment method not offered for this item")
	ErrUnavailableDate     = errors.New("selected date is not available")
	ErrOutOfStock          = errors.New("item is out of stock")
	ErrEmptyCart           = errors.New("cart is empty")
)

// Outcome tells the caller what an Add did, so it can pick the right notification.
type Outcome int

const (
	Added Outcome = iota + 1
	Incremented
	Booked
	Rescheduled
)

func (o Outcome) String() string {
	switch o {
	case Added:
		return "added"
	case Incremented:
		return "incremented"
	case Booked:
		return "booked"
	case Rescheduled:
		return "rescheduled"
	}
	return "unknown"
}

type Line struct {
	ItemID              string               `json:"itemId"`
	OrderType           models.OrderType     `json:"orderType"`
	Quantity            int                  `json:"quantity"`
	SelectedDate        string               `json:"selectedDate,omitempty"`
	SelectedTime        string               `json:"selectedTime,omitempty"`
	PaymentMethod       models.PaymentMethod `json:"paymentMethod"`
	SpecialInstructions string               `json:"specialInstructions,omitempty"`
}

func (l Line) IsAppointment() bool {
	return l.OrderType == models.OrderAppointment
}

// Options carries the buyer's selections for an Add.
type Options struct {
	SelectedDate        string
	SelectedTime        string
	PaymentMethod       models.PaymentMethod
	SpecialInstructions string
}

// Cart maps item ids to lines and remembers insertion order. The zero value is an empty cart.
type Cart struct {
	lines map[string]Line
	order []string
}

func New() Cart {
	return Cart{}
}

func (c Cart) clone() Cart {
	out := Cart{
		lines: make(map[string]Line, len(c.lines)+1),
		order: make([]string, len(c.order), len(c.order)+1),
	}
	for k, v := range c.lines {
		out.lines[k] = v
	}
	copy(out.order, c.order)
	return out
}

func (c Cart) Len() int { return len(c.order) }

func (c Cart) IsEmpty() bool { return len(c.order) == 0 }

// Line returns the line for itemID, if present.
func (c Cart) Line(itemID string) (Line, bool) {
	l, ok := c.lines[itemID]
	return l, ok
}

// Lines returns the lines in the order they were first added.
func (c Cart) Lines() []Line {
	out := make([]Line, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.lines[id])
	}
	return out
}

// ItemCount is the sum of all quantities, as shown on the cart badge.
func (c Cart) ItemCount() int {
	n := 0
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

// Add puts quantity units of p in the cart. A standard item already in the
// cart has its quantity increased. Appointment lines always hold exactly one
// unit; adding an appointment that is already booked replaces its date,
// time, payment method and instructions.
func (c Cart) Add(p models.Product, quantity int, opts Options) (Cart, Outcome, error) {
	if quantity < 1 || quantity > MaxQuantity {
		return c, 0, ErrInvalidQuantity
	}
	if !p.InStock {
		return c, 0, fmt.Errorf("%w: %s", ErrOutOfStock, p.ID)
	}

	method := opts.PaymentMethod
	if method == "" && len(p.PaymentOptions) > 0 {
		method = p.PaymentOptions[0]
	}
	if !p.Accepts(method) {
		return c, 0, fmt.Errorf("%w: %q for %s", ErrPaymentMethod, method, p.ID)
	}

	appointment := p.OrderType == models.OrderAppointment
	if appointment && opts.SelectedDate != "" && !p.HasDate(opts.SelectedDate) {
		return c, 0, fmt.Errorf("%w: %s for %s", ErrUnavailableDate, opts.SelectedDate, p.ID)
	}

	next := c.clone()
	existing, ok := next.lines[p.ID]

	switch {
	case ok && appointment:
		existing.SelectedDate = opts.SelectedDate
		existing.SelectedTime = opts.SelectedTime
		existing.PaymentMethod = method
		existing.SpecialInstructions = opts.SpecialInstructions
		next.lines[p.ID] = existing
		return next, Rescheduled, nil
	case ok:
		if existing.Quantity > MaxQuantity-quantity {
			return c, 0, fmt.Errorf("%w: %s already has %d", ErrInvalidQuantity, p.ID, existing.Quantity)
		}
		existing.Quantity += quantity
		next.lines[p.ID] = existing
		return next, Incremented, nil
	}

	line := Line{
		ItemID:              p.ID,
		OrderType:           p.OrderType,
		Quantity:            quantity,
		PaymentMethod:       method,
		SpecialInstructions: opts.SpecialInstructions,
	}
	outcome := Added
	if appointment {
		line.Quantity = 1
		line.SelectedDate = opts.SelectedDate
		line.SelectedTime = opts.SelectedTime
		outcome = Booked
	}
	next.lines[p.ID] = line
	next.order = append(next.order, p.ID)
	return next, outcome, nil
}

// Remove drops the line for itemID. Removing an absent item is a no-op.
func (c Cart) Remove(itemID string) Cart {
	if _, ok := c.lines[itemID]; !ok {
		return c
	}
	next := c.clone()
	delete(next.lines, itemID)
	for i, id := range next.order {
		if id == itemID {
			next.order = append(next.order[:i], next.order[i+1:]...)
			break
		}
	}
	return next
}

// UpdateQuantity sets the quantity of an existing line. Unknown items are
// ignored; quantities outside [1, MaxQuantity] and changes to appointment
// lines are rejected.
func (c Cart) UpdateQuantity(itemID string, quantity int) (Cart, error) {
	if quantity < 1 || quantity > MaxQuantity {
		return c, ErrInvalidQuantity
	}
	line, ok := c.lines[itemID]
	if !ok || line.Quantity == quantity {
		return c, nil
	}
	if line.IsAppointment() {
		return c, ErrAppointmentQuantity
	}
	next := c.clone()
	line.Quantity = quantity
	next.lines[itemID] = line
	return next, nil
}

// CashPayment reports whether any line is paid in cash.
func (c Cart) CashPayment() bool {
	for _, l := range c.lines {
		if l.PaymentMethod == models.PaymentCash {
			return true
		}
	}
	return false
}

// CheckoutLabel is the wording of the checkout button.
func (c Cart) CheckoutLabel() string {
	if c.CashPayment() {
		return "Confirm Order (Cash Payment)"
	}
	return "Proceed to Checkout"
}

// NeedsInstructions reports whether any line is a pickup, appointment or drop-off.
func (c Cart) NeedsInstructions() bool {
	for _, l := range c.lines {
		if l.OrderType != "" && l.OrderType != models.OrderStandard {
			return true
		}
	}
	return false
}
