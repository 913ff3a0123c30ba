// Package session holds the per-visitor state: one cart and one notification
// queue. Cart changes are applied by a single goroutine per session, fed
// through a channel, so a visitor's requests never race each other.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bhushan0206/HeartAndHands/internal/cart"
	"github.com/bhushan0206/HeartAndHands/internal/metrics"
	"github.com/bhushan0206/HeartAndHands/internal/models"
	"github.com/bhushan0206/HeartAndHands/internal/notify"
	"github.com/bhushan0206/HeartAndHands/internal/store"
	"github.com/shopspring/decimal"
)

var ErrClosed = errors.New("session closed")

// Catalog is the slice of the store a session needs.
type Catalog interface {
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	ProductIndex(ctx context.Context) (store.Index, error)
	RecordOrder(ctx context.Context, order models.Order) error
}

// command is one unit of work for the session goroutine.
type command struct {
	fn   func()
	done chan struct{}
}

type Session struct {
	ID string

	catalog  Catalog
	numbers  *cart.OrderNumbers
	queue    *notify.Queue
	commands chan command
	quit     chan struct{}
	stopped  chan struct{}
	once     sync.Once
	lastSeen atomic.Int64

	// cart is only touched by loop.
	cart cart.Cart
}

func newSession(id string, catalog Catalog, numbers *cart.OrderNumbers, queueOpts ...notify.Option) *Session {
	s := &Session{
		ID:       id,
		catalog:  catalog,
		numbers:  numbers,
		queue:    notify.NewQueue(queueOpts...),
		commands: make(chan command),
		quit:     make(chan struct{}),
		stopped:  make(chan struct{}),
		cart:     cart.New(),
	}
	s.touch()
	go s.loop()
	return s
}

func (s *Session) loop() {
	defer close(s.stopped)
	for {
		select {
		case cmd := <-s.commands:
			cmd.fn()
			close(cmd.done)
		case <-s.quit:
			return
		}
	}
}

// do runs fn on the session goroutine and waits for it to finish. ctx only
// bounds the wait for the goroutine to accept fn.
func (s *Session) do(ctx context.Context, fn func()) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.touch()
	done := make(chan struct{})
	select {
	case s.commands <- command{fn: fn, done: done}:
	case <-s.quit:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}

	// Once accepted, fn commits; wait for it so the caller sees its outcome.
	<-done
	return nil
}

func (s *Session) touch() {
	s.lastSeen.Store(time.Now().UnixNano())
}

func (s *Session) idleSince() time.Time {
	return time.Unix(0, s.lastSeen.Load())
}

// LineView is a cart line joined with the catalog entry it points at.
type LineView struct {
	cart.Line
	Title     string          `json:"title"`
	Creator   string          `json:"creator"`
	Image     string          `json:"image"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	LineTotal decimal.Decimal `json:"lineTotal"`
	Available bool            `json:"available"`
}

// View is the cart snapshot handed to the front-end after every call.
type View struct {
	Lines             []LineView  `json:"lines"`
	Totals            cart.Totals `json:"totals"`
	CheckoutLabel     string      `json:"checkoutLabel"`
	NeedsInstructions bool        `json:"needsInstructions"`
}

func (s *Session) view(ctx context.Context, c cart.Cart) (View, error) {
	idx, err := s.catalog.ProductIndex(ctx)
	if err != nil {
		return View{}, fmt.Errorf("failed to load catalog: %w", err)
	}
	return buildView(c, idx), nil
}

func buildView(c cart.Cart, catalog cart.Catalog) View {
	v := View{
		Lines:             make([]LineView, 0, c.Len()),
		Totals:            c.Totals(catalog),
		CheckoutLabel:     c.CheckoutLabel(),
		NeedsInstructions: c.NeedsInstructions(),
	}
	for _, l := range c.Lines() {
		lv := LineView{Line: l, UnitPrice: decimal.Zero, LineTotal: decimal.Zero}
		if p, ok := catalog.Product(l.ItemID); ok {
			lv.Title = p.Title
			lv.Creator = p.Creator
			lv.Image = p.Image
			lv.UnitPrice = p.Price
			lv.LineTotal = p.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
			lv.Available = true
		}
		v.Lines = append(v.Lines, lv)
	}
	return v
}

// snapshot reads the current cart value through the session goroutine.
func (s *Session) snapshot(ctx context.Context) (cart.Cart, error) {
	var c cart.Cart
	err := s.do(ctx, func() { c = s.cart })
	return c, err
}

func (s *Session) Cart(ctx context.Context) (View, error) {
	c, err := s.snapshot(ctx)
	if err != nil {
		return View{}, err
	}
	return s.view(ctx, c)
}

// AddItem puts a product in the cart and announces it. A rejected add
// returns the unchanged cart together with the reason.
func (s *Session) AddItem(ctx context.Context, itemID string, quantity int, opts cart.Options) (View, cart.Outcome, error) {
	p, err := s.catalog.GetProduct(ctx, itemID)
	if err != nil {
		return View{}, 0, fmt.Errorf("failed to load product %s: %w", itemID, err)
	}

	var (
		current cart.Cart
		outcome cart.Outcome
		addErr  error
	)
	if err := s.do(ctx, func() {
		var next cart.Cart
		next, outcome, addErr = s.cart.Add(*p, quantity, opts)
		s.cart = next
		current = next
	}); err != nil {
		return View{}, 0, err
	}

	if addErr != nil {
		metrics.CartMutations.WithLabelValues("add", "rejected").Inc()
		slog.Info("Cart add rejected", "session", s.ID, "item_id", itemID, "reason", addErr)
	} else {
		metrics.CartMutations.WithLabelValues("add", outcome.String()).Inc()
		switch outcome {
		case cart.Booked, cart.Rescheduled:
			line, _ := current.Line(p.ID)
			s.queue.Enqueue(notify.AppointmentBooked(p.Title, line.SelectedDate, p.ID))
		default:
			s.queue.Enqueue(notify.CartAdded(p.Title, p.ID))
		}
	}

	v, err := s.view(context.WithoutCancel(ctx), current)
	if err != nil {
		return View{}, 0, err
	}
	return v, outcome, addErr
}

func (s *Session) RemoveItem(ctx context.Context, itemID string) (View, error) {
	var current cart.Cart
	if err := s.do(ctx, func() {
		s.cart = s.cart.Remove(itemID)
		current = s.cart
	}); err != nil {
		return View{}, err
	}
	metrics.CartMutations.WithLabelValues("remove", "ok").Inc()
	return s.view(context.WithoutCancel(ctx), current)
}

// UpdateQuantity changes a line's quantity. Rejections come back as an error
// alongside the unchanged cart.
func (s *Session) UpdateQuantity(ctx context.Context, itemID string, quantity int) (View, error) {
	var (
		current   cart.Cart
		updateErr error
	)
	if err := s.do(ctx, func() {
		s.cart, updateErr = s.cart.UpdateQuantity(itemID, quantity)
		current = s.cart
	}); err != nil {
		return View{}, err
	}

	result := "ok"
	if updateErr != nil {
		result = "rejected"
	}
	metrics.CartMutations.WithLabelValues("update", result).Inc()

	v, err := s.view(context.WithoutCancel(ctx), current)
	if err != nil {
		return View{}, err
	}
	return v, updateErr
}

// Checkout confirms the cart, records the order, clears the cart and
// enqueues the confirmation. When the order cannot be recorded the cart is
// kept and an error notification is shown instead.
func (s *Session) Checkout(ctx context.Context) (cart.Confirmation, error) {
	idx, err := s.catalog.ProductIndex(ctx)
	if err != nil {
		return cart.Confirmation{}, fmt.Errorf("failed to load catalog: %w", err)
	}

	var (
		conf        cart.Confirmation
		checkoutErr error
	)
	if err := s.do(ctx, func() {
		conf, checkoutErr = cart.Checkout(s.cart, idx, s.numbers)
		if checkoutErr != nil {
			return
		}
		// The command is accepted; a late cancel must not split the commit.
		if checkoutErr = s.catalog.RecordOrder(context.WithoutCancel(ctx), conf.Order()); checkoutErr != nil {
			return
		}
		s.cart = cart.New()
	}); err != nil {
		return cart.Confirmation{}, err
	}

	switch {
	case errors.Is(checkoutErr, cart.ErrEmptyCart):
		return cart.Confirmation{}, checkoutErr
	case checkoutErr != nil:
		slog.Error("Failed to record order", "session", s.ID, "order", conf.OrderNumber, "error", checkoutErr)
		s.queue.Enqueue(notify.Error("Checkout Failed", "We could not place your order. Your cart has been kept, please try again."))
		return cart.Confirmation{}, fmt.Errorf("failed to record order: %w", checkoutErr)
	}

	payment := "online"
	if conf.CashPayment {
		payment = "cash"
	}
	metrics.Checkouts.WithLabelValues(payment).Inc()
	slog.Info("Order confirmed", "session", s.ID, "order", conf.OrderNumber, "total", conf.Totals.Total.StringFixed(2))
	s.queue.Enqueue(notify.OrderConfirmed(conf.OrderNumber))
	return conf, nil
}

func (s *Session) Notifications() []notify.Notification {
	s.touch()
	return s.queue.Visible()
}

func (s *Session) Dismiss(id uint64) {
	s.touch()
	s.queue.Dismiss(id)
}

// Notify enqueues a notification produced outside the cart flow.
func (s *Session) Notify(n notify.Notification) uint64 {
	return s.queue.Enqueue(n)
}

// Close stops the session goroutine and cancels every pending notification timer.
func (s *Session) Close() {
	s.once.Do(func() {
		close(s.quit)
		<-s.stopped
		s.queue.Close()
	})
}
