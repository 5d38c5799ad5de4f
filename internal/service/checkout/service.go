// Package checkout turns a session's cart and the checkout form into a
// confirmed order.
package checkout

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"shopswift/internal/domain"
	"shopswift/internal/logging"
	"shopswift/internal/orderevents"
)

var ErrEmptyCart = errors.New("cart is empty")

// SuccessMessage is shown to the shopper after a confirmed order.
const SuccessMessage = "Order placed successfully! Thank you for your purchase."

// Cart is the part of a cart store checkout needs. Take must read and empty
// the cart atomically.
type Cart interface {
	Snapshot() domain.CartSnapshot
	Take() domain.CartSnapshot
}

type Service struct {
	publisher orderevents.Publisher
	logger    *zap.Logger
	now       func() time.Time
	newNumber func() string
}

type Option func(*Service)

func WithLogger(l *zap.Logger) Option {
	return func(s *Service) { s.logger = l }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithOrderNumbers(fn func() string) Option {
	return func(s *Service) { s.newNumber = fn }
}

// New returns a checkout service. A nil publisher discards order events.
func New(publisher orderevents.Publisher, opts ...Option) *Service {
	if publisher == nil {
		publisher = orderevents.Nop{}
	}
	s := &Service{
		publisher: publisher,
		now:       time.Now,
		newNumber: orderNumber,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = logging.OrNop(s.logger).Named("checkout")
	return s
}

// PlaceOrder confirms the cart contents against form, empties the cart and
// announces the order. Nothing is stored; the confirmation is the only record.
// user may be nil for guest checkout.
func (s *Service) PlaceOrder(ctx context.Context, cart Cart, user *domain.User, form domain.CheckoutForm) (*domain.Confirmation, error) {
	if len(cart.Snapshot().Items) == 0 {
		return nil, ErrEmptyCart
	}

	form = trimForm(form)
	if err := validateForm(form); err != nil {
		return nil, err
	}

	// The order covers whatever the cart holds at this point, including
	// lines added while the form was being checked.
	snap := cart.Take()
	if len(snap.Items) == 0 {
		return nil, ErrEmptyCart
	}

	conf := &domain.Confirmation{
		OrderNumber: s.newNumber(),
		ItemCount:   snap.Count,
		Total:       snap.Total,
		Items:       snap.Items,
		PlacedAt:    s.now().UTC(),
	}

	if err := s.publisher.Publish(ctx, orderevents.FromConfirmation(*conf, form.Email, user)); err != nil {
		s.logger.Error("publish order event", zap.String("order", conf.OrderNumber), zap.Error(err))
	}

	s.logger.Info("order placed",
		zap.String("order", conf.OrderNumber),
		zap.Int("items", conf.ItemCount),
		zap.String("total", conf.Total.StringFixed(2)),
	)
	return conf, nil
}

func orderNumber() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "ORD-" + strings.ToUpper(id[:10])
}

func trimForm(f domain.CheckoutForm) domain.CheckoutForm {
	for _, field := range formFields(&f) {
		*field.value = strings.TrimSpace(*field.value)
	}
	return f
}

// validateForm only checks presence. Card data is never inspected.
func validateForm(f domain.CheckoutForm) error {
	errs := map[string]string{}
	for _, field := range formFields(&f) {
		if *field.value == "" {
			errs[field.name] = field.label + " is required"
		}
	}
	return domain.NewValidationError(errs)
}

type formField struct {
	name  string
	label string
	value *string
}

func formFields(f *domain.CheckoutForm) []formField {
	return []formField{
		{"firstName", "First name", &f.FirstName},
		{"lastName", "Last name", &f.LastName},
		{"email", "Email", &f.Email},
		{"phone", "Phone", &f.Phone},
		{"address", "Address", &f.Address},
		{"city", "City", &f.City},
		{"state", "State", &f.State},
		{"zipCode", "ZIP code", &f.ZipCode},
		{"cardNumber", "Card number", &f.CardNumber},
		{"expiryDate", "Expiry date", &f.ExpiryDate},
		{"cvv", "CVV", &f.CVV},
	}
}
