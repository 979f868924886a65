// Package paygate creates payment intents with the payment gateway.
//
// The client computes the minor-unit amount and passes it through: it does
// not reject zero or negative prices and sends no idempotency key, so a
// retried request creates a second intent.
package paygate

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"go.uber.org/zap"
)

// DefaultCurrency is the fixed currency intents are created in.
const DefaultCurrency = "usd"

// ErrGateway wraps every failure reported by the gateway.
var ErrGateway = errors.New("payment gateway error")

// Intent is the part of a created payment intent the client needs.
type Intent struct {
	ID           string `json:"intentId"`
	ClientSecret string `json:"clientSecret"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
}

// Gateway creates payment intents.
type Gateway interface {
	CreateIntent(ctx context.Context, price float64) (Intent, error)
}

// MinorUnits converts a major-unit price to the gateway's integer amount
// (price × 100), rounded to the nearest unit so 19.99 becomes 1999.
func MinorUnits(price float64) int64 {
	return int64(math.Round(price * 100))
}

// Stripe is the Gateway backed by the Stripe API.
type Stripe struct {
	api      *client.API
	currency string
	log      *zap.Logger
}

// NewStripe builds a Stripe gateway. backends may be nil for the live API;
// tests pass backends pointing at a local server.
func NewStripe(secretKey, currency string, backends *stripe.Backends, logger *zap.Logger) *Stripe {
	if currency == "" {
		currency = DefaultCurrency
	}
	return &Stripe{
		api:      client.New(secretKey, backends),
		currency: strings.ToLower(currency),
		log:      logger,
	}
}

// CreateIntent requests a card payment intent for price in the configured
// currency.
func (s *Stripe) CreateIntent(ctx context.Context, price float64) (Intent, error) {
	amount := MinorUnits(price)
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amount),
		Currency:           stripe.String(s.currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx

	pi, err := s.api.PaymentIntents.New(params)
	if err != nil {
		s.log.Warn("payment intent creation failed",
			zap.Int64("amount", amount),
			zap.String("currency", s.currency),
			zap.Error(err))
		return Intent{}, fmt.Errorf("%w: %v", ErrGateway, err)
	}

	s.log.Info("payment intent created",
		zap.String("intent_id", pi.ID),
		zap.Int64("amount", pi.Amount),
		zap.String("currency", string(pi.Currency)))

	return Intent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Amount:       pi.Amount,
		Currency:     string(pi.Currency),
	}, nil
}
