package payment

import (
	"context"
	"fmt"
	"strings"

	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/client"
	"github.com/stripe/stripe-go/v78/webhook"

	"github.com/jonylazarte/ecommerce-page/internal/app"
	"github.com/jonylazarte/ecommerce-page/internal/model"
	"github.com/jonylazarte/ecommerce-page/internal/service"
)

type StripeCredentials struct {
	SecretKey     string `json:"secret_key"`
	WebhookSecret string `json:"webhook_secret"`
}

type Stripe struct {
	cfg      app.Config
	settings service.SettingsService
}

func NewStripe(cfg app.Config, settings service.SettingsService) *Stripe {
	return &Stripe{cfg: cfg, settings: settings}
}

func (s *Stripe) credentials(ctx context.Context) StripeCredentials {
	creds := StripeCredentials{
		SecretKey:     s.cfg.StripeSecretKey,
		WebhookSecret: s.cfg.StripeWebhookSecret,
	}
	var stored StripeCredentials
	if err := s.settings.Section(ctx, "stripe", &stored); err == nil {
		if stored.SecretKey != "" {
			creds.SecretKey = stored.SecretKey
		}
		if stored.WebhookSecret != "" {
			creds.WebhookSecret = stored.WebhookSecret
		}
	}
	return creds
}

// CreateIntent opens a card PaymentIntent for the order total and tags it
// with the order id so the webhook can find its way back.
func (s *Stripe) CreateIntent(ctx context.Context, order *model.Order) (clientSecret, intentID string, err error) {
	creds := s.credentials(ctx)
	if creds.SecretKey == "" {
		return "", "", ErrNotConfigured
	}

	api := &client.API{}
	api.Init(creds.SecretKey, nil)

	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(AmountCents(order.Total)),
		Currency:           stripe.String(strings.ToLower(s.cfg.Currency)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx
	params.AddMetadata("orderId", order.ID)

	intent, err := api.PaymentIntents.New(params)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return intent.ClientSecret, intent.ID, nil
}

// VerifyWebhook checks the Stripe-Signature header against the endpoint
// secret and returns the decoded event.
func (s *Stripe) VerifyWebhook(ctx context.Context, payload []byte, signature string) (stripe.Event, error) {
	creds := s.credentials(ctx)
	if creds.WebhookSecret == "" {
		return stripe.Event{}, ErrNotConfigured
	}
	return webhook.ConstructEvent(payload, signature, creds.WebhookSecret)
}
