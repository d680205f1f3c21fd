package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jonylazarte/ecommerce-page/internal/app"
	"github.com/jonylazarte/ecommerce-page/internal/service"
)

type PayPalCredentials struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	BaseURL      string `json:"base_url"`
}

// PayPal verifies payments by re-fetching the checkout order from the PayPal
// REST API instead of trusting the client-supplied result.
type PayPal struct {
	cfg      app.Config
	settings service.SettingsService
	client   *http.Client
}

func NewPayPal(cfg app.Config, settings service.SettingsService) *PayPal {
	return &PayPal{
		cfg:      cfg,
		settings: settings,
		client:   &http.Client{Timeout: 15 * time.Second},
	}
}

func (p *PayPal) credentials(ctx context.Context) PayPalCredentials {
	creds := PayPalCredentials{
		ClientID:     p.cfg.PayPalClientID,
		ClientSecret: p.cfg.PayPalClientSecret,
		BaseURL:      p.cfg.PayPalBaseURL,
	}
	var stored PayPalCredentials
	if err := p.settings.Section(ctx, "paypal", &stored); err == nil {
		if stored.ClientID != "" {
			creds.ClientID = stored.ClientID
		}
		if stored.ClientSecret != "" {
			creds.ClientSecret = stored.ClientSecret
		}
		if stored.BaseURL != "" {
			creds.BaseURL = stored.BaseURL
		}
	}
	return creds
}

func (p *PayPal) accessToken(ctx context.Context, creds PayPalCredentials) (string, error) {
	body := strings.NewReader(url.Values{"grant_type": {"client_credentials"}}.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, creds.BaseURL+"/v1/oauth2/token", body)
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(creds.ClientID, creds.ClientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: token request returned %s", ErrUpstream, resp.Status)
	}

	var token struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return token.AccessToken, nil
}

// PayPalOrder is the slice of the checkout order response we act on.
type PayPalOrder struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// Completed reports whether PayPal itself considers the payment captured.
func (o *PayPalOrder) Completed() bool {
	return o.Status == "COMPLETED"
}

// GetOrder re-fetches a checkout order by id.
func (p *PayPal) GetOrder(ctx context.Context, orderID string) (*PayPalOrder, error) {
	creds := p.credentials(ctx)
	if creds.ClientID == "" || creds.ClientSecret == "" {
		return nil, ErrNotConfigured
	}

	token, err := p.accessToken(ctx, creds)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		creds.BaseURL+"/v2/checkout/orders/"+url.PathEscape(orderID), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: order lookup returned %s", ErrUpstream, resp.Status)
	}

	order := &PayPalOrder{}
	if err := json.NewDecoder(resp.Body).Decode(order); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return order, nil
}
