package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/jonylazarte/ecommerce-page/internal/app"
	"github.com/jonylazarte/ecommerce-page/internal/model"
	"github.com/jonylazarte/ecommerce-page/internal/service"
)

type MercadoPagoCredentials struct {
	AccessToken string `json:"access_token"`
	BaseURL     string `json:"base_url"`
}

type MercadoPago struct {
	cfg      app.Config
	settings service.SettingsService
	client   *http.Client
}

func NewMercadoPago(cfg app.Config, settings service.SettingsService) *MercadoPago {
	return &MercadoPago{
		cfg:      cfg,
		settings: settings,
		client:   &http.Client{Timeout: 15 * time.Second},
	}
}

func (m *MercadoPago) credentials(ctx context.Context) MercadoPagoCredentials {
	creds := MercadoPagoCredentials{
		AccessToken: m.cfg.MercadoPagoToken,
		BaseURL:     m.cfg.MercadoPagoBaseURL,
	}
	var stored MercadoPagoCredentials
	if err := m.settings.Section(ctx, "mercadopago", &stored); err == nil {
		if stored.AccessToken != "" {
			creds.AccessToken = stored.AccessToken
		}
		if stored.BaseURL != "" {
			creds.BaseURL = stored.BaseURL
		}
	}
	return creds
}

type preferenceItem struct {
	Title     string  `json:"title"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

type preferenceRequest struct {
	Items             []preferenceItem `json:"items"`
	ExternalReference string           `json:"external_reference"`
	NotificationURL   string           `json:"notification_url,omitempty"`
	BackURLs          struct {
		Success string `json:"success"`
		Failure string `json:"failure"`
	} `json:"back_urls"`
}

// Preference is the created checkout preference the client is redirected to.
type Preference struct {
	ID        string `json:"id"`
	InitPoint string `json:"init_point"`
}

// CreatePreference opens a checkout preference carrying the order id as the
// external reference so the webhook can locate the order.
func (m *MercadoPago) CreatePreference(ctx context.Context, order *model.Order) (*Preference, error) {
	creds := m.credentials(ctx)
	if creds.AccessToken == "" {
		return nil, ErrNotConfigured
	}

	reqBody := preferenceRequest{
		ExternalReference: order.ID,
		NotificationURL:   m.cfg.BaseURL + "/api/payments/mercadopago/webhook",
	}
	reqBody.BackURLs.Success = m.cfg.BaseURL + "/checkout/success"
	reqBody.BackURLs.Failure = m.cfg.BaseURL + "/checkout"
	for _, item := range order.Items {
		price, _ := item.Price.Float64()
		reqBody.Items = append(reqBody.Items, preferenceItem{
			Title:     item.ProductName,
			Quantity:  item.Quantity,
			UnitPrice: price,
		})
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		creds.BaseURL+"/checkout/preferences", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+creds.AccessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("%w: preference request returned %s", ErrUpstream, resp.Status)
	}

	pref := &Preference{}
	if err := json.NewDecoder(resp.Body).Decode(pref); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return pref, nil
}

// Payment is the slice of the payment resource the webhook acts on.
type Payment struct {
	ID                int64  `json:"id"`
	Status            string `json:"status"`
	ExternalReference string `json:"external_reference"`
}

// Approved reports whether MercadoPago itself considers the payment settled.
func (p *Payment) Approved() bool {
	return p.Status == "approved"
}

// GetPayment re-fetches a payment by id before the webhook trusts it.
func (m *MercadoPago) GetPayment(ctx context.Context, paymentID string) (*Payment, error) {
	creds := m.credentials(ctx)
	if creds.AccessToken == "" {
		return nil, ErrNotConfigured
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		creds.BaseURL+"/v1/payments/"+url.PathEscape(paymentID), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+creds.AccessToken)

	resp, err := m.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: payment lookup returned %s", ErrUpstream, resp.Status)
	}

	payment := &Payment{}
	if err := json.NewDecoder(resp.Body).Decode(payment); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return payment, nil
}
