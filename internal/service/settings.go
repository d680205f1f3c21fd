package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jonylazarte/ecommerce-page/internal/repository/settings"
)

// SettingsService stores admin-edited configuration sections (stripe, paypal,
// mercadopago, email, bank) as JSON values. Payment adapters consult these at
// runtime and fall back to environment configuration when a section is absent.
type SettingsService interface {
	Save(ctx context.Context, sections map[string]json.RawMessage) error
	All(ctx context.Context) (map[string]json.RawMessage, error)
	// Section unmarshals one stored section into v. Returns
	// common.ErrNotFound when the key was never saved.
	Section(ctx context.Context, key string, v any) error
}

type settingsService struct {
	settings settings.Repository
}

func NewSettingsService(r settings.Repository) SettingsService {
	return &settingsService{settings: r}
}

func (s *settingsService) Save(ctx context.Context, sections map[string]json.RawMessage) error {
	for key, value := range sections {
		if err := s.settings.Upsert(ctx, key, string(value)); err != nil {
			return fmt.Errorf("failed to save setting %s: %w", key, err)
		}
	}
	return nil
}

func (s *settingsService) All(ctx context.Context) (map[string]json.RawMessage, error) {
	stored, err := s.settings.All(ctx)
	if err != nil {
		return nil, err
	}
	result := make(map[string]json.RawMessage, len(stored))
	for key, value := range stored {
		result[key] = json.RawMessage(value)
	}
	return result, nil
}

func (s *settingsService) Section(ctx context.Context, key string, v any) error {
	value, err := s.settings.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(value), v); err != nil {
		return fmt.Errorf("invalid setting %s: %w", key, err)
	}
	return nil
}
