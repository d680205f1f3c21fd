package sessions

import (
	"context"

	"github.com/jonylazarte/ecommerce-page/internal/model"
)

type Repository interface {
	Create(ctx context.Context, session *model.Session) error
	Get(ctx context.Context, token string) (*model.Session, error)
	Delete(ctx context.Context, token string) error
}
