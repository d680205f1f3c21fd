package sessions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jonylazarte/ecommerce-page/internal/common"
	"github.com/jonylazarte/ecommerce-page/internal/dbx"
	"github.com/jonylazarte/ecommerce-page/internal/model"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, session *model.Session) error {
	query :=
		`INSERT INTO sessions (token, user_id, created_at, expires_at)
		 VALUES ($1, $2, $3, $4)
		 `

	_, err := r.db.ExecContext(ctx, query,
		session.Token, session.UserID, session.CreatedAt, session.ExpiresAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Get(ctx context.Context, token string) (*model.Session, error) {
	query :=
		`SELECT token, user_id, created_at, expires_at FROM sessions
		 WHERE token = $1
		 `

	session := &model.Session{}
	err := r.db.QueryRowContext(ctx, query, token).
		Scan(&session.Token, &session.UserID, &session.CreatedAt, &session.ExpiresAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return session, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, token string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE token = $1`, token)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
