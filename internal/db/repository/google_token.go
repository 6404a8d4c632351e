package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Unknowmyt1M/DIRECTTOYT/internal/db"
	"github.com/Unknowmyt1M/DIRECTTOYT/internal/db/models"
)

// TokenRepository persists the delegated-authorization token. The
// service is single-operator, so one row holds the current token and
// refresh overwrites it in place.
type TokenRepository interface {
	// Save stores the token, replacing any existing one.
	Save(ctx context.Context, token *models.GoogleToken) error

	// Load returns the stored token, or db.ErrNotFound if the operator
	// has never signed in.
	Load(ctx context.Context) (*models.GoogleToken, error)
}

type tokenRepository struct {
	pool *pgxpool.Pool
}

// NewTokenRepository creates a new TokenRepository.
func NewTokenRepository(pool *pgxpool.Pool) TokenRepository {
	return &tokenRepository{pool: pool}
}

func (r *tokenRepository) Save(ctx context.Context, token *models.GoogleToken) error {
	query := `
		INSERT INTO google_tokens (id, access_token, refresh_token, token_type, expiry, scopes, updated_at)
		VALUES (1, $1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE
		SET access_token = EXCLUDED.access_token,
		    refresh_token = EXCLUDED.refresh_token,
		    token_type = EXCLUDED.token_type,
		    expiry = EXCLUDED.expiry,
		    scopes = EXCLUDED.scopes,
		    updated_at = EXCLUDED.updated_at
	`

	_, err := r.pool.Exec(ctx, query,
		token.AccessToken,
		token.RefreshToken,
		token.TokenType,
		token.Expiry,
		token.Scopes,
		time.Now(),
	)
	return db.WrapError(err, "save google token")
}

func (r *tokenRepository) Load(ctx context.Context) (*models.GoogleToken, error) {
	query := `
		SELECT id, access_token, refresh_token, token_type, expiry, scopes, updated_at
		FROM google_tokens
		WHERE id = 1
	`

	token := &models.GoogleToken{}
	err := r.pool.QueryRow(ctx, query).Scan(
		&token.ID,
		&token.AccessToken,
		&token.RefreshToken,
		&token.TokenType,
		&token.Expiry,
		&token.Scopes,
		&token.UpdatedAt,
	)
	if err != nil {
		return nil, db.WrapError(err, "load google token")
	}

	return token, nil
}
