package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Unknowmyt1M/DIRECTTOYT/internal/db"
	"github.com/Unknowmyt1M/DIRECTTOYT/internal/db/models"
)

// APICredentialRepository manages stored client credentials, keyed by
// service name.
type APICredentialRepository interface {
	// Upsert creates or replaces the credentials for a service.
	Upsert(ctx context.Context, serviceName, clientID, clientSecret string) error

	// GetByService retrieves the credentials for a service, or
	// db.ErrNotFound.
	GetByService(ctx context.Context, serviceName string) (*models.APICredential, error)
}

type apiCredentialRepository struct {
	pool *pgxpool.Pool
}

// NewAPICredentialRepository creates a new APICredentialRepository.
func NewAPICredentialRepository(pool *pgxpool.Pool) APICredentialRepository {
	return &apiCredentialRepository{pool: pool}
}

func (r *apiCredentialRepository) Upsert(ctx context.Context, serviceName, clientID, clientSecret string) error {
	query := `
		INSERT INTO api_credentials (service_name, client_id, client_secret, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (service_name) DO UPDATE
		SET client_id = EXCLUDED.client_id,
		    client_secret = EXCLUDED.client_secret,
		    updated_at = EXCLUDED.updated_at
	`

	_, err := r.pool.Exec(ctx, query, serviceName, clientID, clientSecret, time.Now())
	return db.WrapError(err, "upsert api credentials")
}

func (r *apiCredentialRepository) GetByService(ctx context.Context, serviceName string) (*models.APICredential, error) {
	query := `
		SELECT id, service_name, client_id, client_secret, updated_at
		FROM api_credentials
		WHERE service_name = $1
	`

	cred := &models.APICredential{}
	err := r.pool.QueryRow(ctx, query, serviceName).Scan(
		&cred.ID,
		&cred.ServiceName,
		&cred.ClientID,
		&cred.ClientSecret,
		&cred.UpdatedAt,
	)
	if err != nil {
		return nil, db.WrapError(err, "get api credentials")
	}

	return cred, nil
}
