// Package uploader moves verified local artifacts to their remote
// destinations: Google Drive for storage and YouTube for publishing.
package uploader

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/Unknowmyt1M/DIRECTTOYT/internal/db"
	"github.com/Unknowmyt1M/DIRECTTOYT/internal/db/models"
	"github.com/Unknowmyt1M/DIRECTTOYT/internal/db/repository"
	"github.com/Unknowmyt1M/DIRECTTOYT/internal/errs"
	"github.com/Unknowmyt1M/DIRECTTOYT/pkg/logger"
)

// CredentialManager hands out a usable Google token for API calls,
// refreshing and persisting it when expired. Both uploaders share one
// manager so a refresh performed for Drive is visible to YouTube.
type CredentialManager struct {
	cfg    *oauth2.Config
	tokens repository.TokenRepository
}

func NewCredentialManager(cfg *oauth2.Config, tokens repository.TokenRepository) *CredentialManager {
	return &CredentialManager{cfg: cfg, tokens: tokens}
}

// Current returns a valid access token and the scopes it was granted
// with. A missing token means the operator never completed the consent
// flow; an expired one is refreshed and the refreshed copy saved back.
func (m *CredentialManager) Current(ctx context.Context) (*oauth2.Token, []string, error) {
	stored, err := m.tokens.Load(ctx)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, nil, errs.AuthRequired("not authenticated with Google")
		}
		return nil, nil, errs.Wrap(errs.KindStoreUnavailable, "load google token", err)
	}

	token := &oauth2.Token{
		AccessToken:  stored.AccessToken,
		RefreshToken: stored.RefreshToken,
		TokenType:    stored.TokenType,
		Expiry:       stored.Expiry,
	}

	if token.Valid() {
		return token, stored.Scopes, nil
	}

	logger.Log.Info("google token expired, refreshing",
		zap.Time("expiry", stored.Expiry),
	)

	refreshed, err := m.cfg.TokenSource(ctx, token).Token()
	if err != nil {
		return nil, nil, errs.AuthRequired(fmt.Sprintf("token refresh failed: %v", err))
	}
	// A refresh response may omit the refresh token; keep the one we
	// already hold so the next refresh still works.
	if refreshed.RefreshToken == "" {
		refreshed.RefreshToken = stored.RefreshToken
	}

	if err := m.saveToken(ctx, refreshed, stored.Scopes); err != nil {
		return nil, nil, err
	}
	return refreshed, stored.Scopes, nil
}

func (m *CredentialManager) saveToken(ctx context.Context, token *oauth2.Token, scopes []string) error {
	record := &models.GoogleToken{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		TokenType:    token.TokenType,
		Expiry:       token.Expiry,
		Scopes:       scopes,
		UpdatedAt:    time.Now(),
	}
	if err := m.tokens.Save(ctx, record); err != nil {
		return errs.Wrap(errs.KindStoreUnavailable, "save refreshed google token", err)
	}
	return nil
}

// HasScope reports whether the grant includes the given scope.
func HasScope(scopes []string, want string) bool {
	for _, s := range scopes {
		if s == want {
			return true
		}
	}
	return false
}
