// Package auth implements the Google OAuth consent flow. The granted
// token is stored server-side; every later Drive and YouTube call
// draws from that single stored grant.
package auth

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/Unknowmyt1M/DIRECTTOYT/internal/config"
	"github.com/Unknowmyt1M/DIRECTTOYT/internal/db/models"
	"github.com/Unknowmyt1M/DIRECTTOYT/internal/db/repository"
	"github.com/Unknowmyt1M/DIRECTTOYT/internal/errs"
	"github.com/Unknowmyt1M/DIRECTTOYT/pkg/logger"
)

// Scopes requested during consent. Drive access covers folder listing
// and uploads; the YouTube pair covers publishing. The openid triple
// identifies the account for display.
var Scopes = []string{
	"https://www.googleapis.com/auth/drive",
	"https://www.googleapis.com/auth/drive.file",
	"https://www.googleapis.com/auth/youtube",
	"https://www.googleapis.com/auth/youtube.upload",
	"openid",
	"email",
	"profile",
}

// NewOAuthConfig builds the oauth2 config shared by the consent flow
// and the API clients.
func NewOAuthConfig(cfg config.GoogleConfig) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURL:  cfg.RedirectURL,
		Scopes:       Scopes,
		Endpoint:     google.Endpoint,
	}
}

// Service runs the authorization-code flow.
type Service struct {
	cfg    *oauth2.Config
	tokens repository.TokenRepository
}

func NewService(cfg *oauth2.Config, tokens repository.TokenRepository) *Service {
	return &Service{cfg: cfg, tokens: tokens}
}

// AuthURL returns the consent page URL. Offline access and forced
// consent guarantee a refresh token comes back even on re-grants.
func (s *Service) AuthURL(state string) string {
	return s.cfg.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
	)
}

// Exchange trades the callback code for a token and persists it.
func (s *Service) Exchange(ctx context.Context, code string) error {
	if code == "" {
		return errs.New(errs.KindAuthRequired, "missing authorization code")
	}

	token, err := s.cfg.Exchange(ctx, code)
	if err != nil {
		return errs.Wrap(errs.KindAuthRequired, "code exchange failed", err)
	}

	record := &models.GoogleToken{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		TokenType:    token.TokenType,
		Expiry:       token.Expiry,
		Scopes:       Scopes,
		UpdatedAt:    time.Now(),
	}
	if err := s.tokens.Save(ctx, record); err != nil {
		return errs.Wrap(errs.KindStoreUnavailable, "save google token", err)
	}

	logger.Log.Info("google authorization stored",
		zap.Time("expiry", token.Expiry),
	)
	return nil
}
