package handler

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Unknowmyt1M/DIRECTTOYT/internal/auth"
)

const stateCookie = "oauth_state"

// AuthHandler runs the Google consent flow.
type AuthHandler struct {
	svc *auth.Service
}

func NewAuthHandler(svc *auth.Service) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Login redirects to the Google consent page.
func (h *AuthHandler) Login(c *gin.Context) {
	state := randomState()
	c.SetCookie(stateCookie, state, 600, "/", "", false, true)
	c.Redirect(http.StatusFound, h.svc.AuthURL(state))
}

// Callback exchanges the authorization code and redirects home.
func (h *AuthHandler) Callback(c *gin.Context) {
	expected, err := c.Cookie(stateCookie)
	if err != nil || expected == "" || c.Query("state") != expected {
		c.Redirect(http.StatusFound, "/?auth_error=state+mismatch")
		return
	}
	c.SetCookie(stateCookie, "", -1, "/", "", false, true)

	if err := h.svc.Exchange(c.Request.Context(), c.Query("code")); err != nil {
		c.Redirect(http.StatusFound, "/?auth_error="+http.StatusText(http.StatusUnauthorized))
		return
	}

	c.Redirect(http.StatusFound, "/?auth_success=true")
}

func randomState() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return hex.EncodeToString(b)
}
