package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Unknowmyt1M/DIRECTTOYT/internal/db"
	"github.com/Unknowmyt1M/DIRECTTOYT/internal/db/repository"
	"github.com/Unknowmyt1M/DIRECTTOYT/internal/errs"
)

// CredentialHandler manages stored API credential pairs.
type CredentialHandler struct {
	creds repository.APICredentialRepository
}

func NewCredentialHandler(creds repository.APICredentialRepository) *CredentialHandler {
	return &CredentialHandler{creds: creds}
}

type credentialRequest struct {
	ServiceName  string `json:"service_name"`
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
}

// Upsert stores or replaces the credential pair for a service.
func (h *CredentialHandler) Upsert(c *gin.Context) {
	var req credentialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request payload: "+err.Error())
		return
	}
	if req.ServiceName == "" {
		badRequest(c, "service_name is required")
		return
	}
	if req.ClientID == "" || req.ClientSecret == "" {
		badRequest(c, "client_id and client_secret are required")
		return
	}

	if err := h.creds.Upsert(c.Request.Context(), req.ServiceName, req.ClientID, req.ClientSecret); err != nil {
		writeError(c, errs.Wrap(errs.KindStoreUnavailable, "save credential", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// GetByService returns the stored credential for a service. The secret
// never leaves the store through this endpoint.
func (h *CredentialHandler) GetByService(c *gin.Context) {
	service := c.Param("service")

	cred, err := h.creds.GetByService(c.Request.Context(), service)
	if err != nil {
		if db.IsNotFound(err) {
			writeError(c, errs.NotFound("credential not found for service "+service))
			return
		}
		writeError(c, errs.Wrap(errs.KindStoreUnavailable, "load credential", err))
		return
	}

	c.JSON(http.StatusOK, cred)
}
