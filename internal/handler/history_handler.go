package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Unknowmyt1M/DIRECTTOYT/internal/db/repository"
	"github.com/Unknowmyt1M/DIRECTTOYT/internal/errs"
)

// HistoryHandler serves the download/upload history.
type HistoryHandler struct {
	videos repository.VideoRepository
}

func NewHistoryHandler(videos repository.VideoRepository) *HistoryHandler {
	return &HistoryHandler{videos: videos}
}

// History returns all records, newest first.
func (h *HistoryHandler) History(c *gin.Context) {
	videos, err := h.videos.ListByRecency(c.Request.Context())
	if err != nil {
		writeError(c, errs.Wrap(errs.KindStoreUnavailable, "list history", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"videos": videos,
	})
}
