package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Unknowmyt1M/DIRECTTOYT/internal/db/models"
	"github.com/Unknowmyt1M/DIRECTTOYT/internal/db/repository"
	"github.com/Unknowmyt1M/DIRECTTOYT/internal/downloader"
	"github.com/Unknowmyt1M/DIRECTTOYT/internal/errs"
	"github.com/Unknowmyt1M/DIRECTTOYT/pkg/logger"
)

// DownloadHandler runs the acquisition pipeline and records the
// outcome.
type DownloadHandler struct {
	pipeline *downloader.Pipeline
	videos   repository.VideoRepository
}

func NewDownloadHandler(pipeline *downloader.Pipeline, videos repository.VideoRepository) *DownloadHandler {
	return &DownloadHandler{pipeline: pipeline, videos: videos}
}

type downloadRequest struct {
	URL string `json:"url"`
}

type downloadResponse struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	Filename string `json:"filename"`
	Title    string `json:"title"`
	VideoID  int64  `json:"video_id"`
}

// Download acquires the video and creates its record. The record is
// created only after the artifact is verified on disk.
func (h *DownloadHandler) Download(c *gin.Context) {
	var req downloadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request payload: "+err.Error())
		return
	}

	art, err := h.pipeline.Acquire(c.Request.Context(), req.URL)
	if err != nil {
		writeError(c, err)
		return
	}

	video := models.NewVideo(
		art.YoutubeID,
		art.Title,
		req.URL,
		art.Uploader,
		art.Thumbnail,
		art.Path,
		art.Duration,
		art.Size,
	)
	id, err := h.videos.Create(c.Request.Context(), video)
	if err != nil {
		writeError(c, errs.Wrap(errs.KindStoreUnavailable, "create video record", err))
		return
	}

	logger.Log.Info("video record created",
		zap.Int64("video_id", id),
		zap.String("filename", art.Path),
	)

	c.JSON(http.StatusOK, downloadResponse{
		Status:   "success",
		Message:  "Video downloaded successfully",
		Filename: art.Path,
		Title:    art.Title,
		VideoID:  id,
	})
}
