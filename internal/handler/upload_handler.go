package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Unknowmyt1M/DIRECTTOYT/internal/uploader"
)

// UploadHandler serves the Drive and YouTube upload endpoints.
type UploadHandler struct {
	storage   *uploader.StorageUploader
	publisher *uploader.PublishUploader
}

func NewUploadHandler(storage *uploader.StorageUploader, publisher *uploader.PublishUploader) *UploadHandler {
	return &UploadHandler{storage: storage, publisher: publisher}
}

type driveUploadRequest struct {
	Filename string  `json:"filename"`
	FolderID *string `json:"folder_id"`
	VideoID  int64   `json:"video_id"`
}

// UploadToDrive pushes the artifact to Drive and records the file id.
func (h *UploadHandler) UploadToDrive(c *gin.Context) {
	var req driveUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request payload: "+err.Error())
		return
	}
	if req.Filename == "" {
		badRequest(c, "filename is required")
		return
	}
	if req.VideoID == 0 {
		badRequest(c, "video_id is required")
		return
	}

	fileID, err := h.storage.Upload(c.Request.Context(), req.VideoID, req.Filename, req.FolderID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Video uploaded to Google Drive",
		"file_id": fileID,
	})
}

// DriveFolders lists the upload targets the grant can see.
func (h *UploadHandler) DriveFolders(c *gin.Context) {
	folders, err := h.storage.Folders(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"folders": folders})
}

type youtubeUploadRequest struct {
	Filename      string   `json:"filename"`
	VideoID       int64    `json:"video_id"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Tags          []string `json:"tags"`
	PrivacyStatus string   `json:"privacy_status"`
}

// UploadToYoutube publishes with caller-supplied listing metadata.
func (h *UploadHandler) UploadToYoutube(c *gin.Context) {
	var req youtubeUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request payload: "+err.Error())
		return
	}
	if req.Filename == "" {
		badRequest(c, "filename is required")
		return
	}
	if req.VideoID == 0 {
		badRequest(c, "video_id is required")
		return
	}

	res, err := h.publisher.Publish(c.Request.Context(), uploader.PublishRequest{
		VideoID:     req.VideoID,
		Path:        req.Filename,
		Title:       req.Title,
		Description: req.Description,
		Tags:        req.Tags,
		Privacy:     req.PrivacyStatus,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":           "success",
		"message":          "Video uploaded successfully to YouTube",
		"youtube_video_id": res.YoutubeVideoID,
		"watch_url":        res.WatchURL,
	})
}

type youtubeOriginalRequest struct {
	Filename      string `json:"filename"`
	VideoID       int64  `json:"video_id"`
	PrivacyStatus string `json:"privacy_status"`
}

// UploadToYoutubeOriginal publishes with the source video's own
// metadata, re-fetched by its stored id.
func (h *UploadHandler) UploadToYoutubeOriginal(c *gin.Context) {
	var req youtubeOriginalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request payload: "+err.Error())
		return
	}
	if req.Filename == "" {
		badRequest(c, "filename is required")
		return
	}
	if req.VideoID == 0 {
		badRequest(c, "video_id is required for upload with original metadata")
		return
	}

	res, err := h.publisher.Publish(c.Request.Context(), uploader.PublishRequest{
		VideoID:          req.VideoID,
		Path:             req.Filename,
		Privacy:          req.PrivacyStatus,
		OriginalMetadata: true,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":           "success",
		"message":          "Video uploaded to YouTube with original metadata",
		"youtube_video_id": res.YoutubeVideoID,
		"watch_url":        res.WatchURL,
	})
}
