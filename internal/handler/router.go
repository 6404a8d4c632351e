package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Unknowmyt1M/DIRECTTOYT/internal/middleware"
)

// Handlers groups the endpoint handlers the router mounts.
type Handlers struct {
	Probe      *ProbeHandler
	Download   *DownloadHandler
	Upload     *UploadHandler
	File       *FileHandler
	History    *HistoryHandler
	Credential *CredentialHandler
	Auth       *AuthHandler
	Health     *HealthHandler
}

// NewRouter mounts every endpoint. API keys guard the credential
// routes; the rest of the surface is browser-facing and stays open.
func NewRouter(h Handlers, apiKeys []string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.POST("/get_metadata", h.Probe.GetMetadata)
	router.POST("/get_video_info", h.Probe.GetVideoInfo)
	router.POST("/download", h.Download.Download)

	router.POST("/upload_to_drive", h.Upload.UploadToDrive)
	router.GET("/get_drive_folders", h.Upload.DriveFolders)
	router.POST("/upload_to_youtube", h.Upload.UploadToYoutube)
	router.POST("/api/upload_to_yt", h.Upload.UploadToYoutubeOriginal)

	router.GET("/download_file/*filepath", h.File.DownloadFile)
	router.GET("/history", h.History.History)

	creds := router.Group("/api/credentials")
	creds.Use(middleware.NewAPIKeyAuth(apiKeys).Middleware())
	creds.POST("", h.Credential.Upsert)
	creds.GET("/:service", h.Credential.GetByService)

	router.GET("/auth/google", h.Auth.Login)
	router.GET("/auth/google/callback", h.Auth.Callback)

	router.GET("/health", h.Health.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}
