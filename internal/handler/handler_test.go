package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Unknowmyt1M/DIRECTTOYT/internal/db"
	"github.com/Unknowmyt1M/DIRECTTOYT/internal/db/models"
	"github.com/Unknowmyt1M/DIRECTTOYT/internal/downloader"
	"github.com/Unknowmyt1M/DIRECTTOYT/internal/errs"
	"github.com/Unknowmyt1M/DIRECTTOYT/internal/extractor"
	"github.com/Unknowmyt1M/DIRECTTOYT/pkg/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
	_ = logger.Init("error", "")
}

// stubBackend returns one canned extraction for every call.
type stubBackend struct {
	info *extractor.Info
	err  error
}

func (b *stubBackend) Extract(ctx context.Context, url string, opts extractor.Options) (*extractor.Info, error) {
	return b.info, b.err
}

// fakeVideoRepo is an in-memory VideoRepository.
type fakeVideoRepo struct {
	records []*models.Video
	listErr error
}

func (r *fakeVideoRepo) Create(ctx context.Context, video *models.Video) (int64, error) {
	video.ID = int64(len(r.records) + 1)
	r.records = append(r.records, video)
	return video.ID, nil
}

func (r *fakeVideoRepo) GetByID(ctx context.Context, id int64) (*models.Video, error) {
	for _, v := range r.records {
		if v.ID == id {
			return v, nil
		}
	}
	return nil, db.ErrNotFound
}

func (r *fakeVideoRepo) ListByRecency(ctx context.Context) ([]*models.Video, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	return r.records, nil
}

func (r *fakeVideoRepo) SetDriveUploadResult(ctx context.Context, id int64, fileID string, folderID *string) error {
	return nil
}

func (r *fakeVideoRepo) SetYoutubeUploadResult(ctx context.Context, id int64, uploadID string) error {
	return nil
}

// writingRunner pretends to be the shell downloader and writes the
// output file.
type writingRunner struct{}

func (writingRunner) Run(ctx context.Context, name string, args ...string) error {
	for i, a := range args {
		if a == "-o" && i+1 < len(args) {
			return os.WriteFile(args[i+1], []byte("video bytes"), 0o644)
		}
	}
	return errors.New("no output path")
}

func postJSON(router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	data, _ := json.Marshal(body)
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestWriteErrorStatusMapping(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
		wantAction string
	}{
		{errs.InvalidURL("https://example.com"), http.StatusBadRequest, ""},
		{errs.AuthRequired("not authenticated"), http.StatusUnauthorized, ""},
		{errs.Permission("scope missing"), http.StatusForbidden, "reauth"},
		{errs.NotFound("gone"), http.StatusNotFound, ""},
		{errs.New(errs.KindStoreUnavailable, "db down"), http.StatusServiceUnavailable, ""},
		{errs.Acquisition(errors.New("boom")), http.StatusInternalServerError, ""},
		{errors.New("untyped"), http.StatusInternalServerError, ""},
	}

	for _, tt := range tests {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest("GET", "/x", nil)

		writeError(c, tt.err)

		if w.Code != tt.wantStatus {
			t.Errorf("writeError(%v) status = %d, want %d", tt.err, w.Code, tt.wantStatus)
		}
		var resp ErrorResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("invalid error envelope: %v", err)
		}
		if resp.ActionRequired != tt.wantAction {
			t.Errorf("action_required = %q, want %q", resp.ActionRequired, tt.wantAction)
		}
		if resp.Path != "/x" || resp.Status != tt.wantStatus {
			t.Errorf("envelope = %+v", resp)
		}
	}
}

func TestGetMetadataInvalidURL(t *testing.T) {
	h := NewProbeHandler(extractor.NewProbe(&stubBackend{}))
	router := gin.New()
	router.POST("/get_metadata", h.GetMetadata)

	w := postJSON(router, "/get_metadata", gin.H{"url": "https://example.com/watch?v=abc"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	var resp ErrorResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Error != string(errs.KindInvalidURL) {
		t.Errorf("error = %q, want %q", resp.Error, errs.KindInvalidURL)
	}
}

func TestGetVideoInfoSuccess(t *testing.T) {
	backend := &stubBackend{info: &extractor.Info{
		ID:       "dQw4w9WgXcQ",
		Title:    "Test Video",
		Uploader: "Test Channel",
		Duration: 212,
		Thumbnails: []extractor.Thumbnail{
			{ID: "high", URL: "http://img/high"},
		},
	}}
	h := NewProbeHandler(extractor.NewProbe(backend))
	router := gin.New()
	router.POST("/get_video_info", h.GetVideoInfo)

	w := postJSON(router, "/get_video_info", gin.H{"url": "https://www.youtube.com/watch?v=dQw4w9WgXcQ"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var info extractor.VideoInfo
	if err := json.Unmarshal(w.Body.Bytes(), &info); err != nil {
		t.Fatal(err)
	}
	if info.Title != "Test Video" || info.Thumbnail != "http://img/high" {
		t.Errorf("info = %+v", info)
	}
}

func TestDownloadCreatesRecord(t *testing.T) {
	backend := &stubBackend{info: &extractor.Info{
		ID:       "dQw4w9WgXcQ",
		Title:    "Test Video",
		Uploader: "Test Channel",
		Duration: 212,
	}}
	pipeline := downloader.New(
		downloader.Config{TempDir: t.TempDir()},
		extractor.NewProbe(backend),
		nil,
	).WithRunner(writingRunner{})
	videos := &fakeVideoRepo{}

	h := NewDownloadHandler(pipeline, videos)
	router := gin.New()
	router.POST("/download", h.Download)

	w := postJSON(router, "/download", gin.H{"url": "https://www.youtube.com/watch?v=dQw4w9WgXcQ"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var resp struct {
		Status  string `json:"status"`
		Title   string `json:"title"`
		VideoID int64  `json:"video_id"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Status != "success" || resp.VideoID != 1 {
		t.Errorf("response = %+v", resp)
	}

	if len(videos.records) != 1 {
		t.Fatalf("records = %d, want 1", len(videos.records))
	}
	rec := videos.records[0]
	if !rec.DownloadSuccess || rec.Title != "Test Video" || rec.FileSize == 0 {
		t.Errorf("record = %+v", rec)
	}
}

func TestDownloadInvalidURL(t *testing.T) {
	pipeline := downloader.New(
		downloader.Config{TempDir: t.TempDir()},
		extractor.NewProbe(&stubBackend{}),
		nil,
	).WithRunner(writingRunner{})

	h := NewDownloadHandler(pipeline, &fakeVideoRepo{})
	router := gin.New()
	router.POST("/download", h.Download)

	w := postJSON(router, "/download", gin.H{"url": "https://vimeo.com/12345"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestDownloadFileContainment(t *testing.T) {
	tempDir := t.TempDir()
	artifact := filepath.Join(tempDir, "yt_video_1700000000_abcd1234.mp4")
	if err := os.WriteFile(artifact, []byte("video bytes"), 0o644); err != nil {
		t.Fatal(err)
	}
	outside := filepath.Join(t.TempDir(), "outside.mp4")
	if err := os.WriteFile(outside, []byte("secret"), 0o644); err != nil {
		t.Fatal(err)
	}

	h := NewFileHandler(tempDir)
	router := gin.New()
	router.GET("/download_file/*filepath", h.DownloadFile)

	tests := []struct {
		name       string
		path       string
		wantStatus int
	}{
		{"artifact inside root", "/download_file" + artifact, http.StatusOK},
		{"existing file outside root", "/download_file" + outside, http.StatusNotFound},
		{"traversal out of root", "/download_file" + tempDir + "/../outside.mp4", http.StatusNotFound},
		{"root itself", "/download_file" + tempDir, http.StatusNotFound},
		{"missing file inside root", "/download_file" + tempDir + "/nope.mp4", http.StatusNotFound},
		{"system file", "/download_file/etc/passwd", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest("GET", tt.path, nil)
			router.ServeHTTP(w, req)
			if w.Code != tt.wantStatus {
				t.Errorf("GET %s status = %d, want %d", tt.path, w.Code, tt.wantStatus)
			}
		})
	}
}

func TestHistoryNewestFirst(t *testing.T) {
	now := time.Now()
	videos := &fakeVideoRepo{records: []*models.Video{
		{ID: 3, Title: "newest", CreatedAt: now},
		{ID: 2, Title: "middle", CreatedAt: now.Add(-time.Hour)},
		{ID: 1, Title: "oldest", CreatedAt: now.Add(-2 * time.Hour)},
	}}

	h := NewHistoryHandler(videos)
	router := gin.New()
	router.GET("/history", h.History)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/history", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var resp struct {
		Status string          `json:"status"`
		Videos []*models.Video `json:"videos"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Status != "success" || len(resp.Videos) != 3 {
		t.Fatalf("response = %+v", resp)
	}
	// The repository's recency order must pass through untouched.
	for i, want := range []string{"newest", "middle", "oldest"} {
		if resp.Videos[i].Title != want {
			t.Errorf("videos[%d] = %q, want %q", i, resp.Videos[i].Title, want)
		}
	}
}

func TestHistoryStoreFailure(t *testing.T) {
	videos := &fakeVideoRepo{listErr: errors.New("connection refused")}
	h := NewHistoryHandler(videos)
	router := gin.New()
	router.GET("/history", h.History)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/history", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", w.Code)
	}
}

func TestUploadValidation(t *testing.T) {
	h := NewUploadHandler(nil, nil)
	router := gin.New()
	router.POST("/upload_to_drive", h.UploadToDrive)
	router.POST("/upload_to_youtube", h.UploadToYoutube)
	router.POST("/api/upload_to_yt", h.UploadToYoutubeOriginal)

	tests := []struct {
		path string
		body gin.H
	}{
		{"/upload_to_drive", gin.H{"video_id": 1}},
		{"/upload_to_drive", gin.H{"filename": "/tmp/x.mp4"}},
		{"/upload_to_youtube", gin.H{"video_id": 1}},
		{"/upload_to_youtube", gin.H{"filename": "/tmp/x.mp4"}},
		{"/api/upload_to_yt", gin.H{"filename": "/tmp/x.mp4"}},
	}

	for _, tt := range tests {
		w := postJSON(router, tt.path, tt.body)
		if w.Code != http.StatusBadRequest {
			t.Errorf("POST %s %v status = %d, want 400", tt.path, tt.body, w.Code)
		}
	}
}
