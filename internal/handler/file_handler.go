package handler

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Unknowmyt1M/DIRECTTOYT/internal/errs"
)

// FileHandler serves downloaded artifacts back to the browser. Only
// paths inside the temp root are ever served; anything else reads as
// not found, the same as a missing file.
type FileHandler struct {
	tempDir string
}

func NewFileHandler(tempDir string) *FileHandler {
	return &FileHandler{tempDir: filepath.Clean(tempDir)}
}

// DownloadFile streams the artifact as an attachment.
func (h *FileHandler) DownloadFile(c *gin.Context) {
	requested := c.Param("filepath")

	path := filepath.Clean("/" + requested)
	if !h.contains(path) {
		writeError(c, errs.NotFound("file not found"))
		return
	}

	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		writeError(c, errs.NotFound("file not found"))
		return
	}

	c.FileAttachment(path, filepath.Base(path))
}

// contains reports whether path sits inside the temp root. The
// separator suffix stops /tmp/dir-evil matching a root of /tmp/dir.
func (h *FileHandler) contains(path string) bool {
	if path == h.tempDir {
		return false
	}
	return strings.HasPrefix(path, h.tempDir+string(os.PathSeparator))
}
