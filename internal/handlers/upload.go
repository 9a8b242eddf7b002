package handlers

import (
	"net/http"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"message-hub/internal/models"
)

// FileSubmitter turns a stored upload into a broadcast file event.
type FileSubmitter interface {
	SubmitFile(username string, info models.FileInfo) (models.Event, error)
}

// UploadHandler receives multipart uploads, stores them under a generated
// name and feeds the resulting file event into the hub.
type UploadHandler struct {
	submitter FileSubmitter
	dir       string
}

// NewUploadHandler builds an UploadHandler writing into dir.
func NewUploadHandler(submitter FileSubmitter, dir string) *UploadHandler {
	return &UploadHandler{submitter: submitter, dir: dir}
}

// Upload handles POST /upload. A request without a file part is a client
// error; the sender name is taken as declared, unverified.
func (h *UploadHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file uploaded"})
		return
	}

	storedName := uuid.NewString() + filepath.Ext(fileHeader.Filename)
	dst := filepath.Join(h.dir, storedName)
	if err := c.SaveUploadedFile(fileHeader, dst); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store file"})
		return
	}

	mime := fileHeader.Header.Get("Content-Type")
	if detected, err := mimetype.DetectFile(dst); err == nil {
		mime = detected.String()
	}

	username := c.PostForm("username")
	if username == "" {
		username = "anonymous"
	}

	event, err := h.submitter.SubmitFile(username, models.FileInfo{
		StoredName:   storedName,
		OriginalName: fileHeader.Filename,
		Path:         "/uploads/" + storedName,
		Size:         fileHeader.Size,
		MimeType:     mime,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record file"})
		return
	}

	c.JSON(http.StatusCreated, event)
}
