package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"message-hub/internal/mocks"
	"message-hub/internal/models"
)

func setupUploadRouter(handler *UploadHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/upload", handler.Upload)
	return r
}

func multipartBody(t *testing.T, username, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if username != "" {
		require.NoError(t, writer.WriteField("username", username))
	}
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestUploadSuccess(t *testing.T) {
	submitter := new(mocks.FileSubmitterMock)
	dir := t.TempDir()
	handler := NewUploadHandler(submitter, dir)
	router := setupUploadRouter(handler)

	submitter.On("SubmitFile", "alice", mock.MatchedBy(func(info models.FileInfo) bool {
		return info.OriginalName == "notes.txt" &&
			info.Size == int64(len("hello upload")) &&
			filepath.Ext(info.StoredName) == ".txt" &&
			info.Path == "/uploads/"+info.StoredName
	})).Return(models.NewFileEvent("alice", models.FileInfo{OriginalName: "notes.txt"}), nil).Once()

	body, contentType := multipartBody(t, "alice", "notes.txt", []byte("hello upload"))
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var ev models.Event
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&ev))
	assert.Equal(t, models.EventFile, ev.Type)

	// The file body landed in the upload dir.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	submitter.AssertExpectations(t)
}

func TestUploadWithoutFileIsBadRequest(t *testing.T) {
	submitter := new(mocks.FileSubmitterMock)
	handler := NewUploadHandler(submitter, t.TempDir())
	router := setupUploadRouter(handler)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	require.NoError(t, writer.WriteField("username", "alice"))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	submitter.AssertNotCalled(t, "SubmitFile", mock.Anything, mock.Anything)
}

func TestUploadMissingUsernameDefaultsToAnonymous(t *testing.T) {
	submitter := new(mocks.FileSubmitterMock)
	handler := NewUploadHandler(submitter, t.TempDir())
	router := setupUploadRouter(handler)

	submitter.On("SubmitFile", "anonymous", mock.Anything).
		Return(models.NewFileEvent("anonymous", models.FileInfo{}), nil).Once()

	body, contentType := multipartBody(t, "", "pic.png", []byte{0x89, 'P', 'N', 'G'})
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	submitter.AssertExpectations(t)
}
