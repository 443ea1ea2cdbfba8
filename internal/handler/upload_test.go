package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cobalt/internal/domain"
	models "cobalt/internal/domain/models/upload"
	uploadSvc "cobalt/internal/domain/services/upload"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type stubUploadService struct {
	result     *uploadSvc.UploadResult
	uploadErr  error
	session    *models.UploadSession
	sessionErr error

	lastRequest *uploadSvc.UploadProjectRequest
}

func (s *stubUploadService) UploadProject(ctx context.Context, req *uploadSvc.UploadProjectRequest) (*uploadSvc.UploadResult, error) {
	s.lastRequest = req
	if s.uploadErr != nil {
		return nil, s.uploadErr
	}
	return s.result, nil
}

func (s *stubUploadService) GetSession(ctx context.Context, sessionID string) (*models.UploadSession, error) {
	if s.sessionErr != nil {
		return nil, s.sessionErr
	}
	return s.session, nil
}

func uploadMux(svc uploadSvc.UploadService) *http.ServeMux {
	h := NewUploadHandler(svc, testLogger())
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/upload/project", h.UploadProject)
	mux.HandleFunc("GET /api/upload/session/{session_id}", h.GetSession)
	return mux
}

func multipartBody(t *testing.T, fields map[string]string, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if filename != "" {
		part, err := w.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestUploadProjectHandler(t *testing.T) {
	projectID := int64(7)
	stub := &stubUploadService{
		result: &uploadSvc.UploadResult{
			Success:      true,
			SessionID:    "abc-123",
			ProjectID:    &projectID,
			UploadMethod: models.MethodParser,
			Message:      "Project 'demo' uploaded successfully using parser method",
		},
	}
	mux := uploadMux(stub)

	body, contentType := multipartBody(t, map[string]string{
		"project_name":        "demo",
		"project_description": "a demo",
	}, "demo.zip", []byte("PK\x03\x04fake"))

	req := httptest.NewRequest(http.MethodPost, "/api/upload/project", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var result uploadSvc.UploadResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.True(t, result.Success)
	assert.Equal(t, "abc-123", result.SessionID)
	assert.Equal(t, models.MethodParser, result.UploadMethod)

	require.NotNil(t, stub.lastRequest)
	assert.Equal(t, "demo", stub.lastRequest.Name)
	require.NotNil(t, stub.lastRequest.Description)
	assert.Equal(t, "a demo", *stub.lastRequest.Description)
	assert.Equal(t, "demo.zip", stub.lastRequest.Filename)
	assert.NotEmpty(t, stub.lastRequest.Payload)
}

func TestUploadProjectHandlerMissingFile(t *testing.T) {
	mux := uploadMux(&stubUploadService{})

	body, contentType := multipartBody(t, map[string]string{"project_name": "demo"}, "", nil)
	req := httptest.NewRequest(http.MethodPost, "/api/upload/project", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "No file provided")
}

func TestUploadProjectHandlerMissingName(t *testing.T) {
	mux := uploadMux(&stubUploadService{})

	body, contentType := multipartBody(t, nil, "demo.zip", []byte("x"))
	req := httptest.NewRequest(http.MethodPost, "/api/upload/project", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "project_name")
}

func TestUploadProjectHandlerErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{
			"no valid files",
			&domain.IngestionError{SessionID: "s", Err: &domain.NoValidFilesError{}},
			http.StatusBadRequest,
		},
		{
			"payload too large",
			&domain.IngestionError{SessionID: "s", Err: &domain.PayloadTooLargeError{LimitBytes: 1 << 20}},
			http.StatusRequestEntityTooLarge,
		},
		{
			"opaque failure",
			&domain.IngestionError{SessionID: "s", Err: io.ErrUnexpectedEOF},
			http.StatusInternalServerError,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux := uploadMux(&stubUploadService{uploadErr: tt.err})

			body, contentType := multipartBody(t, map[string]string{"project_name": "demo"}, "demo.zip", []byte("x"))
			req := httptest.NewRequest(http.MethodPost, "/api/upload/project", body)
			req.Header.Set("Content-Type", contentType)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
		})
	}
}

func TestGetSessionHandler(t *testing.T) {
	stub := &stubUploadService{
		session: &models.UploadSession{
			SessionID: "abc-123",
			Status:    models.SessionStatusCompleted,
		},
	}
	mux := uploadMux(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/upload/session/abc-123", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var session models.UploadSession
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &session))
	assert.Equal(t, "abc-123", session.SessionID)
	assert.Equal(t, models.SessionStatusCompleted, session.Status)
}

func TestGetSessionHandlerNotFound(t *testing.T) {
	mux := uploadMux(&stubUploadService{sessionErr: domain.ErrNotFound})

	req := httptest.NewRequest(http.MethodGet, "/api/upload/session/missing", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
