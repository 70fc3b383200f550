package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/taskplatform/task-platform-api/internal/dto"
	"github.com/taskplatform/task-platform-api/internal/models"
)

func multipartUpload(t *testing.T, taskID string, files map[string]struct {
	mime string
	data []byte
}) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if taskID != "" {
		require.NoError(t, mw.WriteField("task_id", taskID))
	}
	for name, f := range files {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", `form-data; name="files"; filename="`+name+`"`)
		header.Set("Content-Type", f.mime)
		part, err := mw.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write(f.data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func (env *testEnv) upload(t *testing.T, token string, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/files/upload", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func TestFileHandler_UploadAndList(t *testing.T) {
	env := setupTestEnv(t)
	manager, token := env.createUser(t, "manager", models.RoleManager)
	task := env.createTask(t, manager.ID, "Documented work")

	body, contentType := multipartUpload(t, task.ID.String(), map[string]struct {
		mime string
		data []byte
	}{
		"notes.txt":  {mime: "text/plain", data: []byte("meeting notes")},
		"shot.png":   {mime: "image/png", data: []byte{0x89, 0x50, 0x4e, 0x47}},
		"binary.exe": {mime: "application/x-msdownload", data: []byte{0x4d, 0x5a}},
	})

	w := env.upload(t, token, body, contentType)
	require.Equal(t, http.StatusCreated, w.Code)

	// the disallowed type is skipped, the rest succeed
	var files []dto.FileDTO
	decodeData(t, w, &files)
	require.Len(t, files, 2)
	for _, f := range files {
		require.Equal(t, models.ProviderLocal, f.Provider)
		require.Equal(t, manager.ID, f.UploaderID)
	}

	w = env.request(t, http.MethodGet, "/api/files/task/"+task.ID.String(), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeData(t, w, &files)
	require.Len(t, files, 2)
}

func TestFileHandler_UploadAllRejected(t *testing.T) {
	env := setupTestEnv(t)
	_, token := env.createUser(t, "manager", models.RoleManager)

	body, contentType := multipartUpload(t, "", map[string]struct {
		mime string
		data []byte
	}{
		"binary.exe": {mime: "application/x-msdownload", data: []byte{0x4d, 0x5a}},
	})

	w := env.upload(t, token, body, contentType)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFileHandler_UploadUnknownTask(t *testing.T) {
	env := setupTestEnv(t)
	_, token := env.createUser(t, "manager", models.RoleManager)

	body, contentType := multipartUpload(t, uuid.NewString(), map[string]struct {
		mime string
		data []byte
	}{
		"notes.txt": {mime: "text/plain", data: []byte("orphan")},
	})

	w := env.upload(t, token, body, contentType)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestFileHandler_DownloadLocal(t *testing.T) {
	env := setupTestEnv(t)
	manager, token := env.createUser(t, "manager", models.RoleManager)
	task := env.createTask(t, manager.ID, "Work")

	body, contentType := multipartUpload(t, task.ID.String(), map[string]struct {
		mime string
		data []byte
	}{
		"notes.txt": {mime: "text/plain", data: []byte("hello there")},
	})
	w := env.upload(t, token, body, contentType)
	require.Equal(t, http.StatusCreated, w.Code)

	var files []dto.FileDTO
	decodeData(t, w, &files)
	require.Len(t, files, 1)

	w = env.request(t, http.MethodGet, "/api/files/"+files[0].ID.String()+"/download", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "hello there", w.Body.String())
	require.Contains(t, w.Header().Get("Content-Disposition"), "notes.txt")
}

func TestFileHandler_URLForLocalFileIsNull(t *testing.T) {
	env := setupTestEnv(t)
	manager, token := env.createUser(t, "manager", models.RoleManager)
	task := env.createTask(t, manager.ID, "Work")

	body, contentType := multipartUpload(t, task.ID.String(), map[string]struct {
		mime string
		data []byte
	}{
		"notes.txt": {mime: "text/plain", data: []byte("local only")},
	})
	w := env.upload(t, token, body, contentType)

	var files []dto.FileDTO
	decodeData(t, w, &files)

	w = env.request(t, http.MethodGet, "/api/files/"+files[0].ID.String()+"/url", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got struct {
		URL *string `json:"url"`
	}
	decodeData(t, w, &got)
	require.Nil(t, got.URL)
}

func TestFileHandler_DeleteOnlyUploaderOrAdmin(t *testing.T) {
	env := setupTestEnv(t)
	uploader, uploaderToken := env.createUser(t, "uploader", models.RoleEmployee)
	_, managerToken := env.createUser(t, "manager", models.RoleManager)
	_, adminToken := env.createUser(t, "admin", models.RoleAdmin)

	create := func() dto.FileDTO {
		body, contentType := multipartUpload(t, "", map[string]struct {
			mime string
			data []byte
		}{
			"notes.txt": {mime: "text/plain", data: []byte("owned")},
		})
		w := env.upload(t, uploaderToken, body, contentType)
		require.Equal(t, http.StatusCreated, w.Code)
		var files []dto.FileDTO
		decodeData(t, w, &files)
		require.Len(t, files, 1)
		return files[0]
	}
	_ = uploader

	// managers cannot delete other people's files
	file := create()
	w := env.request(t, http.MethodDelete, "/api/files/"+file.ID.String(), managerToken, nil)
	require.Equal(t, http.StatusForbidden, w.Code)

	// the uploader can
	w = env.request(t, http.MethodDelete, "/api/files/"+file.ID.String(), uploaderToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// so can an admin
	file = create()
	w = env.request(t, http.MethodDelete, "/api/files/"+file.ID.String(), adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
}
