package handlers_test

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"contacts-api/handlers"
	"contacts-api/models"
	"contacts-api/repository"
	"contacts-api/routes"
)

type fakeUploader struct {
	contentType string
}

func (f *fakeUploader) Upload(file io.ReadSeeker, contentType string) (string, error) {
	f.contentType = contentType
	return "https://cdn.example.com/avatars/fixed", nil
}

func newUserRouter(db *gorm.DB, user *models.User, uploader handlers.AvatarUploader) *gin.Engine {
	r := gin.New()
	h := handlers.NewUserHandler(repository.NewUserRepository(db), &fakeCache{}, uploader)
	routes.UserRoutes(r, h, asUser(user), noLimit)
	return r
}

func multipartFile(t *testing.T, field, filename, contentType string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, filename))
	header.Set("Content-Type", contentType)
	part, err := mw.CreatePart(header)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return buf, mw.FormDataContentType()
}

func TestMe(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "u1@example.com", models.RoleUser)
	r := newUserRouter(db, user, &fakeUploader{})

	w := doJSON(r, http.MethodGet, "/users/me", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("got %d", w.Code)
	}
	body := decodeBody(t, w)
	if body["email"] != "u1@example.com" {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestUpdateAvatar(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "u1@example.com", models.RoleUser)
	uploader := &fakeUploader{}
	r := newUserRouter(db, user, uploader)

	buf, contentType := multipartFile(t, "file", "me.png", "image/png", []byte("not-really-a-png"))
	req := httptest.NewRequest(http.MethodPatch, "/users/avatar", buf)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("got %d, body %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if body["avatar"] != "https://cdn.example.com/avatars/fixed" {
		t.Fatalf("avatar URL not applied: %v", body)
	}
	if uploader.contentType != "image/png" {
		t.Fatalf("content type not forwarded: %q", uploader.contentType)
	}

	var stored models.User
	if err := db.Where("email = ?", user.Email).First(&stored).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if stored.Avatar != "https://cdn.example.com/avatars/fixed" {
		t.Fatal("avatar URL must be persisted")
	}
}

func TestUpdateAvatarRejectsNonImage(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "u1@example.com", models.RoleUser)
	r := newUserRouter(db, user, &fakeUploader{})

	buf, contentType := multipartFile(t, "file", "notes.txt", "text/plain", []byte("hello"))
	req := httptest.NewRequest(http.MethodPatch, "/users/avatar", buf)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("got %d, want 400", w.Code)
	}
}
