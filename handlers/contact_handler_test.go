package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"contacts-api/handlers"
	"contacts-api/middleware"
	"contacts-api/models"
	"contacts-api/repository"
	"contacts-api/routes"
)

func newContactRouter(db *gorm.DB, user *models.User) *gin.Engine {
	r := gin.New()
	h := handlers.NewContactHandler(repository.NewContactRepository(db))
	privileged := middleware.RequireRole(models.RoleAdmin, models.RoleModerator)
	routes.ContactRoutes(r, h, asUser(user), noLimit, privileged)
	return r
}

func TestCreateContact(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "u1@example.com", models.RoleUser)
	r := newContactRouter(db, user)

	w := doJSON(r, http.MethodPost, "/contacts", map[string]any{
		"first_name": "user",
		"last_name":  "test",
		"email":      "test@gmail.com",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("got %d, body %s", w.Code, w.Body.String())
	}

	body := decodeBody(t, w)
	if _, ok := body["id"]; !ok {
		t.Fatal("response must contain the generated id")
	}
	if body["first_name"] != "user" || body["last_name"] != "test" || body["email"] != "test@gmail.com" {
		t.Fatalf("supplied fields must come back unchanged: %v", body)
	}
}

func TestCreateContactValidation(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "u1@example.com", models.RoleUser)
	r := newContactRouter(db, user)

	w := doJSON(r, http.MethodPost, "/contacts", map[string]any{
		"first_name": "ab", // below minimum length
		"last_name":  "test",
		"email":      "test@gmail.com",
	})
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("got %d, want 422", w.Code)
	}
}

func TestGetContactCrossTenant(t *testing.T) {
	db := newTestDB(t)
	u1 := seedUser(t, db, "u1@example.com", models.RoleUser)
	u2 := seedUser(t, db, "u2@example.com", models.RoleUser)

	w := doJSON(newContactRouter(db, u1), http.MethodPost, "/contacts", map[string]any{
		"first_name": "ann",
		"last_name":  "smith",
		"email":      "ann@example.com",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create: got %d", w.Code)
	}
	id := decodeBody(t, w)["id"].(float64)

	if w := doJSON(newContactRouter(db, u2), http.MethodGet, fmt.Sprintf("/contacts/%d", int(id)), nil); w.Code != http.StatusNotFound {
		t.Fatalf("other tenant should see 404, got %d, body %s", w.Code, w.Body.String())
	}
	if w := doJSON(newContactRouter(db, u1), http.MethodGet, fmt.Sprintf("/contacts/%d", int(id)), nil); w.Code != http.StatusOK {
		t.Fatalf("owner should see 200, got %d", w.Code)
	}
}

func TestGetAllContactsRoleGate(t *testing.T) {
	db := newTestDB(t)
	plain := seedUser(t, db, "u@example.com", models.RoleUser)
	mod := seedUser(t, db, "m@example.com", models.RoleModerator)

	if w := doJSON(newContactRouter(db, plain), http.MethodGet, "/contacts/all", nil); w.Code != http.StatusForbidden {
		t.Fatalf("role user: got %d, want 403", w.Code)
	}
	if w := doJSON(newContactRouter(db, mod), http.MethodGet, "/contacts/all", nil); w.Code != http.StatusOK {
		t.Fatalf("role moderator: got %d, want 200", w.Code)
	}
}

func TestPaginationBounds(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "u1@example.com", models.RoleUser)
	r := newContactRouter(db, user)

	for _, path := range []string{
		"/contacts?limit=5",
		"/contacts?limit=501",
		"/contacts?offset=-1",
		"/contacts?limit=abc",
	} {
		if w := doJSON(r, http.MethodGet, path, nil); w.Code != http.StatusUnprocessableEntity {
			t.Errorf("%s: got %d, want 422", path, w.Code)
		}
	}

	if w := doJSON(r, http.MethodGet, "/contacts?limit=10&offset=0", nil); w.Code != http.StatusOK {
		t.Fatalf("valid pagination: got %d", w.Code)
	}
}

func TestUpdateContact(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "u1@example.com", models.RoleUser)
	r := newContactRouter(db, user)

	w := doJSON(r, http.MethodPost, "/contacts", map[string]any{
		"first_name":   "ann",
		"last_name":    "smith",
		"email":        "ann@example.com",
		"phone_number": "0661122333",
		"birthday":     "1996-05-12",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create: got %d, body %s", w.Code, w.Body.String())
	}
	id := int(decodeBody(t, w)["id"].(float64))

	w = doJSON(r, http.MethodPut, fmt.Sprintf("/contacts/%d", id), map[string]any{
		"first_name": "anna",
		"last_name":  "smith",
		"email":      "anna@example.com",
	})
	if w.Code != http.StatusAccepted {
		t.Fatalf("update: got %d, want 202, body %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if body["first_name"] != "anna" || body["email"] != "anna@example.com" {
		t.Fatalf("update did not apply: %v", body)
	}

	if w := doJSON(r, http.MethodPut, "/contacts/99999", map[string]any{"first_name": "nope"}); w.Code != http.StatusNotFound {
		t.Fatalf("update missing: got %d, want 404", w.Code)
	}
}

func TestDeleteContact(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "u1@example.com", models.RoleUser)
	r := newContactRouter(db, user)

	w := doJSON(r, http.MethodPost, "/contacts", map[string]any{
		"first_name": "ann",
		"last_name":  "smith",
		"email":      "ann@example.com",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create: got %d", w.Code)
	}
	id := int(decodeBody(t, w)["id"].(float64))

	if w := doJSON(r, http.MethodDelete, fmt.Sprintf("/contacts/%d", id), nil); w.Code != http.StatusNoContent {
		t.Fatalf("delete: got %d, want 204", w.Code)
	}
	if w := doJSON(r, http.MethodDelete, fmt.Sprintf("/contacts/%d", id), nil); w.Code != http.StatusNotFound {
		t.Fatalf("repeat delete: got %d, want 404", w.Code)
	}
}

func TestSearchContacts(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "u1@example.com", models.RoleUser)
	r := newContactRouter(db, user)

	for _, c := range []map[string]any{
		{"first_name": "ann", "last_name": "smith", "email": "ann@example.com"},
		{"first_name": "ann", "last_name": "jones", "email": "aj@example.com"},
	} {
		if w := doJSON(r, http.MethodPost, "/contacts", c); w.Code != http.StatusCreated {
			t.Fatalf("create: got %d", w.Code)
		}
	}

	w := doJSON(r, http.MethodGet, "/contacts/search?first_name=ann&last_name=jones", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("search: got %d", w.Code)
	}
	var got []map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 1 || got[0]["email"] != "aj@example.com" {
		t.Fatalf("expected only ann jones, got %v", got)
	}
}
