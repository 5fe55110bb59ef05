package server

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/diewo77/car-rental/auth"
	"github.com/diewo77/car-rental/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		t.Fatalf("pragma: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Car{}, &models.Customer{}, &models.Booking{}, &models.Service{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// loginCookie builds a valid session cookie for the given user without going
// through the login form.
func loginCookie(uid uint) *http.Cookie {
	rec := httptest.NewRecorder()
	auth.CreateSession(rec, uid)
	for _, c := range rec.Result().Cookies() {
		if c.Name == "session" {
			return c
		}
	}
	return nil
}

func TestHealthEndpoints(t *testing.T) {
	h := New(setupTestDB(t))

	for _, path := range []string{"/health", "/healthz"} {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusOK {
			t.Fatalf("%s: expected 200 got %d", path, w.Code)
		}
		if !strings.Contains(w.Body.String(), "ok") {
			t.Fatalf("%s: expected ok status, body=%s", path, w.Body.String())
		}
	}
}

func TestUnauthenticatedRedirectsToLogin(t *testing.T) {
	h := New(setupTestDB(t))

	for _, path := range []string{"/dashboard", "/cars", "/customers", "/bookings", "/services"} {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusSeeOther {
			t.Fatalf("%s: expected 303 got %d", path, w.Code)
		}
		if loc := w.Header().Get("Location"); loc != "/login" {
			t.Fatalf("%s: expected redirect to /login got %s", path, loc)
		}
	}
}

func TestPublicPagesOpen(t *testing.T) {
	h := New(setupTestDB(t))

	for _, path := range []string{"/", "/about", "/login"} {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusOK {
			t.Fatalf("%s: expected 200 got %d", path, w.Code)
		}
	}
}

func TestAuthenticatedCarList(t *testing.T) {
	db := setupTestDB(t)
	hash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	user := models.User{Username: "admin", PasswordHash: string(hash)}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := db.Create(&models.Car{Name: "Corolla", Status: models.CarAvailable}).Error; err != nil {
		t.Fatalf("seed car: %v", err)
	}
	h := New(db)

	req := httptest.NewRequest(http.MethodGet, "/cars", nil)
	req.AddCookie(loginCookie(user.ID))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "Corolla") {
		t.Fatalf("expected car in listing")
	}
}

func TestStaleSessionRejected(t *testing.T) {
	db := setupTestDB(t)
	h := New(db)

	// Session for a user id that does not exist in the database.
	req := httptest.NewRequest(http.MethodGet, "/cars", nil)
	req.AddCookie(loginCookie(9999))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303 got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/login" {
		t.Fatalf("expected redirect to /login got %s", loc)
	}
}

func TestLoginFlowEndToEnd(t *testing.T) {
	db := setupTestDB(t)
	hash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err := db.Create(&models.User{Username: "admin", PasswordHash: string(hash)}).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}
	h := New(db)

	form := url.Values{"username": {"admin"}, "password": {"admin123"}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303 got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/dashboard" {
		t.Fatalf("expected /dashboard got %s", loc)
	}

	var session *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == "session" && c.Value != "" {
			session = c
		}
	}
	if session == nil {
		t.Fatalf("expected session cookie")
	}

	// The fresh session must open the dashboard.
	req2 := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req2.AddCookie(session)
	w2 := httptest.NewRecorder()
	h.ServeHTTP(w2, req2)
	if w2.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w2.Code, w2.Body.String())
	}
}
