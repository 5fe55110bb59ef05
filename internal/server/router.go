package server

import (
	"context"
	"net/http"

	"gorm.io/gorm"

	"github.com/diewo77/car-rental/auth"
	"github.com/diewo77/car-rental/httpx"
	"github.com/diewo77/car-rental/internal/handlers"
	"github.com/diewo77/car-rental/internal/models"
	"github.com/diewo77/car-rental/internal/services"
)

// New constructs the root http.Handler with all routes and middlewares applied.
func New(db *gorm.DB) http.Handler {
	mux := http.NewServeMux()

	// Configure a user verifier so RequireAuth can ensure the admin still exists.
	auth.SetUserVerifier(func(_ context.Context, uid uint) bool {
		var count int64
		if err := db.Model(&models.User{}).Where("id = ?", uid).Limit(1).Count(&count).Error; err != nil {
			return false
		}
		return count > 0
	})

	// --- Health endpoints ---
	//revive:disable:unused-parameter simple handlers intentionally ignore *http.Request
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := db.Exec("SELECT 1").Error; err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			if _, werr := w.Write([]byte(`{"status":"degraded"}`)); werr != nil {
				_ = werr
			}
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	//revive:enable:unused-parameter

	// protected composes the session middleware and the login guard in front
	// of an admin-only handler.
	protected := func(h http.HandlerFunc) http.Handler {
		return auth.Middleware(auth.RequireAuth(h))
	}

	// Auth endpoints (login detects an existing session itself)
	authHandler := handlers.NewAuthHandler(db)
	authHandler.Register(mux)

	// Public pages
	pages := handlers.NewPagesHandler(db)
	mux.HandleFunc("GET /{$}", pages.Index)
	mux.HandleFunc("GET /about", pages.About)
	mux.HandleFunc("/contact", pages.Contact)
	mux.Handle("/dashboard", protected(pages.Dashboard))

	// Car endpoints
	ch := handlers.NewCarHandler(db)
	mux.Handle("GET /cars", protected(ch.List))
	mux.Handle("/cars/add", protected(ch.Add))
	mux.Handle("/cars/edit/{id}", protected(ch.Edit))
	mux.Handle("POST /cars/delete/{id}", protected(ch.Delete))

	// Customer endpoints
	cuh := handlers.NewCustomerHandler(db)
	mux.Handle("GET /customers", protected(cuh.List))
	mux.Handle("/customers/add", protected(cuh.Add))
	mux.Handle("/customers/edit/{id}", protected(cuh.Edit))
	mux.Handle("POST /customers/delete/{id}", protected(cuh.Delete))

	// Booking endpoints (the only ones with derived logic)
	bh := handlers.NewBookingHandler(db, services.NewBookingService())
	mux.Handle("GET /bookings", protected(bh.List))
	mux.Handle("/bookings/add", protected(bh.Add))
	mux.Handle("/bookings/edit/{id}", protected(bh.Edit))
	mux.Handle("POST /bookings/delete/{id}", protected(bh.Delete))

	// Service endpoints
	sh := handlers.NewServiceHandler(db)
	mux.Handle("GET /services", protected(sh.List))
	mux.Handle("/services/add", protected(sh.Add))
	mux.Handle("/services/edit/{id}", protected(sh.Edit))
	mux.Handle("POST /services/delete/{id}", protected(sh.Delete))

	return withRecover(mux)
}

func withRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
