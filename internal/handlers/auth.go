package handlers

import (
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/diewo77/car-rental/auth"
	"github.com/diewo77/car-rental/httpx"
	"github.com/diewo77/car-rental/internal/models"
)

type AuthHandler struct{ DB *gorm.DB }

func NewAuthHandler(db *gorm.DB) *AuthHandler { return &AuthHandler{DB: db} }

func (h *AuthHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/login", h.login)
	mux.HandleFunc("/logout", h.logout)
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		// If already logged in, verify the user still exists, then go to the dashboard.
		uid, ok := auth.UserIDFromContext(r.Context())
		if !ok || uid == 0 {
			if parsed, ok2 := auth.ParseSession(r); ok2 {
				uid = parsed
			}
		}
		if uid != 0 {
			var count int64
			if err := h.DB.Model(&models.User{}).Where("id = ?", uid).Limit(1).Count(&count).Error; err == nil && count > 0 {
				http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
				return
			}
			auth.ClearSession(w)
		}
		render(w, r, "login.html", nil)
		return
	}
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "GET,POST")
		httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}
	if err := r.ParseForm(); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_form", nil)
		return
	}
	username := strings.TrimSpace(r.FormValue("username"))
	pass := r.FormValue("password")
	var user models.User
	// Same generic notice whether the user is unknown or the password is
	// wrong; never reveal which.
	if err := h.DB.Where("username = ?", username).First(&user).Error; err != nil {
		render(w, r, "login.html", map[string]any{"Flash": &Flash{Category: "danger", Message: "Invalid credentials."}})
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(pass)) != nil {
		render(w, r, "login.html", map[string]any{"Flash": &Flash{Category: "danger", Message: "Invalid credentials."}})
		return
	}
	auth.CreateSession(w, user.ID)
	SetFlash(w, "success", "Logged in successfully.")
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (h *AuthHandler) logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearSession(w)
	SetFlash(w, "info", "Logged out.")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
