package handlers

import (
	"net/http"

	"gorm.io/gorm"

	"github.com/diewo77/car-rental/auth"
	"github.com/diewo77/car-rental/internal/models"
)

// PagesHandler serves the public pages and the admin dashboard.
type PagesHandler struct{ DB *gorm.DB }

func NewPagesHandler(db *gorm.DB) *PagesHandler { return &PagesHandler{DB: db} }

func (h *PagesHandler) counts() map[string]int64 {
	var cars, customers, bookings, services int64
	h.DB.Model(&models.Car{}).Count(&cars)
	h.DB.Model(&models.Customer{}).Count(&customers)
	h.DB.Model(&models.Booking{}).Count(&bookings)
	h.DB.Model(&models.Service{}).Count(&services)
	return map[string]int64{
		"Cars":      cars,
		"Customers": customers,
		"Bookings":  bookings,
		"Services":  services,
	}
}

// Index is public: summary counts only, no record data.
func (h *PagesHandler) Index(w http.ResponseWriter, r *http.Request) {
	render(w, r, "index.html", map[string]any{"Totals": h.counts()})
}

func (h *PagesHandler) About(w http.ResponseWriter, r *http.Request) {
	render(w, r, "about.html", nil)
}

func (h *PagesHandler) Contact(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPost {
		SetFlash(w, "success", "Thank you for contacting us. We'll get back to you.")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	render(w, r, "contact.html", nil)
}

// Dashboard shows the totals plus the six most recent bookings.
func (h *PagesHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	data := map[string]any{"Totals": h.counts()}
	var recent []models.Booking
	h.DB.Preload("Car").Preload("Customer").Order("created_at desc").Limit(6).Find(&recent)
	data["RecentBookings"] = recent
	if uid, ok := auth.UserIDFromContext(r.Context()); ok {
		var user models.User
		if err := h.DB.First(&user, uid).Error; err == nil {
			data["User"] = user
		}
	}
	render(w, r, "dashboard.html", data)
}
