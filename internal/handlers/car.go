package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/diewo77/car-rental/internal/models"
	"github.com/diewo77/car-rental/validation"
)

type CarHandler struct{ DB *gorm.DB }

func NewCarHandler(db *gorm.DB) *CarHandler { return &CarHandler{DB: db} }

func (h *CarHandler) List(w http.ResponseWriter, r *http.Request) {
	var cars []models.Car
	if err := h.DB.Order("created_at desc").Find(&cars).Error; err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		if _, werr := w.Write([]byte("db error")); werr != nil {
			_ = werr
		}
		return
	}
	render(w, r, "cars.html", map[string]any{"Cars": cars})
}

// parseCarForm coerces the submitted fields. Year and price fall back to
// zero on malformed input rather than rejecting the form; only name is
// checked server-side.
func parseCarForm(r *http.Request) (models.Car, validation.Violations) {
	year, _ := strconv.Atoi(r.FormValue("year"))
	price, _ := strconv.ParseFloat(r.FormValue("price"), 64)
	status := r.FormValue("status")
	if status == "" {
		status = models.CarAvailable
	}
	car := models.Car{
		Name:        strings.TrimSpace(r.FormValue("name")),
		Brand:       strings.TrimSpace(r.FormValue("brand")),
		Model:       strings.TrimSpace(r.FormValue("model")),
		Year:        year,
		PricePerDay: price,
		Status:      status,
		Description: r.FormValue("description"),
	}
	v := validation.Violations{}
	validation.Required("name", car.Name, v)
	return car, v
}

func (h *CarHandler) Add(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		render(w, r, "add_car.html", nil)
		return
	}
	if err := r.ParseForm(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		if _, werr := w.Write([]byte("invalid form")); werr != nil {
			_ = werr
		}
		return
	}
	car, v := parseCarForm(r)
	if !v.Empty() {
		w.WriteHeader(http.StatusBadRequest)
		render(w, r, "add_car.html", map[string]any{"Errors": v})
		return
	}
	if err := h.DB.Create(&car).Error; err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		if _, werr := w.Write([]byte("db error")); werr != nil {
			_ = werr
		}
		return
	}
	SetFlash(w, "success", "Car added.")
	http.Redirect(w, r, "/cars", http.StatusSeeOther)
}

func (h *CarHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(r.PathValue("id"))
	var car models.Car
	if err := h.DB.First(&car, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			SetFlash(w, "danger", "Car not found.")
			http.Redirect(w, r, "/cars", http.StatusSeeOther)
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	if r.Method == http.MethodGet {
		render(w, r, "edit_car.html", map[string]any{"Car": car})
		return
	}
	if err := r.ParseForm(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	updated, v := parseCarForm(r)
	if !v.Empty() {
		w.WriteHeader(http.StatusBadRequest)
		render(w, r, "edit_car.html", map[string]any{"Car": car, "Errors": v})
		return
	}
	// Full replace of all editable fields.
	updated.ID = car.ID
	updated.CreatedAt = car.CreatedAt
	if err := h.DB.Save(&updated).Error; err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	SetFlash(w, "success", "Car updated.")
	http.Redirect(w, r, "/cars", http.StatusSeeOther)
}

func (h *CarHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(r.PathValue("id"))
	if id <= 0 {
		SetFlash(w, "danger", "Car not found.")
		http.Redirect(w, r, "/cars", http.StatusSeeOther)
		return
	}
	// Bookings and services referencing the car go with it (FK cascade).
	if err := h.DB.Delete(&models.Car{}, id).Error; err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	SetFlash(w, "info", "Car deleted.")
	http.Redirect(w, r, "/cars", http.StatusSeeOther)
}
