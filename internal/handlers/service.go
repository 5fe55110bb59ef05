package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/diewo77/car-rental/internal/models"
)

type ServiceHandler struct{ DB *gorm.DB }

func NewServiceHandler(db *gorm.DB) *ServiceHandler { return &ServiceHandler{DB: db} }

func (h *ServiceHandler) List(w http.ResponseWriter, r *http.Request) {
	var records []models.Service
	if err := h.DB.Preload("Car").Order("created_at desc").Find(&records).Error; err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	render(w, r, "services.html", map[string]any{"Services": records})
}

func parseServiceForm(r *http.Request) models.Service {
	carID, _ := strconv.Atoi(r.FormValue("car_id"))
	cost, _ := strconv.ParseFloat(r.FormValue("cost"), 64)
	return models.Service{
		CarID:       uint(carID),
		ServiceDate: parseDate(r.FormValue("service_date")),
		ServiceType: strings.TrimSpace(r.FormValue("service_type")),
		Cost:        cost,
		Remarks:     r.FormValue("remarks"),
	}
}

func (h *ServiceHandler) Add(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		var cars []models.Car
		h.DB.Order("name asc").Find(&cars)
		render(w, r, "add_service.html", map[string]any{"Cars": cars})
		return
	}
	if err := r.ParseForm(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	record := parseServiceForm(r)
	if err := h.DB.Create(&record).Error; err != nil {
		SetFlash(w, "danger", "Could not add service record.")
		http.Redirect(w, r, "/services", http.StatusSeeOther)
		return
	}
	// The car goes into the workshop, even if it was marked rented.
	h.DB.Model(&models.Car{}).Where("id = ?", record.CarID).Update("status", models.CarMaintenance)
	SetFlash(w, "success", "Service record added.")
	http.Redirect(w, r, "/services", http.StatusSeeOther)
}

func (h *ServiceHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(r.PathValue("id"))
	var record models.Service
	if err := h.DB.First(&record, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			SetFlash(w, "danger", "Service not found.")
			http.Redirect(w, r, "/services", http.StatusSeeOther)
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	if r.Method == http.MethodGet {
		var cars []models.Car
		h.DB.Order("name asc").Find(&cars)
		render(w, r, "edit_service.html", map[string]any{"Service": record, "Cars": cars})
		return
	}
	if err := r.ParseForm(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	updated := parseServiceForm(r)
	updated.ID = record.ID
	updated.CreatedAt = record.CreatedAt
	// Edits touch the record only; the car's status stays wherever it is.
	if err := h.DB.Save(&updated).Error; err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	SetFlash(w, "success", "Service record updated.")
	http.Redirect(w, r, "/services", http.StatusSeeOther)
}

func (h *ServiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(r.PathValue("id"))
	if id <= 0 {
		SetFlash(w, "danger", "Service not found.")
		http.Redirect(w, r, "/services", http.StatusSeeOther)
		return
	}
	// Removes the record only; the car is not pulled out of maintenance.
	if err := h.DB.Delete(&models.Service{}, id).Error; err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	SetFlash(w, "info", "Service record deleted.")
	http.Redirect(w, r, "/services", http.StatusSeeOther)
}
