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

type CustomerHandler struct{ DB *gorm.DB }

func NewCustomerHandler(db *gorm.DB) *CustomerHandler { return &CustomerHandler{DB: db} }

func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	var customers []models.Customer
	if err := h.DB.Order("created_at desc").Find(&customers).Error; err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	render(w, r, "customers.html", map[string]any{"Customers": customers})
}

func parseCustomerForm(r *http.Request) (models.Customer, validation.Violations) {
	cust := models.Customer{
		Name:      strings.TrimSpace(r.FormValue("name")),
		Email:     strings.TrimSpace(r.FormValue("email")),
		Phone:     strings.TrimSpace(r.FormValue("phone")),
		LicenseNo: strings.TrimSpace(r.FormValue("license_no")),
		Address:   r.FormValue("address"),
	}
	v := validation.Violations{}
	validation.Required("name", cust.Name, v)
	return cust, v
}

func (h *CustomerHandler) Add(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		render(w, r, "add_customer.html", nil)
		return
	}
	if err := r.ParseForm(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	cust, v := parseCustomerForm(r)
	if !v.Empty() {
		w.WriteHeader(http.StatusBadRequest)
		render(w, r, "add_customer.html", map[string]any{"Errors": v})
		return
	}
	if err := h.DB.Create(&cust).Error; err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	SetFlash(w, "success", "Customer added.")
	http.Redirect(w, r, "/customers", http.StatusSeeOther)
}

func (h *CustomerHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(r.PathValue("id"))
	var cust models.Customer
	if err := h.DB.First(&cust, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			SetFlash(w, "danger", "Customer not found.")
			http.Redirect(w, r, "/customers", http.StatusSeeOther)
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	if r.Method == http.MethodGet {
		render(w, r, "edit_customer.html", map[string]any{"Customer": cust})
		return
	}
	if err := r.ParseForm(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	updated, v := parseCustomerForm(r)
	if !v.Empty() {
		w.WriteHeader(http.StatusBadRequest)
		render(w, r, "edit_customer.html", map[string]any{"Customer": cust, "Errors": v})
		return
	}
	updated.ID = cust.ID
	updated.CreatedAt = cust.CreatedAt
	if err := h.DB.Save(&updated).Error; err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	SetFlash(w, "success", "Customer updated.")
	http.Redirect(w, r, "/customers", http.StatusSeeOther)
}

func (h *CustomerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(r.PathValue("id"))
	if id <= 0 {
		SetFlash(w, "danger", "Customer not found.")
		http.Redirect(w, r, "/customers", http.StatusSeeOther)
		return
	}
	// Their bookings cascade away with them.
	if err := h.DB.Delete(&models.Customer{}, id).Error; err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	SetFlash(w, "info", "Customer deleted.")
	http.Redirect(w, r, "/customers", http.StatusSeeOther)
}
