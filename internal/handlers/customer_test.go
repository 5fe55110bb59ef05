package handlers

import (
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/diewo77/car-rental/internal/models"
)

func TestCustomerAddRequiresName(t *testing.T) {
	db := setupTestDB(t)
	h := NewCustomerHandler(db)
	w := postForm(t, h.Add, "/customers/add", url.Values{"email": {"a@b.test"}}, "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", w.Code)
	}
}

func TestCustomerCRUD(t *testing.T) {
	db := setupTestDB(t)
	h := NewCustomerHandler(db)

	form := url.Values{"name": {"Dana"}, "email": {"dana@example.test"}, "phone": {"555-0101"}, "license_no": {"DL-77"}}
	if w := postForm(t, h.Add, "/customers/add", form, ""); w.Code != http.StatusSeeOther {
		t.Fatalf("add: expected 303 got %d", w.Code)
	}

	edit := url.Values{"name": {"Dana Q"}, "phone": {"555-0102"}}
	if w := postForm(t, h.Edit, "/customers/edit/1", edit, "1"); w.Code != http.StatusSeeOther {
		t.Fatalf("edit: expected 303 got %d", w.Code)
	}
	var got models.Customer
	db.First(&got, 1)
	if got.Name != "Dana Q" || got.Phone != "555-0102" {
		t.Fatalf("unexpected customer: %+v", got)
	}
	// Full replace: email was not resubmitted.
	if got.Email != "" {
		t.Fatalf("expected email cleared got %q", got.Email)
	}
}

func TestCustomerDeleteCascadesBookings(t *testing.T) {
	db := setupTestDB(t)
	h := NewCustomerHandler(db)

	car := models.Car{Name: "Kona"}
	db.Create(&car)
	cust := models.Customer{Name: "Eve"}
	db.Create(&cust)
	start := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	db.Create(&models.Booking{CarID: car.ID, CustomerID: cust.ID, StartDate: start, EndDate: start, Status: models.BookingActive})

	if w := postForm(t, h.Delete, "/customers/delete/1", nil, "1"); w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303 got %d", w.Code)
	}
	var customers, bookings int64
	db.Model(&models.Customer{}).Count(&customers)
	db.Model(&models.Booking{}).Count(&bookings)
	if customers != 0 || bookings != 0 {
		t.Fatalf("expected cascade, got customers=%d bookings=%d", customers, bookings)
	}
	// The car survives its customer.
	var cars int64
	db.Model(&models.Car{}).Count(&cars)
	if cars != 1 {
		t.Fatalf("expected car kept got %d", cars)
	}
}
