package handlers

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/diewo77/car-rental/internal/models"
)

func TestServiceAddForcesMaintenance(t *testing.T) {
	db := setupTestDB(t)
	h := NewServiceHandler(db)

	// Even a rented car is pulled into the workshop.
	car := models.Car{Name: "Astra", Status: models.CarRented}
	db.Create(&car)

	form := url.Values{
		"car_id":       {"1"},
		"service_date": {"2024-04-10"},
		"service_type": {"brake pads"},
		"cost":         {"120.50"},
	}
	if w := postForm(t, h.Add, "/services/add", form, ""); w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303 got %d", w.Code)
	}
	var record models.Service
	if err := db.First(&record).Error; err != nil {
		t.Fatalf("fetch service: %v", err)
	}
	if record.Cost != 120.50 || record.ServiceType != "brake pads" {
		t.Fatalf("unexpected record: %+v", record)
	}
	var got models.Car
	db.First(&got, car.ID)
	if got.Status != models.CarMaintenance {
		t.Fatalf("expected maintenance got %q", got.Status)
	}
}

func TestServiceEditLeavesCarStatus(t *testing.T) {
	db := setupTestDB(t)
	h := NewServiceHandler(db)
	car := models.Car{Name: "Polo", Status: models.CarRented}
	db.Create(&car)
	db.Create(&models.Service{CarID: car.ID, ServiceType: "tyres"})

	form := url.Values{
		"car_id":       {"1"},
		"service_type": {"tyres and alignment"},
		"cost":         {"80"},
	}
	if w := postForm(t, h.Edit, "/services/edit/1", form, "1"); w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303 got %d", w.Code)
	}
	var record models.Service
	db.First(&record)
	if record.ServiceType != "tyres and alignment" {
		t.Fatalf("expected updated type got %q", record.ServiceType)
	}
	var got models.Car
	db.First(&got, car.ID)
	if got.Status != models.CarRented {
		t.Fatalf("edit must not touch car status, got %q", got.Status)
	}
}

func TestServiceDeleteLeavesCarStatus(t *testing.T) {
	db := setupTestDB(t)
	h := NewServiceHandler(db)
	car := models.Car{Name: "Ibiza", Status: models.CarMaintenance}
	db.Create(&car)
	db.Create(&models.Service{CarID: car.ID, ServiceType: "inspection"})

	if w := postForm(t, h.Delete, "/services/delete/1", nil, "1"); w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303 got %d", w.Code)
	}
	var count int64
	db.Model(&models.Service{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected record deleted")
	}
	// The car is not pulled out of maintenance.
	var got models.Car
	db.First(&got, car.ID)
	if got.Status != models.CarMaintenance {
		t.Fatalf("delete must not revert car status, got %q", got.Status)
	}
}

func TestServiceEditNotFoundRedirects(t *testing.T) {
	db := setupTestDB(t)
	h := NewServiceHandler(db)
	w := postForm(t, h.Edit, "/services/edit/42", url.Values{"service_type": {"x"}}, "42")
	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303 got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/services" {
		t.Fatalf("expected redirect to /services got %s", loc)
	}
}
