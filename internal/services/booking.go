package services

import "time"

// BookingService encapsulates the rental pricing rule.
type BookingService struct{}

func NewBookingService() *BookingService { return &BookingService{} }

// RentalDays counts billable days for a date range, inclusive of both
// endpoints: Jan 1 to Jan 3 is 3 days, Jan 5 to Jan 5 is 1 day.
// Spans of zero or negative length are floored at 1 day rather than
// rejected; the original rental desk workflow relies on that.
func (s *BookingService) RentalDays(start, end time.Time) int {
	days := int(end.Sub(start).Hours()/24) + 1
	if days < 1 {
		days = 1
	}
	return days
}

// TotalCost derives the stored booking cost from the car's daily price and
// the date range. Recomputed on every booking write.
func (s *BookingService) TotalCost(pricePerDay float64, start, end time.Time) float64 {
	return pricePerDay * float64(s.RentalDays(start, end))
}
