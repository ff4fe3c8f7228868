package dialogue

import (
	"time"

	"github.com/Chative-fare-advisor/server/internal/agent/model"
)

// NormalizeDate moves a date that already passed to the same day next year.
// The not-applicable sentinel and malformed values pass through unchanged.
func NormalizeDate(d model.Date, today time.Time) model.Date {
	t, ok := d.Time()
	if !ok {
		return d
	}
	y, m, day := today.Date()
	midnight := time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
	if t.Before(midnight) {
		return model.DateOf(t.AddDate(1, 0, 0))
	}
	return d
}

// NormalizeDates applies NormalizeDate to the date slots of u.
func NormalizeDates(u *model.SlotUpdate, today time.Time) {
	if u == nil {
		return
	}
	if u.DepartureDate != nil {
		u.DepartureDate = model.Ptr(NormalizeDate(*u.DepartureDate, today))
	}
	if u.ReturnDate != nil {
		u.ReturnDate = model.Ptr(NormalizeDate(*u.ReturnDate, today))
	}
}
