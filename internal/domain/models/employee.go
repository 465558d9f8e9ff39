package models

import "time"

// DateKey is the calendar-day layout used for attendance and expense dates.
const DateKey = "2006-01-02"

// Employee is a tenant-scoped staff record. Attendance is a set of
// calendar-day keys; pay is always derived from it, never persisted.
type Employee struct {
	ID         string    `bson:"_id" json:"id"`
	CompanyID  string    `bson:"companyId" json:"companyId"`
	FirstName  string    `bson:"firstName" json:"firstName"`
	LastName   string    `bson:"lastName" json:"lastName"`
	Role       string    `bson:"role" json:"role"`
	Phone      string    `bson:"phone" json:"phone"`
	Shift      string    `bson:"shift" json:"shift"`
	IsActive   bool      `bson:"isActive" json:"isActive"`
	HiredAt    time.Time `bson:"hiredAt" json:"hiredAt"`
	DailyRate  int64     `bson:"dailyRate" json:"dailyRate"`
	Attendance []string  `bson:"attendance,omitempty" json:"attendance,omitempty"`
}

// HasAttendance reports whether the given day key is marked.
func (e Employee) HasAttendance(day string) bool {
	for _, d := range e.Attendance {
		if d == day {
			return true
		}
	}
	return false
}

// MonthlyPay computes the pay owed for the month containing now:
// dailyRate times the number of attendance days in that month.
func (e Employee) MonthlyPay(now time.Time) int64 {
	prefix := now.Format("2006-01")
	var days int64
	for _, d := range e.Attendance {
		if len(d) >= len(prefix) && d[:len(prefix)] == prefix {
			days++
		}
	}
	return e.DailyRate * days
}

// EmployeePatch carries a partial employee update; nil fields are untouched.
type EmployeePatch struct {
	FirstName *string `bson:"firstName,omitempty" json:"firstName,omitempty"`
	LastName  *string `bson:"lastName,omitempty" json:"lastName,omitempty"`
	Role      *string `bson:"role,omitempty" json:"role,omitempty"`
	Phone     *string `bson:"phone,omitempty" json:"phone,omitempty"`
	Shift     *string `bson:"shift,omitempty" json:"shift,omitempty"`
	IsActive  *bool   `bson:"isActive,omitempty" json:"isActive,omitempty"`
	DailyRate *int64  `bson:"dailyRate,omitempty" json:"dailyRate,omitempty"`
}
