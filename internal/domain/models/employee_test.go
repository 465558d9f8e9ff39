package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEmployeeMonthlyPay(t *testing.T) {
	now := time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)
	emp := Employee{
		DailyRate: 120000,
		Attendance: []string{
			"2025-05-30", // previous month, ignored
			"2025-06-02",
			"2025-06-03",
			"2025-06-10",
			"2025-07-01", // next month, ignored
		},
	}

	assert.Equal(t, int64(3*120000), emp.MonthlyPay(now))
}

func TestEmployeeMonthlyPayNoAttendance(t *testing.T) {
	emp := Employee{DailyRate: 90000}
	assert.Zero(t, emp.MonthlyPay(time.Now()))
}

func TestEmployeeHasAttendance(t *testing.T) {
	emp := Employee{Attendance: []string{"2025-06-02", "2025-06-03"}}
	assert.True(t, emp.HasAttendance("2025-06-02"))
	assert.False(t, emp.HasAttendance("2025-06-04"))
}
