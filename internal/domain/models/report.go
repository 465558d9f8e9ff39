package models

import "time"

// DailyMetric is a per-day fold over one company's orders and expenses.
// Revenue is the sum of order totals created that day; counts bucket the
// same orders by their current status.
type DailyMetric struct {
	DateKey        string `json:"dateKey"`
	NewCount       int    `json:"newCount"`
	WashingCount   int    `json:"washingCount"`
	ReadyCount     int    `json:"readyCount"`
	DeliveredCount int    `json:"deliveredCount"`
	Revenue        int64  `json:"revenue"`
	Expense        int64  `json:"expense"`
	Profit         int64  `json:"profit"`
}

// DailyReport is the persisted nightly snapshot of one company's day,
// stored by the scheduler for historical reporting.
type DailyReport struct {
	CompanyID      string    `bson:"companyId" json:"companyId"`
	Date           string    `bson:"date" json:"date"` // DateKey layout
	NewCount       int       `bson:"newCount" json:"newCount"`
	WashingCount   int       `bson:"washingCount" json:"washingCount"`
	ReadyCount     int       `bson:"readyCount" json:"readyCount"`
	DeliveredCount int       `bson:"deliveredCount" json:"deliveredCount"`
	Revenue        int64     `bson:"revenue" json:"revenue"`
	Expenses       int64     `bson:"expenses" json:"expenses"`
	Profit         int64     `bson:"profit" json:"profit"`
	CreatedAt      time.Time `bson:"createdAt" json:"createdAt"`
}

// ExpenseBreakdown splits a revenue figure into the fixed cost model used by
// the monthly report view: 18% chemicals, 25% salaries, 32% other.
type ExpenseBreakdown struct {
	Chemicals int64 `json:"chemicals"`
	Salary    int64 `json:"salary"`
	Other     int64 `json:"other"`
}

const (
	chemicalRate = 0.18
	salaryRate   = 0.25
	otherRate    = 0.32
)

// BreakdownFromRevenue applies the fixed expense rates to a revenue total.
func BreakdownFromRevenue(revenue int64) ExpenseBreakdown {
	return ExpenseBreakdown{
		Chemicals: int64(float64(revenue) * chemicalRate),
		Salary:    int64(float64(revenue) * salaryRate),
		Other:     int64(float64(revenue) * otherRate),
	}
}
