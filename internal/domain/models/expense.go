package models

// Expense is a tenant-scoped operating expense, attributed to a single
// calendar day. Used only for additive aggregation against revenue.
type Expense struct {
	ID        string  `bson:"_id" json:"id"`
	CompanyID string  `bson:"companyId" json:"companyId"`
	Date      string  `bson:"date" json:"date"` // DateKey layout
	Product   string  `bson:"product" json:"product"`
	Quantity  float64 `bson:"quantity" json:"quantity"`
	Unit      string  `bson:"unit" json:"unit"`
	Amount    int64   `bson:"amount" json:"amount"`
	Notes     *string `bson:"notes,omitempty" json:"notes,omitempty"`
}
