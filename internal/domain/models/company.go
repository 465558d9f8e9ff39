package models

import "time"

// Company is one laundry business (tenant) on the platform. Credentials are
// stored in plain text on purpose: the super-admin provisions them and reads
// them back out when handing a panel over to a new business.
type Company struct {
	ID        string    `bson:"_id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Login     string    `bson:"login" json:"login"`
	Password  string    `bson:"password" json:"password"`
	IsEnabled bool      `bson:"isEnabled" json:"isEnabled"`
	ValidFrom time.Time `bson:"validFrom" json:"validFrom"`
	ValidTo   time.Time `bson:"validTo" json:"validTo"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// ActiveAt reports whether the company's subscription is active at the given
// instant: the manual enable switch is on and now falls inside
// [validFrom, validTo].
func (c Company) ActiveAt(now time.Time) bool {
	return c.IsEnabled && !now.Before(c.ValidFrom) && !now.After(c.ValidTo)
}

// CompanyPatch carries a partial company update. Nil fields are left
// untouched by the store, mirroring how absent fields are never written.
type CompanyPatch struct {
	Name      *string    `bson:"name,omitempty" json:"name,omitempty"`
	Login     *string    `bson:"login,omitempty" json:"login,omitempty"`
	Password  *string    `bson:"password,omitempty" json:"password,omitempty"`
	IsEnabled *bool      `bson:"isEnabled,omitempty" json:"isEnabled,omitempty"`
	ValidFrom *time.Time `bson:"validFrom,omitempty" json:"validFrom,omitempty"`
	ValidTo   *time.Time `bson:"validTo,omitempty" json:"validTo,omitempty"`
}
