package models

// AdminProfile is the deployment-wide display identity shown in the admin
// chrome. A single document; not tenant-scoped.
type AdminProfile struct {
	FirstName string  `bson:"firstName" json:"firstName"`
	LastName  string  `bson:"lastName" json:"lastName"`
	Role      string  `bson:"role" json:"role"`
	Login     string  `bson:"login" json:"login"`
	Password  string  `bson:"password" json:"password"`
	Avatar    *string `bson:"avatar,omitempty" json:"avatar,omitempty"`
}

// DefaultAdminProfile seeds the profile document on first load.
func DefaultAdminProfile() AdminProfile {
	return AdminProfile{
		FirstName: "Admin",
		LastName:  "foydalanuvchi",
		Role:      "Menejer",
		Login:     "admin",
		Password:  "admin123",
	}
}

// DashboardSettings are deployment-wide UI preferences. A single document.
type DashboardSettings struct {
	Language           string `bson:"language" json:"language"` // uz, ru, en
	Currency           string `bson:"currency" json:"currency"` // UZS, USD, EUR
	Theme              string `bson:"theme" json:"theme"`       // light, dark
	DailyTargetRevenue int64  `bson:"dailyTargetRevenue" json:"dailyTargetRevenue"`
	ShowReadyAlerts    bool   `bson:"showReadyAlerts" json:"showReadyAlerts"`
	AutoClosePaid      bool   `bson:"autoClosePaidOrders" json:"autoClosePaidOrders"`
}

// DefaultDashboardSettings seeds the settings document on first load.
func DefaultDashboardSettings() DashboardSettings {
	return DashboardSettings{
		Language:           "uz",
		Currency:           "UZS",
		Theme:              "light",
		DailyTargetRevenue: 500_000,
		ShowReadyAlerts:    true,
		AutoClosePaid:      true,
	}
}
