package domain

// Counter source names, used to report stale counters after a partial
// aggregation failure.
const (
	SourceHomeOwnerApplications = "home_owner_applications"
	SourceArtisanApplications   = "artisan_applications"
	SourcePropertyVerifications = "property_verifications"
	SourceMaintenanceRequests   = "maintenance_requests"
	SourcePayments              = "payments"
	SourceReports               = "reports"
)

// NotificationCounts is the badge-count object consumed by navigation.
// It is rebuilt from the source collections on every refresh and never
// persisted.
type NotificationCounts struct {
	HomeOwnerApplications int64    `json:"home_owner_applications"`
	ArtisanApplications   int64    `json:"artisan_applications"`
	PropertyVerifications int64    `json:"property_verifications"`
	MaintenanceRequests   int64    `json:"maintenance_requests"`
	Payments              int64    `json:"payments"`
	Reports               int64    `json:"reports"`
	Stale                 []string `json:"stale,omitempty"`
}

func (c NotificationCounts) Total() int64 {
	return c.HomeOwnerApplications + c.ArtisanApplications + c.PropertyVerifications +
		c.MaintenanceRequests + c.Payments + c.Reports
}
