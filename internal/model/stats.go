package model

// AdminStats aggregates counters for the admin dashboard.
type AdminStats struct {
	TotalNews               int64 `json:"total_news"`
	PublishedNews           int64 `json:"published_news"`
	TotalContactSubmissions int64 `json:"total_contact_submissions"`
	RecentSubmissions       int64 `json:"recent_submissions"`
}
