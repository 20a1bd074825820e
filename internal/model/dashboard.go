package model

// Dashboard is a per-company activity summary.
type Dashboard struct {
	Customers         int `json:"customers"`
	Items             int `json:"items"`
	OpenRFQs          int `json:"open_rfqs"`
	OutstandingQuotes int `json:"outstanding_quotes"`
}
