package holiday

import "time"

// Holiday marks a calendar day. The calendar only influences the default
// status of attendance entries recorded without an explicit status.
type Holiday struct {
	Date      time.Time
	Name      string
	CreatedAt time.Time
}
