package domain

import "time"

// RateLimit is the remaining search quota and the epoch second at which it resets.
type RateLimit struct {
	Remaining int   `json:"remaining"`
	Reset     int64 `json:"reset"`
}

// ResetTime returns Reset as a time.Time.
func (r RateLimit) ResetTime() time.Time {
	return time.Unix(r.Reset, 0)
}
