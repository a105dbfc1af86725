package redis

import "fmt"

// Key construction helpers for the sky agent's Redis footprint.

// ScheduleKey returns the key caching the validated day schedule for a
// calendar date (string form: 2006-01-02)
// Pattern: sky:schedule:{date}
func ScheduleKey(date string) string {
	return fmt.Sprintf("sky:schedule:%s", date)
}

// StateKey returns the key holding the most recently published sky state,
// read by late-joining consumers instead of waiting for the next tick
// Pattern: sky:state
func StateKey() string {
	return "sky:state"
}
