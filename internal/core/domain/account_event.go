package domain

import "time"

// AccountEventType identifies a security-relevant change on an account.
type AccountEventType string

const (
	EventRegistered     AccountEventType = "registered"
	EventLoginSucceeded AccountEventType = "login_succeeded"
	EventLoginFailed    AccountEventType = "login_failed"
	EventLoginThrottled AccountEventType = "login_throttled"
	EventDisabled       AccountEventType = "disabled"
	EventEnabled        AccountEventType = "enabled"
)

// AccountEvent is an entry in the account audit trail.
type AccountEvent struct {
	Type       AccountEventType `json:"type"`
	Username   string           `json:"username"`
	OccurredAt time.Time        `json:"occurredAt"`
	Actor      string           `json:"actor,omitempty"`
	Detail     string           `json:"detail,omitempty"`
}
