package entity

import "time"

// AccountEventType names an account lifecycle event.
type AccountEventType string

// AccountEventRegistered is emitted after a successful registration.
const AccountEventRegistered AccountEventType = "account.registered"

// AccountEvent is published for the notification collaborator (welcome mail, etc.).
type AccountEvent struct {
	RequestID  string           `json:"request_id,omitempty"`
	Type       AccountEventType `json:"type"`
	AccountID  int64            `json:"account_id"`
	Email      string           `json:"email"`
	Username   string           `json:"username"`
	OccurredAt time.Time        `json:"occurred_at"`
}
