// Package notify shows desktop notifications for started tracks.
package notify

import "time"

// Urgency is the freedesktop urgency hint.
type Urgency byte

const (
	Low Urgency = iota
	Normal
	Critical
)

// Notification is one desktop notification.
type Notification struct {
	Summary string
	Body    string
	// Icon is a file path or a themed icon name.
	Icon    string
	Expire  time.Duration
	Urgency Urgency
	// Replaces is the id of a shown notification to update in place.
	Replaces uint32
}

// expireMillis converts Expire to the wire value; zero means server default.
func (n Notification) expireMillis() int32 {
	if n.Expire <= 0 {
		return -1
	}
	return int32(n.Expire.Milliseconds())
}

// Sender delivers notifications to the desktop.
type Sender interface {
	// Send shows n and returns the id the server assigned.
	Send(n Notification) (uint32, error)
	Dismiss(id uint32) error
}

type nopSender struct{}

func (nopSender) Send(Notification) (uint32, error) { return 0, nil }
func (nopSender) Dismiss(uint32) error              { return nil }
