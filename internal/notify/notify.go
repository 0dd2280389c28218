// Package notify delivers the in-app toast notifications emitted by the
// synchronizer, the payment ledger and the transaction processor.
package notify

import (
	"context"
	"log"
)

// Severity selects the toast variant shown to the user.
type Severity string

const (
	SeverityInfo        Severity = "info"
	SeverityDestructive Severity = "destructive"
)

// Notification is one toast: a short title plus a descriptive line.
type Notification struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Severity    Severity `json:"severity"`
}

// Sink defines the interface for delivering notifications.
type Sink interface {
	Notify(ctx context.Context, n Notification) error
}

// Send delivers a notification through the sink and logs delivery failures
// instead of propagating them. A state change never fails on a toast.
func Send(ctx context.Context, sink Sink, severity Severity, title, description string) {
	if sink == nil {
		return
	}
	n := Notification{Title: title, Description: description, Severity: severity}
	if err := sink.Notify(ctx, n); err != nil {
		log.Printf("Failed to deliver notification '%s': %v", title, err)
	}
}

// LogSink is a Sink that just logs notification details.
// Useful for development or when no other sink is configured.
type LogSink struct{}

// NewLogSink creates a new LogSink.
func NewLogSink() Sink {
	return &LogSink{}
}

// Notify logs the notification instead of delivering it anywhere.
func (s *LogSink) Notify(ctx context.Context, n Notification) error {
	log.Printf("Notification [%s] %s: %s", n.Severity, n.Title, n.Description)
	return nil
}
