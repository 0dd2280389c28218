package notify

import (
	"context"
	"fmt"
	"strings"
)

// CompositeSink implements the Sink interface and delegates delivery to
// multiple Sinks.
type CompositeSink struct {
	sinks []Sink
}

// NewCompositeSink creates a new CompositeSink.
// It returns the concrete type *CompositeSink to allow AddSink to be called directly.
func NewCompositeSink(sinks ...Sink) *CompositeSink {
	return &CompositeSink{sinks: sinks}
}

// AddSink adds a sink to the composite sink's list.
func (cs *CompositeSink) AddSink(sink Sink) {
	if sink != nil {
		cs.sinks = append(cs.sinks, sink)
	}
}

// Notify iterates through all registered sinks and calls their Notify method.
// It collects all errors encountered and returns them as a single error.
func (cs *CompositeSink) Notify(ctx context.Context, n Notification) error {
	if len(cs.sinks) == 0 {
		return fmt.Errorf("no sinks configured in CompositeSink")
	}

	var allErrors []string
	for _, sink := range cs.sinks {
		if err := sink.Notify(ctx, n); err != nil {
			allErrors = append(allErrors, err.Error())
		}
	}

	if len(allErrors) > 0 {
		return fmt.Errorf("composite notify failed: [ %s ]", strings.Join(allErrors, "; "))
	}
	return nil
}
