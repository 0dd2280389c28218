package notify

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureSink struct {
	sent []Notification
	err  error
}

func (s *captureSink) Notify(ctx context.Context, n Notification) error {
	s.sent = append(s.sent, n)
	return s.err
}

func TestSendNilSink(t *testing.T) {
	// Must not panic; services are wired with a nil sink in some tests.
	Send(context.Background(), nil, SeverityInfo, "Title", "Description")
}

func TestSendSwallowsDeliveryErrors(t *testing.T) {
	sink := &captureSink{err: errors.New("down")}
	Send(context.Background(), sink, SeverityDestructive, "Overdue Payment", "details")
	require.Len(t, sink.sent, 1)
	assert.Equal(t, SeverityDestructive, sink.sent[0].Severity)
}

func TestCompositeSinkFanOut(t *testing.T) {
	a := &captureSink{}
	b := &captureSink{}
	composite := NewCompositeSink(a)
	composite.AddSink(b)

	err := composite.Notify(context.Background(), Notification{Title: "Property added", Severity: SeverityInfo})
	require.NoError(t, err)
	assert.Len(t, a.sent, 1)
	assert.Len(t, b.sent, 1)
}

func TestCompositeSinkAggregatesErrors(t *testing.T) {
	a := &captureSink{err: errors.New("first failure")}
	b := &captureSink{}
	composite := NewCompositeSink(a, b)

	err := composite.Notify(context.Background(), Notification{Title: "Tenant added"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "first failure")
	// Every sink is still attempted.
	assert.Len(t, b.sent, 1)
}

func TestFileSinkAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notifications.log")
	sink, err := NewFileSink(path)
	require.NoError(t, err)

	require.NoError(t, sink.Notify(context.Background(), Notification{
		Title:       "Payment recorded",
		Description: "A payment of ₹5000 has been recorded for lease #ABCDEF01",
		Severity:    SeverityInfo,
	}))
	require.NoError(t, sink.Notify(context.Background(), Notification{
		Title:    "Lease deleted",
		Severity: SeverityDestructive,
	}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "Payment recorded")
	assert.Contains(t, content, "Lease deleted")
	assert.Equal(t, 2, strings.Count(content, "\n"))
}
