package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"rentdesk/internal/kv"
	"rentdesk/internal/models"
	"rentdesk/internal/notify"
	"rentdesk/internal/store"
	"rentdesk/internal/utils"
)

// recorderSink captures notifications for assertions.
type recorderSink struct {
	mu   sync.Mutex
	sent []notify.Notification
}

func (r *recorderSink) Notify(ctx context.Context, n notify.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, n)
	return nil
}

func (r *recorderSink) titles() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	titles := make([]string, len(r.sent))
	for i, n := range r.sent {
		titles[i] = n.Title
	}
	return titles
}

func (r *recorderSink) find(title string) (notify.Notification, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range r.sent {
		if n.Title == title {
			return n, true
		}
	}
	return notify.Notification{}, false
}

func (r *recorderSink) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = nil
}

func newTestStores() *store.Stores {
	return store.NewStores(kv.NewMemory())
}

func pinClock(t *testing.T, at time.Time) {
	t.Helper()
	utils.NowHook = func() (time.Time, bool) { return at, true }
	t.Cleanup(func() { utils.NowHook = nil })
}

func seedProperty(t *testing.T, props IPropertyService, status models.PropertyStatus) *models.Property {
	t.Helper()
	p := &models.Property{
		Title:      "2BHK in Baner",
		Type:       models.PropertyType2BHK,
		Location:   "Pune",
		RentAmount: 25000,
		Status:     status,
	}
	require.NoError(t, props.CreateProperty(context.Background(), p))
	return p
}

func propertyStatus(t *testing.T, props IPropertyService, id utils.SixID) models.PropertyStatus {
	t.Helper()
	p, found, err := props.FindPropertyByID(context.Background(), id)
	require.NoError(t, err)
	require.True(t, found)
	return p.Status
}
