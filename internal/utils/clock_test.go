package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNowHook(t *testing.T) {
	pinned := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	NowHook = func() (time.Time, bool) { return pinned, true }
	defer func() { NowHook = nil }()

	assert.Equal(t, pinned, Now())

	NowHook = func() (time.Time, bool) { return time.Time{}, false }
	assert.WithinDuration(t, time.Now().UTC(), Now(), time.Second)
}
