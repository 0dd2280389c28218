package utils

import "time"

// NowHookFunc defines the signature for the Now test hook.
// It returns a time and a boolean indicating whether to override the real clock.
type NowHookFunc func() (t time.Time, override bool)

// NowHook is a package-level variable that tests can set to override Now behavior.
var NowHook NowHookFunc

// Now returns the current UTC time. All createdAt/updatedAt stamps and due-date
// comparisons go through here so tests can pin the clock.
func Now() time.Time {
	if NowHook != nil {
		if t, override := NowHook(); override {
			return t
		}
	}
	return time.Now().UTC()
}
