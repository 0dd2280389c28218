package services

import (
	"encoding/json"
	"strconv"

	"rentdesk/internal/utils"
)

// formatAmount renders a monetary amount for notification text, without
// trailing zeros.
func formatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', -1, 64)
}

// stringField extracts a string-valued field from a partial-update map.
// Values may arrive as plain strings (decoded request bodies) or as typed
// string kinds (direct service calls), so unknown types fall back to a JSON
// round trip.
func stringField(updates map[string]interface{}, key string) (string, bool) {
	value, ok := updates[key]
	if !ok {
		return "", false
	}
	if s, ok := value.(string); ok {
		return s, true
	}
	encoded, err := json.Marshal(value)
	if err != nil {
		return "", false
	}
	var s string
	if err := json.Unmarshal(encoded, &s); err != nil {
		return "", false
	}
	return s, true
}

// idField extracts a SixID-valued field from a partial-update map.
func idField(updates map[string]interface{}, key string) (utils.SixID, bool) {
	if id, ok := updates[key].(utils.SixID); ok {
		return id, true
	}
	s, ok := stringField(updates, key)
	if !ok {
		return utils.SixID{}, false
	}
	id, err := utils.ParseSixID(s)
	if err != nil {
		return utils.SixID{}, false
	}
	return id, true
}
