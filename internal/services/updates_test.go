package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"rentdesk/internal/models"
	"rentdesk/internal/utils"
)

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "25000", formatAmount(25000))
	assert.Equal(t, "12500.5", formatAmount(12500.5))
	assert.Equal(t, "0.01", formatAmount(0.01))
}

func TestStringFieldAcceptsTypedKinds(t *testing.T) {
	updates := map[string]interface{}{
		"plain": "approved",
		"typed": models.ApplicationStatusApproved,
		"num":   42,
	}

	s, ok := stringField(updates, "plain")
	assert.True(t, ok)
	assert.Equal(t, "approved", s)

	s, ok = stringField(updates, "typed")
	assert.True(t, ok)
	assert.Equal(t, "approved", s)

	_, ok = stringField(updates, "num")
	assert.False(t, ok)
	_, ok = stringField(updates, "missing")
	assert.False(t, ok)
}

func TestIDField(t *testing.T) {
	id := utils.NewSixID()
	updates := map[string]interface{}{
		"typed":  id,
		"string": id.String(),
		"bogus":  "not-an-id",
	}

	got, ok := idField(updates, "typed")
	assert.True(t, ok)
	assert.Equal(t, id, got)

	got, ok = idField(updates, "string")
	assert.True(t, ok)
	assert.Equal(t, id, got)

	_, ok = idField(updates, "bogus")
	assert.False(t, ok)
	_, ok = idField(updates, "missing")
	assert.False(t, ok)
}
