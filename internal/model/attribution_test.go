package model

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestAttribution_Variants(t *testing.T) {
	admin := AdminAttribution()
	assert.True(t, admin.IsAdmin())
	_, ok := admin.UserID()
	assert.False(t, ok)

	userID := uuid.New()
	ref := UserAttribution(userID)
	assert.False(t, ref.IsAdmin())
	got, ok := ref.UserID()
	assert.True(t, ok)
	assert.Equal(t, userID, got)

	var zero Attribution
	assert.True(t, zero.IsZero())
	assert.False(t, zero.IsAdmin())
}

func TestAttribution_StoreRoundTrip(t *testing.T) {
	t.Run("admin stores as the sentinel", func(t *testing.T) {
		value, err := AdminAttribution().Value()
		assert.NoError(t, err)
		assert.Equal(t, "admin", value)

		var scanned Attribution
		assert.NoError(t, scanned.Scan("admin"))
		assert.True(t, scanned.IsAdmin())
	})

	t.Run("user stores as the uuid string", func(t *testing.T) {
		userID := uuid.New()
		value, err := UserAttribution(userID).Value()
		assert.NoError(t, err)
		assert.Equal(t, userID.String(), value)

		var scanned Attribution
		assert.NoError(t, scanned.Scan([]byte(userID.String())))
		got, ok := scanned.UserID()
		assert.True(t, ok)
		assert.Equal(t, userID, got)
	})

	t.Run("zero stores as NULL and scans back to zero", func(t *testing.T) {
		var zero Attribution
		value, err := zero.Value()
		assert.NoError(t, err)
		assert.Nil(t, value)

		var scanned Attribution
		assert.NoError(t, scanned.Scan(nil))
		assert.True(t, scanned.IsZero())
	})
}
