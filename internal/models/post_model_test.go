package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostDraft_Validate(t *testing.T) {
	future := time.Now().Add(2 * time.Hour)

	t.Run("empty caption", func(t *testing.T) {
		d := PostDraft{Platform: PlatformInstagram, ScheduledAt: future}
		assert.ErrorIs(t, d.Validate(), ErrMissingCaption)
	})

	t.Run("whitespace-only caption is still a caption", func(t *testing.T) {
		// ozzo's Required rejects the zero value only; trimming is the
		// backend's call.
		d := PostDraft{Caption: " ", Platform: PlatformInstagram, ScheduledAt: future}
		assert.NoError(t, d.Validate())
	})

	t.Run("missing time", func(t *testing.T) {
		d := PostDraft{Caption: "hello", Platform: PlatformInstagram}
		assert.ErrorIs(t, d.Validate(), ErrMissingTime)
	})

	t.Run("time in the past", func(t *testing.T) {
		d := PostDraft{
			Caption:     "hello",
			Platform:    PlatformInstagram,
			ScheduledAt: time.Now().Add(-time.Minute),
		}
		assert.ErrorIs(t, d.Validate(), ErrTimeInPast)
	})

	t.Run("valid draft", func(t *testing.T) {
		d := PostDraft{Caption: "hello", Platform: PlatformInstagram, ScheduledAt: future}
		require.NoError(t, d.Validate())
	})

	t.Run("empty caption beats missing time", func(t *testing.T) {
		d := PostDraft{}
		assert.ErrorIs(t, d.Validate(), ErrMissingCaption)
	})
}

func TestScheduledPost_Active(t *testing.T) {
	assert.True(t, ScheduledPost{Status: PostStatusScheduled}.Active())
	assert.True(t, ScheduledPost{Status: PostStatusFailed}.Active())
	assert.True(t, ScheduledPost{Status: PostStatusOtpRequired}.Active())
	assert.False(t, ScheduledPost{Status: PostStatusCompleted}.Active())
}

func TestNewDraft(t *testing.T) {
	d := NewDraft()
	assert.Equal(t, PlatformInstagram, d.Platform)
	assert.Empty(t, d.Caption)
	assert.True(t, d.ScheduledAt.IsZero())
}
