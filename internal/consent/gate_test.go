package consent

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ramanasai/diary/internal/apperr"
)

func TestSelectAllChecksEveryItem(t *testing.T) {
	g := NewGate()
	g.SetAll(true)
	assert.True(t, g.All())
	for _, it := range Items {
		assert.True(t, g.Checked(it.ID), it.ID)
	}

	g.SetAll(false)
	for _, it := range Items {
		assert.False(t, g.Checked(it.ID), it.ID)
	}
}

func TestUncheckingRequiredItemClearsAggregate(t *testing.T) {
	for _, it := range Items {
		if !it.Required {
			continue
		}
		g := NewGate()
		g.SetAll(true)
		require.NoError(t, g.Set(it.ID, false))
		assert.False(t, g.All(), it.ID)
	}
}

func TestOptionalItemDoesNotBlockAggregate(t *testing.T) {
	g := NewGate()
	for _, it := range Items {
		if it.Required {
			require.NoError(t, g.Toggle(it.ID))
		}
	}
	assert.True(t, g.All())
	assert.False(t, g.Checked(Marketing))

	require.NoError(t, g.Set(Marketing, true))
	require.NoError(t, g.Set(Marketing, false))
	assert.True(t, g.All())
}

func TestContinueRejectedLeavesStateUnchanged(t *testing.T) {
	g := NewGate()
	require.NoError(t, g.Confirm(Terms))
	require.NoError(t, g.Confirm(Privacy))

	_, err := g.Continue(time.Now())
	assert.True(t, errors.Is(err, apperr.ErrConsentRequired))
	assert.True(t, apperr.IsValidation(err))
	assert.Equal(t, []string{ThirdParty, Location}, g.Missing())
	assert.True(t, g.Checked(Terms))
	assert.False(t, g.All())
}

func TestContinueAccepted(t *testing.T) {
	g := NewGate()
	g.SetAll(true)
	require.NoError(t, g.Set(Marketing, false))
	now := time.Date(2024, 1, 5, 9, 0, 0, 0, time.UTC)

	rec, err := g.Continue(now)
	require.NoError(t, err)
	assert.Equal(t, now, rec.AcceptedAt)
	assert.False(t, rec.Marketing)
}

func TestSetUnknownItem(t *testing.T) {
	assert.Error(t, NewGate().Set("cookies", true))
}

func TestLookup(t *testing.T) {
	it, ok := Lookup(Location)
	assert.True(t, ok)
	assert.True(t, it.Required)
	assert.NotEmpty(t, it.Document)
}
