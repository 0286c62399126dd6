package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresets(t *testing.T) {
	names := Presets()
	assert.Equal(t, Default, names[0])
	assert.ElementsMatch(t, []string{"default", "blue", "green", "orange", "pink", "purple"}, names)
	for _, n := range names {
		p, ok := Preset(n)
		require.True(t, ok)
		assert.NoError(t, p.Validate(), n)
	}
}

func TestSelect(t *testing.T) {
	s := Select("purple")
	assert.Equal(t, "purple", s.Current)
	assert.Equal(t, "#7C3AED", s.Colors.Primary)

	s = Select("neon")
	assert.Equal(t, DefaultPalette, s.Colors)
}

func TestWithCustom(t *testing.T) {
	p := DefaultPalette
	p.Accent = "#123456"
	s, err := WithCustom(p)
	require.NoError(t, err)
	assert.Equal(t, Custom, s.Current)
	assert.Equal(t, "#123456", s.Colors.Accent)

	p.Surface = "white"
	_, err = WithCustom(p)
	assert.Error(t, err)
}
