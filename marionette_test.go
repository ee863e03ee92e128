package marionette

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBlendMode(t *testing.T) {
	for _, name := range []string{"Normal", "Multiply", "ColorDodge", "LinearDodge", "Screen", "ClipToLower", "SliceFromLower"} {
		m, err := ParseBlendMode(name)
		require.NoError(t, err)
		assert.Equal(t, name, m.String())
	}
	_, err := ParseBlendMode("Overlay")
	assert.Error(t, err)
}

func TestParseMaskMode(t *testing.T) {
	m, err := ParseMaskMode("Dodge")
	require.NoError(t, err)
	assert.Equal(t, MaskModeDodge, m)
	assert.Equal(t, "DodgeMask", m.String())

	_, err = ParseMaskMode("Invert")
	assert.Error(t, err)
}

func TestParseBindingKind(t *testing.T) {
	k, err := ParseBindingKind("transform.r.z")
	require.NoError(t, err)
	assert.Equal(t, BindTransformRZ, k)
	assert.Equal(t, "deform", BindDeform.String())

	_, err = ParseBindingKind("transform.q")
	assert.Error(t, err)
}
