package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	for in, want := range map[string]Kind{
		"sphere":   KindSphere,
		"Torus":    KindTorus,
		" TORUS\n": KindTorus,
	} {
		got, err := ParseKind(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseKind("klein bottle")
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestKindText(t *testing.T) {
	b, err := KindTorus.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "torus", string(b))

	_, err = Kind(5).MarshalText()
	assert.ErrorIs(t, err, ErrUnknownKind)
	assert.Equal(t, "Kind(5)", Kind(5).String())

	var k Kind
	require.NoError(t, k.UnmarshalText([]byte("torus")))
	assert.Equal(t, KindTorus, k)
	assert.ErrorIs(t, k.UnmarshalText([]byte("cube")), ErrUnknownKind)
	assert.Equal(t, KindTorus, k, "failed parse leaves the kind unchanged")
}

func TestKindFlagValue(t *testing.T) {
	var k Kind
	require.NoError(t, k.Set("Sphere"))
	assert.Equal(t, KindSphere, k)
	assert.Equal(t, "kind", k.Type())
}
