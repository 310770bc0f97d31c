package shader

import (
	"strings"
	"testing"

	"github.com/Carmen-Shannon/oxy-surface/engine/camera"
	"github.com/Carmen-Shannon/oxy-surface/engine/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAnnotation(t *testing.T) {
	a, err := parseAnnotation("fn main() {}", 1)
	assert.NoError(t, err)
	assert.Nil(t, a)

	a, err = parseAnnotation("  //@oxy:include scene", 3)
	require.NoError(t, err)
	assert.Equal(t, annotationTypeInclude, a.Type)
	assert.Equal(t, []AnnotationArg{AnnotationArgScene}, a.Args)
	assert.Equal(t, 3, a.Line)
	assert.Nil(t, a.Group)

	a, err = parseAnnotation("// @oxy:group 1 2 storage_read things vertex", 7)
	require.NoError(t, err)
	assert.Equal(t, AnnotationTypeBindingGroup, a.Type)
	assert.Equal(t, 1, *a.Group)
	assert.Equal(t, 2, *a.Binding)
	assert.Equal(t, AnnotationArg("things"), a.Args[1])
}

func TestParseAnnotationErrors(t *testing.T) {
	for _, line := range []string{
		"//@oxy:",
		"//@oxy:include",
		"//@oxy:include light",
		"//@oxy:group 0 0 storage_uniform scene",
		"//@oxy:group x 0 storage_uniform scene scene",
		"//@oxy:group 0 y storage_uniform scene scene",
		"//@oxy:group 0 0 private scene scene",
		"//@oxy:group 0 0 storage_uniform scene camera",
		"//@oxy:provider 2 0 material",
	} {
		_, err := parseAnnotation(line, 1)
		assert.Error(t, err, line)
	}
}

func TestProcess(t *testing.T) {
	p := NewPreProcessor()
	src, err := p.Process(strings.Join([]string{
		"//@oxy:include vertex",
		"//@oxy:include scene",
		"//@oxy:include scene",
		"//@oxy:group 0 0 storage_uniform scene scene",
		"fn f() {}",
	}, "\n"))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(src, strings.TrimRight(model.GPUVertexSource, "\n")))
	assert.Equal(t, 1, strings.Count(src, "struct SceneUniform"))
	assert.Contains(t, src, strings.TrimRight(camera.GPUSceneUniformSource, "\n"))
	assert.Contains(t, src, "@group(0) @binding(0) var<uniform> scene: SceneUniform;")
	assert.True(t, strings.HasSuffix(src, "fn f() {}"))
	assert.NotContains(t, src, "@oxy:")

	require.Len(t, p.Declarations(), 1)
	d, ok := p.Declaration("scene")
	require.True(t, ok)
	assert.Equal(t, 0, *d.Group)
	assert.Equal(t, 0, *d.Binding)
	_, ok = p.Declaration("missing")
	assert.False(t, ok)
}

func TestProcessResetsDeclarations(t *testing.T) {
	p := NewPreProcessor()
	_, err := p.Process("//@oxy:group 0 0 storage_uniform scene scene")
	require.NoError(t, err)
	require.Len(t, p.Declarations(), 1)

	_, err = p.Process("fn f() {}")
	require.NoError(t, err)
	assert.Empty(t, p.Declarations())
}

func TestProcessRejectsDuplicateBinding(t *testing.T) {
	_, err := NewPreProcessor().Process("//@oxy:group 0 0 storage_uniform scene scene\n//@oxy:group 0 1 storage_uniform scene scene")
	assert.ErrorContains(t, err, "declared twice")
}

func TestProcessReportsLine(t *testing.T) {
	_, err := NewPreProcessor().Process("fn f() {}\n//@oxy:include nope")
	assert.ErrorContains(t, err, "line 2")
}
