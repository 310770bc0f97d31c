// pre_processor.go implements the WGSL shader pre-processor. It replaces @oxy:
// annotations with registered struct sources or generated binding declarations and
// collects the declarations so the renderer can match GPU resources to bindings.
package shader

import (
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/oxy-surface/engine/camera"
	"github.com/Carmen-Shannon/oxy-surface/engine/model"
)

// registryEntry pairs a WGSL struct source with the type name used in generated declarations.
type registryEntry struct {
	Source string
	Type   string
}

// preProcessor is the implementation of the PreProcessor interface.
type preProcessor struct {
	structRegistry       map[AnnotationArg]registryEntry
	addressSpaceRegistry map[AnnotationArg]string

	// declarations is reset at the start of each Process call.
	declarations []Annotation
}

// PreProcessor expands @oxy: annotations in WGSL source.
type PreProcessor interface {
	// Process replaces every @oxy:include annotation with the registered struct source
	// and every @oxy:group annotation with a generated @group/@binding declaration.
	// Each struct is included at most once per call.
	//
	// Parameters:
	//   - source: the annotated WGSL source
	//
	// Returns:
	//   - string: the expanded WGSL source
	//   - error: an error if an annotation is malformed
	Process(source string) (string, error)

	// Declarations returns the group annotations collected by the most recent Process
	// call, in source order.
	Declarations() []Annotation

	// Declaration returns the collected group annotation binding varName.
	//
	// Parameters:
	//   - varName: the WGSL variable name of the binding
	//
	// Returns:
	//   - Annotation: the matching declaration
	//   - bool: false if no declaration binds varName
	Declaration(varName string) (Annotation, bool)
}

var _ PreProcessor = &preProcessor{}

// NewPreProcessor creates a PreProcessor with every engine GPU struct registered.
//
// Returns:
//   - PreProcessor: a ready-to-use pre-processor
func NewPreProcessor() PreProcessor {
	return &preProcessor{
		structRegistry: map[AnnotationArg]registryEntry{
			AnnotationArgVertex: {Source: model.GPUVertexSource, Type: "VertexInput"},
			AnnotationArgScene:  {Source: camera.GPUSceneUniformSource, Type: "SceneUniform"},
		},
		addressSpaceRegistry: map[AnnotationArg]string{
			annotationArgStorageTypeUniform:   "var<uniform>",
			annotationArgStorageTypeRead:      "var<storage, read>",
			annotationArgStorageTypeReadWrite: "var<storage, read_write>",
		},
	}
}

func (p *preProcessor) Process(source string) (string, error) {
	p.declarations = p.declarations[:0]
	included := make(map[AnnotationArg]bool)

	lines := strings.Split(source, "\n")
	out := make([]string, 0, len(lines))

	for i, line := range lines {
		a, err := parseAnnotation(line, i+1)
		if err != nil {
			return "", err
		}
		if a == nil {
			out = append(out, line)
			continue
		}

		switch a.Type {
		case annotationTypeInclude:
			if included[a.Args[0]] {
				continue
			}
			entry, ok := p.structRegistry[a.Args[0]]
			if !ok {
				return "", fmt.Errorf("line %d: unknown @oxy:include argument %q", a.Line, a.Args[0])
			}
			included[a.Args[0]] = true
			out = append(out, strings.TrimRight(entry.Source, "\n"))
		case AnnotationTypeBindingGroup:
			if _, dup := p.Declaration(string(a.Args[1])); dup {
				return "", fmt.Errorf("line %d: binding %q declared twice", a.Line, a.Args[1])
			}
			entry := p.structRegistry[a.Args[2]]
			out = append(out, fmt.Sprintf("@group(%d) @binding(%d) %s %s: %s;",
				*a.Group, *a.Binding, p.addressSpaceRegistry[a.Args[0]], a.Args[1], entry.Type))
			p.declarations = append(p.declarations, *a)
		}
	}
	return strings.Join(out, "\n"), nil
}

func (p *preProcessor) Declarations() []Annotation {
	return p.declarations
}

func (p *preProcessor) Declaration(varName string) (Annotation, bool) {
	for _, d := range p.declarations {
		if string(d.Args[1]) == varName {
			return d, true
		}
	}
	return Annotation{}, false
}
