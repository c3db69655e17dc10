package codegen

import (
	"github.com/openpid/openpid-go/pkg/schema"
)

// Generator compiles payloads and struct definitions from one schema.
// It holds the schema read-only; compilations share no mutable state, so
// a caller may compile independent payloads concurrently.
type Generator struct {
	schema *schema.Schema

	// lifetimes records which structs borrow data (strings, slices,
	// arrays of structs) and therefore carry a lifetime parameter in
	// their generated definition. Computed once at construction.
	lifetimes map[string]bool
}

// NewGenerator creates a generator for the given schema.
func NewGenerator(s *schema.Schema) *Generator {
	return &Generator{
		schema:    s,
		lifetimes: computeLifetimes(s),
	}
}

// Artifact is the result of compiling a whole schema: everything the
// project scaffolder needs to write the generated crate. Chunk order is
// deterministic (sorted by name) so repeated runs produce identical
// output.
type Artifact struct {
	Device schema.DeviceInfo

	// Structs holds one definition chunk per reusable struct, in sorted
	// name order.
	Structs []CodeChunk

	// Payloads holds one function chunk per payload, in sorted name
	// order.
	Payloads []CodeChunk
}

// CompileSchema compiles every struct definition and payload of the
// schema. The first error aborts compilation; no partial artifact is
// returned.
func (g *Generator) CompileSchema() (*Artifact, error) {
	art := &Artifact{Device: g.schema.Device}

	for _, name := range g.schema.SortedStructNames() {
		chunk, err := g.CompileStructDef(name)
		if err != nil {
			return nil, err
		}
		art.Structs = append(art.Structs, chunk)
	}

	for _, name := range g.schema.SortedPayloadNames() {
		chunk, err := g.CompilePayload(name, g.schema.Payloads[name])
		if err != nil {
			return nil, err
		}
		art.Payloads = append(art.Payloads, chunk)
	}

	return art, nil
}

// compileContext threads per-call compilation state down the recursive
// segment walk: error attribution, the accumulated field-name prefix for
// nested struct members, and the ancestor struct names used to detect
// cycles. It is passed by value and never stored.
type compileContext struct {
	// payload names the payload under compilation, for error attribution.
	payload string

	// prefix is prepended to variable names, e.g. "header." when
	// compiling the fields of a struct instance bound to "header".
	prefix string

	// ancestors lists the struct names currently being expanded, outermost
	// first. A struct reappearing in its own expansion is a cycle.
	ancestors []string
}

// child returns the context for compiling inside a struct instance: the
// instance field name extends the prefix and the struct name joins the
// ancestor chain. The ancestor slice is copied so sibling branches cannot
// observe each other's state.
func (ctx compileContext) child(field, structName string) compileContext {
	ancestors := make([]string, 0, len(ctx.ancestors)+1)
	ancestors = append(ancestors, ctx.ancestors...)
	ancestors = append(ancestors, structName)
	return compileContext{
		payload:   ctx.payload,
		prefix:    ctx.prefix + field + ".",
		ancestors: ancestors,
	}
}

// inCycle reports whether structName is already being expanded.
func (ctx compileContext) inCycle(structName string) bool {
	for _, a := range ctx.ancestors {
		if a == structName {
			return true
		}
	}
	return false
}

// computeLifetimes walks the struct graph once and records which structs
// contain borrowed data, directly or through nested structs. Cyclic
// references terminate the walk here and are reported properly during
// compilation.
func computeLifetimes(s *schema.Schema) map[string]bool {
	memo := make(map[string]bool, len(s.Structs))

	var visit func(name string, seen map[string]bool) bool
	visit = func(name string, seen map[string]bool) bool {
		if v, ok := memo[name]; ok {
			return v
		}
		if seen[name] {
			return false
		}
		seen[name] = true

		rs, ok := s.Struct(name)
		if !ok {
			return false
		}

		need := false
		for _, f := range rs.Fields {
			switch f.Kind {
			case schema.SegmentSized:
				if f.Sized.Kind == schema.SizedStringUTF8 {
					need = true
				}
			case schema.SegmentUnsized:
				need = true
			case schema.SegmentStruct:
				if visit(f.StructName, seen) {
					need = true
				}
			}
		}

		memo[name] = need
		return need
	}

	for name := range s.Structs {
		visit(name, make(map[string]bool))
	}
	return memo
}
