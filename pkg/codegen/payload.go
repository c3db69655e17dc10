package codegen

import (
	"fmt"
	"strings"

	"github.com/openpid/openpid-go/pkg/schema"
)

// CompilePayload compiles one payload into a complete write function.
// Segments compile in declared order; their input variables merge in
// first-appearance order and become the function's formal parameters.
// Two segments binding the same variable name is a schema error, not a
// merge.
func (g *Generator) CompilePayload(name string, p schema.Payload) (CodeChunk, error) {
	ctx := compileContext{payload: name}

	var body strings.Builder
	var inputs []Var
	seen := make(map[string]bool)

	for _, seg := range p.Segments {
		chunk, err := g.compileSegment(ctx, seg)
		if err != nil {
			return CodeChunk{}, err
		}
		body.WriteString(indent(chunk.Code))

		for _, in := range chunk.Inputs {
			if seen[in.Name] {
				return CodeChunk{}, &DuplicateVariableError{Payload: name, Name: in.Name}
			}
			seen[in.Name] = true
			inputs = append(inputs, in)
		}
	}

	code := payloadDocs(p.Description, inputs) + payloadSignature(name, inputs) +
		body.String() + tab + "stream.align()?;\n" + tab + "Ok(())\n}\n"

	return CodeChunk{Code: code, Inputs: inputs}, nil
}

// payloadDocs builds the function doc comment: the payload description
// followed by one argument line per documented input. Undocumented inputs
// are still parameters, just not listed.
func payloadDocs(desc string, inputs []Var) string {
	var b strings.Builder
	b.WriteString(docLines(desc))

	var args []string
	for _, in := range inputs {
		if in.Desc == "" {
			continue
		}
		docText := strings.ReplaceAll(strings.TrimRight(in.Desc, "\n"), "\n", "\n///   ")
		args = append(args, fmt.Sprintf("/// * `%s` - %s\n", in.Name, docText))
	}
	if len(args) > 0 {
		if b.Len() > 0 {
			b.WriteString("///\n")
		}
		b.WriteString("/// # Arguments\n")
		for _, a := range args {
			b.WriteString(a)
		}
	}
	return b.String()
}

// payloadSignature builds the function header. The stream comes first,
// then one parameter per input in merge order.
func payloadSignature(name string, inputs []Var) string {
	params := []string{"stream: &mut BitStream<W>"}
	for _, in := range inputs {
		params = append(params, fmt.Sprintf("%s: %s", in.Name, in.Datatype))
	}
	return fmt.Sprintf("pub fn %s<W: Write>(%s) -> Result<(), W::Error> {\n", name, strings.Join(params, ", "))
}
