package codegen

// Var is a logical variable descriptor: one generated function parameter
// or documented field.
type Var struct {
	// Name is the variable name as it appears in generated code. Inside a
	// nested struct fragment the name carries the "<field>." prefix of the
	// enclosing instance.
	Name string

	// Datatype is the generated-language type of the variable.
	Datatype string

	// Desc documents the variable. Empty means the variable is emitted as
	// a parameter but not documented.
	Desc string
}

// CodeChunk is a generated code fragment paired with its data dependencies.
type CodeChunk struct {
	// Code is the generated program text.
	Code string

	// Inputs are the variables the code consumes, in first-use order.
	// Their order becomes the generated parameter order, so it is never
	// sorted or otherwise rearranged.
	Inputs []Var

	// Outputs are the variables the code produces. Reserved for the read
	// path; write-path compilation leaves it empty.
	Outputs []Var
}

// append returns a new chunk with code concatenated and variable lists
// extended in order. Chunks are values; composition never mutates the
// receiver or the argument.
func (c CodeChunk) append(other CodeChunk) CodeChunk {
	merged := CodeChunk{
		Code:    c.Code + other.Code,
		Inputs:  make([]Var, 0, len(c.Inputs)+len(other.Inputs)),
		Outputs: make([]Var, 0, len(c.Outputs)+len(other.Outputs)),
	}
	merged.Inputs = append(append(merged.Inputs, c.Inputs...), other.Inputs...)
	merged.Outputs = append(append(merged.Outputs, c.Outputs...), other.Outputs...)
	return merged
}
