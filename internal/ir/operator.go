package ir

// Operator is the closed set of operators a FlatBinary may carry
// (SPEC_FULL.md §3). Constant and Variable only ever appear as the
// operator of an Assign expression, marking the definition kind.
type Operator int

const (
	Extract Operator = iota
	Pipe
	Multiply
	Divide
	Modulo
	Add
	Subtract
	Equal
	NotEqual
	LessThan
	GreaterThan
	LessEqual
	GreaterEqual
	And
	Or
	Constant
	Variable
)

var operatorNames = [...]string{
	Extract:      "Extract",
	Pipe:         "Pipe",
	Multiply:     "Multiply",
	Divide:       "Divide",
	Modulo:       "Modulo",
	Add:          "Add",
	Subtract:     "Subtract",
	Equal:        "Equal",
	NotEqual:     "NotEqual",
	LessThan:     "LessThan",
	GreaterThan:  "GreaterThan",
	LessEqual:    "LessEqual",
	GreaterEqual: "GreaterEqual",
	And:          "And",
	Or:           "Or",
	Constant:     "Constant",
	Variable:     "Variable",
}

// String returns the Rust-style variant name, used as-is for the JSON tag
// (SPEC_FULL.md §6).
func (o Operator) String() string {
	if int(o) < 0 || int(o) >= len(operatorNames) {
		return "Unknown"
	}
	return operatorNames[o]
}

// IsDefinitionKind reports whether o marks an Assign's definition kind
// rather than an arithmetic/comparison/logical operator.
func (o Operator) IsDefinitionKind() bool {
	return o == Constant || o == Variable
}
