package syntax

// Language is the one-time computed table of node-kind identifiers for a
// language instance. It is built once and is immutable thereafter (no
// global mutable state is required — SPEC_FULL.md §9).
type Language struct {
	byName map[string]Kind
	byKind map[Kind]string

	SourceFile Kind
	Source     Kind
	Paren      Kind

	Member         Kind
	Call           Kind
	Multiplicative Kind
	Additive       Kind
	Comparison     Kind
	Logical        Kind
	Assign         Kind

	BinaryNumber  Kind
	OctalNumber   Kind
	DecimalNumber Kind
	HexNumber     Kind

	SingleQuoted Kind
	DoubleQuoted Kind
	Identifier   Kind

	Extract      Kind
	Pipe         Kind
	Multiply     Kind
	Divide       Kind
	Modulo       Kind
	Add          Kind
	Subtract     Kind
	Equal        Kind
	NotEqual     Kind
	LessThan     Kind
	GreaterThan  Kind
	LessEqual    Kind
	GreaterEqual Kind
	And          Kind
	Or           Kind
	Constant     Kind
	Variable     Kind
}

// NewLanguage computes the node-kind table once. Construct exactly one
// Language per grammar version and share it read-only thereafter.
func NewLanguage() *Language {
	l := &Language{
		byName: make(map[string]Kind, len(allNames)),
		byKind: make(map[Kind]string, len(allNames)),
	}
	for i, name := range allNames {
		k := Kind(i + 1)
		l.byName[name] = k
		l.byKind[k] = name
	}

	l.SourceFile = l.byName[nameSourceFile]
	l.Source = l.byName[nameSource]
	l.Paren = l.byName[nameParen]

	l.Member = l.byName[nameMember]
	l.Call = l.byName[nameCall]
	l.Multiplicative = l.byName[nameMultiplicative]
	l.Additive = l.byName[nameAdditive]
	l.Comparison = l.byName[nameComparison]
	l.Logical = l.byName[nameLogical]
	l.Assign = l.byName[nameAssign]

	l.BinaryNumber = l.byName[nameBinaryNumber]
	l.OctalNumber = l.byName[nameOctalNumber]
	l.DecimalNumber = l.byName[nameDecimalNumber]
	l.HexNumber = l.byName[nameHexNumber]

	l.SingleQuoted = l.byName[nameSingleQuoted]
	l.DoubleQuoted = l.byName[nameDoubleQuoted]
	l.Identifier = l.byName[nameIdentifier]

	l.Extract = l.byName[nameExtract]
	l.Pipe = l.byName[namePipe]
	l.Multiply = l.byName[nameMultiply]
	l.Divide = l.byName[nameDivide]
	l.Modulo = l.byName[nameModulo]
	l.Add = l.byName[nameAdd]
	l.Subtract = l.byName[nameSubtract]
	l.Equal = l.byName[nameEqual]
	l.NotEqual = l.byName[nameNotEqual]
	l.LessThan = l.byName[nameLessThan]
	l.GreaterThan = l.byName[nameGreaterThan]
	l.LessEqual = l.byName[nameLessEqual]
	l.GreaterEqual = l.byName[nameGreaterEqual]
	l.And = l.byName[nameAnd]
	l.Or = l.byName[nameOr]
	l.Constant = l.byName[nameConstant]
	l.Variable = l.byName[nameVariable]

	return l
}

// Lookup returns the Kind for a node-kind name, or the zero Kind if the
// name is outside the recognised vocabulary.
func (l *Language) Lookup(name string) Kind {
	return l.byName[name]
}

// Name returns the node-kind name a Kind was computed from, for error
// messages only; all logic elsewhere compares Kind values.
func (l *Language) Name(k Kind) string {
	return l.byKind[k]
}

// IsBinary reports whether k is one of the seven binary node kinds
// (SPEC_FULL.md §4.2).
func (l *Language) IsBinary(k Kind) bool {
	switch k {
	case l.Member, l.Call, l.Multiplicative, l.Additive, l.Comparison, l.Logical, l.Assign:
		return true
	default:
		return false
	}
}

// IsNumber reports whether k is one of the four number literal kinds.
func (l *Language) IsNumber(k Kind) bool {
	switch k {
	case l.BinaryNumber, l.OctalNumber, l.DecimalNumber, l.HexNumber:
		return true
	default:
		return false
	}
}

// IsString reports whether k is one of the two string literal kinds.
func (l *Language) IsString(k Kind) bool {
	return k == l.SingleQuoted || k == l.DoubleQuoted
}

// IsContainer reports whether k is source_file or source — both produce a
// FlatSource (SPEC_FULL.md §4.2 erases the distinction deliberately).
func (l *Language) IsContainer(k Kind) bool {
	return k == l.SourceFile || k == l.Source
}

// IsOperatorLeaf reports whether k is one of the seventeen leaf operator
// kinds (SPEC_FULL.md §4.1).
func (l *Language) IsOperatorLeaf(k Kind) bool {
	switch k {
	case l.Extract, l.Pipe, l.Multiply, l.Divide, l.Modulo, l.Add, l.Subtract,
		l.Equal, l.NotEqual, l.LessThan, l.GreaterThan, l.LessEqual, l.GreaterEqual,
		l.And, l.Or, l.Constant, l.Variable:
		return true
	default:
		return false
	}
}
