// Package syntax defines the fixed vocabulary of concrete-syntax-tree node
// kinds the flattener recognises, and the narrow Tree/Node contract an
// external grammar parser must satisfy. Nothing in this package parses
// source text; the grammar and parser are external collaborators (see
// SPEC_FULL.md §1).
package syntax

// Kind is a numeric node-kind identifier. All comparisons in the flattener
// are by Kind, never by the node-kind name string.
type Kind uint16

// The zero Kind never names a recognised node; Language.Lookup returns it
// for any name outside the fixed vocabulary.
const unknownKind Kind = 0

// Names of every node kind the flattener recognises, grouped as in
// SPEC_FULL.md §4.1.
const (
	nameSourceFile = "source_file"
	nameSource     = "source"
	nameParen      = "parenthesize"

	nameMember         = "member"
	nameCall           = "call"
	nameMultiplicative = "multiplicative"
	nameAdditive       = "additive"
	nameComparison     = "comparison"
	nameLogical        = "logical"
	nameAssign         = "assign"

	nameBinaryNumber  = "binary"
	nameOctalNumber   = "octal"
	nameDecimalNumber = "decimal"
	nameHexNumber     = "hex"

	nameSingleQuoted = "single_quoted"
	nameDoubleQuoted = "double_quoted"
	nameIdentifier   = "identifier"

	nameExtract      = "extract"
	namePipe         = "pipe"
	nameMultiply     = "multiply"
	nameDivide       = "divide"
	nameModulo       = "modulo"
	nameAdd          = "add"
	nameSubtract     = "subtract"
	nameEqual        = "equal"
	nameNotEqual     = "not_equal"
	nameLessThan     = "less_than"
	nameGreaterThan  = "greater_than"
	nameLessEqual    = "less_equal"
	nameGreaterEqual = "greater_equal"
	nameAnd          = "and"
	nameOr           = "or"
	nameConstant     = "constant"
	nameVariable     = "variable"
)

// allNames is the ordered list backing Kind assignment; index i+1 (kind 0
// is reserved for "unknown") is the Kind for allNames[i].
var allNames = []string{
	nameSourceFile, nameSource, nameParen,
	nameMember, nameCall, nameMultiplicative, nameAdditive, nameComparison, nameLogical, nameAssign,
	nameBinaryNumber, nameOctalNumber, nameDecimalNumber, nameHexNumber,
	nameSingleQuoted, nameDoubleQuoted, nameIdentifier,
	nameExtract, namePipe, nameMultiply, nameDivide, nameModulo, nameAdd, nameSubtract,
	nameEqual, nameNotEqual, nameLessThan, nameGreaterThan, nameLessEqual, nameGreaterEqual,
	nameAnd, nameOr, nameConstant, nameVariable,
}
