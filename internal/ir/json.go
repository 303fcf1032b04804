package ir

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// MarshalJSON for FlatRoot as a struct of its three pools.
func (r *FlatRoot) MarshalJSON() ([]byte, error) {
	type alias struct {
		Sources []*FlatSource `json:"sources"`
		Numbers []string      `json:"numbers"`
		Strings []string      `json:"strings"`
	}
	return json.Marshal(alias{Sources: r.Sources, Numbers: r.Numbers, Strings: r.Strings})
}

// MarshalJSON for FlatSource: its expressions and identifier pool.
func (s *FlatSource) MarshalJSON() ([]byte, error) {
	type alias struct {
		Expressions []FlatExpression `json:"expressions"`
		Identifiers []string         `json:"identifiers"`
	}
	return json.Marshal(alias{Expressions: s.Expressions, Identifiers: s.Identifiers})
}

// MarshalJSON for FlatOperator: the bare Rust-style variant name as a
// JSON string (SPEC_FULL.md §6).
func (o Operator) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.String())
}

var operatorByName = func() map[string]Operator {
	m := make(map[string]Operator, len(operatorNames))
	for i, name := range operatorNames {
		m[name] = Operator(i)
	}
	return m
}()

// UnmarshalJSON for FlatOperator, so round-tripped fixtures from the test
// corpus remain usable (SPEC_FULL.md §6).
func (o *Operator) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	op, ok := operatorByName[name]
	if !ok {
		return fmt.Errorf("ir: unknown operator variant %q", name)
	}
	*o = op
	return nil
}

// MarshalJSON for FlatIndex: a single-key tagged object, e.g.
// {"Source": 3}.
func (i FlatIndex) MarshalJSON() ([]byte, error) {
	var tag string
	switch i.Kind {
	case SourceIndexKind:
		tag = "Source"
	case ExpressionIndexKind:
		tag = "Expression"
	case NumberIndexKind:
		tag = "Number"
	case StringIndexKind:
		tag = "String"
	case IdentifierIndexKind:
		tag = "Identifier"
	default:
		return nil, fmt.Errorf("ir: unknown index kind %d", i.Kind)
	}
	return json.Marshal(map[string]int{tag: i.Value})
}

var indexKindByTag = map[string]IndexKind{
	"Source":     SourceIndexKind,
	"Expression": ExpressionIndexKind,
	"Number":     NumberIndexKind,
	"String":     StringIndexKind,
	"Identifier": IdentifierIndexKind,
}

// UnmarshalJSON for FlatIndex.
func (i *FlatIndex) UnmarshalJSON(data []byte) error {
	var tagged map[string]int
	if err := json.Unmarshal(data, &tagged); err != nil {
		return err
	}
	if len(tagged) != 1 {
		return fmt.Errorf("ir: FlatIndex must have exactly one tag, got %d", len(tagged))
	}
	for tag, value := range tagged {
		kind, ok := indexKindByTag[tag]
		if !ok {
			return fmt.Errorf("ir: unknown index tag %q", tag)
		}
		*i = FlatIndex{Kind: kind, Value: value}
	}
	return nil
}

// flatBinaryJSON mirrors the field names §6 requires: one (nullable),
// two, operator.
type flatBinaryJSON struct {
	One      *FlatIndex `json:"one"`
	Two      FlatIndex  `json:"two"`
	Operator Operator   `json:"operator"`
}

// MarshalJSON for FlatExpression: a single-key tagged object whose value
// is the FlatBinary, e.g. {"Additive": {"one": null, "two": ..., "operator": "Subtract"}}.
func (e FlatExpression) MarshalJSON() ([]byte, error) {
	body, err := json.Marshal(flatBinaryJSON{
		One:      e.Binary.One,
		Two:      e.Binary.Two,
		Operator: e.Binary.Operator,
	})
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	tag, err := json.Marshal(e.Kind.String())
	if err != nil {
		return nil, err
	}
	buf.Write(tag)
	buf.WriteByte(':')
	buf.Write(body)
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

var expressionKindByTag = func() map[string]ExpressionKind {
	m := make(map[string]ExpressionKind, len(expressionKindNames))
	for i, name := range expressionKindNames {
		m[name] = ExpressionKind(i)
	}
	return m
}()

// UnmarshalJSON for FlatExpression.
func (e *FlatExpression) UnmarshalJSON(data []byte) error {
	var tagged map[string]flatBinaryJSON
	if err := json.Unmarshal(data, &tagged); err != nil {
		return err
	}
	if len(tagged) != 1 {
		return fmt.Errorf("ir: FlatExpression must have exactly one tag, got %d", len(tagged))
	}
	for tag, body := range tagged {
		kind, ok := expressionKindByTag[tag]
		if !ok {
			return fmt.Errorf("ir: unknown expression tag %q", tag)
		}
		e.Kind = kind
		e.Binary = FlatBinary{One: body.One, Two: body.Two, Operator: body.Operator}
	}
	return nil
}
