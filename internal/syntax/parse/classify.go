package parse

// ClassifiedToken is one lexical token tagged with the LSP semantic-token
// legend type it belongs to (SPEC_FULL.md §6.2): "variable", "string",
// "number", "operator", or "function". Punctuation that carries no
// legend type (brackets, parens, semicolons) is omitted, matching how LSP
// semantic tokens are a sparse overlay, not a full token stream.
type ClassifiedToken struct {
	Start int
	End   int
	Type  string
}

// Classify tokenizes src and assigns each token its semantic-token legend
// type, for internal/lsp's semanticTokens/full and /range handlers. An
// identifier immediately followed by "(" is classified as "function"
// rather than "variable" — the same distinction a call expression makes
// structurally (SPEC_FULL.md §8 scenario 5).
func Classify(src []byte) ([]ClassifiedToken, error) {
	toks, err := newScanner(src).scanAll()
	if err != nil {
		return nil, err
	}

	var out []ClassifiedToken
	for i, t := range toks {
		typ, ok := legendType(t.typ)
		if !ok {
			continue
		}
		if t.typ == tokIdent && i+1 < len(toks) && toks[i+1].typ == tokLParen {
			typ = "function"
		}
		out = append(out, ClassifiedToken{Start: t.start, End: t.end, Type: typ})
	}
	return out, nil
}

func legendType(t tokenType) (string, bool) {
	switch t {
	case tokIdent:
		return "variable", true
	case tokNumber:
		return "number", true
	case tokString:
		return "string", true
	case tokColon, tokDot, tokPlus, tokMinus, tokStar, tokSlash, tokPercent,
		tokEqEq, tokNotEq, tokLess, tokGreater, tokLessEq, tokGreaterEq,
		tokAndAnd, tokOrOr:
		return "operator", true
	default:
		return "", false
	}
}
