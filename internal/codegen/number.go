package codegen

import (
	"strconv"
	"strings"

	"mage/internal/merrors"
)

// decodeNumber parses a radix-prefixed number token per SPEC_FULL.md §4.3:
// 0b… (base 2), 0o… (base 8), 0d… (base 10), 0x… (base 16), or the bare
// token "0". The prefix letter is case-insensitive.
func decodeNumber(token string) (int64, error) {
	if token == "0" {
		return 0, nil
	}
	if len(token) < 3 || token[0] != '0' {
		return 0, merrors.NewCompileError("malformed number literal %q", token)
	}
	var base int
	switch token[1] {
	case 'b', 'B':
		base = 2
	case 'o', 'O':
		base = 8
	case 'd', 'D':
		base = 10
	case 'x', 'X':
		base = 16
	default:
		return 0, merrors.NewCompileError("malformed number literal %q: unknown radix prefix", token)
	}
	digits := token[2:]
	if digits == "" {
		return 0, merrors.NewCompileError("malformed number literal %q: no digits", token)
	}
	v, err := strconv.ParseInt(strings.ToLower(digits), base, 64)
	if err != nil {
		return 0, merrors.NewCompileError("malformed number literal %q: %v", token, err)
	}
	return v, nil
}
