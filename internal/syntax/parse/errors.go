package parse

import "mage/internal/merrors"

func errAt(start, end int, format string, args ...any) error {
	return merrors.NewParseError(format, args...).At(start, end)
}
