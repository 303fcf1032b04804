// Package reporting renders merrors values for the two front ends this
// module has: a stderr-friendly line for the CLI, and an LSP Diagnostic
// for the language server. Renamed and adapted from the teacher's
// internal/reporting package, which rendered SecurityReport/SecurityFinding
// values instead — the surface (a module that turns internal error values
// into front-end-facing text) carries over, the content does not.
package reporting

import (
	"fmt"

	"mage/internal/merrors"
)

// severityError is the LSP DiagnosticSeverity for every kind this module
// produces; all five merrors kinds abort the run they occur in (spec.md §7
// propagation policy), so none of them is ever a warning or hint.
const severityError = 1

// RenderText formats err the way the CLI writes it to stderr: the
// taxonomy kind, the message, and — if the error carries one — its byte
// range.
func RenderText(err *merrors.Error) string {
	return err.Error()
}

// Diagnostic is the subset of the LSP Diagnostic shape this module
// populates. internal/lsp serializes it directly as part of a
// textDocument/publishDiagnostics notification.
type Diagnostic struct {
	Range    Range  `json:"range"`
	Severity int    `json:"severity"`
	Message  string `json:"message"`
	Source   string `json:"source"`
}

type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

type Position struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

// FromError converts err into a Diagnostic. text is the full document the
// error's byte-range Location refers to; merrors locations are byte
// offsets, not line/column, because the tree nodes this module's parser
// boundary consumes only expose byte ranges (SPEC_FULL.md §7) — line and
// column are an LSP-only derived concern, computed here rather than
// carried by merrors itself.
func FromError(err *merrors.Error, text []byte) Diagnostic {
	start := offsetToPosition(text, err.Location.Start)
	end := offsetToPosition(text, err.Location.End)
	return Diagnostic{
		Range:    Range{Start: start, End: end},
		Severity: severityError,
		Message:  fmt.Sprintf("%s: %s", err.KindName(), err.Message),
		Source:   "mage",
	}
}

// offsetToPosition converts a byte offset into a zero-based (line,
// character) pair by scanning text up to offset. character counts bytes
// within the line, not runes or UTF-16 code units — consistent with the
// rest of this module treating source text as a byte stream throughout.
func offsetToPosition(text []byte, offset int) Position {
	if offset > len(text) {
		offset = len(text)
	}
	line, lineStart := 0, 0
	for i := 0; i < offset; i++ {
		if text[i] == '\n' {
			line++
			lineStart = i + 1
		}
	}
	return Position{Line: line, Character: offset - lineStart}
}
