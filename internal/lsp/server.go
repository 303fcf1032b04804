// Package lsp implements the SPEC_FULL.md §6.2 language server: JSON-RPC
// over Content-Length-framed messages, hand-rolled the same way the
// teacher's own LSP implementation frames and dispatches messages (no
// JSON-RPC library), just re-pointed at mage's diagnostics, completion,
// definition, references, and semantic-tokens capabilities instead of
// Sentra's.
package lsp

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"mage/internal/flatten"
	"mage/internal/merrors"
	"mage/internal/reporting"
	"mage/internal/syntax"
	"mage/internal/syntax/parse"
)

const jsonrpcVersion = "2.0"

// languageID and scheme are the registration pattern SPEC_FULL.md §6.2
// names: files with language identifier "mage", scheme "file".
const (
	languageID = "mage"
	scheme     = "file"
)

// semanticTokenTypes is the fixed legend SPEC_FULL.md §6.2 names, with no
// modifiers. Index position is the type's encoded value in a semantic
// tokens response.
var semanticTokenTypes = []string{"variable", "string", "number", "operator", "function"}

// Server is the mage language server: one JSON-RPC loop over a single
// transport (stdio by default; internal/commands wires an optional
// websocket transport per SPEC_FULL.md §6.2).
type Server struct {
	in      *bufio.Reader
	out     io.Writer
	mu      sync.Mutex
	docs    map[string]*Document
	lang    *syntax.Language
	running bool
}

// Document is one open text document tracked by URI.
type Document struct {
	URI     string
	Content string
	Version int
}

// NewServer returns a server reading JSON-RPC messages from in and
// writing responses/notifications to out.
func NewServer(in io.Reader, out io.Writer) *Server {
	return &Server{
		in:   bufio.NewReader(in),
		out:  out,
		docs: make(map[string]*Document),
		lang: syntax.NewLanguage(),
	}
}

// Start runs the server's message loop until "exit" or ctx is done.
func (s *Server) Start(ctx context.Context) error {
	s.running = true
	for s.running {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			if err := s.handleMessage(); err != nil {
				if err == io.EOF {
					return nil
				}
				fmt.Fprintf(os.Stderr, "lsp: %v\n", err)
			}
		}
	}
	return nil
}

func (s *Server) handleMessage() error {
	contentLength := 0
	for {
		line, err := s.in.ReadString('\n')
		if err != nil {
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			break
		}
		if strings.HasPrefix(line, "Content-Length:") {
			lengthStr := strings.TrimSpace(strings.TrimPrefix(line, "Content-Length:"))
			contentLength, err = strconv.Atoi(lengthStr)
			if err != nil {
				return fmt.Errorf("invalid Content-Length: %w", err)
			}
		}
	}
	if contentLength == 0 {
		return nil
	}

	content := make([]byte, contentLength)
	if _, err := io.ReadFull(s.in, content); err != nil {
		return err
	}

	var msg message
	if err := json.Unmarshal(content, &msg); err != nil {
		return fmt.Errorf("lsp: decoding message: %w", err)
	}
	return s.dispatch(&msg)
}

type message struct {
	JSONRPC string           `json:"jsonrpc"`
	ID      *json.RawMessage `json:"id,omitempty"`
	Method  string           `json:"method,omitempty"`
	Params  json.RawMessage  `json:"params,omitempty"`
}

func (s *Server) dispatch(msg *message) error {
	switch msg.Method {
	case "initialize":
		return s.handleInitialize(msg)
	case "initialized":
		return nil
	case "shutdown":
		return s.sendResponse(msg.ID, nil)
	case "exit":
		s.running = false
		return nil
	case "textDocument/didOpen":
		return s.handleDidOpen(msg)
	case "textDocument/didChange":
		return s.handleDidChange(msg)
	case "textDocument/didClose":
		return s.handleDidClose(msg)
	case "textDocument/completion":
		return s.handleCompletion(msg)
	case "textDocument/definition":
		return s.handleDefinition(msg)
	case "textDocument/references":
		return s.handleReferences(msg)
	case "textDocument/semanticTokens/full":
		return s.handleSemanticTokensFull(msg)
	case "textDocument/semanticTokens/range":
		return s.handleSemanticTokensRange(msg)
	default:
		if msg.ID != nil {
			return s.sendError(msg.ID, -32601, "method not found: "+msg.Method)
		}
		return nil
	}
}

func (s *Server) sendResponse(id *json.RawMessage, result any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeMessage(map[string]any{"jsonrpc": jsonrpcVersion, "id": id, "result": result})
}

func (s *Server) sendError(id *json.RawMessage, code int, message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeMessage(map[string]any{
		"jsonrpc": jsonrpcVersion, "id": id,
		"error": map[string]any{"code": code, "message": message},
	})
}

func (s *Server) sendNotification(method string, params any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeMessage(map[string]any{"jsonrpc": jsonrpcVersion, "method": method, "params": params})
}

func (s *Server) writeMessage(msg any) error {
	content, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	header := fmt.Sprintf("Content-Length: %d\r\n\r\n", len(content))
	if _, err := s.out.Write([]byte(header)); err != nil {
		return err
	}
	_, err = s.out.Write(content)
	return err
}

// --- initialize ---

type initializeResult struct {
	Capabilities serverCapabilities `json:"capabilities"`
}

type serverCapabilities struct {
	TextDocumentSync       int                     `json:"textDocumentSync"`
	CompletionProvider     *completionOptions      `json:"completionProvider,omitempty"`
	DefinitionProvider     bool                    `json:"definitionProvider"`
	ReferencesProvider     bool                    `json:"referencesProvider"`
	SemanticTokensProvider *semanticTokensOptions  `json:"semanticTokensProvider,omitempty"`
}

type completionOptions struct {
	TriggerCharacters []string `json:"triggerCharacters"`
	ResolveProvider   bool     `json:"resolveProvider"`
}

type semanticTokensOptions struct {
	Legend semanticTokensLegend `json:"legend"`
	Full   bool                 `json:"full"`
	Range  bool                 `json:"range"`
}

type semanticTokensLegend struct {
	TokenTypes     []string `json:"tokenTypes"`
	TokenModifiers []string `json:"tokenModifiers"`
}

// textDocumentSyncKindIncremental is LSP's TextDocumentSyncKind.Incremental.
const textDocumentSyncKindIncremental = 2

func (s *Server) handleInitialize(msg *message) error {
	return s.sendResponse(msg.ID, initializeResult{
		Capabilities: serverCapabilities{
			TextDocumentSync: textDocumentSyncKindIncremental,
			CompletionProvider: &completionOptions{
				TriggerCharacters: []string{".", "("},
				ResolveProvider:   false,
			},
			DefinitionProvider: true,
			ReferencesProvider: true,
			SemanticTokensProvider: &semanticTokensOptions{
				Legend: semanticTokensLegend{TokenTypes: semanticTokenTypes, TokenModifiers: []string{}},
				Full:   true,
				Range:  true,
			},
		},
	})
}

// --- document sync ---

type textDocumentItem struct {
	URI        string `json:"uri"`
	LanguageID string `json:"languageId"`
	Version    int    `json:"version"`
	Text       string `json:"text"`
}

type didOpenParams struct {
	TextDocument textDocumentItem `json:"textDocument"`
}

type versionedTextDocumentIdentifier struct {
	URI     string `json:"uri"`
	Version int    `json:"version"`
}

// contentChangeEvent's Range is nil for a full-document replacement and
// set for an incremental edit (LSP TextDocumentContentChangeEvent).
type contentChangeEvent struct {
	Range *lspRange `json:"range,omitempty"`
	Text  string    `json:"text"`
}

type didChangeParams struct {
	TextDocument   versionedTextDocumentIdentifier `json:"textDocument"`
	ContentChanges []contentChangeEvent            `json:"contentChanges"`
}

type textDocumentIdentifier struct {
	URI string `json:"uri"`
}

type didCloseParams struct {
	TextDocument textDocumentIdentifier `json:"textDocument"`
}

func (s *Server) handleDidOpen(msg *message) error {
	var params didOpenParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return err
	}
	s.mu.Lock()
	s.docs[params.TextDocument.URI] = &Document{
		URI: params.TextDocument.URI, Content: params.TextDocument.Text, Version: params.TextDocument.Version,
	}
	s.mu.Unlock()
	return s.publishDiagnostics(params.TextDocument.URI)
}

func (s *Server) handleDidChange(msg *message) error {
	var params didChangeParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return err
	}

	s.mu.Lock()
	doc, ok := s.docs[params.TextDocument.URI]
	if ok {
		for _, change := range params.ContentChanges {
			doc.Content = applyChange(doc.Content, change)
		}
		doc.Version = params.TextDocument.Version
	}
	s.mu.Unlock()

	return s.publishDiagnostics(params.TextDocument.URI)
}

// applyChange applies one incremental edit (or a full-document
// replacement when change.Range is nil) to content.
func applyChange(content string, change contentChangeEvent) string {
	if change.Range == nil {
		return change.Text
	}
	start := offsetOf(content, change.Range.Start)
	end := offsetOf(content, change.Range.End)
	return content[:start] + change.Text + content[end:]
}

// offsetOf and positionOf work in bytes, not runes/UTF-16 code units,
// consistent with internal/reporting's Diagnostic positions (SPEC_FULL.md
// §7 — tree nodes carry byte ranges, not line/column).
func offsetOf(content string, pos lspPosition) int {
	line, col := 0, 0
	for i := 0; i < len(content); i++ {
		if line == pos.Line && col == pos.Character {
			return i
		}
		if content[i] == '\n' {
			line++
			col = 0
		} else {
			col++
		}
	}
	return len(content)
}

func (s *Server) handleDidClose(msg *message) error {
	var params didCloseParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return err
	}
	s.mu.Lock()
	delete(s.docs, params.TextDocument.URI)
	s.mu.Unlock()
	return s.sendNotification("textDocument/publishDiagnostics", map[string]any{
		"uri": params.TextDocument.URI, "diagnostics": []any{},
	})
}

// --- diagnostics ---

type lspPosition struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

type lspRange struct {
	Start lspPosition `json:"start"`
	End   lspPosition `json:"end"`
}

func (s *Server) publishDiagnostics(uri string) error {
	s.mu.Lock()
	doc, ok := s.docs[uri]
	s.mu.Unlock()
	if !ok {
		return nil
	}

	diagnostics := []reporting.Diagnostic{}
	if err := s.check(doc.Content); err != nil {
		if merr, ok := err.(*merrors.Error); ok {
			diagnostics = append(diagnostics, reporting.FromError(merr, []byte(doc.Content)))
		}
	}

	return s.sendNotification("textDocument/publishDiagnostics", map[string]any{
		"uri": uri, "diagnostics": diagnostics,
	})
}

// check parses and flattens content, surfacing the first merrors.Error
// encountered, exactly the propagation policy SPEC_FULL.md §7 requires
// (first failure aborts; no partial IR surfaces).
func (s *Server) check(content string) error {
	src := []byte(content)
	tree, err := parse.Parse(s.lang, src)
	if err != nil {
		return err
	}
	_, err = flatten.New(s.lang, src).Flatten(tree)
	return err
}

// --- completion ---

type completionParams struct {
	TextDocument textDocumentIdentifier `json:"textDocument"`
	Position     lspPosition            `json:"position"`
}

type completionItem struct {
	Label string `json:"label"`
	Kind  int    `json:"kind"`
}

// completionItemKindVariable/Function are the LSP CompletionItemKind
// values used for the two flavors of completion this server offers.
const (
	completionItemKindVariable = 6
	completionItemKindFunction = 3
)

func (s *Server) handleCompletion(msg *message) error {
	var params completionParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return s.sendError(msg.ID, -32602, "invalid params")
	}

	s.mu.Lock()
	doc, ok := s.docs[params.TextDocument.URI]
	s.mu.Unlock()

	items := []completionItem{}
	if ok {
		toks, _ := parse.Classify([]byte(doc.Content))
		seen := make(map[string]bool)
		for _, t := range toks {
			if t.Type != "variable" && t.Type != "function" {
				continue
			}
			name := doc.Content[t.Start:t.End]
			if seen[name] {
				continue
			}
			seen[name] = true
			kind := completionItemKindVariable
			if t.Type == "function" {
				kind = completionItemKindFunction
			}
			items = append(items, completionItem{Label: name, Kind: kind})
		}
	}
	// Non-resolving: every item is already fully populated, so the client
	// never needs a completionItem/resolve round trip.
	return s.sendResponse(msg.ID, items)
}

// --- definition / references ---

type definitionParams struct {
	TextDocument textDocumentIdentifier `json:"textDocument"`
	Position     lspPosition            `json:"position"`
}

type location struct {
	URI   string   `json:"uri"`
	Range lspRange `json:"range"`
}

func (s *Server) handleDefinition(msg *message) error {
	var params definitionParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return s.sendError(msg.ID, -32602, "invalid params")
	}

	s.mu.Lock()
	doc, ok := s.docs[params.TextDocument.URI]
	s.mu.Unlock()
	if !ok {
		return s.sendResponse(msg.ID, nil)
	}

	word := wordAt(doc.Content, params.Position)
	if word == "" {
		return s.sendResponse(msg.ID, nil)
	}

	// The definition of an identifier is its first textual occurrence —
	// there is no scope-aware binder above the flattener's per-source
	// identifier pool, so this is a byte-scan over the document, not a
	// lookup through FlatRoot indices.
	start := firstOccurrence(doc.Content, word)
	if start < 0 {
		return s.sendResponse(msg.ID, nil)
	}
	return s.sendResponse(msg.ID, location{
		URI:   params.TextDocument.URI,
		Range: rangeOf(doc.Content, start, start+len(word)),
	})
}

type referencesParams struct {
	TextDocument textDocumentIdentifier `json:"textDocument"`
	Position     lspPosition            `json:"position"`
}

func (s *Server) handleReferences(msg *message) error {
	var params referencesParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return s.sendError(msg.ID, -32602, "invalid params")
	}

	s.mu.Lock()
	doc, ok := s.docs[params.TextDocument.URI]
	s.mu.Unlock()
	if !ok {
		return s.sendResponse(msg.ID, []location{})
	}

	word := wordAt(doc.Content, params.Position)
	if word == "" {
		return s.sendResponse(msg.ID, []location{})
	}

	var locs []location
	for _, start := range allOccurrences(doc.Content, word) {
		locs = append(locs, location{
			URI:   params.TextDocument.URI,
			Range: rangeOf(doc.Content, start, start+len(word)),
		})
	}
	return s.sendResponse(msg.ID, locs)
}

func wordAt(content string, pos lspPosition) string {
	toks, err := parse.Classify([]byte(content))
	if err != nil {
		return ""
	}
	offset := offsetOf(content, pos)
	for _, t := range toks {
		if (t.Type == "variable" || t.Type == "function") && offset >= t.Start && offset <= t.End {
			return content[t.Start:t.End]
		}
	}
	return ""
}

func firstOccurrence(content, word string) int {
	for _, start := range allOccurrences(content, word) {
		return start
	}
	return -1
}

// allOccurrences finds word boundaries in content matching word exactly
// (not merely a substring match), to avoid "x" matching inside "xs".
func allOccurrences(content, word string) []int {
	var out []int
	for i := 0; i+len(word) <= len(content); i++ {
		if content[i:i+len(word)] != word {
			continue
		}
		if i > 0 && isIdentByte(content[i-1]) {
			continue
		}
		if end := i + len(word); end < len(content) && isIdentByte(content[end]) {
			continue
		}
		out = append(out, i)
	}
	return out
}

func isIdentByte(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func rangeOf(content string, start, end int) lspRange {
	return lspRange{Start: positionOf(content, start), End: positionOf(content, end)}
}

func positionOf(content string, offset int) lspPosition {
	line, col := 0, 0
	for i := 0; i < len(content) && i < offset; i++ {
		if content[i] == '\n' {
			line++
			col = 0
		} else {
			col++
		}
	}
	return lspPosition{Line: line, Character: col}
}

// --- semantic tokens ---

type semanticTokensParams struct {
	TextDocument textDocumentIdentifier `json:"textDocument"`
	Range        *lspRange              `json:"range,omitempty"`
}

type semanticTokens struct {
	Data []int `json:"data"`
}

func (s *Server) handleSemanticTokensFull(msg *message) error {
	return s.semanticTokens(msg)
}

func (s *Server) handleSemanticTokensRange(msg *message) error {
	return s.semanticTokens(msg)
}

// semanticTokens serves both semanticTokens/full and semanticTokens/range:
// params.Range is absent for the former and set for the latter, and both
// share every other bit of response-building logic.
func (s *Server) semanticTokens(msg *message) error {
	var params semanticTokensParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return s.sendError(msg.ID, -32602, "invalid params")
	}
	bounds := params.Range

	s.mu.Lock()
	doc, ok := s.docs[params.TextDocument.URI]
	s.mu.Unlock()
	if !ok {
		return s.sendResponse(msg.ID, semanticTokens{Data: []int{}})
	}

	toks, _ := parse.Classify([]byte(doc.Content))

	var lo, hi int
	if bounds != nil {
		lo, hi = offsetOf(doc.Content, bounds.Start), offsetOf(doc.Content, bounds.End)
	} else {
		hi = len(doc.Content)
	}

	data := make([]int, 0, len(toks)*5)
	prevLine, prevStart := 0, 0
	for _, t := range toks {
		if bounds != nil && (t.Start < lo || t.End > hi) {
			continue
		}
		pos := positionOf(doc.Content, t.Start)
		deltaLine := pos.Line - prevLine
		deltaStart := pos.Character
		if deltaLine == 0 {
			deltaStart = pos.Character - prevStart
		}
		data = append(data, deltaLine, deltaStart, t.End-t.Start, typeIndex(t.Type), 0)
		prevLine, prevStart = pos.Line, pos.Character
	}
	return s.sendResponse(msg.ID, semanticTokens{Data: data})
}

func typeIndex(typ string) int {
	for i, t := range semanticTokenTypes {
		if t == typ {
			return i
		}
	}
	return 0
}
