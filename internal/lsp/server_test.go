package lsp

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"testing"
)

func newTestServer() (*Server, *bytes.Buffer) {
	var out bytes.Buffer
	return NewServer(strings.NewReader(""), &out), &out
}

func rawID(n int) *json.RawMessage {
	raw := json.RawMessage(strconv.Itoa(n))
	return &raw
}

// lastMessage decodes the final Content-Length-framed JSON value out of
// buf, assuming writeMessage's framing (one "Content-Length: N\r\n\r\n"
// header immediately followed by N bytes of JSON per message).
func lastMessage(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	data := buf.Bytes()
	var last map[string]any
	for len(data) > 0 {
		const marker = "\r\n\r\n"
		i := bytes.Index(data, []byte(marker))
		if i < 0 {
			break
		}
		header := strings.TrimPrefix(string(data[:i]), "Content-Length: ")
		data = data[i+len(marker):]
		n, err := strconv.Atoi(header)
		if err != nil {
			t.Fatalf("bad Content-Length header %q: %v", header, err)
		}
		var msg map[string]any
		if err := json.Unmarshal(data[:n], &msg); err != nil {
			t.Fatalf("decoding message: %v", err)
		}
		last = msg
		data = data[n:]
	}
	if last == nil {
		t.Fatalf("no message written")
	}
	return last
}

func openDoc(t *testing.T, s *Server, uri, text string) {
	t.Helper()
	params, _ := json.Marshal(didOpenParams{TextDocument: textDocumentItem{
		URI: uri, LanguageID: languageID, Version: 1, Text: text,
	}})
	if err := s.dispatch(&message{Method: "textDocument/didOpen", Params: params}); err != nil {
		t.Fatalf("didOpen: %v", err)
	}
}

func TestInitialize_AdvertisesCapabilities(t *testing.T) {
	s, out := newTestServer()
	if err := s.dispatch(&message{Method: "initialize", ID: rawID(1)}); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	resp := lastMessage(t, out)
	caps := resp["result"].(map[string]any)["capabilities"].(map[string]any)
	if caps["definitionProvider"] != true || caps["referencesProvider"] != true {
		t.Fatalf("missing definition/references capability: %+v", caps)
	}
	if caps["textDocumentSync"].(float64) != textDocumentSyncKindIncremental {
		t.Fatalf("want incremental sync, got %v", caps["textDocumentSync"])
	}
}

func TestDidOpen_PublishesNoDiagnosticsForValidSource(t *testing.T) {
	s, out := newTestServer()
	openDoc(t, s, "file:///a.mage", "x : 0d10;")
	note := lastMessage(t, out)
	if note["method"] != "textDocument/publishDiagnostics" {
		t.Fatalf("want publishDiagnostics notification, got %+v", note)
	}
	params := note["params"].(map[string]any)
	diags := params["diagnostics"].([]any)
	if len(diags) != 0 {
		t.Fatalf("want no diagnostics for valid source, got %v", diags)
	}
}

func TestDidOpen_PublishesDiagnosticForParseError(t *testing.T) {
	s, out := newTestServer()
	openDoc(t, s, "file:///bad.mage", "x : ;")
	note := lastMessage(t, out)
	params := note["params"].(map[string]any)
	diags := params["diagnostics"].([]any)
	if len(diags) != 1 {
		t.Fatalf("want exactly one diagnostic, got %v", diags)
	}
}

func TestCompletion_ListsVariablesAndFunctionsOnce(t *testing.T) {
	s, out := newTestServer()
	openDoc(t, s, "file:///a.mage", "a.b(c); a.b(c);")

	params, _ := json.Marshal(completionParams{TextDocument: textDocumentIdentifier{URI: "file:///a.mage"}})
	if err := s.dispatch(&message{Method: "textDocument/completion", ID: rawID(2), Params: params}); err != nil {
		t.Fatalf("completion: %v", err)
	}
	resp := lastMessage(t, out)
	items := resp["result"].([]any)
	labels := map[string]bool{}
	for _, raw := range items {
		item := raw.(map[string]any)
		label := item["label"].(string)
		if labels[label] {
			t.Fatalf("want each completion item once, got %q twice", label)
		}
		labels[label] = true
	}
	for _, want := range []string{"a", "b", "c"} {
		if !labels[want] {
			t.Fatalf("want completion item %q, got %v", want, labels)
		}
	}
}

func TestDefinition_FindsFirstOccurrence(t *testing.T) {
	s, out := newTestServer()
	text := "x : 0d1; y : x;"
	openDoc(t, s, "file:///a.mage", text)

	secondX := strings.LastIndex(text, "x")
	pos := positionOf(text, secondX)
	params, _ := json.Marshal(definitionParams{
		TextDocument: textDocumentIdentifier{URI: "file:///a.mage"},
		Position:     pos,
	})
	if err := s.dispatch(&message{Method: "textDocument/definition", ID: rawID(3), Params: params}); err != nil {
		t.Fatalf("definition: %v", err)
	}
	resp := lastMessage(t, out)
	result := resp["result"].(map[string]any)
	rng := result["range"].(map[string]any)
	start := rng["start"].(map[string]any)
	if int(start["character"].(float64)) != 0 {
		t.Fatalf("want definition at the first 'x' (column 0), got %v", start)
	}
}

func TestReferences_FindsAllOccurrences(t *testing.T) {
	s, out := newTestServer()
	text := "x : 0d1; y : x;"
	openDoc(t, s, "file:///a.mage", text)

	params, _ := json.Marshal(referencesParams{
		TextDocument: textDocumentIdentifier{URI: "file:///a.mage"},
		Position:     positionOf(text, 0),
	})
	if err := s.dispatch(&message{Method: "textDocument/references", ID: rawID(4), Params: params}); err != nil {
		t.Fatalf("references: %v", err)
	}
	resp := lastMessage(t, out)
	locs := resp["result"].([]any)
	if len(locs) != 2 {
		t.Fatalf("want 2 occurrences of x, got %d (%v)", len(locs), locs)
	}
}

func TestSemanticTokensFull_EncodesDeltas(t *testing.T) {
	s, out := newTestServer()
	openDoc(t, s, "file:///a.mage", "x : 0d10;")

	params, _ := json.Marshal(semanticTokensParams{TextDocument: textDocumentIdentifier{URI: "file:///a.mage"}})
	if err := s.dispatch(&message{Method: "textDocument/semanticTokens/full", ID: rawID(5), Params: params}); err != nil {
		t.Fatalf("semanticTokens/full: %v", err)
	}
	resp := lastMessage(t, out)
	result := resp["result"].(map[string]any)
	data := result["data"].([]any)
	if len(data) == 0 || len(data)%5 != 0 {
		t.Fatalf("want a non-empty multiple-of-5 data array, got %v", data)
	}
}
