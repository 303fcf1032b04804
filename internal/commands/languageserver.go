package commands

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/gorilla/websocket"

	"mage/internal/lsp"
)

// LanguageServerOptions configures `mage language-server` (SPEC_FULL.md
// §6.2 "[ADDED]" transport section).
type LanguageServerOptions struct {
	Transport string // "stdio" | "websocket"
	Addr      string // only used when Transport == "websocket"
}

// LanguageServer starts the LSP server over the requested transport. The
// stdio transport is the default editors assume; websocket exists for
// browser-hosted clients and is grounded on the teacher's webclient
// package's use of gorilla/websocket for a long-lived duplex connection.
func LanguageServer(ctx context.Context, opts LanguageServerOptions) error {
	switch opts.Transport {
	case "", "stdio":
		return lsp.NewServer(os.Stdin, os.Stdout).Start(ctx)
	case "websocket":
		return serveWebsocket(ctx, opts.Addr)
	default:
		return fmt.Errorf("mage: unknown --transport %q (want stdio or websocket)", opts.Transport)
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

func serveWebsocket(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		rw := &wsStream{conn: conn}
		_ = lsp.NewServer(rw, rw).Start(ctx)
	})

	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		<-ctx.Done()
		srv.Close()
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// wsStream adapts a message-oriented *websocket.Conn to the byte-stream
// io.Reader/io.Writer the LSP server's Content-Length framing expects,
// by keeping one in-flight reader between Read calls.
type wsStream struct {
	conn   *websocket.Conn
	reader io.Reader
}

func (s *wsStream) Read(p []byte) (int, error) {
	for s.reader == nil {
		_, r, err := s.conn.NextReader()
		if err != nil {
			return 0, err
		}
		s.reader = r
	}
	n, err := s.reader.Read(p)
	if err == io.EOF {
		s.reader = nil
		err = nil
		if n == 0 {
			return s.Read(p)
		}
	}
	return n, err
}

func (s *wsStream) Write(p []byte) (int, error) {
	w, err := s.conn.NextWriter(websocket.TextMessage)
	if err != nil {
		return 0, err
	}
	defer w.Close()
	return w.Write(p)
}
