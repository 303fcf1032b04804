package commands

import (
	"context"
	"testing"
)

func TestLanguageServer_UnknownTransportIsError(t *testing.T) {
	err := LanguageServer(context.Background(), LanguageServerOptions{Transport: "carrier-pigeon"})
	if err == nil {
		t.Fatal("want an error for an unknown transport, got nil")
	}
}
