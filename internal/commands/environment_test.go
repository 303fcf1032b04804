package commands

import "testing"

func TestEnvironment_NoOp(t *testing.T) {
	if err := Environment(nil); err != nil {
		t.Fatalf("Environment(nil) = %v, want nil", err)
	}
	if err := Environment([]string{"whatever"}); err != nil {
		t.Fatalf("Environment(ignored args) = %v, want nil", err)
	}
}
