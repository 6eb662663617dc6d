package settings

import (
	"context"
	"testing"
)

func TestIntoAndFromContext(t *testing.T) {
	want := NewCliParams()
	want.Tree = true
	ctx := IntoContext(context.Background(), want)

	got, ok := FromContext(ctx)
	if !ok {
		t.Fatalf("expected settings in context")
	}
	if got != want {
		t.Fatalf("round trip must return the same pointer")
	}
}

func TestFromContextMissing(t *testing.T) {
	if s, ok := FromContext(context.Background()); ok || s != nil {
		t.Fatalf("empty context must report absence, got %v %v", s, ok)
	}
}
