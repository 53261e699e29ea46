package authctx

import (
	"context"
	"testing"

	"github.com/skillsenselab/quotes/internal/auth"
)

func TestSetGet(t *testing.T) {
	id := auth.Identity{UserID: "user-123", Username: "john_doe"}
	ctx := Set(context.Background(), id)

	got, ok := Get(ctx)
	if !ok {
		t.Fatal("expected identity to be present")
	}
	if got != id {
		t.Errorf("expected %+v, got %+v", id, got)
	}
}

func TestGet_Missing(t *testing.T) {
	if _, ok := Get(context.Background()); ok {
		t.Error("expected no identity in empty context")
	}
}

func TestMustGet_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for missing identity")
		}
	}()
	MustGet(context.Background())
}
