package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestOrgIDFromCtx(t *testing.T) {
	t.Run("round-trips through WithOrgID", func(t *testing.T) {
		orgID := uuid.New()
		got, err := OrgIDFromCtx(WithOrgID(context.Background(), orgID))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != orgID {
			t.Fatalf("expected %v, got %v", orgID, got)
		}
	})

	t.Run("bare context has no org", func(t *testing.T) {
		if _, err := OrgIDFromCtx(context.Background()); !errors.Is(err, ErrOrgIDNotFound) {
			t.Fatalf("expected ErrOrgIDNotFound, got %v", err)
		}
	})

	t.Run("nil UUID counts as unauthenticated", func(t *testing.T) {
		ctx := WithOrgID(context.Background(), uuid.Nil)
		if _, err := OrgIDFromCtx(ctx); !errors.Is(err, ErrOrgIDNotFound) {
			t.Fatalf("expected ErrOrgIDNotFound for uuid.Nil, got %v", err)
		}
	})

	t.Run("contexts stay isolated", func(t *testing.T) {
		org1, org2 := uuid.New(), uuid.New()
		got1, _ := OrgIDFromCtx(WithOrgID(context.Background(), org1))
		got2, _ := OrgIDFromCtx(WithOrgID(context.Background(), org2))
		if got1 != org1 || got2 != org2 {
			t.Fatalf("contexts leaked: %v/%v vs %v/%v", got1, org1, got2, org2)
		}
	})
}
