package catalog

import (
	"context"
	"strings"

	"github.com/spf13/cast"
	"go.uber.org/zap"
)

// TagStore provides the join-table primitives the reconciler works against.
// Attach must be idempotent: attaching an already-associated tag is a no-op.
type TagStore interface {
	// CurrentTagIDs returns the tag ids currently associated with a product
	CurrentTagIDs(ctx context.Context, productID int64) ([]int64, error)

	// Attach inserts join rows for the given tag ids, ignoring duplicates
	Attach(ctx context.Context, productID int64, tagIDs []int64) error

	// Detach removes the join rows for the given tag ids
	Detach(ctx context.Context, productID int64, tagIDs []int64) error
}

// TagReconciler moves a product's tag associations to a target set using
// the minimal detach plus a full-target attach.
type TagReconciler struct {
	store TagStore
}

func NewTagReconciler(store TagStore) *TagReconciler {
	return &TagReconciler{store: store}
}

// ParseTagIDs splits a delimiter-separated id submission into tag ids.
// Tokens are trimmed, empty and non-numeric tokens are dropped, duplicates
// collapse. An empty or absent submission yields an empty target set.
func ParseTagIDs(raw string) []int64 {
	ids := make([]int64, 0, 4)
	seen := make(map[int64]struct{}, 4)
	for _, token := range strings.Split(raw, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		id, err := cast.ToInt64E(token)
		if err != nil {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}

// DiffTags returns the ids present in current but absent from target.
func DiffTags(current, target []int64) []int64 {
	inTarget := make(map[int64]struct{}, len(target))
	for _, id := range target {
		inTarget[id] = struct{}{}
	}
	toDetach := make([]int64, 0)
	for _, id := range current {
		if _, ok := inTarget[id]; !ok {
			toDetach = append(toDetach, id)
		}
	}
	return toDetach
}

// Reconcile makes the product's association set equal the target set.
// Current membership is read from the store immediately before the diff, so
// running inside a transaction-scoped store keeps the read-diff-write span
// atomic. Detach runs first, then the full target set is attached; the
// attach primitive ignores rows that already exist.
func (r *TagReconciler) Reconcile(ctx context.Context, productID int64, target []int64) error {
	current, err := r.store.CurrentTagIDs(ctx, productID)
	if err != nil {
		return err
	}

	toDetach := DiffTags(current, target)
	if len(toDetach) > 0 {
		if err := r.store.Detach(ctx, productID, toDetach); err != nil {
			return err
		}
	}

	if len(target) > 0 {
		if err := r.store.Attach(ctx, productID, target); err != nil {
			return err
		}
	}

	zap.L().Debug("reconciled product tags",
		zap.Int64("product_id", productID),
		zap.Int64s("detached", toDetach),
		zap.Int64s("target", target))
	return nil
}
