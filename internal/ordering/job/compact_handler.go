package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"

	"elearn-backend/pkg/logger"
)

// ScopeLister enumerates every scope key of one ordered table.
type ScopeLister interface {
	ListScopeKeys(ctx context.Context) ([]string, error)
}

// Reorderer reconciles one scope. Passing no desired ids compacts the
// scope to a dense 1..N without changing relative order.
type Reorderer interface {
	ApplyExplicitOrder(ctx context.Context, scopeKey string, desiredIDs []string) error
}

// Target pairs the scope enumeration of one table with its reconciler.
type Target struct {
	Scopes  ScopeLister
	Reorder Reorderer
}

// CompactPositionsPayload selects which table to compact. Empty Kind
// means all registered tables.
type CompactPositionsPayload struct {
	Kind string `json:"kind"`
}

// CompactPositionsHandler walks every scope of the registered tables and
// re-runs reconciliation with no desired order. Scopes that are already
// dense come out unchanged; scopes with gaps or legacy zero positions get
// compacted. Runs nightly so drift from deletes never accumulates.
type CompactPositionsHandler struct {
	targets map[string]Target
}

func NewCompactPositionsHandler(targets map[string]Target) *CompactPositionsHandler {
	return &CompactPositionsHandler{targets: targets}
}

func (h *CompactPositionsHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload CompactPositionsPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Error("CompactPositions: failed to unmarshal payload", err)
		return fmt.Errorf("unmarshal CompactPositions payload: %w", err)
	}

	if payload.Kind != "" {
		target, ok := h.targets[payload.Kind]
		if !ok {
			return fmt.Errorf("CompactPositions: unknown kind %q", payload.Kind)
		}
		return h.compactKind(ctx, payload.Kind, target)
	}

	var firstErr error
	for kind, target := range h.targets {
		if err := h.compactKind(ctx, kind, target); err != nil {
			logger.Error("CompactPositions: kind failed", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

func (h *CompactPositionsHandler) compactKind(ctx context.Context, kind string, target Target) error {
	scopes, err := target.Scopes.ListScopeKeys(ctx)
	if err != nil {
		return fmt.Errorf("list scopes for %s: %w", kind, err)
	}

	var failed int
	for _, scope := range scopes {
		if err := target.Reorder.ApplyExplicitOrder(ctx, scope, nil); err != nil {
			logger.Error("CompactPositions: scope failed", err)
			failed++
		}
	}

	logger.Info("CompactPositions: kind done", map[string]interface{}{
		"kind":   kind,
		"scopes": len(scopes),
		"failed": failed,
	})

	if failed > 0 {
		return fmt.Errorf("compact %s: %d of %d scopes failed", kind, failed, len(scopes))
	}
	return nil
}
