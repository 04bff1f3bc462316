package service

import (
	"context"

	"go.uber.org/zap"
)

// CompletionEngine keeps a project's archived/completed state in line with
// its tasks. It runs inside the transaction of the task mutation that
// triggered it.
type CompletionEngine struct {
	deps Deps
}

func NewCompletionEngine(deps Deps) *CompletionEngine {
	return &CompletionEngine{deps: deps}
}

// Reconcile completes the project when all of its tasks are done and reverts
// an earlier completion otherwise. Projects without tasks never complete.
func (e *CompletionEngine) Reconcile(ctx context.Context, projectID uint64) error {
	project, err := e.deps.Projects.GetForUpdate(ctx, projectID)
	if err != nil {
		return err
	}

	counts, err := e.deps.Tasks.CountByProject(ctx, projectID)
	if err != nil {
		return err
	}

	if !project.Reconcile(counts, e.deps.now()) {
		return nil
	}

	if err := e.deps.Projects.Update(ctx, project); err != nil {
		return err
	}

	zap.L().Info("project completion state changed",
		zap.Uint64("project_id", project.ID),
		zap.Bool("archived", project.Archived),
		zap.Int("total_tasks", counts.Total),
		zap.Int("done_tasks", counts.Done),
	)
	return nil
}

// ReconcileAffected reconciles every distinct project among ids once.
func (e *CompletionEngine) ReconcileAffected(ctx context.Context, ids ...*uint64) error {
	seen := make(map[uint64]struct{}, len(ids))
	for _, id := range ids {
		if id == nil {
			continue
		}
		if _, ok := seen[*id]; ok {
			continue
		}
		seen[*id] = struct{}{}

		if err := e.Reconcile(ctx, *id); err != nil {
			return err
		}
	}
	return nil
}
