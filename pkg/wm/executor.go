package wm

import (
	"context"
	"fmt"
	"log/slog"
)

// Executor applies workload-management mutations to the resource plan store.
type Executor interface {
	AlterPool(ctx context.Context, desc *AlterPoolDesc) error
}

// ExecutorFunc adapts a function to Executor.
type ExecutorFunc func(ctx context.Context, desc *AlterPoolDesc) error

// AlterPool calls f.
func (f ExecutorFunc) AlterPool(ctx context.Context, desc *AlterPoolDesc) error {
	return f(ctx, desc)
}

// ApplyAlterPool validates desc and hands it to exec. Invalid requests never
// reach the executor.
func ApplyAlterPool(ctx context.Context, exec Executor, desc *AlterPoolDesc) error {
	if err := Validate(desc); err != nil {
		slog.Warn("Rejected pool alteration", "error", err)
		return err
	}

	log := slog.With("resource_plan", desc.ResourcePlanName(), "pool", desc.PoolPath())
	if err := exec.AlterPool(ctx, desc); err != nil {
		return fmt.Errorf("failed to alter pool %s: %w", desc.PoolPath(), err)
	}
	log.Info("Pool altered")
	return nil
}
