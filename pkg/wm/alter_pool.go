// Package wm holds the workload-management DDL descriptors handed from the
// statement compiler to the workload-management executor.
package wm

import (
	"math"

	"github.com/codeready-toolchain/warehousecfg/pkg/explain"
	"github.com/codeready-toolchain/warehousecfg/pkg/optional"
)

// AlterPoolDesc describes one ALTER POOL request against a resource plan.
// It is built once by the compiler, read by the executor, and discarded.
// The descriptor does not check its fields; see Validate.
type AlterPoolDesc struct {
	resourcePlanName       string
	poolPath               string
	allocFraction          optional.Value[float64]
	queryParallelism       optional.Value[int]
	schedulingPolicy       optional.Value[string]
	removeSchedulingPolicy bool
	newPath                optional.Value[string]
}

// NewAlterPoolDesc stores its arguments verbatim.
func NewAlterPoolDesc(
	resourcePlanName, poolPath string,
	allocFraction optional.Value[float64],
	queryParallelism optional.Value[int],
	schedulingPolicy optional.Value[string],
	removeSchedulingPolicy bool,
	newPath optional.Value[string],
) *AlterPoolDesc {
	return &AlterPoolDesc{
		resourcePlanName:       resourcePlanName,
		poolPath:               poolPath,
		allocFraction:          allocFraction,
		queryParallelism:       queryParallelism,
		schedulingPolicy:       schedulingPolicy,
		removeSchedulingPolicy: removeSchedulingPolicy,
		newPath:                newPath,
	}
}

func (d *AlterPoolDesc) ResourcePlanName() string { return d.resourcePlanName }

// PoolPath is the dot-separated path of the pool, e.g. "root.etl".
func (d *AlterPoolDesc) PoolPath() string { return d.poolPath }

func (d *AlterPoolDesc) AllocFraction() optional.Value[float64] { return d.allocFraction }

func (d *AlterPoolDesc) QueryParallelism() optional.Value[int] { return d.queryParallelism }

func (d *AlterPoolDesc) SchedulingPolicy() optional.Value[string] { return d.schedulingPolicy }

// IsRemoveSchedulingPolicy reports whether the pool's policy is to be cleared.
func (d *AlterPoolDesc) IsRemoveSchedulingPolicy() bool { return d.removeSchedulingPolicy }

// NewPath is the rename target, when the pool is being moved.
func (d *AlterPoolDesc) NewPath() optional.Value[string] { return d.newPath }

// Equal reports whether both descriptors request the same mutation.
// Two NaN alloc fractions are equal, so a descriptor always equals itself.
func (d *AlterPoolDesc) Equal(other *AlterPoolDesc) bool {
	if d == nil || other == nil {
		return d == other
	}
	return d.resourcePlanName == other.resourcePlanName &&
		d.poolPath == other.poolPath &&
		sameFraction(d.allocFraction, other.allocFraction) &&
		d.queryParallelism == other.queryParallelism &&
		d.schedulingPolicy == other.schedulingPolicy &&
		d.removeSchedulingPolicy == other.removeSchedulingPolicy &&
		d.newPath == other.newPath
}

func sameFraction(a, b optional.Value[float64]) bool {
	x, okA := a.Get()
	y, okB := b.Get()
	if okA != okB {
		return false
	}
	return !okA || x == y || (math.IsNaN(x) && math.IsNaN(y))
}

// ExplainName implements explain.Describer.
func (d *AlterPoolDesc) ExplainName() string { return "Alter Pool" }

// ExplainLevels implements explain.Describer.
func (d *AlterPoolDesc) ExplainLevels() []explain.Level { return explain.AllLevels }

// ExplainFields implements explain.Describer.
func (d *AlterPoolDesc) ExplainFields() []explain.Field {
	return []explain.Field{
		{Label: "Resource plan name", Levels: explain.AllLevels, Value: func() any { return d.resourcePlanName }},
		{Label: "Pool path", Levels: explain.AllLevels, Value: func() any { return d.poolPath }},
		{Label: "Alloc fraction", Levels: explain.AllLevels, Value: func() any { return d.allocFraction }},
		{Label: "Query parallelism", Levels: explain.AllLevels, Value: func() any { return d.queryParallelism }},
		{Label: "Scheduling policy", Levels: explain.AllLevels, Value: func() any { return d.schedulingPolicy }},
		{
			Label:             "Remove scheduling policy",
			Levels:            explain.AllLevels,
			DisplayOnlyOnTrue: true,
			Value:             func() any { return d.removeSchedulingPolicy },
		},
		{Label: "New path", Levels: explain.AllLevels, Value: func() any { return d.newPath }},
	}
}
