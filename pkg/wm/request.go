package wm

import "github.com/codeready-toolchain/warehousecfg/pkg/optional"

// AlterPoolRequest is the JSON form of an ALTER POOL request. Nil pointers
// are properties the statement does not change.
type AlterPoolRequest struct {
	ResourcePlanName       string   `json:"resourcePlanName" validate:"required"`
	PoolPath               string   `json:"poolPath" validate:"required,poolpath"`
	AllocFraction          *float64 `json:"allocFraction,omitempty" validate:"omitempty,gte=0,lte=1"`
	QueryParallelism       *int     `json:"queryParallelism,omitempty" validate:"omitempty,gte=0"`
	SchedulingPolicy       *string  `json:"schedulingPolicy,omitempty" validate:"omitempty,policy"`
	RemoveSchedulingPolicy bool     `json:"removeSchedulingPolicy,omitempty"`
	NewPath                *string  `json:"newPath,omitempty" validate:"omitempty,poolpath"`
}

// Desc builds the descriptor for the request without checking it.
func (r *AlterPoolRequest) Desc() *AlterPoolDesc {
	return NewAlterPoolDesc(
		r.ResourcePlanName,
		r.PoolPath,
		optional.FromPtr(r.AllocFraction),
		optional.FromPtr(r.QueryParallelism),
		optional.FromPtr(r.SchedulingPolicy),
		r.RemoveSchedulingPolicy,
		optional.FromPtr(r.NewPath),
	)
}

// Request returns the JSON form of d.
func (d *AlterPoolDesc) Request() *AlterPoolRequest {
	return &AlterPoolRequest{
		ResourcePlanName:       d.resourcePlanName,
		PoolPath:               d.poolPath,
		AllocFraction:          d.allocFraction.Ptr(),
		QueryParallelism:       d.queryParallelism.Ptr(),
		SchedulingPolicy:       d.schedulingPolicy.Ptr(),
		RemoveSchedulingPolicy: d.removeSchedulingPolicy,
		NewPath:                d.newPath.Ptr(),
	}
}
