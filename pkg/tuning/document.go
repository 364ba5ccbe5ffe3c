package tuning

import (
	"encoding/json"

	"github.com/codeready-toolchain/warehousecfg/pkg/optional"
	"github.com/codeready-toolchain/warehousecfg/pkg/period"
)

// Document is the wire form of a supervisor tuning config. A nil pointer
// means the property was absent or null.
type Document struct {
	Type string `json:"type"`

	MaxRowsInMemory              *int           `json:"maxRowsInMemory,omitempty"`
	MaxBytesInMemory             *int64         `json:"maxBytesInMemory,omitempty"`
	MaxRowsPerSegment            *int           `json:"maxRowsPerSegment,omitempty"`
	MaxTotalRows                 *int64         `json:"maxTotalRows,omitempty"`
	IntermediatePersistPeriod    *period.Period `json:"intermediatePersistPeriod,omitempty"`
	BasePersistDirectory         *string        `json:"basePersistDirectory,omitempty"`
	MaxPendingPersists           *int           `json:"maxPendingPersists,omitempty"`
	IndexSpec                    *IndexSpec     `json:"indexSpec,omitempty"`
	BuildV9Directly              *bool          `json:"buildV9Directly,omitempty"`
	ReportParseExceptions        *bool          `json:"reportParseExceptions,omitempty"`
	HandoffConditionTimeout      *int64         `json:"handoffConditionTimeout,omitempty"`
	ResetOffsetAutomatically     *bool          `json:"resetOffsetAutomatically,omitempty"`
	SegmentWriteOutMediumFactory *string        `json:"segmentWriteOutMediumFactory,omitempty"`
	IntermediateHandoffPeriod    *period.Period `json:"intermediateHandoffPeriod,omitempty"`
	LogParseExceptions           *bool          `json:"logParseExceptions,omitempty"`
	MaxParseExceptions           *int           `json:"maxParseExceptions,omitempty"`
	MaxSavedParseExceptions      *int           `json:"maxSavedParseExceptions,omitempty"`

	WorkerThreads     *int           `json:"workerThreads,omitempty"`
	ChatThreads       *int           `json:"chatThreads,omitempty"`
	ChatRetries       *int64         `json:"chatRetries,omitempty"`
	HTTPTimeout       *period.Period `json:"httpTimeout,omitempty"`
	ShutdownTimeout   *period.Period `json:"shutdownTimeout,omitempty"`
	OffsetFetchPeriod *period.Period `json:"offsetFetchPeriod,omitempty"`
}

// Params converts the document into constructor parameters.
func (d *Document) Params() SupervisorParams {
	return SupervisorParams{
		Base: BaseParams{
			MaxRowsInMemory:              optional.FromPtr(d.MaxRowsInMemory),
			MaxBytesInMemory:             optional.FromPtr(d.MaxBytesInMemory),
			MaxRowsPerSegment:            optional.FromPtr(d.MaxRowsPerSegment),
			MaxTotalRows:                 optional.FromPtr(d.MaxTotalRows),
			IntermediatePersistPeriod:    optional.FromPtr(d.IntermediatePersistPeriod),
			BasePersistDirectory:         optional.FromPtr(d.BasePersistDirectory),
			MaxPendingPersists:           optional.FromPtr(d.MaxPendingPersists),
			IndexSpec:                    optional.FromPtr(d.IndexSpec),
			ReportParseExceptions:        optional.FromPtr(d.ReportParseExceptions),
			HandoffConditionTimeout:      optional.FromPtr(d.HandoffConditionTimeout),
			ResetOffsetAutomatically:     optional.FromPtr(d.ResetOffsetAutomatically),
			SegmentWriteOutMediumFactory: optional.FromPtr(d.SegmentWriteOutMediumFactory),
			IntermediateHandoffPeriod:    optional.FromPtr(d.IntermediateHandoffPeriod),
			LogParseExceptions:           optional.FromPtr(d.LogParseExceptions),
			MaxParseExceptions:           optional.FromPtr(d.MaxParseExceptions),
			MaxSavedParseExceptions:      optional.FromPtr(d.MaxSavedParseExceptions),
		},
		WorkerThreads:     optional.FromPtr(d.WorkerThreads),
		ChatThreads:       optional.FromPtr(d.ChatThreads),
		ChatRetries:       optional.FromPtr(d.ChatRetries),
		HTTPTimeout:       optional.FromPtr(d.HTTPTimeout),
		ShutdownTimeout:   optional.FromPtr(d.ShutdownTimeout),
		OffsetFetchPeriod: optional.FromPtr(d.OffsetFetchPeriod),
	}
}

// Config builds the immutable config described by the document.
func (d *Document) Config() *SupervisorTuningConfig {
	return NewSupervisorTuningConfig(d.Params())
}

// Document returns the fully resolved wire form of c: every defaulted
// property is present, properties without a default are omitted when unset.
func (c *SupervisorTuningConfig) Document() *Document {
	buildV9 := true
	d := &Document{
		Type:                         SupervisorType,
		MaxRowsInMemory:              ptr(c.maxRowsInMemory),
		MaxBytesInMemory:             ptr(c.maxBytesInMemory),
		MaxRowsPerSegment:            ptr(c.maxRowsPerSegment),
		MaxTotalRows:                 c.maxTotalRows.Ptr(),
		IntermediatePersistPeriod:    ptr(period.FromDuration(c.intermediatePersistPeriod)),
		BasePersistDirectory:         c.basePersistDirectory.Ptr(),
		MaxPendingPersists:           ptr(c.maxPendingPersists),
		IndexSpec:                    ptr(c.indexSpec),
		BuildV9Directly:              &buildV9,
		ReportParseExceptions:        ptr(c.reportParseExceptions),
		HandoffConditionTimeout:      ptr(c.handoffConditionTimeout),
		ResetOffsetAutomatically:     ptr(c.resetOffsetAutomatically),
		SegmentWriteOutMediumFactory: c.segmentWriteOutMediumFactory.Ptr(),
		LogParseExceptions:           ptr(c.logParseExceptions),
		MaxParseExceptions:           ptr(c.maxParseExceptions),
		MaxSavedParseExceptions:      ptr(c.maxSavedParseExceptions),
		WorkerThreads:                c.workerThreads.Ptr(),
		ChatThreads:                  c.chatThreads.Ptr(),
		ChatRetries:                  ptr(c.chatRetries),
		HTTPTimeout:                  ptr(period.FromDuration(c.httpTimeout)),
		ShutdownTimeout:              ptr(period.FromDuration(c.shutdownTimeout)),
		OffsetFetchPeriod:            ptr(period.FromDuration(c.offsetFetchPeriod)),
	}
	if hp, ok := c.intermediateHandoffPeriod.Get(); ok {
		d.IntermediateHandoffPeriod = ptr(period.FromDuration(hp))
	}
	return d
}

// MarshalJSON emits the resolved document.
func (c *SupervisorTuningConfig) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Document())
}

func ptr[T any](v T) *T { return &v }
