package tuning

import (
	"math"
	"time"

	"github.com/codeready-toolchain/warehousecfg/pkg/optional"
	"github.com/codeready-toolchain/warehousecfg/pkg/period"
)

// Base tuning defaults applied when a property is absent.
const (
	DefaultMaxRowsInMemory           = 1_000_000
	DefaultMaxRowsPerSegment         = 5_000_000
	DefaultIntermediatePersistPeriod = "PT10M"
	DefaultMaxParseExceptions        = math.MaxInt32
)

// BaseParams carries the raw base tuning properties. Every property may be
// absent, in which case NewBaseTuningConfig applies its default.
type BaseParams struct {
	MaxRowsInMemory              optional.Value[int]
	MaxBytesInMemory             optional.Value[int64]
	MaxRowsPerSegment            optional.Value[int]
	MaxTotalRows                 optional.Value[int64]
	IntermediatePersistPeriod    optional.Value[period.Period]
	BasePersistDirectory         optional.Value[string]
	MaxPendingPersists           optional.Value[int]
	IndexSpec                    optional.Value[IndexSpec]
	ReportParseExceptions        optional.Value[bool]
	HandoffConditionTimeout      optional.Value[int64]
	ResetOffsetAutomatically     optional.Value[bool]
	SegmentWriteOutMediumFactory optional.Value[string]
	IntermediateHandoffPeriod    optional.Value[period.Period]
	LogParseExceptions           optional.Value[bool]
	MaxParseExceptions           optional.Value[int]
	MaxSavedParseExceptions      optional.Value[int]
}

// BaseTuningConfig holds the tuning properties shared by every streaming
// indexing task: in-memory limits, persistence cadence, and parse-exception
// handling. It is immutable once constructed.
type BaseTuningConfig struct {
	maxRowsInMemory              int
	maxBytesInMemory             int64
	maxRowsPerSegment            int
	maxTotalRows                 optional.Value[int64]
	intermediatePersistPeriod    time.Duration
	basePersistDirectory         optional.Value[string]
	maxPendingPersists           int
	indexSpec                    IndexSpec
	reportParseExceptions        bool
	handoffConditionTimeout      int64
	resetOffsetAutomatically     bool
	segmentWriteOutMediumFactory optional.Value[string]
	intermediateHandoffPeriod    optional.Value[time.Duration]
	logParseExceptions           bool
	maxParseExceptions           int
	maxSavedParseExceptions      int
}

// NewBaseTuningConfig applies defaults to p. It never fails and performs no
// range checks; the indexing runtime rejects unusable values.
//
// When reportParseExceptions is set the task fails on the first bad row, so
// maxParseExceptions is forced to 0 and at most one exception is saved.
func NewBaseTuningConfig(p BaseParams) BaseTuningConfig {
	cfg := BaseTuningConfig{
		maxRowsInMemory:              p.MaxRowsInMemory.OrElse(DefaultMaxRowsInMemory),
		maxBytesInMemory:             p.MaxBytesInMemory.OrElse(0),
		maxRowsPerSegment:            p.MaxRowsPerSegment.OrElse(DefaultMaxRowsPerSegment),
		maxTotalRows:                 p.MaxTotalRows,
		intermediatePersistPeriod:    defaultDuration(p.IntermediatePersistPeriod, DefaultIntermediatePersistPeriod),
		basePersistDirectory:         p.BasePersistDirectory,
		maxPendingPersists:           p.MaxPendingPersists.OrElse(0),
		indexSpec:                    p.IndexSpec.OrElse(IndexSpec{}).withDefaults(),
		reportParseExceptions:        p.ReportParseExceptions.OrElse(false),
		handoffConditionTimeout:      p.HandoffConditionTimeout.OrElse(0),
		resetOffsetAutomatically:     p.ResetOffsetAutomatically.OrElse(false),
		segmentWriteOutMediumFactory: p.SegmentWriteOutMediumFactory,
		logParseExceptions:           p.LogParseExceptions.OrElse(false),
	}

	if hp, ok := p.IntermediateHandoffPeriod.Get(); ok {
		cfg.intermediateHandoffPeriod = optional.Of(hp.Duration())
	}

	if cfg.reportParseExceptions {
		cfg.maxParseExceptions = 0
		cfg.maxSavedParseExceptions = min(1, p.MaxSavedParseExceptions.OrElse(0))
	} else {
		cfg.maxParseExceptions = p.MaxParseExceptions.OrElse(DefaultMaxParseExceptions)
		cfg.maxSavedParseExceptions = p.MaxSavedParseExceptions.OrElse(0)
	}

	return cfg
}

// defaultDuration converts p, substituting the literal def when p is absent.
func defaultDuration(p optional.Value[period.Period], def string) time.Duration {
	return p.OrElse(period.MustParse(def)).Duration()
}

// MaxRowsInMemory is the number of rows buffered before an intermediate persist.
func (c *BaseTuningConfig) MaxRowsInMemory() int { return c.maxRowsInMemory }

// MaxBytesInMemory is the heap budget for buffered rows; 0 lets the runtime decide.
func (c *BaseTuningConfig) MaxBytesInMemory() int64 { return c.maxBytesInMemory }

func (c *BaseTuningConfig) MaxRowsPerSegment() int { return c.maxRowsPerSegment }

func (c *BaseTuningConfig) MaxTotalRows() optional.Value[int64] { return c.maxTotalRows }

func (c *BaseTuningConfig) IntermediatePersistPeriod() time.Duration {
	return c.intermediatePersistPeriod
}

// BasePersistDirectory is unset when the runtime should pick a temporary directory.
func (c *BaseTuningConfig) BasePersistDirectory() optional.Value[string] {
	return c.basePersistDirectory
}

func (c *BaseTuningConfig) MaxPendingPersists() int { return c.maxPendingPersists }

func (c *BaseTuningConfig) IndexSpec() IndexSpec { return c.indexSpec }

func (c *BaseTuningConfig) ReportParseExceptions() bool { return c.reportParseExceptions }

func (c *BaseTuningConfig) HandoffConditionTimeout() int64 { return c.handoffConditionTimeout }

func (c *BaseTuningConfig) ResetOffsetAutomatically() bool { return c.resetOffsetAutomatically }

func (c *BaseTuningConfig) SegmentWriteOutMediumFactory() optional.Value[string] {
	return c.segmentWriteOutMediumFactory
}

// IntermediateHandoffPeriod is unset when segments are only handed off at
// the end of the task.
func (c *BaseTuningConfig) IntermediateHandoffPeriod() optional.Value[time.Duration] {
	return c.intermediateHandoffPeriod
}

func (c *BaseTuningConfig) LogParseExceptions() bool { return c.logParseExceptions }

func (c *BaseTuningConfig) MaxParseExceptions() int { return c.maxParseExceptions }

func (c *BaseTuningConfig) MaxSavedParseExceptions() int { return c.maxSavedParseExceptions }
