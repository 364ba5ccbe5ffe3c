package tuning

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codeready-toolchain/warehousecfg/pkg/optional"
	"github.com/codeready-toolchain/warehousecfg/pkg/period"
)

func TestNewSupervisorTuningConfigDefaults(t *testing.T) {
	cfg := NewSupervisorTuningConfig(SupervisorParams{})

	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout())
	assert.Equal(t, 80*time.Second, cfg.ShutdownTimeout())
	assert.Equal(t, 30*time.Second, cfg.OffsetFetchPeriod())
	assert.Equal(t, int64(8), cfg.ChatRetries())
	assert.False(t, cfg.WorkerThreads().IsSet())
	assert.False(t, cfg.ChatThreads().IsSet())

	// Promoted base properties
	assert.Equal(t, 1_000_000, cfg.MaxRowsInMemory())
	assert.Equal(t, 5_000_000, cfg.MaxRowsPerSegment())
	assert.Equal(t, int64(0), cfg.MaxBytesInMemory())
	assert.False(t, cfg.MaxTotalRows().IsSet())
	assert.Equal(t, 10*time.Minute, cfg.IntermediatePersistPeriod())
	assert.False(t, cfg.BasePersistDirectory().IsSet())
	assert.Equal(t, 0, cfg.MaxPendingPersists())
	assert.Equal(t, DefaultIndexSpec(), cfg.IndexSpec())
	assert.False(t, cfg.ReportParseExceptions())
	assert.Equal(t, int64(0), cfg.HandoffConditionTimeout())
	assert.False(t, cfg.ResetOffsetAutomatically())
	assert.False(t, cfg.SegmentWriteOutMediumFactory().IsSet())
	assert.False(t, cfg.IntermediateHandoffPeriod().IsSet())
	assert.False(t, cfg.LogParseExceptions())
	assert.Equal(t, math.MaxInt32, cfg.MaxParseExceptions())
	assert.Equal(t, 0, cfg.MaxSavedParseExceptions())
}

func TestNewSupervisorTuningConfigExplicitPeriods(t *testing.T) {
	cfg := NewSupervisorTuningConfig(SupervisorParams{
		HTTPTimeout:       optional.Of(period.MustParse("PT3S")),
		ShutdownTimeout:   optional.Of(period.MustParse("PT2M")),
		OffsetFetchPeriod: optional.Of(period.MustParse("PT0S")),
	})

	assert.Equal(t, 3*time.Second, cfg.HTTPTimeout())
	assert.Equal(t, 2*time.Minute, cfg.ShutdownTimeout())
	assert.Equal(t, time.Duration(0), cfg.OffsetFetchPeriod())
}

func TestNewSupervisorTuningConfigChatRetries(t *testing.T) {
	tests := []struct {
		name  string
		input optional.Value[int64]
		want  int64
	}{
		{name: "absent", input: optional.None[int64](), want: 8},
		{name: "explicit", input: optional.Of(int64(3)), want: 3},
		{name: "zero is kept", input: optional.Of(int64(0)), want: 0},
		{name: "negative is not clamped", input: optional.Of(int64(-5)), want: -5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewSupervisorTuningConfig(SupervisorParams{ChatRetries: tt.input})
			assert.Equal(t, tt.want, cfg.ChatRetries())
		})
	}
}

func TestNewSupervisorTuningConfigPassesThreadsThrough(t *testing.T) {
	cfg := NewSupervisorTuningConfig(SupervisorParams{
		WorkerThreads: optional.Of(0),
		ChatThreads:   optional.Of(-1),
	})

	assert.Equal(t, optional.Of(0), cfg.WorkerThreads())
	assert.Equal(t, optional.Of(-1), cfg.ChatThreads())
}

func TestNewBaseTuningConfigParseExceptions(t *testing.T) {
	t.Run("report parse exceptions caps limits", func(t *testing.T) {
		cfg := NewBaseTuningConfig(BaseParams{
			ReportParseExceptions:   optional.Of(true),
			MaxParseExceptions:      optional.Of(100),
			MaxSavedParseExceptions: optional.Of(10),
		})
		assert.Equal(t, 0, cfg.MaxParseExceptions())
		assert.Equal(t, 1, cfg.MaxSavedParseExceptions())
	})

	t.Run("explicit limits kept", func(t *testing.T) {
		cfg := NewBaseTuningConfig(BaseParams{
			MaxParseExceptions:      optional.Of(100),
			MaxSavedParseExceptions: optional.Of(10),
		})
		assert.Equal(t, 100, cfg.MaxParseExceptions())
		assert.Equal(t, 10, cfg.MaxSavedParseExceptions())
	})

	t.Run("partial index spec filled", func(t *testing.T) {
		cfg := NewBaseTuningConfig(BaseParams{
			IndexSpec: optional.Of(IndexSpec{Bitmap: BitmapSpec{Type: "concise"}}),
		})
		assert.Equal(t, "concise", cfg.IndexSpec().Bitmap.Type)
		assert.Equal(t, DefaultDimensionCompression, cfg.IndexSpec().DimensionCompression)
		assert.Equal(t, DefaultLongEncoding, cfg.IndexSpec().LongEncoding)
	})

	t.Run("handoff period converted", func(t *testing.T) {
		cfg := NewBaseTuningConfig(BaseParams{
			IntermediateHandoffPeriod: optional.Of(period.MustParse("PT1H")),
		})
		assert.Equal(t, optional.Of(time.Hour), cfg.IntermediateHandoffPeriod())
	})
}

func fullParams() SupervisorParams {
	return SupervisorParams{
		Base: BaseParams{
			MaxRowsInMemory:              optional.Of(75000),
			MaxBytesInMemory:             optional.Of(int64(1 << 20)),
			MaxRowsPerSegment:            optional.Of(1000),
			MaxTotalRows:                 optional.Of(int64(20000)),
			IntermediatePersistPeriod:    optional.Of(period.MustParse("PT1M")),
			BasePersistDirectory:         optional.Of("/tmp/persist"),
			MaxPendingPersists:           optional.Of(2),
			IndexSpec:                    optional.Of(DefaultIndexSpec()),
			ReportParseExceptions:        optional.Of(false),
			HandoffConditionTimeout:      optional.Of(int64(500)),
			ResetOffsetAutomatically:     optional.Of(true),
			SegmentWriteOutMediumFactory: optional.Of("offHeapMemory"),
			IntermediateHandoffPeriod:    optional.Of(period.MustParse("PT4H")),
			LogParseExceptions:           optional.Of(true),
			MaxParseExceptions:           optional.Of(50),
			MaxSavedParseExceptions:      optional.Of(5),
		},
		WorkerThreads:     optional.Of(4),
		ChatThreads:       optional.Of(2),
		ChatRetries:       optional.Of(int64(6)),
		HTTPTimeout:       optional.Of(period.MustParse("PT5S")),
		ShutdownTimeout:   optional.Of(period.MustParse("PT60S")),
		OffsetFetchPeriod: optional.Of(period.MustParse("PT15S")),
	}
}

func TestSupervisorTuningConfigEqualAndHash(t *testing.T) {
	a := NewSupervisorTuningConfig(fullParams())
	b := NewSupervisorTuningConfig(fullParams())

	assert.True(t, a.Equal(b))
	assert.True(t, b.Equal(a))
	assert.Equal(t, a.Hash(), b.Hash())

	defaults := NewSupervisorTuningConfig(SupervisorParams{})
	assert.True(t, defaults.Equal(NewSupervisorTuningConfig(SupervisorParams{})))
	assert.Equal(t, defaults.Hash(), NewSupervisorTuningConfig(SupervisorParams{}).Hash())

	// An explicit default is the same config as an absent one.
	explicit := NewSupervisorTuningConfig(SupervisorParams{
		ChatRetries: optional.Of(int64(8)),
		HTTPTimeout: optional.Of(period.MustParse("PT10S")),
	})
	assert.True(t, defaults.Equal(explicit))

	var nilCfg *SupervisorTuningConfig
	assert.False(t, a.Equal(nilCfg))
	assert.True(t, nilCfg.Equal(nil))
}

func TestSupervisorTuningConfigSingleFieldChangeBreaksEquality(t *testing.T) {
	mutations := map[string]func(p *SupervisorParams){
		"maxRowsInMemory":              func(p *SupervisorParams) { p.Base.MaxRowsInMemory = optional.Of(1) },
		"maxBytesInMemory":             func(p *SupervisorParams) { p.Base.MaxBytesInMemory = optional.Of(int64(1)) },
		"maxRowsPerSegment":            func(p *SupervisorParams) { p.Base.MaxRowsPerSegment = optional.Of(1) },
		"maxTotalRows":                 func(p *SupervisorParams) { p.Base.MaxTotalRows = optional.None[int64]() },
		"intermediatePersistPeriod":    func(p *SupervisorParams) { p.Base.IntermediatePersistPeriod = optional.Of(period.MustParse("PT2M")) },
		"basePersistDirectory":         func(p *SupervisorParams) { p.Base.BasePersistDirectory = optional.Of("/var/persist") },
		"maxPendingPersists":           func(p *SupervisorParams) { p.Base.MaxPendingPersists = optional.Of(3) },
		"indexSpec":                    func(p *SupervisorParams) { p.Base.IndexSpec = optional.Of(IndexSpec{LongEncoding: "auto"}) },
		"reportParseExceptions":        func(p *SupervisorParams) { p.Base.ReportParseExceptions = optional.Of(true) },
		"handoffConditionTimeout":      func(p *SupervisorParams) { p.Base.HandoffConditionTimeout = optional.Of(int64(1)) },
		"resetOffsetAutomatically":     func(p *SupervisorParams) { p.Base.ResetOffsetAutomatically = optional.Of(false) },
		"segmentWriteOutMediumFactory": func(p *SupervisorParams) { p.Base.SegmentWriteOutMediumFactory = optional.Of("tmpFile") },
		"intermediateHandoffPeriod":    func(p *SupervisorParams) { p.Base.IntermediateHandoffPeriod = optional.None[period.Period]() },
		"logParseExceptions":           func(p *SupervisorParams) { p.Base.LogParseExceptions = optional.Of(false) },
		"maxParseExceptions":           func(p *SupervisorParams) { p.Base.MaxParseExceptions = optional.Of(51) },
		"maxSavedParseExceptions":      func(p *SupervisorParams) { p.Base.MaxSavedParseExceptions = optional.Of(6) },
		"workerThreads":                func(p *SupervisorParams) { p.WorkerThreads = optional.None[int]() },
		"chatThreads":                  func(p *SupervisorParams) { p.ChatThreads = optional.Of(3) },
		"chatRetries":                  func(p *SupervisorParams) { p.ChatRetries = optional.Of(int64(7)) },
		"httpTimeout":                  func(p *SupervisorParams) { p.HTTPTimeout = optional.Of(period.MustParse("PT6S")) },
		"shutdownTimeout":              func(p *SupervisorParams) { p.ShutdownTimeout = optional.None[period.Period]() },
		"offsetFetchPeriod":            func(p *SupervisorParams) { p.OffsetFetchPeriod = optional.Of(period.MustParse("PT16S")) },
	}

	base := NewSupervisorTuningConfig(fullParams())
	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			p := fullParams()
			mutate(&p)
			changed := NewSupervisorTuningConfig(p)
			assert.False(t, base.Equal(changed))
			assert.NotEqual(t, base.Hash(), changed.Hash())
		})
	}
}

func TestSupervisorTuningConfigString(t *testing.T) {
	cfg := NewSupervisorTuningConfig(fullParams())
	s := cfg.String()

	assert.True(t, strings.HasPrefix(s, "SupervisorTuningConfig{maxRowsInMemory=75000, "))
	assert.True(t, strings.HasSuffix(s, ", offsetFetchPeriod=PT15S}"))
	assert.Equal(t, s, NewSupervisorTuningConfig(fullParams()).String())

	expected := []string{
		"maxRowsInMemory=75000",
		"maxRowsPerSegment=1000",
		"maxTotalRows=20000",
		"maxBytesInMemory=1048576",
		"intermediatePersistPeriod=PT60S",
		"basePersistDirectory=/tmp/persist",
		"maxPendingPersists=2",
		"indexSpec=IndexSpec{bitmap=roaring, dimensionCompression=lz4, metricCompression=lz4, longEncoding=longs}",
		"reportParseExceptions=false",
		"handoffConditionTimeout=500",
		"resetOffsetAutomatically=true",
		"segmentWriteOutMediumFactory=offHeapMemory",
		"intermediateHandoffPeriod=PT14400S",
		"logParseExceptions=true",
		"maxParseExceptions=50",
		"maxSavedParseExceptions=5",
		"workerThreads=4",
		"chatThreads=2",
		"chatRetries=6",
		"httpTimeout=PT5S",
		"shutdownTimeout=PT60S",
		"offsetFetchPeriod=PT15S",
	}

	last := -1
	for _, pair := range expected {
		assert.Equal(t, 1, strings.Count(s, pair+",")+strings.Count(s, pair+"}"), pair)
		idx := strings.Index(s, pair)
		assert.Greater(t, idx, last, "field out of order: %s", pair)
		last = idx
	}

	for _, name := range PropertyNames() {
		if name == "buildV9Directly" {
			assert.NotContains(t, s, name)
			continue
		}
		assert.Equal(t, 1, strings.Count(s, " "+name+"=")+strings.Count(s, "{"+name+"="), name)
	}
}

func TestSupervisorTuningConfigStringUnsetValues(t *testing.T) {
	s := NewSupervisorTuningConfig(SupervisorParams{}).String()

	assert.Contains(t, s, "workerThreads=null")
	assert.Contains(t, s, "chatThreads=null")
	assert.Contains(t, s, "maxTotalRows=null")
	assert.Contains(t, s, "intermediateHandoffPeriod=null")
	assert.Contains(t, s, "chatRetries=8")
	assert.Contains(t, s, "httpTimeout=PT10S")
	assert.Contains(t, s, "shutdownTimeout=PT80S")
	assert.Contains(t, s, "offsetFetchPeriod=PT30S")
}

func TestBaseTuningConfigString(t *testing.T) {
	cfg := NewBaseTuningConfig(BaseParams{})
	s := cfg.String()

	require.True(t, strings.HasPrefix(s, "BaseTuningConfig{maxRowsInMemory=1000000"))
	assert.Contains(t, s, "intermediatePersistPeriod=PT600S")
	assert.NotContains(t, s, "chatRetries")
}
