package tuning

import (
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/codeready-toolchain/warehousecfg/pkg/optional"
	"github.com/codeready-toolchain/warehousecfg/pkg/period"
)

// field maps one wire property to its decode target in Document and to the
// resolved value held by a config of type C. The tables below drive
// decoding, String, Equal and Hash, so their order is the rendering order.
type field[C any] struct {
	name  string
	bind  func(*Document) any
	value func(*C) any // nil for properties that are accepted and discarded

	// neverOnOverflow reads a period too long for a time.Duration, such as
	// the "P2147483647D" runtimes write for "never", as unset.
	neverOnOverflow bool
}

var baseFields = []field[BaseTuningConfig]{
	{
		name:  "maxRowsInMemory",
		bind:  func(d *Document) any { return &d.MaxRowsInMemory },
		value: func(c *BaseTuningConfig) any { return c.maxRowsInMemory },
	},
	{
		name:  "maxRowsPerSegment",
		bind:  func(d *Document) any { return &d.MaxRowsPerSegment },
		value: func(c *BaseTuningConfig) any { return c.maxRowsPerSegment },
	},
	{
		name:  "maxTotalRows",
		bind:  func(d *Document) any { return &d.MaxTotalRows },
		value: func(c *BaseTuningConfig) any { return c.maxTotalRows },
	},
	{
		name:  "maxBytesInMemory",
		bind:  func(d *Document) any { return &d.MaxBytesInMemory },
		value: func(c *BaseTuningConfig) any { return c.maxBytesInMemory },
	},
	{
		name:  "intermediatePersistPeriod",
		bind:  func(d *Document) any { return &d.IntermediatePersistPeriod },
		value: func(c *BaseTuningConfig) any { return c.intermediatePersistPeriod },
	},
	{
		name:  "basePersistDirectory",
		bind:  func(d *Document) any { return &d.BasePersistDirectory },
		value: func(c *BaseTuningConfig) any { return c.basePersistDirectory },
	},
	{
		name:  "maxPendingPersists",
		bind:  func(d *Document) any { return &d.MaxPendingPersists },
		value: func(c *BaseTuningConfig) any { return c.maxPendingPersists },
	},
	{
		name:  "indexSpec",
		bind:  func(d *Document) any { return &d.IndexSpec },
		value: func(c *BaseTuningConfig) any { return c.indexSpec },
	},
	{
		// Kept for reading old specs; v9 segments are always built directly.
		name: "buildV9Directly",
		bind: func(d *Document) any { return &d.BuildV9Directly },
	},
	{
		name:  "reportParseExceptions",
		bind:  func(d *Document) any { return &d.ReportParseExceptions },
		value: func(c *BaseTuningConfig) any { return c.reportParseExceptions },
	},
	{
		name:  "handoffConditionTimeout",
		bind:  func(d *Document) any { return &d.HandoffConditionTimeout },
		value: func(c *BaseTuningConfig) any { return c.handoffConditionTimeout },
	},
	{
		name:  "resetOffsetAutomatically",
		bind:  func(d *Document) any { return &d.ResetOffsetAutomatically },
		value: func(c *BaseTuningConfig) any { return c.resetOffsetAutomatically },
	},
	{
		name:  "segmentWriteOutMediumFactory",
		bind:  func(d *Document) any { return &d.SegmentWriteOutMediumFactory },
		value: func(c *BaseTuningConfig) any { return c.segmentWriteOutMediumFactory },
	},
	{
		name:            "intermediateHandoffPeriod",
		bind:            func(d *Document) any { return &d.IntermediateHandoffPeriod },
		value:           func(c *BaseTuningConfig) any { return c.intermediateHandoffPeriod },
		neverOnOverflow: true,
	},
	{
		name:  "logParseExceptions",
		bind:  func(d *Document) any { return &d.LogParseExceptions },
		value: func(c *BaseTuningConfig) any { return c.logParseExceptions },
	},
	{
		name:  "maxParseExceptions",
		bind:  func(d *Document) any { return &d.MaxParseExceptions },
		value: func(c *BaseTuningConfig) any { return c.maxParseExceptions },
	},
	{
		name:  "maxSavedParseExceptions",
		bind:  func(d *Document) any { return &d.MaxSavedParseExceptions },
		value: func(c *BaseTuningConfig) any { return c.maxSavedParseExceptions },
	},
}

var supervisorFields = []field[SupervisorTuningConfig]{
	{
		name:  "workerThreads",
		bind:  func(d *Document) any { return &d.WorkerThreads },
		value: func(c *SupervisorTuningConfig) any { return c.workerThreads },
	},
	{
		name:  "chatThreads",
		bind:  func(d *Document) any { return &d.ChatThreads },
		value: func(c *SupervisorTuningConfig) any { return c.chatThreads },
	},
	{
		name:  "chatRetries",
		bind:  func(d *Document) any { return &d.ChatRetries },
		value: func(c *SupervisorTuningConfig) any { return c.chatRetries },
	},
	{
		name:  "httpTimeout",
		bind:  func(d *Document) any { return &d.HTTPTimeout },
		value: func(c *SupervisorTuningConfig) any { return c.httpTimeout },
	},
	{
		name:  "shutdownTimeout",
		bind:  func(d *Document) any { return &d.ShutdownTimeout },
		value: func(c *SupervisorTuningConfig) any { return c.shutdownTimeout },
	},
	{
		name:  "offsetFetchPeriod",
		bind:  func(d *Document) any { return &d.OffsetFetchPeriod },
		value: func(c *SupervisorTuningConfig) any { return c.offsetFetchPeriod },
	},
}

// bindings indexes every decodable property by wire name.
var bindings = func() map[string]func(*Document) any {
	m := make(map[string]func(*Document) any, len(baseFields)+len(supervisorFields))
	for _, f := range baseFields {
		m[f.name] = f.bind
	}
	for _, f := range supervisorFields {
		m[f.name] = f.bind
	}
	return m
}()

// neverOnOverflow lists the properties whose overflowing periods mean unset.
var neverOnOverflow = func() map[string]bool {
	m := make(map[string]bool)
	for _, f := range baseFields {
		if f.neverOnOverflow {
			m[f.name] = true
		}
	}
	return m
}()

// PropertyNames returns the wire names of all decodable supervisor tuning
// properties in table order, excluding the type discriminator.
func PropertyNames() []string {
	names := make([]string, 0, len(bindings))
	for _, f := range baseFields {
		names = append(names, f.name)
	}
	for _, f := range supervisorFields {
		names = append(names, f.name)
	}
	return names
}

// formatValue renders a resolved value. Durations use the ISO form so the
// output reads the same way the document was written.
func formatValue(v any) string {
	switch v := v.(type) {
	case time.Duration:
		return period.Format(v)
	case optional.Value[time.Duration]:
		if d, ok := v.Get(); ok {
			return period.Format(d)
		}
		return "null"
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// hashValue returns 0 for unset values, like a null member.
func hashValue(v any) uint64 {
	if o, ok := v.(interface{ IsSet() bool }); ok && !o.IsSet() {
		return 0
	}
	return xxhash.Sum64String(formatValue(v))
}

func writeFields[C any](b *strings.Builder, fields []field[C], c *C, first bool) bool {
	for _, f := range fields {
		if f.value == nil {
			continue
		}
		if !first {
			b.WriteString(", ")
		}
		first = false
		b.WriteString(f.name)
		b.WriteByte('=')
		b.WriteString(formatValue(f.value(c)))
	}
	return first
}

func equalFields[C any](fields []field[C], a, b *C) bool {
	for _, f := range fields {
		if f.value == nil {
			continue
		}
		if f.value(a) != f.value(b) {
			return false
		}
	}
	return true
}

func hashFields[C any](h uint64, fields []field[C], c *C) uint64 {
	for _, f := range fields {
		if f.value == nil {
			continue
		}
		h = 31*h + hashValue(f.value(c))
	}
	return h
}

// String lists every base property in a fixed order.
func (c *BaseTuningConfig) String() string {
	var b strings.Builder
	b.WriteString("BaseTuningConfig{")
	writeFields(&b, baseFields, c, true)
	b.WriteByte('}')
	return b.String()
}

// Equal reports whether every base property matches.
func (c *BaseTuningConfig) Equal(other *BaseTuningConfig) bool {
	if c == nil || other == nil {
		return c == other
	}
	return equalFields(baseFields, c, other)
}

// Hash is consistent with Equal.
func (c *BaseTuningConfig) Hash() uint64 {
	return hashFields(1, baseFields, c)
}

// String lists every property, base properties first, in a fixed order.
func (c *SupervisorTuningConfig) String() string {
	var b strings.Builder
	b.WriteString("SupervisorTuningConfig{")
	first := writeFields(&b, baseFields, &c.BaseTuningConfig, true)
	writeFields(&b, supervisorFields, c, first)
	b.WriteByte('}')
	return b.String()
}

// Equal reports whether every property, including base properties, matches.
func (c *SupervisorTuningConfig) Equal(other *SupervisorTuningConfig) bool {
	if c == nil || other == nil {
		return c == other
	}
	return c.BaseTuningConfig.Equal(&other.BaseTuningConfig) &&
		equalFields(supervisorFields, c, other)
}

// Hash is consistent with Equal. The base hash seeds the combination and
// the supervisor properties are folded in order.
func (c *SupervisorTuningConfig) Hash() uint64 {
	return hashFields(c.BaseTuningConfig.Hash(), supervisorFields, c)
}
