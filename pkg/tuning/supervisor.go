// Package tuning models the tuning configuration of a Kafka streaming
// ingestion supervisor: consumer thread counts, retry and timeout periods,
// and the persistence thresholds inherited from the indexing task config.
//
// Values are built once per supervisor spec document and never mutated.
// Construction only fills in defaults; range checks belong to the
// supervisor runtime that consumes the config.
package tuning

import (
	"time"

	"github.com/codeready-toolchain/warehousecfg/pkg/optional"
	"github.com/codeready-toolchain/warehousecfg/pkg/period"
)

// SupervisorType is the "type" discriminator of supervisor tuning documents.
const SupervisorType = "kafka"

// Supervisor tuning defaults applied when a property is absent.
const (
	DefaultChatRetries       int64 = 8
	DefaultHTTPTimeout             = "PT10S"
	DefaultShutdownTimeout         = "PT80S"
	DefaultOffsetFetchPeriod       = "PT30S"
)

// SupervisorParams carries the raw supervisor tuning properties.
type SupervisorParams struct {
	Base BaseParams

	WorkerThreads     optional.Value[int]
	ChatThreads       optional.Value[int]
	ChatRetries       optional.Value[int64]
	HTTPTimeout       optional.Value[period.Period]
	ShutdownTimeout   optional.Value[period.Period]
	OffsetFetchPeriod optional.Value[period.Period]
}

// SupervisorTuningConfig is the tuning config of a Kafka supervisor.
// The base task properties are promoted from the embedded BaseTuningConfig.
type SupervisorTuningConfig struct {
	BaseTuningConfig

	workerThreads     optional.Value[int]
	chatThreads       optional.Value[int]
	chatRetries       int64
	httpTimeout       time.Duration
	shutdownTimeout   time.Duration
	offsetFetchPeriod time.Duration
}

// NewSupervisorTuningConfig builds a config from p, applying defaults.
// WorkerThreads and ChatThreads stay unset when absent: their effective
// values depend on the supervisor runtime.
func NewSupervisorTuningConfig(p SupervisorParams) *SupervisorTuningConfig {
	return &SupervisorTuningConfig{
		BaseTuningConfig:  NewBaseTuningConfig(p.Base),
		workerThreads:     p.WorkerThreads,
		chatThreads:       p.ChatThreads,
		chatRetries:       p.ChatRetries.OrElse(DefaultChatRetries),
		httpTimeout:       defaultDuration(p.HTTPTimeout, DefaultHTTPTimeout),
		shutdownTimeout:   defaultDuration(p.ShutdownTimeout, DefaultShutdownTimeout),
		offsetFetchPeriod: defaultDuration(p.OffsetFetchPeriod, DefaultOffsetFetchPeriod),
	}
}

// WorkerThreads is the size of the supervisor's task-management pool.
func (c *SupervisorTuningConfig) WorkerThreads() optional.Value[int] { return c.workerThreads }

// ChatThreads is the number of threads used to talk to indexing tasks.
func (c *SupervisorTuningConfig) ChatThreads() optional.Value[int] { return c.chatThreads }

// ChatRetries is how many times a task status request is retried.
func (c *SupervisorTuningConfig) ChatRetries() int64 { return c.chatRetries }

// HTTPTimeout bounds each request to an indexing task.
func (c *SupervisorTuningConfig) HTTPTimeout() time.Duration { return c.httpTimeout }

// ShutdownTimeout bounds a graceful task shutdown.
func (c *SupervisorTuningConfig) ShutdownTimeout() time.Duration { return c.shutdownTimeout }

// OffsetFetchPeriod is how often the latest partition offsets are fetched.
func (c *SupervisorTuningConfig) OffsetFetchPeriod() time.Duration { return c.offsetFetchPeriod }
