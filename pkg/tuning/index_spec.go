package tuning

import "fmt"

// Index spec defaults used by the indexing runtime when a property is omitted.
const (
	DefaultBitmapType           = "roaring"
	DefaultDimensionCompression = "lz4"
	DefaultMetricCompression    = "lz4"
	DefaultLongEncoding         = "longs"
)

// BitmapSpec selects the bitmap index implementation.
type BitmapSpec struct {
	Type string `json:"type,omitempty" yaml:"type,omitempty"`
}

// IndexSpec controls how persisted segments are encoded.
type IndexSpec struct {
	Bitmap               BitmapSpec `json:"bitmap" yaml:"bitmap,omitempty"`
	DimensionCompression string     `json:"dimensionCompression,omitempty" yaml:"dimensionCompression,omitempty"`
	MetricCompression    string     `json:"metricCompression,omitempty" yaml:"metricCompression,omitempty"`
	LongEncoding         string     `json:"longEncoding,omitempty" yaml:"longEncoding,omitempty"`
}

// DefaultIndexSpec returns the built-in index spec.
func DefaultIndexSpec() IndexSpec {
	return IndexSpec{
		Bitmap:               BitmapSpec{Type: DefaultBitmapType},
		DimensionCompression: DefaultDimensionCompression,
		MetricCompression:    DefaultMetricCompression,
		LongEncoding:         DefaultLongEncoding,
	}
}

// withDefaults fills every empty property from DefaultIndexSpec.
func (s IndexSpec) withDefaults() IndexSpec {
	def := DefaultIndexSpec()
	if s.Bitmap.Type == "" {
		s.Bitmap.Type = def.Bitmap.Type
	}
	if s.DimensionCompression == "" {
		s.DimensionCompression = def.DimensionCompression
	}
	if s.MetricCompression == "" {
		s.MetricCompression = def.MetricCompression
	}
	if s.LongEncoding == "" {
		s.LongEncoding = def.LongEncoding
	}
	return s
}

func (s IndexSpec) String() string {
	return fmt.Sprintf("IndexSpec{bitmap=%s, dimensionCompression=%s, metricCompression=%s, longEncoding=%s}",
		s.Bitmap.Type, s.DimensionCompression, s.MetricCompression, s.LongEncoding)
}
