// Package period parses ISO-8601 period literals such as "PT10S" or "P1D"
// into standard durations.
//
// Only components with a fixed length are accepted: weeks, days (24h), hours,
// minutes and seconds. Year and month components are rejected because they
// cannot be converted to a standard duration.
package period

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/sosodev/duration"
	"gopkg.in/yaml.v3"
)

var (
	// ErrInvalidPeriod indicates the literal is not a valid ISO-8601 period
	ErrInvalidPeriod = errors.New("invalid ISO-8601 period")

	// ErrNonStandard indicates the period has year or month components
	ErrNonStandard = errors.New("period has no standard duration")

	// ErrOverflow indicates the period does not fit in a time.Duration
	ErrOverflow = errors.New("period overflows duration")
)

// Period is a parsed ISO-8601 period literal.
type Period struct {
	text string
	d    time.Duration
}

// Parse parses an ISO-8601 period literal.
func Parse(text string) (Period, error) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(text), "-")
	if !strings.HasPrefix(trimmed, "P") || len(trimmed) < 3 {
		return Period{}, fmt.Errorf("%w: %q", ErrInvalidPeriod, text)
	}
	p, err := duration.Parse(strings.TrimSpace(text))
	if err != nil {
		return Period{}, fmt.Errorf("%w %q: %v", ErrInvalidPeriod, text, err)
	}
	if p.Years != 0 || p.Months != 0 {
		return Period{}, fmt.Errorf("%w: %q", ErrNonStandard, text)
	}

	secs := (((p.Weeks*7+p.Days)*24+p.Hours)*60+p.Minutes)*60 + p.Seconds
	// float64(math.MaxInt64) rounds up to 2^63, which itself does not fit.
	ns := math.Round(secs * float64(time.Second))
	if ns >= float64(math.MaxInt64) {
		return Period{}, fmt.Errorf("%w: %q", ErrOverflow, text)
	}
	d := time.Duration(ns)
	if p.Negative {
		d = -d
	}
	return Period{text: text, d: d}, nil
}

// MustParse is like Parse but panics on error. Intended for literal defaults.
func MustParse(text string) Period {
	p, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return p
}

// Duration returns the standard duration of the period.
func (p Period) Duration() time.Duration {
	return p.d
}

// String returns the literal the period was parsed from.
func (p Period) String() string {
	if p.text == "" {
		return Format(p.d)
	}
	return p.text
}

// UnmarshalJSON parses a JSON string literal.
func (p *Period) UnmarshalJSON(data []byte) error {
	text, err := strconv.Unquote(string(data))
	if err != nil {
		return fmt.Errorf("%w: expected string, got %s", ErrInvalidPeriod, data)
	}
	parsed, err := Parse(text)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// UnmarshalYAML parses a YAML scalar literal.
func (p *Period) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("%w: expected scalar at line %d", ErrInvalidPeriod, node.Line)
	}
	parsed, err := Parse(node.Value)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// MarshalJSON emits the literal.
func (p Period) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(p.String())), nil
}

// Format renders d in the canonical "PT<seconds>S" form, with a
// fraction down to the nanosecond when needed (10s -> "PT10S",
// 1.5s -> "PT1.5S", 500µs -> "PT0.0005S"). Parse(Format(d)) yields d.
func Format(d time.Duration) string {
	var b strings.Builder
	// Work on the magnitude as uint64 so math.MinInt64 does not overflow.
	mag := uint64(d)
	if d < 0 {
		b.WriteByte('-')
		mag = -mag
	}
	b.WriteString("PT")
	b.WriteString(strconv.FormatUint(mag/uint64(time.Second), 10))
	if ns := mag % uint64(time.Second); ns != 0 {
		b.WriteByte('.')
		b.WriteString(strings.TrimRight(fmt.Sprintf("%09d", ns), "0"))
	}
	b.WriteByte('S')
	return b.String()
}

// FromDuration wraps an already-resolved duration.
func FromDuration(d time.Duration) Period {
	return Period{text: Format(d), d: d}
}
