package wm

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codeready-toolchain/warehousecfg/pkg/explain"
	"github.com/codeready-toolchain/warehousecfg/pkg/optional"
)

func TestNewAlterPoolDescRemovePolicy(t *testing.T) {
	d := NewAlterPoolDesc("plan1", "root.pool1",
		optional.Of(0.5), optional.Of(4), optional.None[string](), true, optional.None[string]())

	assert.True(t, d.IsRemoveSchedulingPolicy())
	assert.False(t, d.SchedulingPolicy().IsSet())
	assert.Equal(t, "plan1", d.ResourcePlanName())
	assert.Equal(t, "root.pool1", d.PoolPath())
	assert.Equal(t, optional.Of(0.5), d.AllocFraction())
	assert.Equal(t, optional.Of(4), d.QueryParallelism())
	assert.False(t, d.NewPath().IsSet())
}

func TestNewAlterPoolDescKeepsContradictoryInput(t *testing.T) {
	d := NewAlterPoolDesc("", "not a path",
		optional.Of(-3.0), optional.Of(-1), optional.Of("fair"), true, optional.Of(""))

	assert.Equal(t, "", d.ResourcePlanName())
	assert.Equal(t, "not a path", d.PoolPath())
	assert.Equal(t, optional.Of(-3.0), d.AllocFraction())
	assert.Equal(t, optional.Of(-1), d.QueryParallelism())
	assert.Equal(t, optional.Of("fair"), d.SchedulingPolicy())
	assert.True(t, d.IsRemoveSchedulingPolicy())
	assert.Equal(t, optional.Of(""), d.NewPath())
}

func TestAlterPoolDescEqual(t *testing.T) {
	a := NewAlterPoolDesc("plan1", "root.a", optional.Of(0.25), optional.None[int](), optional.Of("fifo"), false, optional.None[string]())
	b := NewAlterPoolDesc("plan1", "root.a", optional.Of(0.25), optional.None[int](), optional.Of("fifo"), false, optional.None[string]())
	c := NewAlterPoolDesc("plan1", "root.a", optional.Of(0.25), optional.None[int](), optional.Of("fair"), false, optional.None[string]())

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(nil))
}

func TestAlterPoolDescEqualAllocFraction(t *testing.T) {
	withFraction := func(f optional.Value[float64]) *AlterPoolDesc {
		return NewAlterPoolDesc("plan1", "root.a", f, optional.Of(2), optional.None[string](), false, optional.None[string]())
	}

	nan := withFraction(optional.Of(math.NaN()))
	assert.True(t, nan.Equal(nan))
	assert.True(t, nan.Equal(withFraction(optional.Of(math.NaN()))))
	assert.False(t, nan.Equal(withFraction(optional.Of(0.5))))
	assert.False(t, nan.Equal(withFraction(optional.None[float64]())))
	assert.True(t, withFraction(optional.None[float64]()).Equal(withFraction(optional.None[float64]())))
	assert.False(t, withFraction(optional.Of(0.0)).Equal(withFraction(optional.None[float64]())))
}

func TestAlterPoolDescExplain(t *testing.T) {
	d := NewAlterPoolDesc("plan1", "root.pool1",
		optional.Of(0.5), optional.Of(4), optional.None[string](), true, optional.None[string]())

	for _, level := range explain.AllLevels {
		t.Run(string(level), func(t *testing.T) {
			node, ok := explain.Render(level, d)
			require.True(t, ok)
			assert.Equal(t, "Alter Pool\n"+
				"  Resource plan name: plan1\n"+
				"  Pool path: root.pool1\n"+
				"  Alloc fraction: 0.5\n"+
				"  Query parallelism: 4\n"+
				"  Remove scheduling policy: true\n", node.String())
		})
	}
}

func TestAlterPoolDescExplainHidesFalseRemoveFlag(t *testing.T) {
	d := NewAlterPoolDesc("plan1", "root.pool1",
		optional.None[float64](), optional.None[int](), optional.Of("fair"), false, optional.Of("root.pool2"))

	node, ok := explain.Render(explain.LevelDefault, d)
	require.True(t, ok)

	labels := make([]string, 0, len(node.Children))
	for _, c := range node.Children {
		labels = append(labels, c.Label)
	}
	assert.Equal(t, []string{"Resource plan name", "Pool path", "Scheduling policy", "New path"}, labels)
	assert.Equal(t, "root.pool2", node.Children[3].Value)
}

func TestAlterPoolRequestRoundTrip(t *testing.T) {
	var req AlterPoolRequest
	require.NoError(t, json.Unmarshal([]byte(`{
		"resourcePlanName": "plan1",
		"poolPath": "root.pool1",
		"allocFraction": 0.5,
		"queryParallelism": 4,
		"schedulingPolicy": null,
		"removeSchedulingPolicy": true
	}`), &req))

	d := req.Desc()
	assert.True(t, d.Equal(NewAlterPoolDesc("plan1", "root.pool1",
		optional.Of(0.5), optional.Of(4), optional.None[string](), true, optional.None[string]())))
	assert.Equal(t, &req, d.Request())
}
