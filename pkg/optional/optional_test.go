package optional

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValue(t *testing.T) {
	t.Run("absent", func(t *testing.T) {
		v := None[int]()
		got, ok := v.Get()
		assert.False(t, ok)
		assert.Equal(t, 0, got)
		assert.False(t, v.IsSet())
		assert.Equal(t, 7, v.OrElse(7))
		assert.Nil(t, v.Ptr())
		assert.Equal(t, "null", v.String())
	})

	t.Run("present zero", func(t *testing.T) {
		v := Of(0)
		got, ok := v.Get()
		assert.True(t, ok)
		assert.Equal(t, 0, got)
		assert.Equal(t, 0, v.OrElse(7))
		require.NotNil(t, v.Ptr())
		assert.Equal(t, 0, *v.Ptr())
		assert.Equal(t, "0", v.String())
	})

	t.Run("from pointer", func(t *testing.T) {
		n := 4
		assert.Equal(t, Of(4), FromPtr(&n))
		assert.Equal(t, None[int](), FromPtr[int](nil))
	})
}

func TestValueEquality(t *testing.T) {
	assert.True(t, None[string]() == Value[string]{})
	assert.True(t, Of("fair") == Of("fair"))
	assert.False(t, Of("") == None[string]())
	assert.False(t, Of(1.5) == Of(2.5))
}

func TestValueJSON(t *testing.T) {
	type doc struct {
		Threads Value[int]    `json:"threads"`
		Policy  Value[string] `json:"policy"`
	}

	var d doc
	require.NoError(t, json.Unmarshal([]byte(`{"threads":3,"policy":null}`), &d))
	assert.Equal(t, Of(3), d.Threads)
	assert.False(t, d.Policy.IsSet())

	out, err := json.Marshal(d)
	require.NoError(t, err)
	assert.JSONEq(t, `{"threads":3,"policy":null}`, string(out))

	err = json.Unmarshal([]byte(`{"threads":"three"}`), &d)
	assert.Error(t, err)
}
