package utils

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToInt64(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want int64
	}{
		{"int", 7, 7},
		{"float", float64(1700000000), 1700000000},
		{"json number", json.Number("42"), 42},
		{"string", " 12 ", 12},
		{"float string", "3.9", 3},
		{"bytes", []byte("5"), 5},
		{"bool", true, 1},
		{"garbage", "abc", 0},
		{"nil", nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToInt64(tt.in))
		})
	}
}

func TestToFloat(t *testing.T) {
	f, ok := ToFloat("12.5")
	assert.True(t, ok)
	assert.Equal(t, 12.5, f)

	f, ok = ToFloat(float64(3))
	assert.True(t, ok)
	assert.Equal(t, 3.0, f)

	_, ok = ToFloat("n/a")
	assert.False(t, ok)

	_, ok = ToFloat(map[string]int{})
	assert.False(t, ok)
}

func TestToBool(t *testing.T) {
	assert.True(t, ToBool(true))
	assert.True(t, ToBool(1))
	assert.True(t, ToBool(float64(1)))
	assert.True(t, ToBool("1"))
	assert.True(t, ToBool("TRUE"))
	assert.False(t, ToBool("0"))
	assert.False(t, ToBool(0))
	assert.False(t, ToBool(nil))
}

func TestToString(t *testing.T) {
	assert.Equal(t, "abc", ToString("abc"))
	assert.Equal(t, "abc", ToString([]byte("abc")))
	assert.Equal(t, "12", ToString(12))
	assert.Equal(t, "", ToString(nil))
}

func TestNaturalLess(t *testing.T) {
	assert.True(t, NaturalLess("ACH_2", "ACH_10"))
	assert.False(t, NaturalLess("ACH_10", "ACH_2"))
	assert.True(t, NaturalLess("A", "B"))
	assert.True(t, NaturalLess("ACH", "ACH_1"))
	assert.True(t, NaturalLess("x01", "x1"))
	assert.False(t, NaturalLess("same", "same"))
}
