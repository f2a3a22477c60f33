package utils

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToInt(t *testing.T) {
	tests := []struct {
		name   string
		in     any
		want   int
		wantOK bool
	}{
		{"int", 7, 7, true},
		{"float", 12.9, 12, true},
		{"json number", json.Number("42"), 42, true},
		{"numeric string", " 15 ", 15, true},
		{"decimal string", "12.0", 12, true},
		{"leading digits", "12abc", 12, true},
		{"empty string", "", 0, false},
		{"garbage", "abc", 0, false},
		{"nil", nil, 0, false},
		{"bytes", []byte("3"), 3, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ToInt(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToBool(t *testing.T) {
	assert.True(t, ToBool(true))
	assert.True(t, ToBool("TRUE"))
	assert.True(t, ToBool("1"))
	assert.True(t, ToBool(1))
	assert.False(t, ToBool("no"))
	assert.False(t, ToBool(nil))
}

func TestNullable(t *testing.T) {
	assert.Nil(t, NullableInt(nil))
	assert.Nil(t, NullableInt(""))
	assert.Equal(t, 5, *NullableInt("5"))

	assert.Nil(t, NullableString(nil))
	assert.Nil(t, NullableString(""))
	assert.Equal(t, "ACTIVE", *NullableString("ACTIVE"))
	assert.Equal(t, "3", *NullableString(float64(3)))
}
