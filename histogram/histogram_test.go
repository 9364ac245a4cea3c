package histogram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		f       Format
		name    string
		columns int
	}{
		{FormatAuto, "auto", 0},
		{FormatSource, "source", 3},
		{FormatOutput, "output", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.name, tt.f.String())
			assert.True(t, tt.f.Valid())
			assert.Equal(t, tt.columns, tt.f.Columns())

			got, err := ParseFormat(" " + tt.name + " ")
			require.NoError(t, err)
			assert.Equal(t, tt.f, got)
		})
	}

	assert.False(t, Format(9).Valid())
	assert.Equal(t, "Format(9)", Format(9).String())

	_, err := ParseFormat("csv")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestNew(t *testing.T) {
	h, err := New([]int{100, 101, 102}, []int{1, 2, 3})
	require.NoError(t, err)

	assert.Equal(t, []int{0, 1, 2}, h.Rows)
	assert.Equal(t, 3, h.Len())
	assert.Equal(t, 6, h.Total())

	_, err = New([]int{100}, []int{1, 2})
	assert.ErrorIs(t, err, ErrInconsistent)

	_, err = New([]int{100, 101}, []int{1, -2})
	assert.ErrorIs(t, err, ErrMalformedRecord)
}

func TestWithCounts(t *testing.T) {
	h, err := New([]int{7, 8}, []int{1, 2})
	require.NoError(t, err)

	out, err := h.WithCounts([]int{5, 6})
	require.NoError(t, err)
	assert.Equal(t, h.Channels, out.Channels)
	assert.Equal(t, []int{5, 6}, out.Counts)
	assert.Equal(t, []int{1, 2}, h.Counts)

	_, err = h.WithCounts([]int{1})
	assert.ErrorIs(t, err, ErrInconsistent)
}
