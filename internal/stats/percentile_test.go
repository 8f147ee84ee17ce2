package stats

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNearestRank(t *testing.T) {
	tests := []struct {
		name   string
		values []int64
		p      float64
		want   int64
	}{
		{"SingleValueP50", []int64{42}, 50, 42},
		{"SingleValueP95", []int64{42}, 95, 42},
		{"FiveValuesP50", []int64{10, 20, 30, 40, 50}, 50, 30},
		{"FiveValuesP95", []int64{10, 20, 30, 40, 50}, 95, 50},
		{"UnsortedInput", []int64{50, 10, 40, 20, 30}, 50, 30},
		{"TwentyValuesP95", seq(1, 20), 95, 19},
		{"P0ClampsToFirst", []int64{10, 20, 30}, 0, 10},
		{"P100IsLast", []int64{10, 20, 30}, 100, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NearestRank(tt.values, tt.p)
			require.True(t, ok)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestNearestRankEmpty(t *testing.T) {
	_, ok := NearestRank(nil, 50)
	require.False(t, ok)

	_, ok = NearestRanks(nil, []float64{50, 95})
	require.False(t, ok)
}

func TestNearestRankDoesNotMutateInput(t *testing.T) {
	values := []int64{3, 1, 2}
	_, ok := NearestRank(values, 50)
	require.True(t, ok)
	require.Equal(t, []int64{3, 1, 2}, values)
}

func TestPercentileMonotonicity(t *testing.T) {
	samples := [][]int64{
		{5},
		{1, 1, 1},
		{9, 3, 7, 1, 5},
		seq(1, 100),
	}
	for _, values := range samples {
		ps, ok := NearestRanks(values, []float64{50, 95})
		require.True(t, ok)
		require.LessOrEqual(t, ps[0], ps[1])
	}
}

func seq(from, to int64) []int64 {
	out := make([]int64, 0, to-from+1)
	for v := from; v <= to; v++ {
		out = append(out, v)
	}
	return out
}
