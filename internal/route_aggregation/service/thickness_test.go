package service

import (
	"testing"

	"github.com/netroute-lab/routeview/internal/route_aggregation/domain"
	"github.com/stretchr/testify/assert"
)

func TestThicknessScale(t *testing.T) {
	counts := domain.SegmentCount{
		"cf1-cf2": {Blue: 4},
		"cf2-cf3": {Blue: 4, Red: 10},
	}
	s := NewThicknessScale(counts)

	assert.Equal(t, 0, s.Min)
	assert.Equal(t, 10, s.Max)
	assert.InDelta(t, 15.0, s.Width(10), 1e-9)
	assert.InDelta(t, 6.6, s.Width(4), 1e-9)
	assert.InDelta(t, 1.0, s.Width(0), 1e-9)
}

func TestThicknessScaleDegenerate(t *testing.T) {
	s := NewThicknessScale(domain.SegmentCount{})
	assert.Equal(t, ThicknessScale{}, s)
	assert.InDelta(t, 8.0, s.Width(0), 1e-9)

	same := NewThicknessScale(domain.SegmentCount{"cf1-cf2": {Blue: 3, Red: 3}})
	assert.InDelta(t, 8.0, same.Width(3), 1e-9)
}

func TestThicknessWidthBoundsAndOrder(t *testing.T) {
	s := ThicknessScale{Min: 2, Max: 9}
	prev := 0.0
	for n := s.Min; n <= s.Max; n++ {
		w := s.Width(n)
		assert.GreaterOrEqual(t, w, MinThickness)
		assert.LessOrEqual(t, w, MaxThickness)
		assert.Greater(t, w, prev)
		prev = w
	}
	assert.Equal(t, MinThickness, s.Width(-5))
	assert.Equal(t, MaxThickness, s.Width(50))
}
