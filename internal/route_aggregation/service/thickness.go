package service

import "github.com/netroute-lab/routeview/internal/route_aggregation/domain"

const (
	MinThickness = 1.0
	MaxThickness = 15.0
)

// ThicknessScale maps a traversal count to a stroke width by linear min-max
// scaling over every category of every pair.
type ThicknessScale struct {
	Min int `json:"min" yaml:"min"`
	Max int `json:"max" yaml:"max"`
}

// NewThicknessScale scans all tallies. With no pairs at all the bounds are 0.
func NewThicknessScale(counts domain.SegmentCount) ThicknessScale {
	if len(counts) == 0 {
		return ThicknessScale{}
	}
	first := true
	var s ThicknessScale
	for _, t := range counts {
		for _, c := range domain.Categories {
			v := t.Get(c)
			if first {
				s.Min, s.Max = v, v
				first = false
				continue
			}
			if v < s.Min {
				s.Min = v
			}
			if v > s.Max {
				s.Max = v
			}
		}
	}
	return s
}

func (s ThicknessScale) Width(count int) float64 {
	if s.Max == s.Min {
		return (MinThickness + MaxThickness) / 2
	}
	w := MinThickness + float64(count-s.Min)/float64(s.Max-s.Min)*(MaxThickness-MinThickness)
	if w < MinThickness {
		return MinThickness
	}
	if w > MaxThickness {
		return MaxThickness
	}
	return w
}
