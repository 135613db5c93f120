package tui

import "github.com/tailplot/tailplot/internal/model"

// Downsample reduces pts to at most 2*cols points by bucketing the time range
// into cols slots and keeping each bucket's minimum and maximum, emitted in
// chronological order. Extremes survive, so spikes stay visible at any zoom.
// The input is assumed time-ordered and is never mutated.
func Downsample(pts []model.Point, cols int) []model.Point {
	if cols <= 0 || len(pts) <= 2*cols {
		return pts
	}

	start := pts[0].Time
	total := pts[len(pts)-1].Time.Sub(start)
	if total <= 0 {
		// Every point shares one timestamp; a single bucket suffices.
		return bucketExtremes(pts)
	}

	out := make([]model.Point, 0, 2*cols)
	bucketStart := 0
	bucketIdx := 0
	for i, p := range pts {
		idx := int(int64(p.Time.Sub(start)) * int64(cols) / int64(total))
		if idx >= cols {
			idx = cols - 1
		}
		if idx != bucketIdx {
			out = append(out, bucketExtremes(pts[bucketStart:i])...)
			bucketStart = i
			bucketIdx = idx
		}
	}
	return append(out, bucketExtremes(pts[bucketStart:])...)
}

// bucketExtremes returns the min and max points of a non-empty bucket in the
// order they occurred. A single point, or a bucket whose min and max coincide,
// yields one point.
func bucketExtremes(pts []model.Point) []model.Point {
	lo, hi := 0, 0
	for i, p := range pts {
		if p.Value < pts[lo].Value {
			lo = i
		}
		if p.Value > pts[hi].Value {
			hi = i
		}
	}
	if lo == hi {
		return pts[lo : lo+1]
	}
	if lo < hi {
		return []model.Point{pts[lo], pts[hi]}
	}
	return []model.Point{pts[hi], pts[lo]}
}
