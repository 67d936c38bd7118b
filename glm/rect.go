package glm

// Rectangle2 is an axis aligned rectangle. Min is inclusive, Max is exclusive.
type Rectangle2[T numeric] struct {
	Min Vec2[T]
	Max Vec2[T]
}

func RectangleFromSize[T numeric](pos Vec2[T], size Vec2[T]) Rectangle2[T] {
	return RectangleFromPoints(pos, pos.Add(size))
}

func RectangleFromPoints[T numeric](a, b Vec2[T]) Rectangle2[T] {
	return Rectangle2[T]{
		Min: Vec2[T]{
			min(a[0], b[0]),
			min(a[1], b[1]),
		},
		Max: Vec2[T]{
			max(a[0], b[0]),
			max(a[1], b[1]),
		},
	}
}

func RectangleFromXYWH[T numeric](x, y, w, h T) Rectangle2[T] {
	return RectangleFromSize(Vec2[T]{x, y}, Vec2[T]{w, h})
}

func (r Rectangle2[T]) Extend(point Vec2[T]) Rectangle2[T] {
	return Rectangle2[T]{
		Min: Vec2[T]{min(r.Min[0], point[0]), min(r.Min[1], point[1])},
		Max: Vec2[T]{max(r.Max[0], point[0]), max(r.Max[1], point[1])},
	}
}

func (r Rectangle2[T]) Union(other Rectangle2[T]) Rectangle2[T] {
	return r.Extend(other.Min).Extend(other.Max)
}

// Intersect returns the overlapping region of both rectangles. The result
// is empty if the rectangles do not overlap.
func (r Rectangle2[T]) Intersect(other Rectangle2[T]) Rectangle2[T] {
	res := Rectangle2[T]{
		Min: Vec2[T]{max(r.Min[0], other.Min[0]), max(r.Min[1], other.Min[1])},
		Max: Vec2[T]{min(r.Max[0], other.Max[0]), min(r.Max[1], other.Max[1])},
	}

	if res.Max[0] < res.Min[0] {
		res.Max[0] = res.Min[0]
	}

	if res.Max[1] < res.Min[1] {
		res.Max[1] = res.Min[1]
	}

	return res
}

// Shrink moves all edges inwards by the given amount.
func (r Rectangle2[T]) Shrink(amount T) Rectangle2[T] {
	return Rectangle2[T]{
		Min: Vec2[T]{r.Min[0] + amount, r.Min[1] + amount},
		Max: Vec2[T]{r.Max[0] - amount, r.Max[1] - amount},
	}
}

func (r Rectangle2[T]) ContainsPoint(p Vec2[T]) bool {
	return p[0] >= r.Min[0] && p[0] < r.Max[0] &&
		p[1] >= r.Min[1] && p[1] < r.Max[1]
}

func (r Rectangle2[T]) IsEmpty() bool {
	return r.Max[0] <= r.Min[0] || r.Max[1] <= r.Min[1]
}

func (r Rectangle2[T]) Center() Vec2[T] {
	return r.Min.Add(r.Max).Div(Vec2[T]{2, 2})
}

func (r Rectangle2[T]) Size() Vec2[T] {
	return r.Max.Sub(r.Min)
}

func (r Rectangle2[T]) Width() T {
	return r.Max[0] - r.Min[0]
}

func (r Rectangle2[T]) Height() T {
	return r.Max[1] - r.Min[1]
}

func (r Rectangle2[T]) XYWH() (T, T, T, T) {
	x, y := r.Min.XY()
	w, h := r.Size().XY()
	return x, y, w, h
}
