package core

import "testing"

func TestRectIntersect(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Rect
		expected Rect
	}{
		{
			name:     "overlapping rects",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(5, 5, 10, 10),
			expected: NewRect(5, 5, 5, 5),
		},
		{
			name:     "contained rect",
			a:        NewRect(0, 0, 20, 20),
			b:        NewRect(5, 5, 5, 5),
			expected: NewRect(5, 5, 5, 5),
		},
		{
			name:     "adjacent horizontal",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(10, 0, 10, 10),
			expected: Rect{},
		},
		{
			name:     "disjoint vertical",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(0, 15, 10, 10),
			expected: Rect{},
		},
		{
			name:     "clip above the top edge",
			a:        NewRect(2, 4, 10, 10),
			b:        NewRect(3, 1, 4, 5),
			expected: NewRect(3, 4, 4, 2),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.a.Intersect(tc.b)
			if got != tc.expected {
				t.Errorf("Intersect() = %+v, expected %+v", got, tc.expected)
			}
		})
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(2, 3, 4, 2)

	tests := []struct {
		x, y     int
		expected bool
	}{
		{2, 3, true},
		{5, 4, true},
		{6, 4, false},
		{5, 5, false},
		{1, 3, false},
	}

	for _, tc := range tests {
		if got := r.Contains(tc.x, tc.y); got != tc.expected {
			t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, got, tc.expected)
		}
	}
}

func TestScaledRect(t *testing.T) {
	tests := []struct {
		name     string
		x, y     float64
		w, h     int
		sx, sy   float64
		expected Rect
	}{
		{"identity", 4, 2, 6, 3, 1, 1, NewRect(4, 2, 6, 3)},
		{"shrink to nothing", 4, 2, 6, 3, 0, 0, NewRect(7, 4, 0, 0)},
		{"grow", 10, 10, 4, 2, 1.5, 2, NewRect(9, 9, 6, 4)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ScaledRect(tc.x, tc.y, tc.w, tc.h, tc.sx, tc.sy)
			if got != tc.expected {
				t.Errorf("ScaledRect() = %+v, expected %+v", got, tc.expected)
			}
		})
	}
}
