package core

import "testing"

func TestWithinRadius(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Vec2
		r        float64
		expected bool
	}{
		{"same point", Vec2{10, 10}, Vec2{10, 10}, 30, true},
		{"just inside", Vec2{0, 0}, Vec2{29.9, 0}, 30, true},
		{"exactly on radius", Vec2{0, 0}, Vec2{30, 0}, 30, false},
		{"diagonal inside", Vec2{0, 0}, Vec2{24, 24}, 35, true},  // 1152 < 1225
		{"diagonal outside", Vec2{0, 0}, Vec2{25, 25}, 35, false}, // 1250 >= 1225
		{"far away", Vec2{0, 0}, Vec2{500, 0}, 40, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := WithinRadius(tc.a, tc.b, tc.r); got != tc.expected {
				t.Errorf("WithinRadius(%v, %v, %v) = %v, expected %v", tc.a, tc.b, tc.r, got, tc.expected)
			}
			// Also test symmetry
			if got := WithinRadius(tc.b, tc.a, tc.r); got != tc.expected {
				t.Errorf("WithinRadius (reversed) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestVec2DistSq(t *testing.T) {
	a := Vec2{X: 3, Y: 4}
	if d := a.DistSq(Vec2{}); d != 25 {
		t.Errorf("DistSq() = %v, expected 25", d)
	}
	if p := a.Add(Vec2{X: 1, Y: -2}); p != (Vec2{X: 4, Y: 2}) {
		t.Errorf("Add() = %v, expected {4 2}", p)
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		val, want float64
	}{
		{500, 500},
		{925, 920},
		{-3, 40},
		{40, 40},
	}

	for _, tc := range tests {
		if got := ClampF(tc.val, 40, 920); got != tc.want {
			t.Errorf("ClampF(%v, 40, 920) = %v, expected %v", tc.val, got, tc.want)
		}
	}
}
