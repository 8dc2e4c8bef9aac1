package core

import (
	"errors"
	"math"
	"testing"
)

func TestVec3_Cross(t *testing.T) {
	var tests = []struct {
		a, b, want Vec3
	}{
		{XAxis, YAxis, ZAxis},
		{YAxis, ZAxis, XAxis},
		{ZAxis, XAxis, YAxis},
		{YAxis, XAxis, Vec3{Z: -1}},
		{Vec3{1, 2, 3}, Vec3{4, 5, 6}, Vec3{-3, 6, -3}},
	}

	for _, tt := range tests {
		if got := tt.a.Cross(tt.b); got != tt.want {
			t.Errorf("%v × %v = %v, 期望 %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestVec3_Normalize(t *testing.T) {
	v, err := Vec3{3, 0, 4}.Normalize()
	if err != nil {
		t.Fatal(err)
	}
	if !v.Equal(Vec3{0.6, 0, 0.8}, 1e-12) {
		t.Errorf("归一化结果不符: %v", v)
	}
	if math.Abs(v.Len()-1) > 1e-12 {
		t.Errorf("长度不为 1: %v", v.Len())
	}

	for _, zero := range []Vec3{{}, {math.Copysign(0, -1), 0, 0}} {
		if _, err = zero.Normalize(); !errors.Is(err, ErrDegenerateVector) {
			t.Errorf("%v 期望 ErrDegenerateVector, 得到 %v", zero, err)
		}
	}
}

func TestVec3_ExtremeMagnitude(t *testing.T) {
	var tests = []struct {
		in   Vec3
		want Vec3
		len  float64
	}{
		{Vec3{X: 1e200}, XAxis, 1e200},
		{Vec3{Z: 1e155}, ZAxis, 1e155},
		{Vec3{X: 3e300, Y: 4e300}, Vec3{X: 0.6, Y: 0.8}, 5e300},
		{Vec3{Z: 1e-13}, ZAxis, 1e-13},
		{Vec3{X: 1e-160, Y: 1e-160}, Vec3{X: math.Sqrt2 / 2, Y: math.Sqrt2 / 2}, math.Sqrt2 * 1e-160},
		{Vec3{Y: -5e-324}, Vec3{Y: -1}, 5e-324},
	}

	for _, tt := range tests {
		got, err := tt.in.Normalize()
		if err != nil {
			t.Errorf("%v 归一化失败: %v", tt.in, err)
			continue
		}
		if !got.Equal(tt.want, 1e-12) {
			t.Errorf("%v 归一化得到 %v, 期望 %v", tt.in, got, tt.want)
		}
		if l := tt.in.Len(); math.Abs(l-tt.len) > tt.len*1e-12 {
			t.Errorf("%v 长度为 %v, 期望 %v", tt.in, l, tt.len)
		}
	}

	if l := (Vec3{X: math.Inf(-1)}).Len(); !math.IsInf(l, 1) {
		t.Errorf("无穷大向量的长度应为 +Inf, 得到 %v", l)
	}
}

func TestVec3_Arithmetic(t *testing.T) {
	a, b := Vec3{1, 2, 3}, Vec3{-1, 0.5, 2}

	if got := a.Add(b); got != (Vec3{0, 2.5, 5}) {
		t.Errorf("Add = %v", got)
	}
	if got := a.Sub(b); got != (Vec3{2, 1.5, 1}) {
		t.Errorf("Sub = %v", got)
	}
	if got := a.Mul(2); got != (Vec3{2, 4, 6}) {
		t.Errorf("Mul = %v", got)
	}
	if got := a.Dot(b); got != 6 {
		t.Errorf("Dot = %v", got)
	}
	if !(Vec3{}).IsZero() || a.IsZero() {
		t.Errorf("IsZero 判断错误")
	}
}

func TestBBox_Extend(t *testing.T) {
	box := EmptyBBox()
	if !box.Empty() {
		t.Fatalf("EmptyBBox 应该为空")
	}

	box = box.Extend(Point{X: 1, Y: 2}).Extend(Point{X: -3, Y: 5, Z: 1})
	if box.Min != (Point{X: -3, Y: 2}) || box.Max != (Point{X: 1, Y: 5, Z: 1}) {
		t.Errorf("包围盒不符: %+v", box)
	}
	if box.Width() != 4 || box.Height() != 3 {
		t.Errorf("宽高不符: %v x %v", box.Width(), box.Height())
	}
	if c := box.Center(); c != (Point{X: -1, Y: 3.5, Z: 0.5}) {
		t.Errorf("中心不符: %v", c)
	}

	if got := box.Union(EmptyBBox()); got != box {
		t.Errorf("合并空包围盒不应改变结果: %+v", got)
	}
}
