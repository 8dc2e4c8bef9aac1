package core

import (
	"errors"
	"fmt"
	"math"

	"github.com/zooyer/golib/xmath"
)

// ErrDegenerateVector 零向量无法归一化
var ErrDegenerateVector = errors.New("degenerate vector")

// Vec3 三维向量（值类型，不可变）
type Vec3 struct {
	X, Y, Z float64
}

var (
	XAxis = Vec3{X: 1}
	YAxis = Vec3{Y: 1}
	ZAxis = Vec3{Z: 1}
)

func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

func (v Vec3) Mul(k float64) Vec3 { return Vec3{v.X * k, v.Y * k, v.Z * k} }

func (v Vec3) Dot(o Vec3) float64 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

// Cross 叉积 v × o
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

// maxAbs 返回绝对值最大的分量，先除以它再平方可以避免上溢和下溢
func (v Vec3) maxAbs() float64 {
	return math.Max(math.Abs(v.X), math.Max(math.Abs(v.Y), math.Abs(v.Z)))
}

// div 逐分量除以 k
func (v Vec3) div(k float64) Vec3 {
	return Vec3{v.X / k, v.Y / k, v.Z / k}
}

// Len 向量长度，任意有限分量都不会溢出
func (v Vec3) Len() float64 {
	m := v.maxAbs()
	if m == 0 || math.IsInf(m, 0) {
		return m
	}

	u := v.div(m)
	return m * math.Sqrt(u.Dot(u))
}

// Normalize 返回同方向的单位向量，零向量返回 ErrDegenerateVector。
// 长度不设下限：只要有一个分量非零就能归一化。
func (v Vec3) Normalize() (Vec3, error) {
	m := v.maxAbs()
	if m == 0 {
		return Vec3{}, fmt.Errorf("normalize %v: %w", v, ErrDegenerateVector)
	}

	u := v.div(m)
	return u.div(math.Sqrt(u.Dot(u))), nil
}

// Equal 各分量误差不超过 epsilon 则认为相同
func (v Vec3) Equal(o Vec3, epsilon float64) bool {
	return xmath.Equal(v.X, o.X, epsilon) &&
		xmath.Equal(v.Y, o.Y, epsilon) &&
		xmath.Equal(v.Z, o.Z, epsilon)
}

func (v Vec3) IsZero() bool {
	return v == Vec3{}
}

func (v Vec3) String() string {
	return fmt.Sprintf("(%g, %g, %g)", v.X, v.Y, v.Z)
}
