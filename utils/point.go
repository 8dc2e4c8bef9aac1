package utils

import (
	"math"

	"github.com/zooyer/seatdxf/core"
	"github.com/zooyer/seatdxf/entities"
	"github.com/zooyer/seatdxf/ocs"
)

// Transform 仿射变换：p' = X*p.X + Y*p.Y + Z*p.Z + Origin
type Transform struct {
	X, Y, Z core.Vec3 // 三列
	Origin  core.Vec3
}

// Identity 单位变换
var Identity = Transform{X: core.XAxis, Y: core.YAxis, Z: core.ZAxis}

// Apply 变换一个点
func (t Transform) Apply(p core.Point) core.Point {
	return t.X.Mul(p.X).Add(t.Y.Mul(p.Y)).Add(t.Z.Mul(p.Z)).Add(t.Origin)
}

// applyVector 变换方向向量（不含平移）
func (t Transform) applyVector(v core.Vec3) core.Vec3 {
	return t.X.Mul(v.X).Add(t.Y.Mul(v.Y)).Add(t.Z.Mul(v.Z))
}

// OCSTransform 返回把 OCS 坐标换算到 WCS 的变换
func OCSTransform(extrusion core.Vec3) (Transform, error) {
	basis, err := ocs.NewBasis(extrusion)
	if err != nil {
		return Transform{}, err
	}

	if basis.IsWorld() {
		return Identity, nil
	}

	return Transform{X: basis.Ax, Y: basis.Ay, Z: basis.Az}, nil
}

// InsertTransform 返回块内坐标到插入点所在坐标系的变换：
// 减去块基点 -> 缩放 -> 绕 OCS 的 Z 轴旋转 -> 平移到插入点 -> OCS 到 WCS
func InsertTransform(ins *entities.Insert, base core.Point) (Transform, error) {
	basis, err := ocs.NewBasis(ins.Extrusion)
	if err != nil {
		return Transform{}, err
	}

	rad := ins.Rotation * math.Pi / 180.0
	cos, sin := math.Cos(rad), math.Sin(rad)

	// OCS 下旋转缩放后的列向量
	var (
		cx = core.Vec3{X: cos * ins.Scale.X, Y: sin * ins.Scale.X}
		cy = core.Vec3{X: -sin * ins.Scale.Y, Y: cos * ins.Scale.Y}
		cz = core.Vec3{Z: ins.Scale.Z}
	)

	t := Transform{
		X: basis.ToWCS(cx),
		Y: basis.ToWCS(cy),
		Z: basis.ToWCS(cz),
	}
	t.Origin = basis.ToWCS(ins.InsertionPoint).Sub(t.applyVector(base))

	return t, nil
}

// TransformPoint 将局部坐标点经过 Insert 变换转换到父级/世界坐标
func TransformPoint(p core.Point, ins *entities.Insert, base core.Point) (core.Point, error) {
	t, err := InsertTransform(ins, base)
	if err != nil {
		return core.Point{}, err
	}

	return t.Apply(p), nil
}
