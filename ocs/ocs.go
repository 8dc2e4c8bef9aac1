// Package ocs 实现 DXF 的任意轴算法（Arbitrary Axis Algorithm），
// 用于把实体的 OCS（对象坐标系）坐标换算到 WCS（世界坐标系）。
//
// 平面实体（INSERT、CIRCLE、LWPOLYLINE 等）保存的坐标相对于自身 OCS，
// OCS 的 Z 轴即实体的拉伸方向（组码 210/220/230）。
package ocs

import (
	"fmt"
	"math"

	"github.com/zooyer/seatdxf/core"
)

// threshold 拉伸方向的 X、Y 分量都小于该值时，认为其接近世界 Z 轴，
// 改用世界 Y 轴作为参考向量。数值必须是 1/64，与 AutoCAD 保持一致。
const threshold = 1.0 / 64.0

// Basis 正交归一基：Ax、Ay、Az 互相垂直且长度为 1
type Basis struct {
	Ax, Ay, Az core.Vec3
}

// Reference 返回任意轴算法选用的世界参考向量
func Reference(az core.Vec3) core.Vec3 {
	if math.Abs(az.X) < threshold && math.Abs(az.Y) < threshold {
		return core.YAxis
	}

	return core.ZAxis
}

// NewBasis 根据拉伸方向计算 OCS 的三个坐标轴，extrusion 不要求是单位向量
func NewBasis(extrusion core.Vec3) (Basis, error) {
	az, err := extrusion.Normalize()
	if err != nil {
		return Basis{}, fmt.Errorf("ocs: extrusion: %w", err)
	}

	ax, err := Reference(az).Cross(az).Normalize()
	if err != nil {
		return Basis{}, fmt.Errorf("ocs: x axis: %w", err)
	}

	ay, err := az.Cross(ax).Normalize()
	if err != nil {
		return Basis{}, fmt.Errorf("ocs: y axis: %w", err)
	}

	return Basis{Ax: ax, Ay: ay, Az: az}, nil
}

// Project 计算 point 在 basis 各轴上的分量 (point·Ax, point·Ay, point·Az)
func Project(basis Basis, point core.Vec3) core.Vec3 {
	return core.Vec3{
		X: point.Dot(basis.Ax),
		Y: point.Dot(basis.Ay),
		Z: point.Dot(basis.Az),
	}
}

// Reconstruct 以 axes 为矩阵的行，计算 axes · point
func Reconstruct(axes [3]core.Vec3, point core.Vec3) core.Vec3 {
	return core.Vec3{
		X: point.Dot(axes[0]),
		Y: point.Dot(axes[1]),
		Z: point.Dot(axes[2]),
	}
}

// ToWCS 把 OCS 坐标 point 换算为世界坐标。
//
// 先把世界坐标轴投影到 OCS，得到基矩阵的转置，再与 point 相乘。
// 该路径与 AutoCAD 参考实现的计算顺序一致，结果逐位可比。
func ToWCS(extrusion, point core.Vec3) (core.Vec3, error) {
	basis, err := NewBasis(extrusion)
	if err != nil {
		return core.Vec3{}, err
	}

	var (
		wx = Project(basis, core.XAxis)
		wy = Project(basis, core.YAxis)
		wz = Project(basis, core.ZAxis)
	)

	return Reconstruct([3]core.Vec3{wx, wy, wz}, point), nil
}

// ToWCSDirect 与 ToWCS 结果相同（误差 1e-9 以内），只做一次矩阵乘法
func ToWCSDirect(extrusion, point core.Vec3) (core.Vec3, error) {
	basis, err := NewBasis(extrusion)
	if err != nil {
		return core.Vec3{}, err
	}

	return basis.ToWCS(point), nil
}

// ToWCS 返回 Ax*p.X + Ay*p.Y + Az*p.Z
func (b Basis) ToWCS(p core.Vec3) core.Vec3 {
	return b.Ax.Mul(p.X).Add(b.Ay.Mul(p.Y)).Add(b.Az.Mul(p.Z))
}

// ToOCS 是 ToWCS 的逆变换
func (b Basis) ToOCS(p core.Vec3) core.Vec3 {
	return Project(b, p)
}

// IsWorld 拉伸方向为世界 Z 轴时 OCS 与 WCS 重合
func (b Basis) IsWorld() bool {
	return b.Az.Equal(core.ZAxis, 1e-12)
}
