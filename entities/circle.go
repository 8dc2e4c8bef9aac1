package entities

import (
	"math"

	"github.com/zooyer/seatdxf/core"
)

// Circle 圆心为 OCS 坐标
type Circle struct {
	BaseEntity
	Center    core.Point
	Radius    float64
	Extrusion core.Point
}

// Arc 圆弧，角度为 OCS 下的角度制，逆时针从 StartAngle 到 EndAngle
type Arc struct {
	Circle
	StartAngle float64
	EndAngle   float64
}

func init() {
	Register("CIRCLE", func() Entity {
		return &Circle{BaseEntity: BaseEntity{TypeName: "CIRCLE"}, Extrusion: core.ZAxis}
	})
	Register("ARC", func() Entity {
		return &Arc{Circle: Circle{BaseEntity: BaseEntity{TypeName: "ARC"}, Extrusion: core.ZAxis}}
	})
}

func (c *Circle) parseTag(t core.Tag) {
	switch t.Code {
	case 5:
		c.Handle = t.AsString()
	case 8:
		c.LayerName = t.AsString()
	case 10:
		c.Center.X = t.AsFloat()
	case 20:
		c.Center.Y = t.AsFloat()
	case 30:
		c.Center.Z = t.AsFloat()
	case 40:
		c.Radius = t.AsFloat()
	case 210:
		c.Extrusion.X = t.AsFloat()
	case 220:
		c.Extrusion.Y = t.AsFloat()
	case 230:
		c.Extrusion.Z = t.AsFloat()
	}
}

func (c *Circle) Parse(s *core.Scanner) error {
	for {
		c.parseTag(s.LastTag)
		if !s.Next() || s.LastTag.Code == 0 {
			break
		}
	}
	return nil
}

// BBox 返回 OCS 下的包围盒
func (c *Circle) BBox() core.BBox {
	return core.BBox{
		Min: core.Point{X: c.Center.X - c.Radius, Y: c.Center.Y - c.Radius, Z: c.Center.Z},
		Max: core.Point{X: c.Center.X + c.Radius, Y: c.Center.Y + c.Radius, Z: c.Center.Z},
	}
}

func (a *Arc) Parse(s *core.Scanner) error {
	for {
		t := s.LastTag
		switch t.Code {
		case 50:
			a.StartAngle = t.AsFloat()
		case 51:
			a.EndAngle = t.AsFloat()
		default:
			a.parseTag(t)
		}
		if !s.Next() || s.LastTag.Code == 0 {
			break
		}
	}
	return nil
}

func (a *Arc) point(deg float64) core.Point {
	rad := deg * math.Pi / 180
	return core.Point{
		X: a.Center.X + a.Radius*math.Cos(rad),
		Y: a.Center.Y + a.Radius*math.Sin(rad),
		Z: a.Center.Z,
	}
}

// BBox 返回 OCS 下的包围盒：两个端点加上扫过的象限点
func (a *Arc) BBox() core.BBox {
	var (
		sweep = a.Sweep()
		box   = core.EmptyBBox().Extend(a.point(a.StartAngle)).Extend(a.point(a.StartAngle + sweep))
	)

	for q := math.Ceil(a.StartAngle/90) * 90; q < a.StartAngle+sweep; q += 90 {
		box = box.Extend(a.point(q))
	}

	return box
}

// Sweep 返回圆弧扫过的角度 (0, 360]
func (a *Arc) Sweep() float64 {
	sweep := math.Mod(a.EndAngle-a.StartAngle, 360)
	if sweep <= 0 {
		sweep += 360
	}
	return sweep
}

// Points 把圆弧离散为 OCS 下的折线，segments 为整圆的分段数
func (a *Arc) Points(segments int) []core.Point {
	n := int(math.Ceil(float64(segments) * a.Sweep() / 360))
	if n < 1 {
		n = 1
	}

	var (
		points = make([]core.Point, 0, n+1)
		start  = a.StartAngle * math.Pi / 180
		step   = a.Sweep() * math.Pi / 180 / float64(n)
	)
	for i := 0; i <= n; i++ {
		rad := start + step*float64(i)
		points = append(points, core.Point{
			X: a.Center.X + a.Radius*math.Cos(rad),
			Y: a.Center.Y + a.Radius*math.Sin(rad),
			Z: a.Center.Z,
		})
	}
	return points
}
