package entities

import (
	"github.com/zooyer/seatdxf/core"
)

// LWPolyline 顶点为 OCS 坐标，Z 统一取 Elevation
type LWPolyline struct {
	BaseEntity
	Vertices  []core.Point
	Elevation float64    // 组码 38
	Closed    bool       // 组码 70 第 1 位
	Extrusion core.Point // 组码 210/220/230
}

func init() {
	Register("LWPOLYLINE", func() Entity {
		return &LWPolyline{BaseEntity: BaseEntity{TypeName: "LWPOLYLINE"}, Extrusion: core.ZAxis}
	})
}

func (l *LWPolyline) Parse(s *core.Scanner) error {
	var x float64
	for {
		t := s.LastTag
		switch t.Code {
		case 5:
			l.Handle = t.AsString()
		case 8:
			l.LayerName = t.AsString()
		case 38:
			l.Elevation = t.AsFloat()
		case 70:
			l.Closed = t.AsInt()&1 == 1
		case 10:
			x = t.AsFloat()
		case 20:
			l.Vertices = append(l.Vertices, core.Point{X: x, Y: t.AsFloat()})
		case 210:
			l.Extrusion.X = t.AsFloat()
		case 220:
			l.Extrusion.Y = t.AsFloat()
		case 230:
			l.Extrusion.Z = t.AsFloat()
		}
		if !s.Next() || s.LastTag.Code == 0 {
			break
		}
	}

	for i := range l.Vertices {
		l.Vertices[i].Z = l.Elevation
	}

	return nil
}

// BBox 返回 OCS 下的包围盒
func (l *LWPolyline) BBox() core.BBox {
	box := core.EmptyBBox()
	for _, v := range l.Vertices {
		box = box.Extend(v)
	}
	return box
}
