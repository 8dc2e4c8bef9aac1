// Package render 把图纸展开为世界坐标下的折线，并输出 SVG/PDF 线框预览。
package render

import (
	"errors"
	"fmt"
	"math"

	"github.com/zooyer/seatdxf"
	"github.com/zooyer/seatdxf/core"
	"github.com/zooyer/seatdxf/entities"
	"github.com/zooyer/seatdxf/utils"
)

// segments 整圆离散的分段数
const segments = 72

// maxDepth 块嵌套的最大深度
const maxDepth = 32

// Path 世界坐标下的一条折线
type Path struct {
	Layer  string
	Points []core.Point
	Closed bool
}

// Drawing 待输出的内容：线框与座位标记
type Drawing struct {
	Paths  []Path
	Seats  []core.Point
	Limits *core.BBox // 没有任何内容时使用的范围，一般取自文件头
}

// Extents 所有折线与座位在 XY 平面上的范围，为空时返回 Limits
func (d Drawing) Extents() core.BBox {
	box := core.EmptyBBox()
	for _, p := range d.Paths {
		for _, pt := range p.Points {
			box = box.Extend(pt)
		}
	}
	for _, pt := range d.Seats {
		box = box.Extend(pt)
	}
	if box.Empty() && d.Limits != nil {
		return *d.Limits
	}
	return box
}

type flattener struct {
	doc   *seatdxf.Document
	paths []Path
	errs  []error
}

func (f *flattener) add(layer string, t utils.Transform, local []core.Point, closed bool) {
	if len(local) == 0 {
		return
	}

	points := make([]core.Point, len(local))
	for i, p := range local {
		points[i] = t.Apply(p)
	}
	f.paths = append(f.paths, Path{Layer: layer, Points: points, Closed: closed})
}

func circlePoints(center core.Point, radius float64) []core.Point {
	points := make([]core.Point, segments)
	for i := range points {
		rad := 2 * math.Pi * float64(i) / segments
		points[i] = core.Point{
			X: center.X + radius*math.Cos(rad),
			Y: center.Y + radius*math.Sin(rad),
			Z: center.Z,
		}
	}
	return points
}

// ocs 返回实体 OCS 到父坐标系的变换与父变换的组合
func (f *flattener) ocs(parent utils.Transform, entity entities.Entity, extrusion core.Vec3) (utils.Transform, bool) {
	t, err := utils.OCSTransform(extrusion)
	if err != nil {
		f.errs = append(f.errs, fmt.Errorf("%s %s: %w", entity.Type(), entity.ID(), err))
		return utils.Transform{}, false
	}
	return utils.CombineInserts(parent, t), true
}

func (f *flattener) walk(entity entities.Entity, parent utils.Transform, depth int) {
	switch e := entity.(type) {
	case *entities.Line:
		f.add(e.Layer(), parent, []core.Point{e.Start, e.End}, false)
	case *entities.LWPolyline:
		if t, ok := f.ocs(parent, e, e.Extrusion); ok {
			f.add(e.Layer(), t, e.Vertices, e.Closed)
		}
	case *entities.Circle:
		if t, ok := f.ocs(parent, e, e.Extrusion); ok {
			f.add(e.Layer(), t, circlePoints(e.Center, e.Radius), true)
		}
	case *entities.Arc:
		if t, ok := f.ocs(parent, e, e.Extrusion); ok {
			f.add(e.Layer(), t, e.Points(segments), false)
		}
	case *entities.Insert:
		if depth >= maxDepth {
			f.errs = append(f.errs, fmt.Errorf("INSERT %s: block nesting deeper than %d", e.Handle, maxDepth))
			return
		}
		block, ok := f.doc.Block(e.BlockName)
		if !ok {
			return
		}
		t, err := utils.InsertTransform(e, block.BasePoint)
		if err != nil {
			f.errs = append(f.errs, fmt.Errorf("INSERT %s: %w", e.Handle, err))
			return
		}
		t = utils.CombineInserts(parent, t)
		for _, sub := range block.Entities {
			f.walk(sub, t, depth+1)
		}
	}
}

// Flatten 展开模型空间的全部实体。
// 拉伸方向无效的实体会被跳过，错误合并后返回，其余结果仍然有效。
func Flatten(doc *seatdxf.Document) ([]Path, error) {
	f := &flattener{doc: doc}
	for _, ent := range doc.Entities {
		f.walk(ent, utils.Identity, 0)
	}

	return f.paths, errors.Join(f.errs...)
}
