package utils

import (
	"fmt"

	"github.com/zooyer/seatdxf"
	"github.com/zooyer/seatdxf/core"
	"github.com/zooyer/seatdxf/entities"
)

// TransformBBox 执行矩阵变换：将局部包围盒的 8 个角点变换到世界坐标后重新求包围盒
func TransformBBox(local core.BBox, t Transform) core.BBox {
	corners := []core.Point{
		{X: local.Min.X, Y: local.Min.Y, Z: local.Min.Z},
		{X: local.Max.X, Y: local.Min.Y, Z: local.Min.Z},
		{X: local.Max.X, Y: local.Max.Y, Z: local.Min.Z},
		{X: local.Min.X, Y: local.Max.Y, Z: local.Min.Z},
		{X: local.Min.X, Y: local.Min.Y, Z: local.Max.Z},
		{X: local.Max.X, Y: local.Min.Y, Z: local.Max.Z},
		{X: local.Max.X, Y: local.Max.Y, Z: local.Max.Z},
		{X: local.Min.X, Y: local.Max.Y, Z: local.Max.Z},
	}

	box := core.EmptyBBox()
	for _, p := range corners {
		box = box.Extend(t.Apply(p))
	}

	return box
}

// entityTransform 返回实体自身 OCS 到父坐标系的变换，WCS 实体返回单位变换
func entityTransform(entity entities.Entity) (Transform, error) {
	switch e := entity.(type) {
	case *entities.LWPolyline:
		return OCSTransform(e.Extrusion)
	case *entities.Arc:
		return OCSTransform(e.Extrusion)
	case *entities.Circle:
		return OCSTransform(e.Extrusion)
	default:
		return Identity, nil
	}
}

func entityBBox(d *seatdxf.Document, entity entities.Entity, parent Transform, depth int) (core.BBox, error) {
	if depth > maxDepth {
		return core.EmptyBBox(), fmt.Errorf("block nesting deeper than %d", maxDepth)
	}

	ins, ok := entity.(*entities.Insert)
	if !ok {
		local := entity.BBox()
		if local.Empty() {
			return local, nil
		}
		t, err := entityTransform(entity)
		if err != nil {
			return core.EmptyBBox(), err
		}
		return TransformBBox(local, CombineInserts(parent, t)), nil
	}

	block, ok := d.Block(ins.BlockName)
	if !ok || len(block.Entities) == 0 {
		p, err := TransformPoint(core.Point{}, ins, core.Point{})
		if err != nil {
			return core.EmptyBBox(), err
		}
		p = parent.Apply(p)
		return core.BBox{Min: p, Max: p}, nil
	}

	t, err := InsertTransform(ins, block.BasePoint)
	if err != nil {
		return core.EmptyBBox(), err
	}
	t = CombineInserts(parent, t)

	box := core.EmptyBBox()
	for _, sub := range block.Entities {
		if _, ok := sub.(*entities.Attrib); ok {
			continue
		}
		sb, err := entityBBox(d, sub, t, depth+1)
		if err != nil {
			return core.EmptyBBox(), err
		}
		box = box.Union(sb)
	}

	return box, nil
}

// maxDepth 块嵌套的最大深度，防止块自引用
const maxDepth = 32

// GetEntityBBoxWCS 计算实体在世界坐标系下的包围盒，INSERT 会展开块定义
func GetEntityBBoxWCS(d *seatdxf.Document, entity entities.Entity) (core.BBox, error) {
	return entityBBox(d, entity, Identity, 0)
}
