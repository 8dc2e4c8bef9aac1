package entities

import "github.com/zooyer/seatdxf/core"

type Insert struct {
	BaseEntity
	BlockName      string
	InsertionPoint core.Point // OCS 坐标
	Scale          core.Point
	Rotation       float64
	Extrusion      core.Point // 组码 210/220/230，默认 (0,0,1)
	Attributes     []*Attrib
}

func init() {
	Register("INSERT", func() Entity {
		return &Insert{
			BaseEntity: BaseEntity{TypeName: "INSERT"},
			Scale:      core.Point{X: 1, Y: 1, Z: 1}, // 默认缩放为 1
			Extrusion:  core.ZAxis,
			Attributes: []*Attrib{},
		}
	})
}

func (i *Insert) Parse(scanner *core.Scanner) error {
	hasAttributes := false

	for {
		tag := scanner.LastTag
		switch tag.Code {
		case 2:
			i.BlockName = tag.AsString()
		case 5:
			i.Handle = tag.AsString()
		case 8:
			i.LayerName = tag.AsString()
		case 10:
			i.InsertionPoint.X = tag.AsFloat()
		case 20:
			i.InsertionPoint.Y = tag.AsFloat()
		case 30:
			i.InsertionPoint.Z = tag.AsFloat()
		case 41:
			i.Scale.X = tag.AsFloat()
		case 42:
			i.Scale.Y = tag.AsFloat()
		case 43:
			i.Scale.Z = tag.AsFloat()
		case 50:
			i.Rotation = tag.AsFloat()
		case 66:
			if tag.AsInt() == 1 {
				hasAttributes = true
			}
		case 210:
			i.Extrusion.X = tag.AsFloat()
		case 220:
			i.Extrusion.Y = tag.AsFloat()
		case 230:
			i.Extrusion.Z = tag.AsFloat()
		}

		if !scanner.Next() || scanner.LastTag.Code == 0 {
			break
		}
	}

	// 如果标记了有属性，则继续在当前流中抓取 ATTRIB 直到 SEQEND
	if hasAttributes {
		for {
			tag := scanner.LastTag
			if tag.Code == 0 {
				if tag.AsString() == "SEQEND" {
					scanner.Next() // 消耗掉 SEQEND
					break
				}
				// 既不是 ATTRIB 也不是 SEQEND，说明序列已经结束
				subEntity := CreateEntity(tag.AsString())
				attr, ok := subEntity.(*Attrib)
				if !ok {
					break
				}
				line := scanner.Line()
				if err := attr.Parse(scanner); err != nil {
					return err
				}
				i.Attributes = append(i.Attributes, attr)
				if scanner.Line() == line {
					break // 文件结束
				}
				continue // Parse 内部已经 Next 了，直接进入下一次判断
			}
			if !scanner.Next() {
				break
			}
		}
	}

	// SEQEND 之后会跟着它自己的组码，跳到下一个实体
	for scanner.LastTag.Code != 0 {
		if !scanner.Next() {
			break
		}
	}

	return scanner.Err()
}

func (i *Insert) BBox() core.BBox {
	// Insert 的包围盒需要结合 Block 定义计算，见 utils.GetEntityBBoxWCS
	// 这里先返回插入点
	return core.BBox{Min: i.InsertionPoint, Max: i.InsertionPoint}
}
