// Package seatdxf 读取 DXF 图纸中的块、实体与文件头变量。
//
// 只解析座位提取与线框预览需要的部分：HEADER、BLOCKS、ENTITIES 三个段，
// 以及 entities 包中注册过的实体类型，其余内容会被跳过。
package seatdxf

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/zooyer/seatdxf/core"
	"github.com/zooyer/seatdxf/entities"
)

// ErrStructure 文件中找不到任何 SECTION，不是有效的 DXF
var ErrStructure = errors.New("invalid or corrupted DXF file")

type Block struct {
	Name      string
	BasePoint core.Point // 组码 10/20/30，块内坐标相对该点
	Entities  []entities.Entity
}

// Header 文件头中用到的变量
type Header struct {
	InsUnits int        // $INSUNITS，0 无单位，4 毫米，6 米
	ExtMin   core.Point // $EXTMIN
	ExtMax   core.Point // $EXTMAX
}

// Extents 返回 $EXTMIN/$EXTMAX 组成的范围，文件没有记录有效范围时 ok 为 false
func (h Header) Extents() (box core.BBox, ok bool) {
	if h.ExtMin.X > h.ExtMax.X || h.ExtMin.Y > h.ExtMax.Y || h.ExtMin == h.ExtMax {
		return core.EmptyBBox(), false
	}

	return core.BBox{Min: h.ExtMin, Max: h.ExtMax}, true
}

// Unit 返回 $INSUNITS 对应的单位名称
func (h Header) Unit() string {
	switch h.InsUnits {
	case 1:
		return "英寸"
	case 2:
		return "英尺"
	case 4:
		return "毫米"
	case 5:
		return "厘米"
	case 6:
		return "米"
	default:
		return "无单位"
	}
}

type Document struct {
	Header   Header
	Blocks   map[string]*Block
	Entities []entities.Entity
}

// Query 按实体类型与块名筛选模型空间实体，保持文件中的顺序。
// blockName 为空时不按块名过滤，只对 INSERT 生效，大小写不敏感。
func (d *Document) Query(typeName, blockName string) []entities.Entity {
	var result []entities.Entity
	for _, ent := range d.Entities {
		if !strings.EqualFold(ent.Type(), typeName) {
			continue
		}
		if blockName != "" {
			ins, ok := ent.(*entities.Insert)
			if !ok || !strings.EqualFold(ins.BlockName, blockName) {
				continue
			}
		}
		result = append(result, ent)
	}

	return result
}

// Inserts 返回引用 blockName 的全部 INSERT
func (d *Document) Inserts(blockName string) []*entities.Insert {
	var inserts []*entities.Insert
	for _, ent := range d.Query("INSERT", blockName) {
		inserts = append(inserts, ent.(*entities.Insert))
	}

	return inserts
}

// Block 按名称查找块定义，大小写不敏感
func (d *Document) Block(name string) (*Block, bool) {
	block, ok := d.Blocks[strings.ToUpper(name)]
	return block, ok
}

func isTag(tag core.Tag, value string) bool {
	return tag.Code == 0 && strings.EqualFold(strings.TrimSpace(tag.Value), value)
}

// parseEntity 解析当前 0 组码对应的实体，不认识的实体返回 nil 并跳过。
// 返回时 LastTag 停在下一个 0 组码上。
func parseEntity(scanner *core.Scanner) (entities.Entity, error) {
	var (
		line = scanner.Line()
		ent  = entities.CreateEntity(strings.TrimSpace(scanner.LastTag.Value))
	)

	if ent == nil {
		for scanner.Next() && scanner.LastTag.Code != 0 {
		}
	} else if err := ent.Parse(scanner); err != nil {
		return nil, err
	}

	// 没有前进说明文件在实体中途结束
	if scanner.Line() == line {
		if err := scanner.Err(); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("dxf: line %d: %w", line, io.ErrUnexpectedEOF)
	}

	return ent, nil
}

func (d *Document) parseHeader(scanner *core.Scanner) {
	var variable string
	for scanner.Next() {
		tag := scanner.LastTag
		if isTag(tag, "ENDSEC") {
			break
		}
		switch tag.Code {
		case 9:
			variable = strings.ToUpper(tag.AsString())
		case 10, 20, 30:
			var p *core.Point
			switch variable {
			case "$EXTMIN":
				p = &d.Header.ExtMin
			case "$EXTMAX":
				p = &d.Header.ExtMax
			default:
				continue
			}
			switch tag.Code {
			case 10:
				p.X = tag.AsFloat()
			case 20:
				p.Y = tag.AsFloat()
			case 30:
				p.Z = tag.AsFloat()
			}
		case 70:
			if variable == "$INSUNITS" {
				d.Header.InsUnits = tag.AsInt()
			}
		}
	}
}

func (d *Document) parseBlocks(scanner *core.Scanner) error {
	var currentBlock *Block

	if !scanner.Next() {
		return nil
	}
	for {
		tag := scanner.LastTag
		switch {
		case isTag(tag, "ENDSEC"):
			return nil
		case isTag(tag, "BLOCK"):
			line := scanner.Line()
			currentBlock = &Block{Entities: []entities.Entity{}}
			for scanner.Next() && scanner.LastTag.Code != 0 {
				t := scanner.LastTag
				switch t.Code {
				case 2:
					currentBlock.Name = strings.ToUpper(t.AsString())
				case 10:
					currentBlock.BasePoint.X = t.AsFloat()
				case 20:
					currentBlock.BasePoint.Y = t.AsFloat()
				case 30:
					currentBlock.BasePoint.Z = t.AsFloat()
				}
			}
			d.Blocks[currentBlock.Name] = currentBlock
			if scanner.Line() == line {
				return scanner.Err()
			}
			continue
		case isTag(tag, "ENDBLK"):
			currentBlock = nil
		case tag.Code == 0 && currentBlock != nil:
			ent, err := parseEntity(scanner)
			if err != nil {
				return fmt.Errorf("block %s: %w", currentBlock.Name, err)
			}
			if ent != nil {
				currentBlock.Entities = append(currentBlock.Entities, ent)
			}
			continue
		}

		if !scanner.Next() {
			return nil
		}
	}
}

func (d *Document) parseEntities(scanner *core.Scanner) error {
	if !scanner.Next() {
		return nil
	}
	for {
		tag := scanner.LastTag
		if isTag(tag, "ENDSEC") {
			return nil
		}
		if tag.Code == 0 {
			ent, err := parseEntity(scanner)
			if err != nil {
				return err
			}
			if ent != nil {
				d.Entities = append(d.Entities, ent)
			}
			continue
		}
		if !scanner.Next() {
			return nil
		}
	}
}

func Open(filename string) (doc *Document, err error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open dxf: %w", err)
	}

	defer func() {
		if e := file.Close(); e != nil && err == nil {
			err = e
		}
	}()

	if doc, err = Load(file); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}

	return doc, nil
}

func Load(reader io.Reader) (doc *Document, err error) {
	var (
		scanner  = core.NewScanner(reader)
		sections int
		document = &Document{
			Blocks:   make(map[string]*Block),
			Entities: make([]entities.Entity, 0, 1024),
		}
	)

	for scanner.Next() {
		tag := scanner.LastTag
		if isTag(tag, "EOF") {
			break
		}
		if !isTag(tag, "SECTION") {
			continue
		}
		if !scanner.Next() {
			break
		}
		sections++

		var err error
		switch strings.ToUpper(scanner.LastTag.AsString()) {
		case "HEADER":
			document.parseHeader(scanner)
		case "BLOCKS":
			err = document.parseBlocks(scanner)
		case "ENTITIES":
			err = document.parseEntities(scanner)
		}
		if err != nil {
			return nil, err
		}
	}

	if err = scanner.Err(); err != nil {
		return nil, err
	}
	if sections == 0 {
		return nil, ErrStructure
	}

	return document, nil
}
