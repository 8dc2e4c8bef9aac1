// Package seat 从图纸中提取座位块的世界坐标。
package seat

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/zooyer/seatdxf"
	"github.com/zooyer/seatdxf/core"
	"github.com/zooyer/seatdxf/entities"
	"github.com/zooyer/seatdxf/ocs"
	"github.com/zooyer/seatdxf/utils"
)

// DefaultBlock 座位块的默认名称
const DefaultBlock = "TWOBYFOUR"

// Seat 一个座位块引用
type Seat struct {
	Index  int               // 从 1 开始，按文件中的顺序
	Insert *entities.Insert  // 原始 INSERT
	OCS    core.Point        // 插入点（OCS）
	WCS    core.Point        // 插入点（WCS），Err 不为空时无效
	Attrs  map[string]string // 块属性，标签为大写
	Err    error             // 拉伸方向无效等
}

func (s Seat) Valid() bool {
	return s.Err == nil
}

// Label 返回 SEAT 属性，没有时返回序号
func (s Seat) Label() string {
	if label := s.Attrs["SEAT"]; label != "" {
		return label
	}

	return fmt.Sprint(s.Index)
}

func place(index int, ins *entities.Insert) Seat {
	s := Seat{
		Index:  index,
		Insert: ins,
		OCS:    ins.InsertionPoint,
		Attrs:  utils.GetAttrs(ins),
	}

	wcs, err := ocs.ToWCS(ins.Extrusion, ins.InsertionPoint)
	if err != nil {
		s.Err = fmt.Errorf("seat %d (handle %s): %w", index, ins.Handle, err)
		return s
	}
	s.WCS = wcs

	return s
}

// Extract 按顺序计算每个座位的世界坐标，
// 单个座位出错只记录在该座位的 Err 上，不影响其他座位
func Extract(doc *seatdxf.Document, blockName string) []Seat {
	var (
		inserts = doc.Inserts(blockName)
		seats   = make([]Seat, 0, len(inserts))
	)

	for i, ins := range inserts {
		seats = append(seats, place(i+1, ins))
	}

	return seats
}

// ExtractParallel 与 Extract 结果相同，用 workers 个协程并行计算。
// workers <= 0 时使用 GOMAXPROCS。
func ExtractParallel(ctx context.Context, doc *seatdxf.Document, blockName string, workers int) ([]Seat, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	var (
		inserts = doc.Inserts(blockName)
		seats   = make([]Seat, len(inserts))
		jobs    = make(chan int)
		wg      sync.WaitGroup
	)

	for range min(workers, len(inserts)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				seats[i] = place(i+1, inserts[i])
			}
		}()
	}

	var err error
loop:
	for i := range inserts {
		if err = ctx.Err(); err != nil {
			break
		}
		select {
		case jobs <- i:
		case <-ctx.Done():
			err = ctx.Err()
			break loop
		}
	}
	close(jobs)
	wg.Wait()

	if err != nil {
		return nil, err
	}

	return seats, nil
}

// Points 返回有效座位的世界坐标，以及所有无效座位的错误
func Points(seats []Seat) ([]core.Point, error) {
	var (
		points = make([]core.Point, 0, len(seats))
		errs   []error
	)

	for _, s := range seats {
		if s.Err != nil {
			errs = append(errs, s.Err)
			continue
		}
		points = append(points, s.WCS)
	}

	return points, errors.Join(errs...)
}

// Nth 返回第 n 个座位（从 1 开始）
func Nth(seats []Seat, n int) (Seat, bool) {
	if n < 1 || n > len(seats) {
		return Seat{}, false
	}

	return seats[n-1], true
}

// Count 座位数量，包含坐标无效的座位
func Count(seats []Seat) int {
	return len(seats)
}

// Extents 有效座位插入点的包围盒
func Extents(seats []Seat) core.BBox {
	box := core.EmptyBBox()
	for _, s := range seats {
		if s.Valid() {
			box = box.Extend(s.WCS)
		}
	}

	return box
}

// Outline 座位块在世界坐标系下的外框
func Outline(doc *seatdxf.Document, s Seat) (core.BBox, error) {
	if s.Err != nil {
		return core.EmptyBBox(), s.Err
	}

	return utils.GetEntityBBoxWCS(doc, s.Insert)
}
