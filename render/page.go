package render

import (
	"math"

	"github.com/zooyer/seatdxf/core"
)

// Page 纸张尺寸，单位毫米
type Page struct {
	Width, Height float64
	Margin        float64
}

var (
	// A4 图片导出使用
	A4 = Page{Width: 210, Height: 297, Margin: 20}
	// ISOA0 PDF 导出使用
	ISOA0 = Page{Width: 841, Height: 1189, Margin: 20}
)

// SeatRadius 座位标记的半径，单位毫米
const SeatRadius = 0.8

// viewport 把世界坐标的 XY 映射到纸面（毫米，Y 轴向上）
type viewport struct {
	scale            float64
	offsetX, offsetY float64
	originX, originY float64
}

// fit 等比缩放 extents 使其居中放入纸张的可用区域
func fit(extents core.BBox, page Page) viewport {
	availW := math.Max(page.Width-2*page.Margin, 0)
	availH := math.Max(page.Height-2*page.Margin, 0)

	if extents.Empty() {
		return viewport{scale: 1, offsetX: page.Width / 2, offsetY: page.Height / 2}
	}

	var (
		w, h  = extents.Width(), extents.Height()
		scale = 1.0
	)
	switch {
	case w > 0 && h > 0:
		scale = math.Min(availW/w, availH/h)
	case w > 0:
		scale = availW / w
	case h > 0:
		scale = availH / h
	}

	return viewport{
		scale:   scale,
		offsetX: (page.Width - w*scale) / 2,
		offsetY: (page.Height - h*scale) / 2,
		originX: extents.Min.X,
		originY: extents.Min.Y,
	}
}

// apply 返回纸面坐标（毫米，原点在左下角）
func (v viewport) apply(p core.Point) (x, y float64) {
	return (p.X-v.originX)*v.scale + v.offsetX, (p.Y-v.originY)*v.scale + v.offsetY
}
