package render

import (
	"bytes"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"

	"github.com/zooyer/seatdxf/core"
)

// svgUnit 每毫米的用户单位数，svgo 只接受整数坐标
const svgUnit = 100

func svgCoord(mm float64) int {
	return int(math.Round(mm * svgUnit))
}

// SVG 输出 SVG 线框图，纸张尺寸以毫米为单位
func SVG(w io.Writer, d Drawing, page Page) error {
	var (
		buf    bytes.Buffer
		canvas = svg.New(&buf)
		vp     = fit(d.Extents(), page)
		width  = svgCoord(page.Width)
		height = svgCoord(page.Height)
	)

	// SVG 的 Y 轴向下，需要翻转
	point := func(p core.Point) (int, int) {
		x, y := vp.apply(p)
		return svgCoord(x), svgCoord(page.Height - y)
	}

	canvas.StartviewUnit(int(math.Round(page.Width)), int(math.Round(page.Height)), "mm", 0, 0, width, height)
	canvas.Rect(0, 0, width, height, "fill:white")

	canvas.Gstyle("fill:none;stroke:black;stroke-width:10")
	for _, p := range d.Paths {
		if len(p.Points) < 2 {
			continue
		}

		xs, ys := make([]int, len(p.Points)), make([]int, len(p.Points))
		for i, pt := range p.Points {
			xs[i], ys[i] = point(pt)
		}

		if p.Closed {
			canvas.Polygon(xs, ys)
		} else {
			canvas.Polyline(xs, ys)
		}
	}
	canvas.Gend()

	if len(d.Seats) > 0 {
		canvas.Gstyle("fill:red;stroke:none")
		for _, s := range d.Seats {
			x, y := point(s)
			canvas.Circle(x, y, svgCoord(SeatRadius))
		}
		canvas.Gend()
	}
	canvas.End()

	_, err := buf.WriteTo(w)
	return err
}
