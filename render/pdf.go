package render

import (
	"fmt"
	"io"

	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
)

// mm 毫米转 PDF 点
const mm = 72 / 25.4

// PDF 输出单页 PDF 线框图
func PDF(w io.Writer, d Drawing, page Page) error {
	paper := &pdf.Rectangle{URx: page.Width * mm, URy: page.Height * mm}

	out, err := document.WriteSinglePage(w, paper, pdf.V1_7, nil)
	if err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}

	vp := fit(d.Extents(), page)
	point := func(x, y float64) (float64, float64) {
		return x * mm, y * mm
	}

	var stroke bool
	out.SetLineWidth(0.1 * mm)
	for _, p := range d.Paths {
		if len(p.Points) < 2 {
			continue
		}
		for i, pt := range p.Points {
			x, y := point(vp.apply(pt))
			if i == 0 {
				out.MoveTo(x, y)
			} else {
				out.LineTo(x, y)
			}
		}
		if p.Closed {
			out.ClosePath()
		}
		stroke = true
	}
	if stroke {
		out.Stroke()
	}

	for _, s := range d.Seats {
		x, y := point(vp.apply(s))
		out.Circle(x, y, SeatRadius*mm)
	}
	if len(d.Seats) > 0 {
		out.Stroke()
	}

	if err = out.Close(); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}

	return nil
}
