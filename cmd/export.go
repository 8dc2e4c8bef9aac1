package main

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/zooyer/golib/xos"

	"github.com/zooyer/seatdxf"
	"github.com/zooyer/seatdxf/internal/config"
	"github.com/zooyer/seatdxf/internal/logging"
	"github.com/zooyer/seatdxf/render"
	"github.com/zooyer/seatdxf/seat"
)

var csvHeader = []string{"序号", "标签", "X", "Y", "Z", "OCS X", "OCS Y", "OCS Z", "校验"}

func csvFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', 6, 64)
}

func csvRecord(s seat.Seat) []string {
	record := []string{strconv.Itoa(s.Index), s.Label(), "", "", ""}
	if s.Valid() {
		record[2], record[3], record[4] = csvFloat(s.WCS.X), csvFloat(s.WCS.Y), csvFloat(s.WCS.Z)
	}

	return append(record, csvFloat(s.OCS.X), csvFloat(s.OCS.Y), csvFloat(s.OCS.Z), renderValid(s))
}

// csvEncode 按 RFC 4180 编码，标签中的逗号、引号和换行会被转义
func csvEncode(records ...[]string) ([]byte, error) {
	var (
		buf bytes.Buffer
		w   = csv.NewWriter(&buf)
	)
	if err := w.WriteAll(records); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func writeCSV(filename string, seats []seat.Seat) error {
	header, err := csvEncode(csvHeader)
	if err != nil {
		return err
	}
	if err = os.WriteFile(filename, header, 0644); err != nil {
		return err
	}

	for _, s := range seats {
		line, err := csvEncode(csvRecord(s))
		if err != nil {
			return err
		}
		if err = xos.AppendFile(filename, line, 0644); err != nil {
			return err
		}
	}

	return nil
}

func writeFile(filename string, write func(f *os.File) error) (err error) {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}

	defer func() {
		if e := file.Close(); e != nil && err == nil {
			err = e
		}
	}()

	return write(file)
}

func export(doc *seatdxf.Document, seats []seat.Seat, cfg config.Config) error {
	paths, err := render.Flatten(doc)
	if err != nil {
		// 无效的实体已跳过，其余内容照常输出
		logging.L().Warn("entities skipped", "err", err)
	}

	points, _ := seat.Points(seats)
	drawing := render.Drawing{Paths: paths, Seats: points}
	if limits, ok := doc.Header.Extents(); ok {
		drawing.Limits = &limits
	}

	if cfg.SVG != "" {
		if err = writeFile(cfg.SVG, func(f *os.File) error { return render.SVG(f, drawing, render.A4) }); err != nil {
			return fmt.Errorf("export svg: %w", err)
		}
		fmt.Println("导出图片:", cfg.SVG)
	}

	if cfg.PDF != "" {
		if err = writeFile(cfg.PDF, func(f *os.File) error { return render.PDF(f, drawing, render.ISOA0) }); err != nil {
			return fmt.Errorf("export pdf: %w", err)
		}
		fmt.Println("导出PDF:", cfg.PDF)
	}

	return nil
}
