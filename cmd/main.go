package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ncruces/zenity"
	"github.com/zooyer/golib/xos"

	"github.com/zooyer/seatdxf"
	"github.com/zooyer/seatdxf/internal/config"
	"github.com/zooyer/seatdxf/internal/logging"
	"github.com/zooyer/seatdxf/seat"
)

var configPath = flag.String("config", "seatdxf.yaml", "配置文件路径 (YAML)")

func fatal(err error) {
	logging.L().Error("seatdxf failed", "err", err)
	xos.PauseExit()
	os.Exit(1)
}

// selectFile 没有传入文件时弹出文件选择框
func selectFile() (string, error) {
	if flag.NArg() > 0 {
		return flag.Arg(0), nil
	}

	return zenity.SelectFile(
		zenity.Title("请选择 DXF 图纸"),
		zenity.FileFilters{
			{Name: "DXF 图纸", Patterns: []string{"*.dxf", "*.DXF"}},
		},
	)
}

func renderValid(s seat.Seat) string {
	if s.Valid() {
		return "✅"
	}

	return "❌"
}

func main() {
	flag.Parse()
	logging.InitFromEnv()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fatal(err)
	}
	logging.Configure(logging.Options{Level: cfg.Log.Level, JSON: cfg.Log.JSON})

	filename, err := selectFile()
	if errors.Is(err, zenity.ErrCanceled) {
		fmt.Println("请把DXF文件拖入该程序上执行！")
		xos.PauseExit()
		os.Exit(1)
	}
	if err != nil {
		fatal(err)
	}

	defer xos.PauseExit()

	doc, err := seatdxf.Open(filename)
	if err != nil {
		fatal(err)
	}
	logging.L().Debug("dxf loaded", "file", filename, "entities", len(doc.Entities), "blocks", len(doc.Blocks))

	// 1. 计算所有座位的世界坐标
	var seats []seat.Seat
	if cfg.Workers > 0 {
		if seats, err = seat.ExtractParallel(context.Background(), doc, cfg.Block, cfg.Workers); err != nil {
			fatal(err)
		}
	} else {
		seats = seat.Extract(doc, cfg.Block)
	}

	for _, s := range seats {
		if !s.Valid() {
			logging.L().Warn("seat skipped", "index", s.Index, "handle", s.Insert.Handle, "err", s.Err)
		}
	}

	// 2. 打印信息
	fmt.Printf("座位数量: %d (块 %s, 单位 %s)\n", seat.Count(seats), strings.ToUpper(cfg.Block), doc.Header.Unit())
	if cfg.Seat > 0 {
		if s, ok := seat.Nth(seats, cfg.Seat); ok {
			fmt.Printf("座位 %d [%s] | OCS %v | WCS %v %s\n", cfg.Seat, s.Label(), s.OCS, s.WCS, renderValid(s))
		} else {
			fmt.Printf("座位 %d 不存在\n", cfg.Seat)
		}
	}

	// 3. 写入表格
	if cfg.CSV {
		var name = strings.TrimSuffix(filename, filepath.Ext(filename)) + ".csv"
		if err = writeCSV(name, seats); err != nil {
			fatal(err)
		}
		fmt.Println("写入文件:", name)
	}

	// 4. 导出预览
	if cfg.SVG != "" || cfg.PDF != "" {
		if err = export(doc, seats, cfg); err != nil {
			fatal(err)
		}
	}
}
