package logging

import (
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync/atomic"
)

type Options struct {
	Level string
	JSON  bool
	// Output 默认为 os.Stderr
	Output io.Writer
}

var def atomic.Pointer[slog.Logger]

func init() {
	def.Store(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})))
}

func Configure(opts Options) {
	var (
		out = opts.Output
		cfg = &slog.HandlerOptions{Level: parseLevel(opts.Level)}
		h   slog.Handler
	)
	if out == nil {
		out = os.Stderr
	}
	if opts.JSON {
		h = slog.NewJSONHandler(out, cfg)
	} else {
		h = slog.NewTextHandler(out, cfg)
	}
	def.Store(slog.New(h))
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// L 返回当前的全局 logger
func L() *slog.Logger {
	return def.Load()
}

// InitFromEnv 从 SEATDXF_LOG_LEVEL / SEATDXF_LOG_JSON 初始化
func InitFromEnv() {
	json, _ := strconv.ParseBool(strings.TrimSpace(os.Getenv("SEATDXF_LOG_JSON")))
	Configure(Options{Level: os.Getenv("SEATDXF_LOG_LEVEL"), JSON: json})
}
