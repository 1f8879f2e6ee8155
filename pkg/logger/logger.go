package logger

import (
	"log"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ==================== 全局日志 ====================

var global *zap.Logger = zap.NewNop()

// Init 初始化全局日志实例
// mode: release 使用 JSON 输出，其他模式使用控制台输出
func Init(mode string) *zap.Logger {
	var cfg zap.Config
	if mode == "release" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	cfg.EncoderConfig.TimeKey = "time"
	cfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05.000")

	l, err := cfg.Build(zap.AddCallerSkip(0))
	if err != nil {
		log.Fatalf("日志初始化失败: %v", err)
	}

	global = l
	return l
}

// L 获取全局日志实例
func L() *zap.Logger {
	return global
}

// Sync 刷新缓冲
func Sync() {
	_ = global.Sync()
}
