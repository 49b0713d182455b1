package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ferrohub/ferrohub/internal/common/config"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestGetLogLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"info":    zapcore.InfoLevel,
		"warn":    zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"dpanic":  zapcore.DPanicLevel,
		"panic":   zapcore.PanicLevel,
		"fatal":   zapcore.FatalLevel,
		"unknown": zapcore.InfoLevel, // default
	}
	for in, exp := range cases {
		assert.Equal(t, exp, getLogLevel(in))
	}
}

func TestNewLogger_Defaults(t *testing.T) {
	cfg := &config.LoggerConfig{}
	setLoggerDefaults(cfg)
	assert.Equal(t, "info", cfg.Level)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, "stdout", cfg.Output)
	assert.Equal(t, 100, cfg.MaxSize)
	assert.Equal(t, 3, cfg.MaxBackups)
	assert.Equal(t, 7, cfg.MaxAge)
	assert.NotEmpty(t, cfg.TimeFormat)

	lg, err := NewLogger(cfg)
	assert.NoError(t, err)
	assert.NotNil(t, lg)
}

func TestNewLogger_FileOutput(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.LoggerConfig{
		Output:   "file",
		FilePath: filepath.Join(dir, "logs", "apiserver.log"),
	}
	lg, err := NewLogger(cfg)
	assert.NoError(t, err)
	lg.Info("hello")
	_ = lg.Sync()

	_, err = os.Stat(filepath.Join(dir, "logs"))
	assert.NoError(t, err)
}
