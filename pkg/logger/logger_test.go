package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestInitLogger_WritesFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "app.log")
	InitLogger(Options{File: file, MaxSize: 1, MaxBackups: 1, MaxAge: 1})

	zap.S().Infow("点击记录已写入", "click_id", "abc")
	// stdout 为管道时 Sync 会返回 EINVAL, 这里只关心文件内容
	_ = Logger.Sync()

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), "click_id")
	assert.Same(t, Logger, zap.L())
}
