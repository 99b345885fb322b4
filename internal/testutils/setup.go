package testutils

import (
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"simba-catalog-server/internal/config"
	"simba-catalog-server/internal/db"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBSeq int64

// SetupDB 为每个测试创建独立的内存 SQLite 数据库（开启外键），
// 完成迁移并设置全局 db.DB，测试结束后恢复。
func SetupDB(t *testing.T) *gorm.DB {
	t.Helper()

	seq := atomic.AddInt64(&testDBSeq, 1)
	dsn := fmt.Sprintf("file:simba_%d?mode=memory&cache=shared&_pragma=foreign_keys(1)", seq)
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	prevDB := db.DB
	t.Cleanup(func() {
		if db.DB == gdb {
			db.DB = prevDB
		}
		_ = sqlDB.Close()
	})

	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("automigrate: %v", err)
	}

	db.DB = gdb
	return gdb
}

// SetupConfig 使用临时目录作为配置目录与图片目录加载配置，返回图片目录。
// extraEnv 为成对的环境变量名与取值。
func SetupConfig(t *testing.T, extraEnv ...string) string {
	t.Helper()

	root := t.TempDir()
	uploadDir := filepath.Join(root, "images")
	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		t.Fatalf("创建图片目录失败: %v", err)
	}

	t.Setenv("SIMBA_UPLOAD_PATH", uploadDir)
	t.Setenv("SIMBA_RATE_LIMIT_ENABLED", "false")
	t.Setenv("SIMBA_REDIS_ENABLED", "false")
	for i := 0; i+1 < len(extraEnv); i += 2 {
		t.Setenv(extraEnv[i], extraEnv[i+1])
	}

	config.InitConfigWithoutWatch(filepath.Join(root, "config"))
	return uploadDir
}
