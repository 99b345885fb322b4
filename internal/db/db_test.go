package db

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"simba-catalog-server/internal/config"
	"simba-catalog-server/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// 测试内容：验证使用 sqlite 临时文件初始化数据库并创建三张目录表。
func TestInitDB_SQLiteTempFile(t *testing.T) {
	tmp := t.TempDir()
	cfgDir := filepath.Join(tmp, "cfg")
	if err := os.MkdirAll(cfgDir, 0755); err != nil {
		t.Fatalf("创建配置目录失败: %v", err)
	}

	dbFile := filepath.Join(tmp, "db", "test.db")
	t.Setenv("SIMBA_SERVER_MODE", "debug")
	t.Setenv("SIMBA_DATABASE_TYPE", "sqlite")
	t.Setenv("SIMBA_DATABASE_FILENAME", dbFile)

	config.InitConfigWithoutWatch(cfgDir)
	InitDB()

	if DB == nil {
		t.Fatalf("期望 DB to be initialized")
	}
	for _, m := range []any{&model.Category{}, &model.Product{}, &model.ProductImage{}} {
		if !DB.Migrator().HasTable(m) {
			t.Fatalf("期望表 %T 已创建", m)
		}
	}

	sqlDB, err := DB.DB()
	if err == nil {
		_ = sqlDB.Close()
	}
}

// 测试内容：验证删除商品时外键级联删除商品图片行。
func TestMigrate_ProductImagesCascadeOnDelete(t *testing.T) {
	tmp := t.TempDir()
	gdb, err := Open(config.DatabaseConfig{Type: "sqlite", Filename: filepath.Join(tmp, "c.db"), LogLevel: "silent"})
	if err != nil {
		t.Fatalf("打开数据库失败: %v", err)
	}
	sqlDB, _ := gdb.DB()
	defer func() { _ = sqlDB.Close() }()

	if err := Migrate(gdb); err != nil {
		t.Fatalf("迁移失败: %v", err)
	}

	c := model.Category{Name: "Tools"}
	if err := gdb.Create(&c).Error; err != nil {
		t.Fatalf("创建分类失败: %v", err)
	}
	p := model.Product{Name: "Hammer", CategoryID: c.ID}
	if err := gdb.Create(&p).Error; err != nil {
		t.Fatalf("创建商品失败: %v", err)
	}
	img := model.ProductImage{ProductID: p.ID, Image: "a.jpg"}
	if err := gdb.Create(&img).Error; err != nil {
		t.Fatalf("创建图片失败: %v", err)
	}

	// 只删父行，依赖数据库外键完成级联
	if err := gdb.Exec("DELETE FROM tbl_products WHERE id = ?", p.ID).Error; err != nil {
		t.Fatalf("删除商品失败: %v", err)
	}

	var count int64
	gdb.Model(&model.ProductImage{}).Count(&count)
	if count != 0 {
		t.Fatalf("期望图片行被级联删除，实际剩余 %d", count)
	}
}

// 测试内容：验证日志级别解析。
func TestParseLogLevel(t *testing.T) {
	cases := map[string]logger.LogLevel{
		"silent": logger.Silent,
		"ERROR":  logger.Error,
		"info":   logger.Info,
		"":       logger.Warn,
		"nope":   logger.Warn,
	}
	for in, want := range cases {
		if got := parseLogLevel(in); got != want {
			t.Fatalf("parseLogLevel(%q) = %v，期望 %v", in, got, want)
		}
	}
}

// 测试内容：验证删除仍被商品引用的分类时，外键错误被翻译为 gorm.ErrForeignKeyViolated。
func TestOpen_TranslatesForeignKeyViolation(t *testing.T) {
	tmp := t.TempDir()
	gdb, err := Open(config.DatabaseConfig{Type: "sqlite", Filename: filepath.Join(tmp, "fk.db"), LogLevel: "silent"})
	if err != nil {
		t.Fatalf("打开数据库失败: %v", err)
	}
	sqlDB, _ := gdb.DB()
	defer func() { _ = sqlDB.Close() }()

	if err := Migrate(gdb); err != nil {
		t.Fatalf("迁移失败: %v", err)
	}
	c := model.Category{Name: "Tools"}
	gdb.Create(&c)
	if err := gdb.Create(&model.Product{Name: "Hammer", CategoryID: c.ID}).Error; err != nil {
		t.Fatalf("创建商品失败: %v", err)
	}

	err = gdb.Delete(&model.Category{}, c.ID).Error
	if !errors.Is(err, gorm.ErrForeignKeyViolated) {
		t.Fatalf("期望 ErrForeignKeyViolated，实际为 %v", err)
	}
}
