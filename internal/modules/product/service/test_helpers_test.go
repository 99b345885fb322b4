package service

import (
	"context"
	"errors"
	"mime/multipart"
	"testing"

	"simba-catalog-server/internal/model"
	"simba-catalog-server/internal/modules/product/repo"
	platformservice "simba-catalog-server/internal/platform/service"
	"simba-catalog-server/internal/platform/storage"
	"simba-catalog-server/internal/testutils"

	"gorm.io/gorm"
)

// faultyFiles 包装真实存储，可在指定次数保存或指定文件删除时注入故障
type faultyFiles struct {
	*storage.ImageStore
	failSaveAt   int // 第 n 次保存失败（从 1 开始），0 表示不失败
	saves        int
	failDeleteOf map[string]bool
}

func (f *faultyFiles) SaveFile(file *multipart.FileHeader) (string, error) {
	f.saves++
	if f.failSaveAt > 0 && f.saves == f.failSaveAt {
		return "", errors.Join(storage.ErrStorage, errors.New("disk full"))
	}
	return f.ImageStore.SaveFile(file)
}

func (f *faultyFiles) Delete(name string) error {
	if f.failDeleteOf[name] {
		return errors.Join(storage.ErrStorage, errors.New("permission denied"))
	}
	return f.ImageStore.Delete(name)
}

// failingCreateStore 让写事务失败，用于验证文件回收
type failingCreateStore struct {
	repo.ProductStore
}

func (s failingCreateStore) CreateWithImages(context.Context, *model.Product, []model.ProductImage) error {
	return errors.New("db down")
}

func (s failingCreateStore) UpdateWithImages(context.Context, *model.Product, []model.ProductImage, []uint) error {
	return errors.New("db down")
}

type testEnv struct {
	gdb     *gorm.DB
	store   *storage.ImageStore
	files   *faultyFiles
	service *Service
}

func setupTestService(t *testing.T) *testEnv {
	t.Helper()

	uploadDir := testutils.SetupConfig(t)
	gdb := testutils.SetupDB(t)
	store, err := storage.NewImageStore(uploadDir)
	if err != nil {
		t.Fatalf("NewImageStore: %v", err)
	}
	files := &faultyFiles{ImageStore: store, failDeleteOf: map[string]bool{}}
	svc := New(platformservice.NewAppService(), repo.NewProductRepository(gdb), files)
	return &testEnv{gdb: gdb, store: store, files: files, service: svc}
}

func (e *testEnv) seedCategory(t *testing.T, name string) uint {
	t.Helper()
	c := model.Category{Name: name}
	if err := e.gdb.Create(&c).Error; err != nil {
		t.Fatalf("创建分类失败: %v", err)
	}
	return c.ID
}

func (e *testEnv) countRows(t *testing.T, m any) int64 {
	t.Helper()
	var n int64
	if err := e.gdb.Model(m).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

func pngFile(t *testing.T, name string) *multipart.FileHeader {
	return testutils.NewFileHeader(t, name, testutils.PNGBytes())
}

func jpegFile(t *testing.T, name string) *multipart.FileHeader {
	return testutils.NewFileHeader(t, name, testutils.JPEGBytes())
}

func rawFile(t *testing.T, name string, data []byte) *multipart.FileHeader {
	return testutils.NewFileHeader(t, name, data)
}

func assertCode(t *testing.T, err error, code platformservice.ErrorCode) {
	t.Helper()
	if !platformservice.IsCode(err, code) {
		t.Fatalf("期望错误码 %s，实际为 %v", code, err)
	}
}
