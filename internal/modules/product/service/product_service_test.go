package service

import (
	"context"
	"errors"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"
	"testing"

	"simba-catalog-server/internal/consts"
	"simba-catalog-server/internal/model"
	moduledto "simba-catalog-server/internal/modules/product/dto"
	platformservice "simba-catalog-server/internal/platform/service"
	"simba-catalog-server/internal/platform/storage"

	"github.com/shopspring/decimal"
)

func dirEntries(t *testing.T, dir string) int {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("读取目录失败: %v", err)
	}
	return len(entries)
}

// 测试内容：验证 Hammer/Tools 完整流程：创建、列表、追加图片、删除后文件全部移除。
func TestProductLifecycle_HammerScenario(t *testing.T) {
	env := setupTestService(t)
	ctx := context.Background()
	toolsID := env.seedCategory(t, "Tools")

	id, err := env.service.Create(ctx, moduledto.ProductCreateRequest{
		Name:       "Hammer",
		Price:      decimal.RequireFromString("9.99"),
		CategoryID: toolsID,
		Priority:   0,
		Images:     []*multipart.FileHeader{jpegFile(t, "photo.jpg")},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if id == 0 {
		t.Fatalf("期望返回新商品 ID")
	}

	items, err := env.service.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 1 || items[0].CategoryName != "Tools" || len(items[0].Images) != 1 {
		t.Fatalf("非预期列表: %+v", items)
	}
	if path.Dir(items[0].Images[0]) != "/images" || path.Ext(items[0].Images[0]) != ".jpg" {
		t.Fatalf("非预期图片地址: %q", items[0].Images[0])
	}

	err = env.service.Edit(ctx, id, moduledto.ProductEditRequest{
		Name:       "Hammer",
		Price:      decimal.RequireFromString("9.99"),
		CategoryID: toolsID,
		Images:     []*multipart.FileHeader{pngFile(t, "second.png")},
	})
	if err != nil {
		t.Fatalf("Edit: %v", err)
	}

	items, _ = env.service.List(ctx)
	if len(items[0].Images) != 2 {
		t.Fatalf("期望 2 张图片，实际为 %v", items[0].Images)
	}
	if dirEntries(t, env.store.Dir()) != 2 {
		t.Fatalf("期望目录中有 2 个文件")
	}

	if err := env.service.Delete(ctx, id); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := env.service.Get(ctx, id); !platformservice.IsCode(err, platformservice.ErrorCodeNotFound) {
		t.Fatalf("期望删除后 Get 返回 not_found，实际为 %v", err)
	}
	if dirEntries(t, env.store.Dir()) != 0 {
		t.Fatalf("期望图片文件全部删除")
	}
	if env.countRows(t, &model.ProductImage{}) != 0 {
		t.Fatalf("期望图片行全部删除")
	}
}

// 测试内容：验证各类非法输入返回校验错误且不产生文件或行。
func TestCreate_ValidationErrors(t *testing.T) {
	env := setupTestService(t)
	ctx := context.Background()
	catID := env.seedCategory(t, "Tools")

	cases := map[string]moduledto.ProductCreateRequest{
		"blank_name":       {Name: "  ", CategoryID: catID},
		"negative_price":   {Name: "x", Price: decimal.NewFromInt(-1), CategoryID: catID},
		"price_overflow":   {Name: "x", Price: decimal.New(1, 17), CategoryID: catID},
		"missing_category": {Name: "x"},
		"unknown_category": {Name: "x", CategoryID: catID + 100},
		"bad_image":        {Name: "x", CategoryID: catID, Images: []*multipart.FileHeader{pngFile(t, "ok.png"), rawFile(t, "a.png", []byte("plain text"))}},
		"priority_count":   {Name: "x", CategoryID: catID, Images: []*multipart.FileHeader{pngFile(t, "ok.png")}, ImagePriorities: []int{1, 2}},
	}

	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := env.service.Create(ctx, req)
			assertCode(t, err, platformservice.ErrorCodeValidation)
		})
	}

	if env.countRows(t, &model.Product{}) != 0 {
		t.Fatalf("校验失败不应写入商品")
	}
	if dirEntries(t, env.store.Dir()) != 0 {
		t.Fatalf("校验失败不应保存文件")
	}
}

// 测试内容：验证第二张图片保存失败时回收第一张文件并且不写入商品。
func TestCreate_SaveFailureCleansUp(t *testing.T) {
	env := setupTestService(t)
	ctx := context.Background()
	catID := env.seedCategory(t, "Tools")
	env.files.failSaveAt = 2

	_, err := env.service.Create(ctx, moduledto.ProductCreateRequest{
		Name:       "Hammer",
		CategoryID: catID,
		Images:     []*multipart.FileHeader{pngFile(t, "a.png"), pngFile(t, "b.png")},
	})
	assertCode(t, err, platformservice.ErrorCodeIO)
	if !errors.Is(err, storage.ErrStorage) {
		t.Fatalf("期望保留底层存储错误，实际为 %v", err)
	}

	if env.countRows(t, &model.Product{}) != 0 {
		t.Fatalf("保存失败不应写入商品")
	}
	if dirEntries(t, env.store.Dir()) != 0 {
		t.Fatalf("期望已保存的文件被回收")
	}
}

// 测试内容：验证数据库写入失败时删除本次保存的文件。
func TestCreate_DatabaseFailureCleansUp(t *testing.T) {
	env := setupTestService(t)
	ctx := context.Background()
	catID := env.seedCategory(t, "Tools")
	env.service.productStore = failingCreateStore{ProductStore: env.service.productStore}

	_, err := env.service.Create(ctx, moduledto.ProductCreateRequest{
		Name:       "Hammer",
		CategoryID: catID,
		Images:     []*multipart.FileHeader{pngFile(t, "a.png")},
	})
	assertCode(t, err, platformservice.ErrorCodeInternal)
	if dirEntries(t, env.store.Dir()) != 0 {
		t.Fatalf("期望文件被回收")
	}
}

// 测试内容：验证显式图片优先级逐张生效，缺省时使用商品级优先级。
func TestCreate_ImagePriorities(t *testing.T) {
	env := setupTestService(t)
	ctx := context.Background()
	catID := env.seedCategory(t, "Tools")

	id, err := env.service.Create(ctx, moduledto.ProductCreateRequest{
		Name:            "Hammer",
		CategoryID:      catID,
		Priority:        3,
		Images:          []*multipart.FileHeader{pngFile(t, "a.png"), pngFile(t, "b.png")},
		ImagePriorities: []int{7, 1},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	p, _ := env.service.Get(ctx, id)
	if p.Images[0].Priority != 7 || p.Images[1].Priority != 1 {
		t.Fatalf("非预期图片优先级: %+v", p.Images)
	}

	err = env.service.Edit(ctx, id, moduledto.ProductEditRequest{
		Name:       "Hammer",
		CategoryID: catID,
		Priority:   4,
		Images:     []*multipart.FileHeader{pngFile(t, "c.png")},
	})
	if err != nil {
		t.Fatalf("Edit: %v", err)
	}
	p, _ = env.service.Get(ctx, id)
	if len(p.Images) != 3 || p.Images[2].Priority != 4 || p.Priority != 4 {
		t.Fatalf("期望新图片使用编辑请求的优先级: %+v", p)
	}
}

// 测试内容：验证编辑时只移除属于该商品的图片，其他商品的图片 ID 被忽略。
func TestEdit_RemoveImageIDs(t *testing.T) {
	env := setupTestService(t)
	ctx := context.Background()
	catID := env.seedCategory(t, "Tools")

	aID, err := env.service.Create(ctx, moduledto.ProductCreateRequest{
		Name: "A", CategoryID: catID,
		Images: []*multipart.FileHeader{pngFile(t, "a1.png"), pngFile(t, "a2.png")},
	})
	if err != nil {
		t.Fatalf("create a: %v", err)
	}
	bID, err := env.service.Create(ctx, moduledto.ProductCreateRequest{
		Name: "B", CategoryID: catID,
		Images: []*multipart.FileHeader{pngFile(t, "b1.png")},
	})
	if err != nil {
		t.Fatalf("create b: %v", err)
	}

	a, _ := env.service.Get(ctx, aID)
	b, _ := env.service.Get(ctx, bID)
	removed := a.Images[0]
	foreign := b.Images[0]

	err = env.service.Edit(ctx, aID, moduledto.ProductEditRequest{
		Name: "A", CategoryID: catID,
		RemoveImageIDs: []uint{removed.ID, foreign.ID, 9999},
	})
	if err != nil {
		t.Fatalf("Edit: %v", err)
	}

	a, _ = env.service.Get(ctx, aID)
	if len(a.Images) != 1 || a.Images[0].ID == removed.ID {
		t.Fatalf("期望仅剩 1 张图片，实际为 %+v", a.Images)
	}
	if env.store.Exists(removed.Image) {
		t.Fatalf("期望被移除图片的文件已删除")
	}
	b, _ = env.service.Get(ctx, bID)
	if len(b.Images) != 1 || !env.store.Exists(foreign.Image) {
		t.Fatalf("其他商品的图片不应受影响")
	}
}

// 测试内容：验证编辑移除图片时某个文件删除失败，其余文件照常删除，行已提交并返回汇总的 io 错误。
func TestEdit_RemoveFileFaultIsAggregated(t *testing.T) {
	env := setupTestService(t)
	ctx := context.Background()
	catID := env.seedCategory(t, "Tools")

	id, err := env.service.Create(ctx, moduledto.ProductCreateRequest{
		Name: "A", CategoryID: catID,
		Images: []*multipart.FileHeader{pngFile(t, "a.png"), pngFile(t, "b.png")},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	p, _ := env.service.Get(ctx, id)
	stuck, other := p.Images[0].Image, p.Images[1].Image
	env.files.failDeleteOf[stuck] = true

	err = env.service.Edit(ctx, id, moduledto.ProductEditRequest{
		Name: "A2", CategoryID: catID,
		RemoveImageIDs: []uint{p.Images[0].ID, p.Images[1].ID},
	})
	assertCode(t, err, platformservice.ErrorCodeIO)
	serviceErr, _ := platformservice.AsServiceError(err)
	if !strings.Contains(serviceErr.Message, stuck) || strings.Contains(serviceErr.Message, other) {
		t.Fatalf("期望错误信息只列出失败的文件，实际为 %q", serviceErr.Message)
	}

	if n := env.countRows(t, &model.ProductImage{}); n != 0 {
		t.Fatalf("期望图片行已全部移除，实际剩余 %d", n)
	}
	p, _ = env.service.Get(ctx, id)
	if p.Name != "A2" {
		t.Fatalf("期望商品字段已更新，实际为 %q", p.Name)
	}
	if env.store.Exists(other) {
		t.Fatalf("期望其余文件被删除")
	}
	if !env.store.Exists(stuck) {
		t.Fatalf("故障文件应仍在磁盘上")
	}
}

// 测试内容：验证单次上传超过图片数上限时返回校验错误且不落盘。
func TestCreate_TooManyImages(t *testing.T) {
	env := setupTestService(t)
	catID := env.seedCategory(t, "Tools")

	images := make([]*multipart.FileHeader, 0, consts.MaxUploadFilesPerRequest+1)
	for i := 0; i <= consts.MaxUploadFilesPerRequest; i++ {
		images = append(images, pngFile(t, "p.png"))
	}
	_, err := env.service.Create(context.Background(), moduledto.ProductCreateRequest{
		Name: "A", CategoryID: catID, Images: images,
	})
	assertCode(t, err, platformservice.ErrorCodeValidation)
	if dirEntries(t, env.store.Dir()) != 0 {
		t.Fatalf("期望没有文件落盘")
	}
}

// 测试内容：验证编辑不存在的商品返回 not_found。
func TestEdit_NotFound(t *testing.T) {
	env := setupTestService(t)
	err := env.service.Edit(context.Background(), 77, moduledto.ProductEditRequest{Name: "x", CategoryID: 1})
	assertCode(t, err, platformservice.ErrorCodeNotFound)
}

// 测试内容：验证编辑写库失败时新保存的文件被回收，原有数据不变。
func TestEdit_DatabaseFailureCleansUp(t *testing.T) {
	env := setupTestService(t)
	ctx := context.Background()
	catID := env.seedCategory(t, "Tools")

	id, err := env.service.Create(ctx, moduledto.ProductCreateRequest{Name: "A", CategoryID: catID})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	env.service.productStore = failingCreateStore{ProductStore: env.service.productStore}

	err = env.service.Edit(ctx, id, moduledto.ProductEditRequest{
		Name: "B", CategoryID: catID,
		Images: []*multipart.FileHeader{pngFile(t, "n.png")},
	})
	assertCode(t, err, platformservice.ErrorCodeInternal)
	if dirEntries(t, env.store.Dir()) != 0 {
		t.Fatalf("期望新文件被回收")
	}
	p, _ := env.service.Get(ctx, id)
	if p.Name != "A" {
		t.Fatalf("期望商品保持原样，实际为 %q", p.Name)
	}
}

// 测试内容：验证删除时图片文件已缺失视为成功。
func TestDelete_MissingFileIsNoop(t *testing.T) {
	env := setupTestService(t)
	ctx := context.Background()
	catID := env.seedCategory(t, "Tools")

	id, err := env.service.Create(ctx, moduledto.ProductCreateRequest{
		Name: "A", CategoryID: catID,
		Images: []*multipart.FileHeader{pngFile(t, "a.png")},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	p, _ := env.service.Get(ctx, id)
	if err := os.Remove(filepath.Join(env.store.Dir(), p.Images[0].Image)); err != nil {
		t.Fatalf("预先删除文件失败: %v", err)
	}

	if err := env.service.Delete(ctx, id); err != nil {
		t.Fatalf("期望删除成功，实际为 %v", err)
	}
}

// 测试内容：验证某个文件删除失败时继续删除其余文件，商品仍被删除并返回 io 错误。
func TestDelete_FileFaultIsAggregated(t *testing.T) {
	env := setupTestService(t)
	ctx := context.Background()
	catID := env.seedCategory(t, "Tools")

	id, err := env.service.Create(ctx, moduledto.ProductCreateRequest{
		Name: "A", CategoryID: catID,
		Images: []*multipart.FileHeader{pngFile(t, "a.png"), pngFile(t, "b.png")},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	p, _ := env.service.Get(ctx, id)
	stuck, other := p.Images[0].Image, p.Images[1].Image
	env.files.failDeleteOf[stuck] = true

	err = env.service.Delete(ctx, id)
	assertCode(t, err, platformservice.ErrorCodeIO)
	serviceErr, _ := platformservice.AsServiceError(err)
	if serviceErr.Message == "" {
		t.Fatalf("期望错误带有说明")
	}

	if _, err := env.service.Get(ctx, id); !platformservice.IsCode(err, platformservice.ErrorCodeNotFound) {
		t.Fatalf("期望商品已被删除，实际为 %v", err)
	}
	if env.store.Exists(other) {
		t.Fatalf("期望其余文件被删除")
	}
	if !env.store.Exists(stuck) {
		t.Fatalf("故障文件应仍在磁盘上")
	}
}

// 测试内容：验证删除不存在的商品返回 not_found。
func TestDelete_NotFound(t *testing.T) {
	env := setupTestService(t)
	assertCode(t, env.service.Delete(context.Background(), 5), platformservice.ErrorCodeNotFound)
}
