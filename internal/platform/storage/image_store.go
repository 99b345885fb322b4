package storage

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"simba-catalog-server/internal/config"
	"simba-catalog-server/internal/utils"

	"github.com/google/uuid"
)

// ErrStorage 所有文件系统故障都会包装该错误
var ErrStorage = errors.New("image storage failure")

const partSuffix = ".part"

// ImageStore 把上传的图片保存在单一目录下，文件名为 uuid + 原始扩展名。
// 不做进程内加锁；并发安全依赖文件名唯一。
type ImageStore struct {
	baseDir string
}

// NewImageStore 以 baseDir 为根创建存储，目录不存在时自动创建
func NewImageStore(baseDir string) (*ImageStore, error) {
	baseDir = strings.TrimSpace(baseDir)
	if baseDir == "" {
		return nil, fmt.Errorf("%w: 图片目录未配置", ErrStorage)
	}
	abs, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("%w: 图片目录解析失败: %w", ErrStorage, err)
	}
	if err := utils.EnsurePathNotSymlink(abs); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorage, err)
	}
	if err := os.MkdirAll(abs, 0755); err != nil {
		return nil, fmt.Errorf("%w: 无法创建图片目录: %w", ErrStorage, err)
	}
	return &ImageStore{baseDir: abs}, nil
}

// NewImageStoreFromConfig 使用 upload.path 创建存储
func NewImageStoreFromConfig() (*ImageStore, error) {
	return NewImageStore(config.Get().Upload.Path)
}

func (s *ImageStore) Dir() string {
	return s.baseDir
}

// Save 写入新文件并返回存储名（uuid + 原始扩展名，大小写保持不变）。
// 内容先写到 <name>.part，完整落盘后再重命名，失败时不会留下半个文件。
func (s *ImageStore) Save(r io.Reader, originalName string) (string, error) {
	name := uuid.New().String() + filepath.Ext(originalName)

	dst, err := utils.SecureJoin(s.baseDir, name)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrStorage, err)
	}
	tmp := dst + partSuffix

	out, err := os.OpenFile(tmp, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return "", fmt.Errorf("%w: 无法创建文件: %w", ErrStorage, err)
	}

	_, copyErr := io.Copy(out, r)
	syncErr := out.Sync()
	closeErr := out.Close()
	if err := errors.Join(copyErr, syncErr, closeErr); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("%w: 文件保存失败: %w", ErrStorage, err)
	}

	if err := os.Rename(tmp, dst); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("%w: 文件保存失败: %w", ErrStorage, err)
	}
	return name, nil
}

// SaveFile 保存 multipart 上传的文件
func (s *ImageStore) SaveFile(file *multipart.FileHeader) (string, error) {
	if file == nil {
		return "", fmt.Errorf("%w: 缺少文件", ErrStorage)
	}
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("%w: 无法读取上传文件: %w", ErrStorage, err)
	}
	defer func() { _ = src.Close() }()

	return s.Save(src, file.Filename)
}

// Delete 删除存储名对应的文件；文件不存在视为成功
func (s *ImageStore) Delete(name string) error {
	if strings.TrimSpace(name) == "" {
		return nil
	}

	target, err := utils.SecureJoin(s.baseDir, name)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStorage, err)
	}

	info, err := os.Lstat(target)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("%w: 检查文件失败: %w", ErrStorage, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: 目标是目录: %s", ErrStorage, name)
	}

	if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("%w: 删除文件失败: %w", ErrStorage, err)
	}
	return nil
}

func (s *ImageStore) Exists(name string) bool {
	if strings.TrimSpace(name) == "" {
		return false
	}
	target, err := utils.SecureJoin(s.baseDir, name)
	if err != nil {
		return false
	}
	info, err := os.Stat(target)
	return err == nil && !info.IsDir()
}

// Usage 统计目录下已落盘的图片数量与总字节数，忽略未完成的 .part 文件
func (s *ImageStore) Usage() (files int, bytes int64, err error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: 读取图片目录失败: %w", ErrStorage, err)
	}
	for _, entry := range entries {
		if !entry.Type().IsRegular() || strings.HasSuffix(entry.Name(), partSuffix) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files++
		bytes += info.Size()
	}
	return files, bytes, nil
}
