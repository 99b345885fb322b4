package service

import (
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"simba-catalog-server/internal/config"
	"simba-catalog-server/internal/utils"
)

// AppService 对外暴露运行期配置派生的策略（上传限制、删除策略等）。
// 每次调用都读取 config.Get() 快照，配置热更新后立即生效。
type AppService struct{}

func NewAppService() *AppService {
	return &AppService{}
}

func (s *AppService) MaxUploadSizeMB() int {
	return config.Get().Upload.MaxSizeMB
}

func (s *AppService) MaxUploadSizeBytes() int64 {
	return int64(s.MaxUploadSizeMB()) * 1024 * 1024
}

// AllowedExtensions 返回小写、带点的扩展名列表
func (s *AppService) AllowedExtensions() []string {
	raw := config.Get().Upload.AllowedExtensions
	exts := make([]string, 0)
	for _, item := range strings.Split(raw, ",") {
		ext := strings.ToLower(strings.TrimSpace(item))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		exts = append(exts, ext)
	}
	return exts
}

func (s *AppService) CacheControl() string {
	return config.Get().Upload.CacheControl
}

func (s *AppService) CategoryDeletePolicy() string {
	return config.Get().Catalog.CategoryDeletePolicy
}

func (s *AppService) UploadRateLimit() (enabled bool, rps float64, burst int) {
	rl := config.Get().RateLimit
	return rl.Enabled, rl.UploadRPS, rl.UploadBurst
}

// ValidateImageFile 验证上传的图片文件（大小、后缀、内容），返回小写扩展名
func (s *AppService) ValidateImageFile(file *multipart.FileHeader) (string, error) {
	if file == nil {
		return "", errors.New("缺少图片文件")
	}

	// 检查文件大小
	maxSizeMB := s.MaxUploadSizeMB()
	if maxSizeMB > 0 && file.Size > s.MaxUploadSizeBytes() {
		return "", fmt.Errorf("文件大小不能超过 %dMB", maxSizeMB)
	}

	// 检查文件扩展名
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext == "" {
		return "", errors.New("无法识别文件类型")
	}

	allowed := false
	for _, allowExt := range s.AllowedExtensions() {
		if allowExt == ext {
			allowed = true
			break
		}
	}
	if !allowed {
		return ext, fmt.Errorf("不支持的文件类型: %s", ext)
	}

	// 检查文件内容 (Magic Bytes)
	src, err := file.Open()
	if err != nil {
		return ext, errors.New("无法打开上传的文件")
	}
	defer func() { _ = src.Close() }()

	if valid, msg := utils.ValidateImageContent(src, ext); !valid {
		return ext, errors.New(msg)
	}

	return ext, nil
}
