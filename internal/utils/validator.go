package utils

import (
	"io"
	"net/http"
)

// 真实类型 -> 可接受的扩展名
var imageContentTypes = map[string]map[string]bool{
	"image/jpeg":     {".jpg": true, ".jpeg": true},
	"image/png":      {".png": true},
	"image/gif":      {".gif": true},
	"image/webp":     {".webp": true},
	"image/bmp":      {".bmp": true},
	"image/x-ms-bmp": {".bmp": true},
}

// ValidateImageContent 读取文件头部嗅探真实类型，要求与扩展名一致。
// 无论成功与否都会把读取位置重置到开头。
func ValidateImageContent(reader io.ReadSeeker, ext string) (bool, string) {
	buffer := make([]byte, 512)
	n, err := reader.Read(buffer)
	if err != nil && err != io.EOF {
		return false, "读取文件内容失败"
	}

	if _, err := reader.Seek(0, io.SeekStart); err != nil {
		return false, "重置文件读取位置失败"
	}

	contentType := http.DetectContentType(buffer[:n])
	if exts, ok := imageContentTypes[contentType]; ok && exts[ext] {
		return true, ""
	}

	return false, "文件真实类型(" + contentType + ")与扩展名(" + ext + ")不匹配或不支持"
}
