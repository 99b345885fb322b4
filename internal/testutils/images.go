package testutils

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
)

// PNGBytes 返回可通过内容嗅探的最小 PNG 头
func PNGBytes() []byte {
	return []byte{
		0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A,
		0x00, 0x00, 0x00, 0x0D,
		0x49, 0x48, 0x44, 0x52,
		0x00, 0x00, 0x00, 0x01,
		0x00, 0x00, 0x00, 0x01,
		0x08, 0x02, 0x00, 0x00, 0x00,
	}
}

// JPEGBytes 返回可通过内容嗅探的最小 JPEG 头
func JPEGBytes() []byte {
	return []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00, 0x01}
}

// FormFile 描述一个待上传的文件字段
type FormFile struct {
	Field    string
	Filename string
	Data     []byte
}

// MultipartBody 按字段与文件构造 multipart 请求体
func MultipartBody(t *testing.T, fields map[string][]string, files []FormFile) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for key, values := range fields {
		for _, v := range values {
			if err := writer.WriteField(key, v); err != nil {
				t.Fatalf("写入字段失败: %v", err)
			}
		}
	}
	for _, f := range files {
		part, err := writer.CreateFormFile(f.Field, f.Filename)
		if err != nil {
			t.Fatalf("创建文件字段失败: %v", err)
		}
		if _, err := part.Write(f.Data); err != nil {
			t.Fatalf("写入文件内容失败: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("关闭 multipart writer 失败: %v", err)
	}
	return body, writer.FormDataContentType()
}

// NewMultipartRequest 构造带 multipart 请求体的 HTTP 请求
func NewMultipartRequest(t *testing.T, method, target string, fields map[string][]string, files []FormFile) *http.Request {
	t.Helper()

	body, contentType := MultipartBody(t, fields, files)
	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Content-Type", contentType)
	return req
}

// NewFileHeader 构造可直接交给业务层的 *multipart.FileHeader
func NewFileHeader(t *testing.T, filename string, data []byte) *multipart.FileHeader {
	t.Helper()

	req := NewMultipartRequest(t, http.MethodPost, "/", nil, []FormFile{{Field: "file", Filename: filename, Data: data}})
	if err := req.ParseMultipartForm(32 << 20); err != nil {
		t.Fatalf("解析 multipart 失败: %v", err)
	}
	headers := req.MultipartForm.File["file"]
	if len(headers) != 1 {
		t.Fatalf("期望 1 个文件头，实际为 %d", len(headers))
	}
	return headers[0]
}
