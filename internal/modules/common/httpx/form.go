package httpx

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// ErrBadForm 请求体不是可解析的表单
var ErrBadForm = errors.New("请求格式错误")

// Form 同时兼容 multipart 与 urlencoded 请求体
type Form struct {
	values map[string][]string
	files  map[string][]*multipart.FileHeader
}

// ParseForm 解析请求体；超过大小限制时返回 *http.MaxBytesError
func ParseForm(c *gin.Context) (*Form, error) {
	mf, err := c.MultipartForm()
	if err == nil {
		return &Form{values: mf.Value, files: mf.File}, nil
	}

	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return nil, err
	}
	if !errors.Is(err, http.ErrNotMultipart) {
		return nil, ErrBadForm
	}

	if err := c.Request.ParseForm(); err != nil {
		if errors.As(err, &maxErr) {
			return nil, err
		}
		return nil, ErrBadForm
	}
	return &Form{values: c.Request.PostForm}, nil
}

// WriteFormError 表单解析失败：超限 413，其余 400
func WriteFormError(c *gin.Context, err error) {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "上传内容过大"})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

// Values 返回 name 与 name[] 两种写法下的全部值
func (f *Form) Values(name string) []string {
	out := append([]string{}, f.values[name]...)
	return append(out, f.values[name+"[]"]...)
}

func (f *Form) Value(name string) string {
	if vals := f.Values(name); len(vals) > 0 {
		return vals[0]
	}
	return ""
}

// Files 返回 name 与 name[] 两种写法下的全部文件，保持提交顺序
func (f *Form) Files(name string) []*multipart.FileHeader {
	if f.files == nil {
		return nil
	}
	out := append([]*multipart.FileHeader{}, f.files[name]...)
	return append(out, f.files[name+"[]"]...)
}

func (f *Form) File(name string) *multipart.FileHeader {
	if files := f.Files(name); len(files) > 0 {
		return files[0]
	}
	return nil
}

// Int 空值返回 0
func (f *Form) Int(name string) (int, error) {
	raw := strings.TrimSpace(f.Value(name))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New(name + " 参数错误")
	}
	return v, nil
}

// Uint 空值返回 0
func (f *Form) Uint(name string) (uint, error) {
	raw := strings.TrimSpace(f.Value(name))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, errors.New(name + " 参数错误")
	}
	return uint(v), nil
}

func (f *Form) Ints(name string) ([]int, error) {
	raws := f.Values(name)
	out := make([]int, 0, len(raws))
	for _, raw := range raws {
		v, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return nil, errors.New(name + " 参数错误")
		}
		out = append(out, v)
	}
	return out, nil
}

func (f *Form) Uints(name string) ([]uint, error) {
	raws := f.Values(name)
	out := make([]uint, 0, len(raws))
	for _, raw := range raws {
		v, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			return nil, errors.New(name + " 参数错误")
		}
		out = append(out, uint(v))
	}
	return out, nil
}

// ParseIDParam 解析路径参数 id，必须为正整数
func ParseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id 参数错误"})
		return 0, false
	}
	return uint(id), true
}
