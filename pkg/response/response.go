package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/d60-Lab/portfolio/pkg/logger"
)

// ErrorDetail 单个字段的校验错误
type ErrorDetail struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

// ValidationResponse 422 响应体
type ValidationResponse struct {
	Detail []ErrorDetail `json:"detail"`
}

// ErrorResponse 500 等通用错误响应体
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// OK 直接输出业务对象，不包信封
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// ValidationError 请求体不合法
func ValidationError(c *gin.Context, err error) {
	Unprocessable(c, BodyErrors(err))
}

// Unprocessable 输出 422，detail 可同时包含路径与请求体错误
func Unprocessable(c *gin.Context, details []ErrorDetail) {
	c.JSON(http.StatusUnprocessableEntity, ValidationResponse{Detail: details})
}

// BodyErrors 把绑定/校验错误转换为 detail 条目
func BodyErrors(err error) []ErrorDetail {
	return describe(err, "body")
}

// PathParamError 路径参数不是整数
func PathParamError(name string) ErrorDetail {
	return ErrorDetail{
		Loc:  []string{"path", name},
		Msg:  "Input should be a valid integer",
		Type: "int_parsing",
	}
}

// InternalError 存储层等未预期错误：记录日志并上报 sentry
func InternalError(c *gin.Context, err error) {
	logger.Error("request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Error(err))
	if hub := sentrygin.GetHubFromContext(c); hub != nil {
		hub.CaptureException(err)
	} else if hub := sentry.CurrentHub(); hub.Client() != nil {
		hub.CaptureException(err)
	}
	c.JSON(http.StatusInternalServerError, ErrorResponse{Detail: "Internal Server Error"})
}

func describe(err error, loc string) []ErrorDetail {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make([]ErrorDetail, 0, len(verrs))
		for _, fe := range verrs {
			d := ErrorDetail{Loc: []string{loc, fe.Field()}, Type: fe.Tag()}
			switch fe.Tag() {
			case "required":
				d.Msg = "Field required"
				d.Type = "missing"
			default:
				d.Msg = fe.Error()
			}
			out = append(out, d)
		}
		return out
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return []ErrorDetail{{
			Loc:  []string{loc, typeErr.Field},
			Msg:  "Input should be a valid " + typeErr.Type.String(),
			Type: typeErr.Type.String() + "_type",
		}}
	}

	return []ErrorDetail{{Loc: []string{loc}, Msg: err.Error(), Type: "json_invalid"}}
}

var registerOnce sync.Once

// UseJSONFieldNames 让校验错误里的字段名使用 json tag，而不是 Go 字段名
func UseJSONFieldNames() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
}
