package response

import "github.com/gin-gonic/gin"

// AppError 接口层错误：业务码 + 已本地化的提示 + 原始错误
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// WrapError 包装错误
func WrapError(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Abort 输出错误响应并中止后续处理（中间件使用）
func (e *AppError) Abort(c *gin.Context) {
	if e == nil || c == nil {
		return
	}
	Error(c, e.Code, e.Message)
	c.Abort()
}
