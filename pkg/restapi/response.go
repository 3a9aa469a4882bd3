package restapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"dashboard-service/pkg/errno"
)

// Response 统一响应结构
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Success 返回成功响应
func Success(ctx *gin.Context, data interface{}) {
	ctx.JSON(http.StatusOK, Response{
		Code:    errno.OK.Code,
		Message: errno.OK.Message,
		Data:    data,
	})
}

// Failed 返回失败响应，业务错误码映射到合适的HTTP状态
func Failed(ctx *gin.Context, err error) {
	var e *errno.Errno
	if !errors.As(err, &e) {
		e = &errno.Errno{Code: errno.ErrInternalServer.Code, Message: err.Error()}
	}

	status := http.StatusInternalServerError
	switch {
	case e.Code >= 400 && e.Code < 600:
		status = e.Code
	case e.Code >= 20001 && e.Code < 20100:
		status = http.StatusBadRequest
	case e.Code >= 20100 && e.Code < 20200:
		status = http.StatusBadGateway
	}

	// 保留外层包装的上下文（例如失败的是哪条指令）
	message := err.Error()
	if message == "" {
		message = e.Message
	}

	ctx.JSON(status, Response{
		Code:    e.Code,
		Message: message,
	})
}
