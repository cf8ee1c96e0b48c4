package common

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GenerateUUID 生成 UUID
func GenerateUUID() string {
	return uuid.New().String()
}

// RequestID 取得請求 ID，沒有時生成並寫回響應標頭
func RequestID(c *gin.Context) string {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = c.Writer.Header().Get("X-Request-ID")
	}
	if requestID == "" {
		requestID = GenerateUUID()
		c.Header("X-Request-ID", requestID)
	}
	return requestID
}

// WriteError 寫入錯誤響應，debug 模式下附帶原始錯誤
func WriteError(c *gin.Context, err *CustomError, debug bool) {
	resp := ErrorResponse{
		Code:    err.Code,
		Message: err.Message,
	}
	if debug && err.Err != nil {
		resp.Details = err.Err.Error()
	}
	c.AbortWithStatusJSON(err.Status, resp)
}

// BindError 將請求綁定錯誤轉換為 API 錯誤；超過請求體上限時回傳 ErrBodyTooLarge
func BindError(err error) *CustomError {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return ErrBodyTooLarge.Wrap(err)
	}
	return ErrInvalidRequest.Wrap(err)
}
