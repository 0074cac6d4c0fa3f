package handler

import (
	"strconv"

	"github.com/electronicsclair/Clair-Form/internal/sales"
	"github.com/gin-gonic/gin"
)

// Handlers 处理器集合
type Handlers struct {
	Sales *SalesHandler
}

// NewHandlers 创建处理器集合
func NewHandlers(salesSvc *sales.Service) *Handlers {
	return &Handlers{
		Sales: NewSalesHandler(salesSvc),
	}
}

// === 响应辅助函数 ===

type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(200, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(201, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

func Error(c *gin.Context, code int, message string) {
	statusCode := code / 100
	if statusCode < 100 || statusCode > 599 {
		statusCode = 500
	}
	c.JSON(statusCode, Response{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, message string) {
	Error(c, 40000, message)
}

func BadGateway(c *gin.Context, message string) {
	Error(c, 50200, message)
}

func InternalError(c *gin.Context, message string) {
	Error(c, 50000, message)
}

// ValidationFailed 校验失败响应，错误列表放入data便于前端逐条展示
func ValidationFailed(c *gin.Context, errs []string) {
	c.JSON(422, Response{
		Code:    42200,
		Message: "validation failed",
		Data:    gin.H{"errors": errs},
	})
}

// GetLimit 解析limit查询参数
func GetLimit(c *gin.Context, def int) int {
	if raw := c.Query("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 && v <= 100 {
			return v
		}
	}
	return def
}
