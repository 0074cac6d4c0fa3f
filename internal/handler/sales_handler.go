package handler

import (
	"net/http"

	"github.com/electronicsclair/Clair-Form/internal/sales"
	"github.com/gin-gonic/gin"
)

// SalesHandler 销售录入处理器
// 同时提供服务端渲染的表单页和JSON API两套入口，共用同一条校验/映射/创建流水线
type SalesHandler struct {
	svc *sales.Service
}

func NewSalesHandler(svc *sales.Service) *SalesHandler {
	return &SalesHandler{svc: svc}
}

// ShowForm 渲染录入表单
// GET /
func (h *SalesHandler) ShowForm(c *gin.Context) {
	opts := h.svc.LoadOptions(c.Request.Context())
	c.HTML(http.StatusOK, "form.html", gin.H{
		"Options": opts,
		"Errors":  []string{},
		"Values":  map[string]string{},
	})
}

// SubmitForm 校验并写入，失败时回显表单
// POST /
func (h *SalesHandler) SubmitForm(c *gin.Context) {
	values := formValues(c)

	result, verrs, err := h.svc.Submit(c.Request.Context(), values)
	if len(verrs) > 0 {
		// 校验失败：回显已填值与全部错误，不向上游发送任何内容
		opts := h.svc.LoadOptions(c.Request.Context())
		c.HTML(http.StatusOK, "form.html", gin.H{
			"Options": opts,
			"Errors":  verrs,
			"Values":  values,
		})
		return
	}
	if err != nil {
		// 上游失败：可重试提示，已填值保留
		opts := h.svc.LoadOptions(c.Request.Context())
		c.HTML(http.StatusOK, "form.html", gin.H{
			"Options": opts,
			"Errors":  []string{"Submit failed, please retry: " + err.Error()},
			"Values":  values,
		})
		return
	}

	c.HTML(http.StatusOK, "success.html", gin.H{
		"Title": result.Title,
	})
}

// formValues 读取全部表单字段（缺失字段读出空串）
func formValues(c *gin.Context) map[string]string {
	values := make(map[string]string, len(sales.FormFields))
	for _, f := range sales.FormFields {
		values[f] = c.PostForm(f)
	}
	return values
}

// ListOptions 下拉选项
// GET /api/v1/options
func (h *SalesHandler) ListOptions(c *gin.Context) {
	opts := h.svc.LoadOptions(c.Request.Context())
	Success(c, opts)
}

// CreateSales 提交销售记录
// POST /api/v1/sales
func (h *SalesHandler) CreateSales(c *gin.Context) {
	var req map[string]string
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	result, verrs, err := h.svc.Submit(c.Request.Context(), req)
	if len(verrs) > 0 {
		ValidationFailed(c, verrs)
		return
	}
	if err != nil {
		BadGateway(c, "upstream create failed: "+err.Error())
		return
	}

	Created(c, result)
}

// RecentSales 最近提交的销售记录
// GET /api/v1/sales/recent?limit=20
func (h *SalesHandler) RecentSales(c *gin.Context) {
	records, err := h.svc.Recent(c.Request.Context(), GetLimit(c, 20))
	if err != nil {
		BadGateway(c, "upstream query failed: "+err.Error())
		return
	}
	Success(c, gin.H{"items": records})
}

// ExportSales 导出最近销售记录为xlsx
// GET /api/v1/sales/export?limit=100
func (h *SalesHandler) ExportSales(c *gin.Context) {
	f, filename, err := h.svc.ExportXLSX(c.Request.Context(), GetLimit(c, 100))
	if err != nil {
		BadGateway(c, "export failed: "+err.Error())
		return
	}
	defer f.Close()

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename=\""+filename+"\"")
	c.Header("Content-Transfer-Encoding", "binary")

	if err := f.Write(c.Writer); err != nil {
		InternalError(c, "write excel: "+err.Error())
	}
}
