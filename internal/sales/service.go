package sales

import (
	"context"
	"errors"
	"fmt"

	"github.com/electronicsclair/Clair-Form/internal/config"
	"github.com/electronicsclair/Clair-Form/internal/notion"
	"go.uber.org/zap"
)

// 参考表属性名（与Notion数据库列名严格一致）
const (
	propSalesmanID      = "Salesman_ID"
	propSalesmanName    = "Salesman_Name"
	propDistributorID   = "Distributor_ID"
	propDistributorName = "Distributor_Name"
	propRegion          = "Region"
	propSKUID           = "SKU_ID"
	propSKUName         = "SKU Name"
	propOutletID        = "Outlet ID"
	propOutletName      = "Outlet_Name"
)

// Service 销售录入服务
// 串联参考表读取、选项构建、表单校验、记录映射与创建
type Service struct {
	client *notion.Client
	cfg    config.NotionConfig
	logger *zap.Logger
}

func NewService(client *notion.Client, cfg config.NotionConfig, logger *zap.Logger) *Service {
	return &Service{client: client, cfg: cfg, logger: logger}
}

// FormOptions 表单全部下拉数据
type FormOptions struct {
	Salesmen     []Option `json:"salesmen"`
	Distributors []Option `json:"distributors"`
	SKUs         []Option `json:"skus"`
	Outlets      []Option `json:"outlets"`
	Warnings     []string `json:"warnings,omitempty"` // 参考表读取失败时的降级提示
}

// LoadOptions 读取全部参考表并生成下拉选项
// 任一参考表读取失败不会使整页失败：对应下拉为空并附带警告
// 参考数据每次页面加载重新拉取，不做缓存
func (s *Service) LoadOptions(ctx context.Context) *FormOptions {
	fo := &FormOptions{}

	if pages := s.referencePages(ctx, fo, s.cfg.SalesmanDB, "salesman"); pages != nil {
		fo.Salesmen = OptionsFrom(pages, propSalesmanID, propSalesmanName)
	}
	if pages := s.referencePages(ctx, fo, s.cfg.DistributorDB, "distributor"); pages != nil {
		fo.Distributors = DistributorOptionsFrom(pages, propDistributorID, propDistributorName, propRegion)
	}
	if pages := s.referencePages(ctx, fo, s.cfg.SKUDB, "sku"); pages != nil {
		fo.SKUs = OptionsFrom(pages, propSKUID, propSKUName)
	}
	// 门店参考表可选，未配置时QueryAll直接返回空
	if pages := s.referencePages(ctx, fo, s.cfg.OutletDB, "outlet"); pages != nil {
		fo.Outlets = OptionsFrom(pages, propOutletID, propOutletName)
	}

	return fo
}

func (s *Service) referencePages(ctx context.Context, fo *FormOptions, dbID, name string) []notion.Page {
	pages, err := s.client.QueryAll(ctx, dbID, nil)
	if err != nil {
		s.logger.Warn("Reference table read failed",
			zap.String("table", name),
			zap.Error(err),
		)
		fo.Warnings = append(fo.Warnings, fmt.Sprintf("%s list unavailable: upstream read failed", name))
		return nil
	}
	return pages
}

// SubmitResult 提交成功结果
type SubmitResult struct {
	PageID string `json:"page_id"`
	Title  string `json:"title"`
}

// Submit 校验→映射→创建
// 校验失败返回错误列表且不发起任何上游调用
// 上游失败返回error，由调用方以可重试提示呈现
func (s *Service) Submit(ctx context.Context, form map[string]string) (*SubmitResult, []string, error) {
	sub, verrs := ParseForm(form)
	if len(verrs) > 0 {
		return nil, verrs, nil
	}

	title, props := BuildProperties(sub)
	page, err := s.client.CreatePage(ctx, s.cfg.DailySalesDB, props)
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info("Daily sales record created",
		zap.String("page_id", page.ID),
		zap.String("title", title),
	)
	return &SubmitResult{PageID: page.ID, Title: title}, nil, nil
}

// Record 已写入的销售记录（最近列表与导出用）
type Record struct {
	Title         string  `json:"title"`
	Date          string  `json:"date"`
	SalesmanID    string  `json:"salesman_id"`
	DistributorID string  `json:"distributor_id"`
	Region        string  `json:"region"`
	OutletID      string  `json:"outlet_id"`
	OutletName    string  `json:"outlet_name"`
	SKUID         string  `json:"sku_id"`
	Quantity      float64 `json:"quantity"`
	Value         float64 `json:"value"`
	SellingMode   string  `json:"selling_mode"`
	Visit         string  `json:"visit"`
}

// Recent 查询最近写入的销售记录（按创建时间倒序，单页）
func (s *Service) Recent(ctx context.Context, limit int) ([]Record, error) {
	if s.cfg.DailySalesDB == "" {
		return nil, errors.New("daily sales database id is not configured")
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	resp, err := s.client.Query(ctx, s.cfg.DailySalesDB, notion.QueryRequest{
		PageSize: limit,
		Sorts:    []notion.Sort{{Timestamp: "created_time", Direction: "descending"}},
	})
	if err != nil {
		return nil, err
	}

	records := make([]Record, 0, len(resp.Results))
	for _, pg := range resp.Results {
		records = append(records, recordFromPage(pg))
	}
	return records, nil
}

func recordFromPage(pg notion.Page) Record {
	plain := func(name string) string {
		v, _ := pg.Properties[name].Plain()
		return v
	}
	number := func(name string) float64 {
		if p, ok := pg.Properties[name]; ok && p.Number != nil {
			return *p.Number
		}
		return 0
	}

	// 日期属性不在Plain的解码范围内，直接取start
	var date string
	if p, ok := pg.Properties["Date"]; ok && p.Date != nil {
		date = p.Date.Start
	}

	return Record{
		Title:         plain("Name"),
		Date:          date,
		SalesmanID:    plain(propSalesmanID),
		DistributorID: plain(propDistributorID),
		Region:        plain(propRegion),
		OutletID:      plain(propOutletID),
		OutletName:    plain(propOutletName),
		SKUID:         plain(propSKUID),
		Quantity:      number("Quantity"),
		Value:         number("Value"),
		SellingMode:   plain("Selling_Mode"),
		Visit:         plain("Visit"),
	}
}
