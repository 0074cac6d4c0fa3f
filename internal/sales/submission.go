package sales

import (
	"strconv"
	"strings"
	"time"
)

// Submission 一次销售提交
// 仅在单次请求内存在，校验通过后映射为Notion创建负载
type Submission struct {
	Date          string
	SalesmanID    string
	DistributorID string
	Region        string
	OutletID      string
	OutletName    string // 可选
	SKUID         string
	Quantity      int
	Value         float64
	SellingMode   string
	VisitYN       string
}

// FormFields 表单字段名（与HTML表单、JSON API共用）
var FormFields = []string{
	"date", "salesman_id", "distributor_id", "region", "outlet_id",
	"outlet_name", "sku_id", "quantity", "value", "selling_mode", "visit_yn",
}

// requiredFields 必填字段集合，outlet_name可选
var requiredFields = []string{
	"date", "salesman_id", "distributor_id", "region", "outlet_id",
	"sku_id", "quantity", "value", "selling_mode", "visit_yn",
}

// ParseForm 校验提交字段并生成Submission
// 策略：所有缺失字段收集为一条错误，不在首个缺失处短路
// 日期/数量/金额各自独立校验，每个解析失败追加一条独立错误
// 返回值二选一：要么完整Submission，要么错误列表，绝不同时返回
func ParseForm(values map[string]string) (*Submission, []string) {
	var errs []string

	var missing []string
	for _, f := range requiredFields {
		if strings.TrimSpace(values[f]) == "" {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		errs = append(errs, "Missing fields: "+strings.Join(missing, ", "))
	}

	date := strings.TrimSpace(values["date"])
	if date != "" {
		if _, err := time.Parse("2006-01-02", date); err != nil {
			errs = append(errs, "Date must be in YYYY-MM-DD format.")
		}
	}

	var qty int
	if q := strings.TrimSpace(values["quantity"]); q != "" {
		v, err := parseInt(q)
		if err != nil {
			errs = append(errs, "Quantity must be a number.")
		} else {
			qty = v
		}
	}

	var val float64
	if raw := strings.TrimSpace(values["value"]); raw != "" {
		v, err := parseFloat(raw)
		if err != nil {
			errs = append(errs, "Value must be a number.")
		} else {
			val = v
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}

	return &Submission{
		Date:          date,
		SalesmanID:    strings.TrimSpace(values["salesman_id"]),
		DistributorID: strings.TrimSpace(values["distributor_id"]),
		Region:        strings.TrimSpace(values["region"]),
		OutletID:      strings.TrimSpace(values["outlet_id"]),
		OutletName:    strings.TrimSpace(values["outlet_name"]),
		SKUID:         strings.TrimSpace(values["sku_id"]),
		Quantity:      qty,
		Value:         val,
		SellingMode:   strings.TrimSpace(values["selling_mode"]),
		VisitYN:       strings.TrimSpace(values["visit_yn"]),
	}, nil
}

// parseFloat 允许千分位逗号
func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
}

// parseInt 允许千分位逗号，小数写法按截断处理
func parseInt(s string) (int, error) {
	f, err := parseFloat(s)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}
