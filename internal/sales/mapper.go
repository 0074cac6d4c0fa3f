package sales

import (
	"fmt"
	"strings"

	"github.com/electronicsclair/Clair-Form/internal/notion"
)

// 访问标记的两个固定选项
const (
	VisitYes = "Yes"
	VisitNo  = "No"
)

// BuildProperties 把合法Submission映射为Notion创建负载
// 文本字段→rich_text；日期→date只带start且原样透传；
// Quantity/Value使用解析后的数值（逗号等格式已被归一）；
// Selling_Mode原样（去空白）写入select，Visit归一为Yes/No
func BuildProperties(sub *Submission) (string, map[string]notion.Property) {
	title := fmt.Sprintf("%s | Outlet %s | SKU %s", sub.Date, sub.OutletID, sub.SKUID)

	props := map[string]notion.Property{
		"Name":           notion.TitleProp(title),
		"Date":           notion.DateProp(sub.Date),
		"Salesman_ID":    notion.RichTextProp(sub.SalesmanID),
		"Distributor_ID": notion.RichTextProp(sub.DistributorID),
		"Region":         notion.RichTextProp(sub.Region),
		"Outlet ID":      notion.RichTextProp(sub.OutletID),
		"Outlet_Name":    notion.RichTextProp(sub.OutletName),
		"SKU_ID":         notion.RichTextProp(sub.SKUID),
		"Quantity":       notion.NumberProp(float64(sub.Quantity)),
		"Value":          notion.NumberProp(sub.Value),
		"Selling_Mode":   notion.SelectProp(sub.SellingMode),
		"Visit":          notion.SelectProp(NormalizeVisit(sub.VisitYN)),
	}
	return title, props
}

// NormalizeVisit 把visit_yn原始值归一为Yes/No两个固定标签
// "y"/"yes"（不区分大小写）视为Yes，其余非空值一律No
func NormalizeVisit(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "y", "yes":
		return VisitYes
	default:
		return VisitNo
	}
}
