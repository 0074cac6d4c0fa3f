package notion

import (
	"strconv"
	"strings"
)

// Plain 按type判别符把属性解码为纯文本
// 返回值(value, ok)：ok=false表示该属性无可用取值
// 未识别的类型一律视为无值，保持与上游的宽松行为一致
func (p Property) Plain() (string, bool) {
	switch p.Type {
	case TypeTitle:
		return joinRichText(p.Title)
	case TypeRichText:
		return joinRichText(p.RichText)
	case TypeNumber:
		if p.Number == nil {
			return "", false
		}
		return formatNumber(*p.Number), true
	case TypeSelect:
		if p.Select == nil || p.Select.Name == "" {
			return "", false
		}
		return p.Select.Name, true
	case TypeStatus:
		if p.Status == nil || p.Status.Name == "" {
			return "", false
		}
		return p.Status.Name, true
	case TypeFormula:
		if p.Formula == nil {
			return "", false
		}
		return p.Formula.plain()
	}
	return "", false
}

// plain 公式结果按result type二次解码
// boolean渲染为"true"/"false"，date取start
func (f Formula) plain() (string, bool) {
	switch f.Type {
	case "string":
		if f.String == nil || *f.String == "" {
			return "", false
		}
		return *f.String, true
	case "number":
		if f.Number == nil {
			return "", false
		}
		return formatNumber(*f.Number), true
	case "boolean":
		if f.Boolean == nil {
			return "", false
		}
		if *f.Boolean {
			return "true", true
		}
		return "false", true
	case "date":
		if f.Date == nil || f.Date.Start == "" {
			return "", false
		}
		return f.Date.Start, true
	}
	return "", false
}

// joinRichText 拼接全部文本片段并去除首尾空白，空串视为无值
func joinRichText(spans []RichText) (string, bool) {
	var b strings.Builder
	for _, span := range spans {
		if span.PlainText != "" {
			b.WriteString(span.PlainText)
		} else if span.Text != nil {
			b.WriteString(span.Text.Content)
		}
	}
	s := strings.TrimSpace(b.String())
	return s, s != ""
}

// formatNumber 整数不带小数点，其余按最短十进制表示
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
