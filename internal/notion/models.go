package notion

import "encoding/json"

// =============================================================================
// Notion API数据模型
// 读写共用一套结构：查询响应按type判别符解码，创建请求由下方构造函数生成
// =============================================================================

// 属性类型常量
const (
	TypeTitle    = "title"
	TypeRichText = "rich_text"
	TypeNumber   = "number"
	TypeSelect   = "select"
	TypeStatus   = "status"
	TypeFormula  = "formula"
	TypeDate     = "date"
)

// RichText 富文本片段
// 读取时plain_text有值；写入时只填text.content
type RichText struct {
	PlainText string       `json:"plain_text,omitempty"`
	Text      *TextContent `json:"text,omitempty"`
}

type TextContent struct {
	Content string `json:"content"`
}

// SelectOption 单选/状态选项
type SelectOption struct {
	Name string `json:"name"`
}

// DateValue 日期属性值，本系统只使用start（无end、无时区换算）
type DateValue struct {
	Start string `json:"start"`
	End   string `json:"end,omitempty"`
}

// Formula 公式结果，按result type二次判别
type Formula struct {
	Type    string     `json:"type"`
	String  *string    `json:"string,omitempty"`
	Number  *float64   `json:"number,omitempty"`
	Boolean *bool      `json:"boolean,omitempty"`
	Date    *DateValue `json:"date,omitempty"`
}

// Property 类型标签属性
// Type为空的写入负载由Notion按字段自行识别
type Property struct {
	Type     string        `json:"type,omitempty"`
	Title    []RichText    `json:"title,omitempty"`
	RichText []RichText    `json:"rich_text,omitempty"`
	Number   *float64      `json:"number,omitempty"`
	Select   *SelectOption `json:"select,omitempty"`
	Status   *SelectOption `json:"status,omitempty"`
	Formula  *Formula      `json:"formula,omitempty"`
	Date     *DateValue    `json:"date,omitempty"`
}

// Page 数据库行
type Page struct {
	ID          string              `json:"id"`
	CreatedTime string              `json:"created_time,omitempty"`
	Properties  map[string]Property `json:"properties"`
}

// Sort 查询排序项
type Sort struct {
	Property  string `json:"property,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
	Direction string `json:"direction"`
}

// QueryRequest POST /databases/{id}/query 请求体
type QueryRequest struct {
	PageSize    int             `json:"page_size"`
	Filter      json.RawMessage `json:"filter,omitempty"`
	Sorts       []Sort          `json:"sorts,omitempty"`
	StartCursor string          `json:"start_cursor,omitempty"`
}

// QueryResponse 查询响应（含翻页游标）
type QueryResponse struct {
	Results    []Page `json:"results"`
	HasMore    bool   `json:"has_more"`
	NextCursor string `json:"next_cursor,omitempty"`
}

// Parent 创建页面的归属数据库
type Parent struct {
	DatabaseID string `json:"database_id"`
}

// CreatePageRequest POST /pages 请求体
type CreatePageRequest struct {
	Parent     Parent              `json:"parent"`
	Properties map[string]Property `json:"properties"`
}

// =============================================================================
// 写入侧属性构造函数
// =============================================================================

// TitleProp 标题属性
func TitleProp(text string) Property {
	return Property{Title: []RichText{{Text: &TextContent{Content: text}}}}
}

// RichTextProp 富文本属性
func RichTextProp(text string) Property {
	return Property{RichText: []RichText{{Text: &TextContent{Content: text}}}}
}

// NumberProp 数字属性
func NumberProp(v float64) Property {
	return Property{Number: &v}
}

// SelectProp 单选属性
func SelectProp(name string) Property {
	return Property{Select: &SelectOption{Name: name}}
}

// DateProp 日期属性，只写start
func DateProp(start string) Property {
	return Property{Date: &DateValue{Start: start}}
}
