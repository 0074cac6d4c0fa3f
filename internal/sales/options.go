package sales

import (
	"sort"
	"strings"

	"github.com/electronicsclair/Clair-Form/internal/notion"
)

// Option 下拉选项
type Option struct {
	Value  string `json:"value"`
	Label  string `json:"label"`
	Region string `json:"region,omitempty"` // 经销商选项附带区域，前端联动自动填充
}

// OptionsFrom 把参考表行转换为下拉选项
// 取valueProp作为选项值，值为空的行跳过
// labelProp配置且非空时，标签为 "值 — 标签"，否则标签即值
// 结果按标签做不区分大小写排序，标签相同时按值排序
func OptionsFrom(pages []notion.Page, valueProp, labelProp string) []Option {
	opts := make([]Option, 0, len(pages))
	for _, pg := range pages {
		opt, ok := optionFromPage(pg, valueProp, labelProp)
		if !ok {
			continue
		}
		opts = append(opts, opt)
	}
	sortOptions(opts)
	return opts
}

// DistributorOptionsFrom 经销商专用变体
// 在普通选项之上额外提取regionProp，供选中经销商时自动带出区域
func DistributorOptionsFrom(pages []notion.Page, valueProp, labelProp, regionProp string) []Option {
	opts := make([]Option, 0, len(pages))
	for _, pg := range pages {
		opt, ok := optionFromPage(pg, valueProp, labelProp)
		if !ok {
			continue
		}
		if region, ok := pg.Properties[regionProp].Plain(); ok {
			opt.Region = strings.TrimSpace(region)
		}
		opts = append(opts, opt)
	}
	sortOptions(opts)
	return opts
}

func optionFromPage(pg notion.Page, valueProp, labelProp string) (Option, bool) {
	v, ok := pg.Properties[valueProp].Plain()
	if !ok {
		return Option{}, false
	}
	v = strings.TrimSpace(v)
	if v == "" {
		return Option{}, false
	}

	label := v
	if labelProp != "" {
		if nm, ok := pg.Properties[labelProp].Plain(); ok && strings.TrimSpace(nm) != "" {
			label = v + " — " + strings.TrimSpace(nm)
		}
	}
	return Option{Value: v, Label: label}, true
}

func sortOptions(opts []Option) {
	sort.SliceStable(opts, func(i, j int) bool {
		li, lj := strings.ToLower(opts[i].Label), strings.ToLower(opts[j].Label)
		if li != lj {
			return li < lj
		}
		return opts[i].Value < opts[j].Value
	})
}
