package sales

import (
	"testing"

	"github.com/electronicsclair/Clair-Form/internal/notion"
)

func titleProp(text string) notion.Property {
	return notion.Property{Type: notion.TypeTitle, Title: []notion.RichText{{PlainText: text}}}
}

func textProp(text string) notion.Property {
	return notion.Property{Type: notion.TypeRichText, RichText: []notion.RichText{{PlainText: text}}}
}

func refPage(props map[string]notion.Property) notion.Page {
	return notion.Page{Properties: props}
}

func TestOptionsFromSkipsRowsWithoutValue(t *testing.T) {
	pages := []notion.Page{
		refPage(map[string]notion.Property{"Salesman_ID": titleProp("SLM-002")}),
		refPage(map[string]notion.Property{"Salesman_ID": titleProp("  ")}),
		refPage(map[string]notion.Property{}), // 行里根本没有该属性
		refPage(map[string]notion.Property{"Salesman_ID": titleProp("SLM-001")}),
	}

	opts := OptionsFrom(pages, "Salesman_ID", "")
	if len(opts) != 2 {
		t.Fatalf("got %d options, want 2: %+v", len(opts), opts)
	}
	if opts[0].Value != "SLM-001" || opts[1].Value != "SLM-002" {
		t.Errorf("options not sorted by value: %+v", opts)
	}
}

func TestOptionsFromLabelComposition(t *testing.T) {
	pages := []notion.Page{
		refPage(map[string]notion.Property{
			"SKU_ID":   titleProp("SKU-7"),
			"SKU Name": textProp("Instant Coffee 20g"),
		}),
		refPage(map[string]notion.Property{
			"SKU_ID": titleProp("SKU-9"),
			// 标签属性缺失 → 标签等于值
		}),
	}

	opts := OptionsFrom(pages, "SKU_ID", "SKU Name")
	if opts[0].Label != "SKU-7 — Instant Coffee 20g" {
		t.Errorf("label = %q", opts[0].Label)
	}
	if opts[1].Label != "SKU-9" {
		t.Errorf("label = %q, want value as label", opts[1].Label)
	}
}

func TestOptionsFromSortIsCaseInsensitive(t *testing.T) {
	pages := []notion.Page{
		refPage(map[string]notion.Property{"ID": titleProp("b2")}),
		refPage(map[string]notion.Property{"ID": titleProp("A3")}),
		refPage(map[string]notion.Property{"ID": titleProp("a1")}),
	}

	opts := OptionsFrom(pages, "ID", "")
	got := []string{opts[0].Value, opts[1].Value, opts[2].Value}
	want := []string{"a1", "A3", "b2"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sorted values = %v, want %v", got, want)
		}
	}
}

func TestDistributorOptionsCarryRegion(t *testing.T) {
	pages := []notion.Page{
		refPage(map[string]notion.Property{
			"Distributor_ID":   titleProp("DST-01"),
			"Distributor_Name": textProp("PT Sumber"),
			"Region":           notion.Property{Type: notion.TypeSelect, Select: &notion.SelectOption{Name: "East"}},
		}),
		refPage(map[string]notion.Property{
			"Distributor_ID": titleProp("DST-02"),
			// 区域缺失 → Region留空
		}),
	}

	opts := DistributorOptionsFrom(pages, "Distributor_ID", "Distributor_Name", "Region")
	if len(opts) != 2 {
		t.Fatalf("got %d options, want 2", len(opts))
	}
	if opts[0].Region != "East" {
		t.Errorf("Region = %q, want East", opts[0].Region)
	}
	if opts[0].Label != "DST-01 — PT Sumber" {
		t.Errorf("Label = %q", opts[0].Label)
	}
	if opts[1].Region != "" {
		t.Errorf("Region = %q, want empty", opts[1].Region)
	}
}

func TestOptionsFromEmptyInput(t *testing.T) {
	if opts := OptionsFrom(nil, "ID", ""); len(opts) != 0 {
		t.Errorf("got %+v, want empty", opts)
	}
}
