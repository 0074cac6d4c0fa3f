package handler

import (
	"net/http"
	"strings"
	"testing"

	"github.com/electronicsclair/Clair-Form/internal/config"
	"github.com/electronicsclair/Clair-Form/internal/notion"
	"github.com/electronicsclair/Clair-Form/internal/sales"
	"github.com/electronicsclair/Clair-Form/internal/testutil"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func setupSalesTest(t *testing.T) (*testutil.NotionStub, *gin.Engine) {
	t.Helper()
	stub := testutil.NewNotionStub(t)

	cfg := config.NotionConfig{
		DailySalesDB:  "sales-db",
		SalesmanDB:    "salesman-db",
		DistributorDB: "distributor-db",
		SKUDB:         "sku-db",
	}
	svc := sales.NewService(stub.Client(), cfg, zap.NewNop())
	h := NewHandlers(svc)

	r := testutil.SetupRouter()
	r.GET("/api/v1/options", h.Sales.ListOptions)
	r.POST("/api/v1/sales", h.Sales.CreateSales)
	r.GET("/api/v1/sales/recent", h.Sales.RecentSales)
	r.GET("/api/v1/sales/export", h.Sales.ExportSales)
	return stub, r
}

func validBody() map[string]string {
	return map[string]string{
		"date":           "2024-03-05",
		"salesman_id":    "SLM-001",
		"distributor_id": "DST-01",
		"region":         "East",
		"outlet_id":      "OUT-100",
		"outlet_name":    "Toko Maju",
		"sku_id":         "SKU-7",
		"quantity":       "1,200",
		"value":          "2,500.50",
		"selling_mode":   "Retail",
		"visit_yn":       "Y",
	}
}

func TestCreateSalesHappyPath(t *testing.T) {
	stub, r := setupSalesTest(t)

	w := testutil.DoRequest(r, http.MethodPost, "/api/v1/sales", validBody())
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	calls := stub.CreateCalls()
	if len(calls) != 1 {
		t.Fatalf("got %d create calls, want exactly 1", len(calls))
	}

	body := calls[0].Body
	parent := body["parent"].(map[string]interface{})
	if parent["database_id"] != "sales-db" {
		t.Errorf("parent.database_id = %v", parent["database_id"])
	}

	props := body["properties"].(map[string]interface{})

	// 数量与金额必须是数值类型（不是字符串），逗号已被归一
	qty := props["Quantity"].(map[string]interface{})["number"]
	if n, ok := qty.(float64); !ok || n != 1200 {
		t.Errorf("Quantity.number = %v (%T), want 1200 as number", qty, qty)
	}
	val := props["Value"].(map[string]interface{})["number"]
	if n, ok := val.(float64); !ok || n != 2500.50 {
		t.Errorf("Value.number = %v (%T), want 2500.50 as number", val, val)
	}

	// 日期原样透传，只带start
	date := props["Date"].(map[string]interface{})["date"].(map[string]interface{})
	if date["start"] != "2024-03-05" {
		t.Errorf("Date.date.start = %v, want 2024-03-05", date["start"])
	}

	// 访问标记归一为Yes
	visit := props["Visit"].(map[string]interface{})["select"].(map[string]interface{})
	if visit["name"] != "Yes" {
		t.Errorf("Visit.select.name = %v, want Yes", visit["name"])
	}
}

func TestCreateSalesMissingFieldsNoUpstreamCall(t *testing.T) {
	stub, r := setupSalesTest(t)

	body := validBody()
	body["quantity"] = ""
	body["region"] = ""

	w := testutil.DoRequest(r, http.MethodPost, "/api/v1/sales", body)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", w.Code)
	}
	if len(stub.CreateCalls()) != 0 {
		t.Fatal("validation failure must not reach the upstream service")
	}

	resp := testutil.ParseResponse(t, w)
	data := resp["data"].(map[string]interface{})
	errs := data["errors"].([]interface{})
	if len(errs) != 1 {
		t.Fatalf("got %d errors, want 1: %v", len(errs), errs)
	}
	msg := errs[0].(string)
	if !strings.Contains(msg, "region") || !strings.Contains(msg, "quantity") {
		t.Errorf("error %q should list region and quantity", msg)
	}
}

func TestCreateSalesMalformedQuantityNoUpstreamCall(t *testing.T) {
	stub, r := setupSalesTest(t)

	body := validBody()
	body["quantity"] = "abc"

	w := testutil.DoRequest(r, http.MethodPost, "/api/v1/sales", body)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", w.Code)
	}
	if len(stub.CreateCalls()) != 0 {
		t.Fatal("no create call expected")
	}

	resp := testutil.ParseResponse(t, w)
	errs := resp["data"].(map[string]interface{})["errors"].([]interface{})
	if len(errs) != 1 || !strings.Contains(errs[0].(string), "Quantity") {
		t.Errorf("errors = %v, want one quantity error", errs)
	}
}

func TestCreateSalesUpstreamFailureIsRetryableNotice(t *testing.T) {
	stub, r := setupSalesTest(t)
	stub.FailCreate()

	w := testutil.DoRequest(r, http.MethodPost, "/api/v1/sales", validBody())
	if w.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", w.Code)
	}

	resp := testutil.ParseResponse(t, w)
	msg := resp["message"].(string)
	if !strings.Contains(msg, "stub create failure") {
		t.Errorf("message %q should carry the upstream body", msg)
	}
}

func TestListOptions(t *testing.T) {
	stub, r := setupSalesTest(t)

	stub.SetPages("salesman-db", []notion.Page{
		testutil.Page("s1", map[string]notion.Property{
			"Salesman_ID":   testutil.TitleProperty("SLM-002"),
			"Salesman_Name": testutil.TextProperty("Budi"),
		}),
		testutil.Page("s2", map[string]notion.Property{
			"Salesman_ID": testutil.TitleProperty("SLM-001"),
		}),
	})
	stub.SetPages("distributor-db", []notion.Page{
		testutil.Page("d1", map[string]notion.Property{
			"Distributor_ID":   testutil.TitleProperty("DST-01"),
			"Distributor_Name": testutil.TextProperty("PT Sumber"),
			"Region":           testutil.SelectProperty("East"),
		}),
	})

	w := testutil.DoRequest(r, http.MethodGet, "/api/v1/options", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	resp := testutil.ParseResponse(t, w)
	data := resp["data"].(map[string]interface{})

	salesmen := data["salesmen"].([]interface{})
	if len(salesmen) != 2 {
		t.Fatalf("got %d salesmen, want 2", len(salesmen))
	}
	first := salesmen[0].(map[string]interface{})
	if first["value"] != "SLM-001" {
		t.Errorf("first salesman = %v, want SLM-001 (sorted)", first["value"])
	}

	distributors := data["distributors"].([]interface{})
	d := distributors[0].(map[string]interface{})
	if d["region"] != "East" {
		t.Errorf("distributor region = %v, want East", d["region"])
	}
	if d["label"] != "DST-01 — PT Sumber" {
		t.Errorf("distributor label = %v", d["label"])
	}
}

func TestListOptionsDegradedOnReferenceFailure(t *testing.T) {
	stub, r := setupSalesTest(t)
	stub.FailQuery("sku-db")

	w := testutil.DoRequest(r, http.MethodGet, "/api/v1/options", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want degraded 200", w.Code)
	}

	resp := testutil.ParseResponse(t, w)
	data := resp["data"].(map[string]interface{})
	warnings, ok := data["warnings"].([]interface{})
	if !ok || len(warnings) != 1 {
		t.Fatalf("warnings = %v, want exactly one", data["warnings"])
	}
	if !strings.Contains(warnings[0].(string), "sku") {
		t.Errorf("warning %q should name the failed table", warnings[0])
	}
}

func TestRecentSales(t *testing.T) {
	stub, r := setupSalesTest(t)

	stub.SetPages("sales-db", []notion.Page{
		testutil.Page("rec1", map[string]notion.Property{
			"Name":        testutil.TitleProperty("2024-03-05 | Outlet OUT-100 | SKU SKU-7"),
			"Date":        {Type: notion.TypeDate, Date: &notion.DateValue{Start: "2024-03-05"}},
			"Salesman_ID": testutil.TextProperty("SLM-001"),
			"Quantity":    {Type: notion.TypeNumber, Number: float64Ptr(1200)},
			"Value":       {Type: notion.TypeNumber, Number: float64Ptr(2500.5)},
			"Visit":       testutil.SelectProperty("Yes"),
		}),
	})

	w := testutil.DoRequest(r, http.MethodGet, "/api/v1/sales/recent?limit=5", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	resp := testutil.ParseResponse(t, w)
	items := resp["data"].(map[string]interface{})["items"].([]interface{})
	if len(items) != 1 {
		t.Fatalf("got %d items, want 1", len(items))
	}
	item := items[0].(map[string]interface{})
	if item["date"] != "2024-03-05" {
		t.Errorf("date = %v", item["date"])
	}
	if item["quantity"].(float64) != 1200 {
		t.Errorf("quantity = %v", item["quantity"])
	}
}

func TestExportSales(t *testing.T) {
	stub, r := setupSalesTest(t)
	stub.SetPages("sales-db", []notion.Page{
		testutil.Page("rec1", map[string]notion.Property{
			"Name": testutil.TitleProperty("2024-03-05 | Outlet OUT-100 | SKU SKU-7"),
		}),
	})

	w := testutil.DoRequest(r, http.MethodGet, "/api/v1/sales/export", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "spreadsheetml") {
		t.Errorf("Content-Type = %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "daily_sales_") {
		t.Errorf("Content-Disposition = %q", cd)
	}
	if w.Body.Len() == 0 {
		t.Error("empty export body")
	}
}

func float64Ptr(v float64) *float64 { return &v }
