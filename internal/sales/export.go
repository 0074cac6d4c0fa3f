package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
)

var exportHeaders = []string{
	"Date", "Salesman", "Distributor", "Region", "Outlet ID", "Outlet Name",
	"SKU", "Quantity", "Value", "Selling Mode", "Visit",
}

// ExportXLSX 导出最近销售记录为xlsx
func (s *Service) ExportXLSX(ctx context.Context, limit int) (*excelize.File, string, error) {
	records, err := s.Recent(ctx, limit)
	if err != nil {
		return nil, "", fmt.Errorf("load records: %w", err)
	}

	f := excelize.NewFile()
	sheet := "Daily Sales"
	f.SetSheetName("Sheet1", sheet)

	// 表头样式: 加粗
	boldStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})

	// 写入表头
	for i, h := range exportHeaders {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := col + "1"
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, boldStyle)
	}

	// 写入数据行
	for rowIdx, r := range records {
		row := rowIdx + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), r.Date)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), r.SalesmanID)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), r.DistributorID)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), r.Region)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), r.OutletID)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), r.OutletName)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), r.SKUID)
		f.SetCellValue(sheet, fmt.Sprintf("H%d", row), r.Quantity)
		f.SetCellValue(sheet, fmt.Sprintf("I%d", row), r.Value)
		f.SetCellValue(sheet, fmt.Sprintf("J%d", row), r.SellingMode)
		f.SetCellValue(sheet, fmt.Sprintf("K%d", row), r.Visit)
	}

	filename := fmt.Sprintf("daily_sales_%s.xlsx", time.Now().Format("20060102_150405"))
	return f, filename, nil
}
