package module

import (
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

const (
	modulesSheet = "Modules"
	routesSheet  = "Routes"
)

// ExportWorkbook writes the catalog as an Excel workbook: one row per module
// on the Modules sheet and one row per pattern on the Routes sheet.
func ExportWorkbook(r *Registry, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", modulesSheet); err != nil {
		return err
	}
	if _, err := f.NewSheet(routesSheet); err != nil {
		return err
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})

	moduleRows := [][]interface{}{{"Key", "Name", "Description", "Icon", "Order", "Active", "Permissions"}}
	routeRows := [][]interface{}{{"Module", "Permission", "Kind", "Method", "Path"}}

	for _, m := range r.modules {
		cfg := m.config
		keys := make([]string, 0, len(cfg.Permissions))
		for _, p := range cfg.Permissions {
			keys = append(keys, p.Key)
			for _, route := range p.Routes {
				routeRows = append(routeRows, []interface{}{cfg.Key, p.Key, "route", strings.ToUpper(route.Method), route.Path})
			}
			for _, endpoint := range p.Endpoints {
				routeRows = append(routeRows, []interface{}{cfg.Key, p.Key, "endpoint", "", endpoint})
			}
		}
		moduleRows = append(moduleRows, []interface{}{
			cfg.Key, cfg.Name, cfg.Description, cfg.Icon, cfg.Order, cfg.Active(), strings.Join(keys, ", "),
		})
	}

	if err := writeRows(f, modulesSheet, moduleRows, headerStyle); err != nil {
		return err
	}
	if err := writeRows(f, routesSheet, routeRows, headerStyle); err != nil {
		return err
	}

	return f.Write(w)
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}, headerStyle int) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}

	if len(rows) > 0 {
		last, _ := excelize.CoordinatesToCellName(len(rows[0]), 1)
		f.SetCellStyle(sheet, "A1", last, headerStyle)
		for i := range rows[0] {
			col, _ := excelize.ColumnNumberToName(i + 1)
			f.SetColWidth(sheet, col, col, 18)
		}
	}
	return nil
}
