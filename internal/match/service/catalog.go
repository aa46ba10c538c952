package service

import (
	"fmt"
	"strings"

	"pharma-match/internal/match/model"
	"pharma-match/internal/utils"
)

// Exact column names required in the catalog workbook. Absence of any of
// them is a structural error that aborts before the model is touched.
const (
	ColSellerItemName = "seller_item_name"
	ColProductName    = "product_name"
	ColProductNameAr  = "product_name_ar"
	ColSKU            = "sku"
	ColPrice          = "price"
)

// RequireColumns fails fast with an error naming the first missing column
// and the sheet it was expected in.
func RequireColumns(sheet string, rows []map[string]string, cols ...string) error {
	if len(rows) == 0 {
		return fmt.Errorf("%w: sheet %q is empty", model.ErrMissingColumn, sheet)
	}
	for _, c := range cols {
		if _, ok := rows[0][c]; !ok {
			return fmt.Errorf("%w: column %q not found in sheet %q", model.ErrMissingColumn, c, sheet)
		}
	}
	return nil
}

// MasterFromRows converts "Master File" sheet rows into records. Prices
// arrive with currency noise and sometimes Arabic digits; unparsable ones
// stay zero rather than failing the load.
func MasterFromRows(sheet string, rows []map[string]string) ([]model.MasterRecord, error) {
	if err := RequireColumns(sheet, rows, ColProductName, ColProductNameAr, ColSKU, ColPrice); err != nil {
		return nil, err
	}
	out := make([]model.MasterRecord, 0, len(rows))
	for _, r := range rows {
		rec := model.MasterRecord{
			Name:   strings.TrimSpace(r[ColProductName]),
			NameAr: strings.TrimSpace(r[ColProductNameAr]),
			SKU:    strings.TrimSpace(r[ColSKU]),
		}
		if rec.NameAr == "" {
			continue
		}
		if p, ok := utils.ParsePrice(r[ColPrice]); ok {
			rec.Price = p
		}
		out = append(out, rec)
	}
	return out, nil
}

// DatasetFromRows converts "Dataset" sheet rows into seller records. When
// withLabels is set (training), the canonical-name column is also required
// and captured.
func DatasetFromRows(sheet string, rows []map[string]string, withLabels bool) ([]model.SellerRecord, error) {
	cols := []string{ColSellerItemName}
	if withLabels {
		cols = append(cols, ColProductNameAr)
	}
	if err := RequireColumns(sheet, rows, cols...); err != nil {
		return nil, err
	}
	out := make([]model.SellerRecord, 0, len(rows))
	for _, r := range rows {
		rec := model.SellerRecord{
			SellerItemName: strings.TrimSpace(r[ColSellerItemName]),
		}
		if rec.SellerItemName == "" {
			continue
		}
		if withLabels {
			rec.Label = strings.TrimSpace(r[ColProductNameAr])
		}
		out = append(out, rec)
	}
	return out, nil
}
