package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"math/rand"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pharma-match/internal/config"
	"pharma-match/internal/match/model"
	matchSvc "pharma-match/internal/match/service"
)

func testConfig() config.Config {
	return config.Config{
		MaxUploadMB:    8,
		BatchMinScore:  0.2,
		LookupMinScore: 0.4,
		SKUMinRatio:    70,
		FuzzyMinRatio:  50,
	}
}

func testMatcher(t *testing.T) *matchSvc.Matcher {
	t.Helper()
	master := []model.MasterRecord{
		{Name: "Flagyl 500mg 20 tablets", NameAr: "فلاجيل 500 مجم 20 قرص", SKU: "SKU-001"},
		{Name: "Panadol Extra 24 tablets", NameAr: "بانادول اكسترا 24 قرص", SKU: "SKU-002"},
	}
	idx := matchSvc.BuildIndex(master)
	tr := matchSvc.NewTranslator(idx, nil, model.BatchOptions(), zerolog.Nop())
	dataset := []model.SellerRecord{
		{SellerItemName: "فلاجيل 500 مجم اقراص", Label: "فلاجيل 500 مجم 20 قرص"},
		{SellerItemName: "بانادول اكسترا", Label: "بانادول اكسترا 24 قرص"},
	}
	res, err := matchSvc.Train(context.Background(), dataset, idx, tr, rand.New(rand.NewSource(5)), matchSvc.FitConfig{}, zerolog.Nop())
	require.NoError(t, err)
	return matchSvc.NewMatcher(res.Vectorizer, res.Classifier, idx, nil, model.BatchOptions(), zerolog.Nop())
}

func TestLookupHandler(t *testing.T) {
	h := Lookup(testConfig(), testMatcher(t), zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/lookup?name="+"فلاجيل+500", nil)
	rec := httptest.NewRecorder()
	h(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var out model.SellerRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, "فلاجيل 500 مجم 20 قرص", out.PredictedName)
	assert.Equal(t, "SKU-001", out.SKU)
}

func TestLookupHandlerMissingName(t *testing.T) {
	h := Lookup(testConfig(), testMatcher(t), zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/lookup", nil)
	rec := httptest.NewRecorder()
	h(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func multipartCatalog(t *testing.T, field, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestMatchHandler(t *testing.T) {
	h := Match(testConfig(), testMatcher(t), zerolog.Nop())

	body, ctype := multipartCatalog(t, "catalog", "dataset.csv",
		"seller_item_name\nفلاجيل 500 مجم اقراص\n@@@@\n")
	req := httptest.NewRequest(http.MethodPost, "/match", body)
	req.Header.Set("Content-Type", ctype)
	rec := httptest.NewRecorder()
	h(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var out model.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Len(t, out.Rows, 2)
	assert.Equal(t, "فلاجيل 500 مجم 20 قرص", out.Rows[0].PredictedName)
	assert.Equal(t, model.NotFound, out.Rows[1].PredictedName)
}

func TestMatchHandlerMissingColumn(t *testing.T) {
	h := Match(testConfig(), testMatcher(t), zerolog.Nop())

	body, ctype := multipartCatalog(t, "catalog", "dataset.csv", "wrong_column\nx\n")
	req := httptest.NewRequest(http.MethodPost, "/match", body)
	req.Header.Set("Content-Type", ctype)
	rec := httptest.NewRecorder()
	h(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "seller_item_name")
}

func TestMatchHandlerMissingFile(t *testing.T) {
	h := Match(testConfig(), testMatcher(t), zerolog.Nop())

	body, ctype := multipartCatalog(t, "other", "dataset.csv", "seller_item_name\nx\n")
	req := httptest.NewRequest(http.MethodPost, "/match", body)
	req.Header.Set("Content-Type", ctype)
	rec := httptest.NewRecorder()
	h(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
