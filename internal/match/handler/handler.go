package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"pharma-match/internal/config"
	"pharma-match/internal/fileio"
	"pharma-match/internal/match/model"
	matchSvc "pharma-match/internal/match/service"
	"pharma-match/internal/middleware"
)

// Lookup serves single-name inference: GET /lookup?name=... This call site
// uses the stricter unmatched cutoff (0.4) and clamps unmatched scores to 0.
func Lookup(cfg config.Config, m *matchSvc.Matcher, logger zerolog.Logger) http.HandlerFunc {
	opt := model.LookupOptions()
	opt.MinScore = cfg.LookupMinScore
	opt.SKUMinRatio = cfg.SKUMinRatio
	opt.FuzzyMinRatio = cfg.FuzzyMinRatio

	return func(w http.ResponseWriter, r *http.Request) {
		name := r.URL.Query().Get("name")
		if name == "" {
			http.Error(w, `missing query parameter "name"`, http.StatusBadRequest)
			return
		}
		rec := m.Lookup(r.Context(), name, opt)
		writeJSON(w, rec)
	}
}

// Match serves the batch pipeline over an uploaded catalog: POST /match with
// a multipart "catalog" file carrying a Dataset sheet. Unmatched rows come
// back as Not Found; only structural problems (missing file, missing column)
// fail the request.
func Match(cfg config.Config, m *matchSvc.Matcher, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		log := logger
		if rid := middleware.GetRequestID(r); rid != "" {
			log = logger.With().Str("req_id", rid).Logger()
		}
		defer r.Body.Close()
		if err := r.ParseMultipartForm(int64(cfg.MaxUploadMB) << 20); err != nil {
			http.Error(w, "bad multipart form: "+err.Error(), http.StatusBadRequest)
			return
		}

		file, header, err := r.FormFile("catalog")
		if err != nil {
			http.Error(w, "missing catalog file: "+err.Error(), http.StatusBadRequest)
			return
		}
		defer file.Close()

		sheet := r.FormValue("dataset_sheet")
		if sheet == "" {
			sheet = "Dataset"
		}
		rows, err := fileio.ReadSheetMaps(file, header.Filename, sheet, atoi(r.FormValue("header_row"), 1))
		if err != nil {
			http.Error(w, "failed to read catalog: "+err.Error(), http.StatusBadRequest)
			return
		}

		records, err := matchSvc.DatasetFromRows(sheet, rows, false)
		if err != nil {
			status := http.StatusBadRequest
			if !errors.Is(err, model.ErrMissingColumn) {
				status = http.StatusUnprocessableEntity
			}
			http.Error(w, err.Error(), status)
			return
		}

		opt := model.BatchOptions()
		opt.MinScore = toFloat(r.FormValue("min_score"), cfg.BatchMinScore)
		opt.SKUMinRatio = cfg.SKUMinRatio
		opt.FuzzyMinRatio = cfg.FuzzyMinRatio

		res := m.Run(r.Context(), records, opt)

		writeJSON(w, res)
		log.Info().
			Int("rows", len(res.Rows)).
			Dur("elapsed", time.Since(start)).
			Msg("match done")
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
