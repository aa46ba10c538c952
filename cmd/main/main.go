package main

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"pharma-match/internal/config"
	"pharma-match/internal/fileio"
	"pharma-match/internal/match/model"
	matchSvc "pharma-match/internal/match/service"
	"pharma-match/internal/translate"
	serverhttp "pharma-match/server/http"
)

func main() {
	cfg := config.Load()
	logger := config.SetupLogger(cfg)

	root := &cobra.Command{
		Use:           "pharma-match",
		Short:         "Match noisy seller pharma names against a master catalog",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newTrainCmd(cfg, logger),
		newMatchCmd(cfg, logger),
		newLookupCmd(cfg, logger),
		newServeCmd(cfg, logger),
	)

	if err := root.Execute(); err != nil {
		logger.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

const (
	defaultDatasetSheet = "Dataset"
	defaultMasterSheet  = "Master File"
)

// loadSheet opens the catalog workbook and reads one sheet into header maps.
func loadSheet(path, sheet string) ([]map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()
	rows, err := fileio.ReadSheetMaps(f, path, sheet, 1)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return rows, nil
}

func loadIndex(path, masterSheet string) (*matchSvc.Index, error) {
	rows, err := loadSheet(path, masterSheet)
	if err != nil {
		return nil, err
	}
	master, err := matchSvc.MasterFromRows(masterSheet, rows)
	if err != nil {
		return nil, err
	}
	return matchSvc.BuildIndex(master), nil
}

func externalTranslator(cfg config.Config) matchSvc.ExternalTranslator {
	if cfg.TranslateURL == "" {
		return nil
	}
	return translate.NewClient(cfg.TranslateURL, cfg.TranslateTimeout)
}

func newTrainCmd(cfg config.Config, logger zerolog.Logger) *cobra.Command {
	var (
		catalog      string
		datasetSheet string
		masterSheet  string
		modelDir     string
		seed         int64
		epochs       int
	)
	cmd := &cobra.Command{
		Use:   "train",
		Short: "Fit the vectorizer/classifier pair from a labeled catalog",
		RunE: func(cmd *cobra.Command, _ []string) error {
			idx, err := loadIndex(catalog, masterSheet)
			if err != nil {
				return err
			}
			rows, err := loadSheet(catalog, datasetSheet)
			if err != nil {
				return err
			}
			dataset, err := matchSvc.DatasetFromRows(datasetSheet, rows, true)
			if err != nil {
				return err
			}

			opt := model.BatchOptions()
			opt.FuzzyMinRatio = cfg.FuzzyMinRatio
			tr := matchSvc.NewTranslator(idx, externalTranslator(cfg), opt, logger)

			rng := rand.New(rand.NewSource(seed))
			res, err := matchSvc.Train(cmd.Context(), dataset, idx, tr, rng,
				matchSvc.FitConfig{Epochs: epochs}, logger)
			if err != nil {
				return err
			}
			if err := matchSvc.SaveModelPair(modelDir, res.Vectorizer, res.Classifier); err != nil {
				return err
			}
			logger.Info().Str("dir", modelDir).Msg("model pair saved")
			return nil
		},
	}
	cmd.Flags().StringVar(&catalog, "catalog", "", "catalog workbook (xlsx/xls/csv)")
	cmd.Flags().StringVar(&datasetSheet, "dataset-sheet", defaultDatasetSheet, "labeled dataset sheet name")
	cmd.Flags().StringVar(&masterSheet, "master-sheet", defaultMasterSheet, "master file sheet name")
	cmd.Flags().StringVar(&modelDir, "model-dir", cfg.ModelDir, "output directory for the model pair")
	cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "augmentation RNG seed")
	cmd.Flags().IntVar(&epochs, "epochs", 0, "training epochs (0 = default)")
	_ = cmd.MarkFlagRequired("catalog")
	return cmd
}

func newMatcher(cfg config.Config, logger zerolog.Logger, catalog, masterSheet, modelDir string) (*matchSvc.Matcher, error) {
	idx, err := loadIndex(catalog, masterSheet)
	if err != nil {
		return nil, err
	}
	vec, clf, err := matchSvc.LoadModelPair(modelDir)
	if err != nil {
		return nil, err
	}
	opt := model.BatchOptions()
	opt.FuzzyMinRatio = cfg.FuzzyMinRatio
	return matchSvc.NewMatcher(vec, clf, idx, externalTranslator(cfg), opt, logger), nil
}

func newMatchCmd(cfg config.Config, logger zerolog.Logger) *cobra.Command {
	var (
		catalog      string
		out          string
		datasetSheet string
		masterSheet  string
		modelDir     string
		minScore     float64
	)
	cmd := &cobra.Command{
		Use:   "match",
		Short: "Run the batch pipeline over a catalog workbook",
		RunE: func(cmd *cobra.Command, _ []string) error {
			// validate the input shape before touching the model
			rows, err := loadSheet(catalog, datasetSheet)
			if err != nil {
				return err
			}
			records, err := matchSvc.DatasetFromRows(datasetSheet, rows, false)
			if err != nil {
				return err
			}
			m, err := newMatcher(cfg, logger, catalog, masterSheet, modelDir)
			if err != nil {
				return err
			}

			opt := model.BatchOptions()
			opt.MinScore = minScore
			opt.SKUMinRatio = cfg.SKUMinRatio
			opt.FuzzyMinRatio = cfg.FuzzyMinRatio

			res := m.Run(cmd.Context(), records, opt)
			if err := writeResult(out, res); err != nil {
				return err
			}
			logger.Info().Str("out", out).Msg("output written")
			return nil
		},
	}
	cmd.Flags().StringVar(&catalog, "catalog", "", "catalog workbook (xlsx/xls/csv)")
	cmd.Flags().StringVar(&out, "out", "matched.xlsx", "output workbook path")
	cmd.Flags().StringVar(&datasetSheet, "dataset-sheet", defaultDatasetSheet, "dataset sheet name")
	cmd.Flags().StringVar(&masterSheet, "master-sheet", defaultMasterSheet, "master file sheet name")
	cmd.Flags().StringVar(&modelDir, "model-dir", cfg.ModelDir, "directory holding the model pair")
	cmd.Flags().Float64Var(&minScore, "min-score", cfg.BatchMinScore, "unmatched cutoff for the batch policy")
	_ = cmd.MarkFlagRequired("catalog")
	return cmd
}

func writeResult(path string, res model.Result) error {
	headers := []string{"seller_item_name", "processed_name", "predicted_name", "similarity_score", "confidence", "sku"}
	rows := make([][]any, 0, len(res.Rows))
	for _, r := range res.Rows {
		rows = append(rows, []any{
			r.SellerItemName,
			r.ProcessedName,
			r.PredictedName,
			math.Round(r.Score*100) / 100,
			string(r.Confidence),
			r.SKU,
		})
	}
	return fileio.WriteXLSX(path, "Matched", headers, rows)
}

func newLookupCmd(cfg config.Config, logger zerolog.Logger) *cobra.Command {
	var (
		catalog     string
		masterSheet string
		modelDir    string
		minScore    float64
	)
	cmd := &cobra.Command{
		Use:   "lookup <seller name>",
		Short: "Match a single seller name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := newMatcher(cfg, logger, catalog, masterSheet, modelDir)
			if err != nil {
				return err
			}
			opt := model.LookupOptions()
			opt.MinScore = minScore
			opt.SKUMinRatio = cfg.SKUMinRatio
			opt.FuzzyMinRatio = cfg.FuzzyMinRatio

			rec := m.Lookup(cmd.Context(), args[0], opt)
			fmt.Printf("predicted: %s\nscore: %.2f\nconfidence: %s\nsku: %s\n",
				rec.PredictedName, rec.Score, rec.Confidence, rec.SKU)
			return nil
		},
	}
	cmd.Flags().StringVar(&catalog, "catalog", "", "catalog workbook (xlsx/xls/csv)")
	cmd.Flags().StringVar(&masterSheet, "master-sheet", defaultMasterSheet, "master file sheet name")
	cmd.Flags().StringVar(&modelDir, "model-dir", cfg.ModelDir, "directory holding the model pair")
	cmd.Flags().Float64Var(&minScore, "min-score", cfg.LookupMinScore, "unmatched cutoff for the lookup policy")
	_ = cmd.MarkFlagRequired("catalog")
	return cmd
}

func newServeCmd(cfg config.Config, logger zerolog.Logger) *cobra.Command {
	var (
		catalog     string
		masterSheet string
		modelDir    string
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Local inference demo server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := newMatcher(cfg, logger, catalog, masterSheet, modelDir)
			if err != nil {
				return err
			}
			r := serverhttp.NewRouter(cfg, m, logger)

			srv := &http.Server{Addr: cfg.Addr(), Handler: r}
			logger.Info().Str("addr", cfg.Addr()).Msg("server starting")

			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Fatal().Err(err).Msg("listen")
				}
			}()

			// graceful shutdown
			quit := make(chan os.Signal, 1)
			signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
			<-quit
			logger.Info().Msg("server shutting down")
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			_ = srv.Shutdown(ctx)
			logger.Info().Msg("bye")
			return nil
		},
	}
	cmd.Flags().StringVar(&catalog, "catalog", "", "catalog workbook (xlsx/xls/csv)")
	cmd.Flags().StringVar(&masterSheet, "master-sheet", defaultMasterSheet, "master file sheet name")
	cmd.Flags().StringVar(&modelDir, "model-dir", cfg.ModelDir, "directory holding the model pair")
	_ = cmd.MarkFlagRequired("catalog")
	return cmd
}
