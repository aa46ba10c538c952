package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Host         string
	Port         int
	AllowOrigins []string
	LogLevel     string
	MaxUploadMB  int
	LogFile      string

	ModelDir string

	// external translation fallback; empty URL disables it entirely
	TranslateURL     string
	TranslateTimeout time.Duration

	// threshold knobs; the batch and lookup call sites use different
	// unmatched cutoffs on purpose
	BatchMinScore  float64
	LookupMinScore float64
	SKUMinRatio    int
	FuzzyMinRatio  int
}

func Load() Config {
	port, _ := strconv.Atoi(getenv("PORT", "8082"))
	mb, _ := strconv.Atoi(getenv("MAX_UPLOAD_MB", "64"))
	origins := strings.Split(getenv("ALLOW_ORIGINS", "*"), ",")
	timeoutMS, _ := strconv.Atoi(getenv("TRANSLATE_TIMEOUT_MS", "5000"))
	return Config{
		Host:             getenv("HOST", "127.0.0.1"),
		Port:             port,
		AllowOrigins:     origins,
		LogLevel:         getenv("LOG_LEVEL", "info"),
		MaxUploadMB:      mb,
		LogFile:          getenv("LOG_FILE", "logs/pharma-match.log"),
		ModelDir:         getenv("MODEL_DIR", "models"),
		TranslateURL:     getenv("TRANSLATE_URL", "https://api.mymemory.translated.net"),
		TranslateTimeout: time.Duration(timeoutMS) * time.Millisecond,
		BatchMinScore:    getfloat("BATCH_MIN_SCORE", 0.2),
		LookupMinScore:   getfloat("LOOKUP_MIN_SCORE", 0.4),
		SKUMinRatio:      getint("SKU_MIN_RATIO", 70),
		FuzzyMinRatio:    getint("FUZZY_MIN_RATIO", 50),
	}
}

func (c Config) Addr() string { return fmt.Sprintf("%s:%d", c.Host, c.Port) }

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getint(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getfloat(k string, def float64) float64 {
	if v := os.Getenv(k); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}
