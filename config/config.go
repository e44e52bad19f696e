package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort       string
	MaxFileSize      int64
	BillPage         int
	QRSize           int
	QRVersion        int
	QRMargin         int
	LineGrammar      string
	AllocationPolicy string
	SummaryTitle     string
}

func LoadConfig() *Config {
	// A .env file is optional; the process environment always wins.
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env")
	}

	return &Config{
		ServerPort:       getEnv("SERVER_PORT", "8080"),
		MaxFileSize:      int64(getEnvAsInt("MAX_FILE_SIZE_MB", 10)) * 1024 * 1024,
		BillPage:         getEnvAsInt("BILL_PAGE", 2),
		QRSize:           getEnvAsInt("QR_SIZE", 400),
		QRVersion:        getEnvAsInt("QR_VERSION", 0),
		QRMargin:         getEnvAsInt("QR_MARGIN", 4),
		LineGrammar:      getEnv("LINE_GRAMMAR", "signed-edges"),
		AllocationPolicy: getEnv("ALLOCATION_POLICY", "components"),
		SummaryTitle:     getEnv("SUMMARY_TITLE", "T-Mobile Bill Summary"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("Warning: invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}
