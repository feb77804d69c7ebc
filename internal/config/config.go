package config

import (
	"os"

	"github.com/joho/godotenv"

	"certwatch/internal/domain"
)

// Defaults for optional settings
const (
	DefaultCredentialsFile = "serviceAccountKey.json"
	DefaultReportFile      = "certification_analysis_report.json"
	DefaultGeminiModel     = "gemini-1.5-flash"
	DefaultLedgerBackend   = "firebase"
	DefaultLedgerPath      = "certwatch_ledger.db"
)

// Config holds everything certwatch reads from the environment
type Config struct {
	// Firebase
	CredentialsFile string
	DatabaseURL     string
	CrewDataPath    string

	// Gemini
	GeminiAPIKey string
	GeminiModel  string

	// SendGrid
	SendGridAPIKey string
	SenderEmail    string

	// Behavior
	DateFormat    string
	ReportFile    string
	LedgerBackend string // "firebase" or "sqlite"
	LedgerPath    string // sqlite database file
}

// Load reads configuration from the environment, after loading a .env
// file if one is present in the working directory.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		CredentialsFile: getenv("FIREBASE_CREDENTIALS", DefaultCredentialsFile),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		CrewDataPath:    os.Getenv("CREW_DATA_PATH"),
		GeminiAPIKey:    os.Getenv("GEMINI_API_KEY"),
		GeminiModel:     getenv("GEMINI_MODEL", DefaultGeminiModel),
		SendGridAPIKey:  os.Getenv("SENDGRID_API_KEY"),
		SenderEmail:     os.Getenv("SENDER_EMAIL"),
		DateFormat:      getenv("CERTWATCH_DATE_FORMAT", domain.DefaultDateFormat),
		ReportFile:      getenv("CERTWATCH_REPORT_FILE", DefaultReportFile),
		LedgerBackend:   getenv("CERTWATCH_LEDGER", DefaultLedgerBackend),
		LedgerPath:      getenv("CERTWATCH_LEDGER_PATH", DefaultLedgerPath),
	}
}

func getenv(key, fallback string) string {
	if env := os.Getenv(key); env != "" {
		return env
	}
	return fallback
}
