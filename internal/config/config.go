package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	StoreMongo    = "mongo"
	StorePostgres = "postgres"
)

type Config struct {
	Port        string
	Environment string
	AppId       string

	JWTSecret string
	JWTIssuer string

	StoreDriver string // "mongo" or "postgres"
	MongoURI    string
	DBName      string
	PostgresDSN string

	ModulesConfigPath string // Explicit catalog document, tried before the defaults

	CompanyHeader        string
	TenantExemptPrefixes []string
	// TenantAccessFailOpen skips the membership check when no access checker is
	// wired. Off by default: an unwired checker denies.
	TenantAccessFailOpen bool

	LogToDB     bool
	CORSOrigins string
}

var defaultExemptPrefixes = []string{
	"/api/auth",
	"/api/companies",
	"/swagger",
	"/docs",
	"/health",
	"/metrics",
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	} else {
		log.Println("Loaded .env file successfully")
	}

	return &Config{
		Port:                 getEnv("PORT", "8080"),
		Environment:          getEnv("ENVIRONMENT", "development"),
		AppId:                getEnv("APP_ID", "go-erp"),
		JWTSecret:            getEnv("JWT_SECRET", "secret"),
		JWTIssuer:            getEnv("JWT_ISSUER", ""),
		StoreDriver:          strings.ToLower(getEnv("STORE_DRIVER", StoreMongo)),
		MongoURI:             getEnv("MONGO_URI", "mongodb://localhost:27017"),
		DBName:               getEnv("DB_NAME", "go-erp"),
		PostgresDSN:          getEnv("POSTGRES_DSN", "postgres://localhost:5432/go-erp?sslmode=disable"),
		ModulesConfigPath:    getEnv("MODULES_CONFIG_PATH", ""),
		CompanyHeader:        getEnv("COMPANY_HEADER", "X-Company-Id"),
		TenantExemptPrefixes: getList("TENANT_EXEMPT_PREFIXES", defaultExemptPrefixes),
		TenantAccessFailOpen: getEnv("TENANT_ACCESS_FAIL_OPEN", "false") == "true",
		LogToDB:              getEnv("LOG_TO_DB", "false") == "true",
		CORSOrigins:          getEnv("CORS_ORIGINS", "http://localhost:3000, http://localhost:8000"),
	}, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getList(key string, fallback []string) []string {
	value, exists := os.LookupEnv(key)
	if !exists || strings.TrimSpace(value) == "" {
		return append([]string(nil), fallback...)
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
