package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	DBUser     string `yaml:"db_user"`
	DBPassword string `yaml:"db_password"`
	DBHost     string `yaml:"db_host"`
	DBPort     string `yaml:"db_port"`
	DBName     string `yaml:"db_name"`

	HTTPPort  string `yaml:"http_port"`
	JWTSecret string `yaml:"jwt_secret"`

	AgentProvider    string `yaml:"agent_provider"` // "ollama" or "openai"
	AgentBaseURL     string `yaml:"agent_base_url"`
	AgentAPIKey      string `yaml:"agent_api_key"`
	AgentModel       string `yaml:"agent_model"`
	AgentContextRows int    `yaml:"agent_context_rows"`

	ScrapeBaseURL    string `yaml:"scrape_base_url"`
	ScrapeListingURL string `yaml:"scrape_listing_url"`
	ScrapePathPrefix string `yaml:"scrape_path_prefix"`
	ScrapeLimit      int    `yaml:"scrape_limit"`

	MinIOEndpoint  string `yaml:"minio_endpoint"`
	MinIOAccessKey string `yaml:"minio_access_key"`
	MinIOSecretKey string `yaml:"minio_secret_key"`
	MinIOBucket    string `yaml:"minio_bucket"`
}

// LoadConfig reads config.yaml if present, then lets environment variables
// (optionally via a .env file) override the file values.
func LoadConfig() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg := Config{
		HTTPPort:         "8000",
		AgentProvider:    "ollama",
		AgentBaseURL:     "http://localhost:11434/api",
		AgentModel:       "llama3.1",
		AgentContextRows: 25,
		ScrapeBaseURL:    "https://www.nhs.uk",
		ScrapeListingURL: "https://www.nhs.uk/conditions/",
		ScrapePathPrefix: "/conditions/",
		ScrapeLimit:      10,
		MinIOBucket:      "medcheck-pages",
	}

	if data, err := os.ReadFile("config.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			log.Printf("config.yaml ignored: %v", err)
		}
	}

	overrideStr(&cfg.DBUser, "DB_USER")
	overrideStr(&cfg.DBPassword, "DB_PASSWORD")
	overrideStr(&cfg.DBHost, "DB_HOST")
	overrideStr(&cfg.DBPort, "DB_PORT")
	overrideStr(&cfg.DBName, "DB_NAME")
	overrideStr(&cfg.HTTPPort, "HTTP_PORT")
	overrideStr(&cfg.JWTSecret, "JWT_SECRET")
	overrideStr(&cfg.AgentProvider, "AGENT_PROVIDER")
	overrideStr(&cfg.AgentBaseURL, "AGENT_BASE_URL")
	overrideStr(&cfg.AgentAPIKey, "AGENT_API_KEY")
	overrideStr(&cfg.AgentModel, "AGENT_MODEL")
	overrideInt(&cfg.AgentContextRows, "AGENT_CONTEXT_ROWS")
	overrideStr(&cfg.ScrapeBaseURL, "SCRAPE_BASE_URL")
	overrideStr(&cfg.ScrapeListingURL, "SCRAPE_LISTING_URL")
	overrideStr(&cfg.ScrapePathPrefix, "SCRAPE_PATH_PREFIX")
	overrideInt(&cfg.ScrapeLimit, "SCRAPE_LIMIT")
	overrideStr(&cfg.MinIOEndpoint, "MINIO_ENDPOINT")
	overrideStr(&cfg.MinIOAccessKey, "MINIO_ACCESS_KEY")
	overrideStr(&cfg.MinIOSecretKey, "MINIO_SECRET_KEY")
	overrideStr(&cfg.MinIOBucket, "MINIO_BUCKET")

	return cfg
}

func overrideStr(dst *string, key string) {
	if value := os.Getenv(key); value != "" {
		*dst = value
	}
}

func overrideInt(dst *int, key string) {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			*dst = n
		}
	}
}
