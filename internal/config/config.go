package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server Server
	DB     DB
	LLM    LLM
	SQL    SQLRules
	Logger Logger
}

type Server struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DB struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// LLM configures the text-generation provider. BaseURL points at any
// OpenAI-compatible endpoint (LocalAI, Ollama's OpenAI shim, OpenAI itself).
type LLM struct {
	BaseURL     string
	Model       string
	APIKey      string
	Timeout     time.Duration
	MaxRetries  int
	RetryDelay  time.Duration
	Temperature float64
	MaxTokens   int
}

// SQLRules holds the guard and executor limits for learner-submitted SQL.
type SQLRules struct {
	MaxQueryLength    int
	MaxResultRows     int
	CheckTimeout      time.Duration
	GenerationTimeout time.Duration
}

type Logger struct {
	Level string
	Env   string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	if os.Getenv("ENV") == "test" {
		viper.AddConfigPath("../../config")
		viper.AddConfigPath("../../")
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("./config")
	}

	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", 30)
	viper.SetDefault("server.write_timeout", 30)
	viper.SetDefault("db.host", "localhost")
	viper.SetDefault("db.port", 5432)
	viper.SetDefault("db.sslmode", "disable")
	viper.SetDefault("llm.model", "gpt-3.5-turbo")
	viper.SetDefault("llm.timeout", 30)
	viper.SetDefault("llm.max_retries", 3)
	viper.SetDefault("llm.retry_delay", 1)
	viper.SetDefault("llm.temperature", 0.7)
	viper.SetDefault("llm.max_tokens", 2000)
	viper.SetDefault("sql.max_query_length", 5000)
	viper.SetDefault("sql.max_result_rows", 100)
	viper.SetDefault("sql.check_timeout", 5)
	viper.SetDefault("sql.generation_timeout", 10)
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.env", "development")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// Config file is optional; defaults plus env vars are enough to boot.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if configFile := viper.ConfigFileUsed(); configFile != "" {
		absPath, _ := filepath.Abs(configFile)
		fmt.Printf("Using config file: %s\n", absPath)
	}

	cfg := &Config{
		Server: Server{
			Port:         viper.GetInt("server.port"),
			ReadTimeout:  viper.GetDuration("server.read_timeout") * time.Second,
			WriteTimeout: viper.GetDuration("server.write_timeout") * time.Second,
		},
		DB: DB{
			Host:     viper.GetString("db.host"),
			Port:     viper.GetInt("db.port"),
			User:     viper.GetString("db.user"),
			Password: viper.GetString("db.password"),
			DBName:   viper.GetString("db.name"),
			SSLMode:  viper.GetString("db.sslmode"),
		},
		LLM: LLM{
			BaseURL:     viper.GetString("llm.base_url"),
			Model:       viper.GetString("llm.model"),
			APIKey:      viper.GetString("llm.api_key"),
			Timeout:     viper.GetDuration("llm.timeout") * time.Second,
			MaxRetries:  viper.GetInt("llm.max_retries"),
			RetryDelay:  viper.GetDuration("llm.retry_delay") * time.Second,
			Temperature: viper.GetFloat64("llm.temperature"),
			MaxTokens:   viper.GetInt("llm.max_tokens"),
		},
		SQL: SQLRules{
			MaxQueryLength:    viper.GetInt("sql.max_query_length"),
			MaxResultRows:     viper.GetInt("sql.max_result_rows"),
			CheckTimeout:      viper.GetDuration("sql.check_timeout") * time.Second,
			GenerationTimeout: viper.GetDuration("sql.generation_timeout") * time.Second,
		},
		Logger: Logger{
			Level: viper.GetString("logger.level"),
			Env:   viper.GetString("logger.env"),
		},
	}

	// Override with environment variables if set
	if host := os.Getenv("DB_HOST"); host != "" {
		cfg.DB.Host = host
	}
	if user := os.Getenv("DB_USER"); user != "" {
		cfg.DB.User = user
	}
	if password := os.Getenv("DB_PASSWORD"); password != "" {
		cfg.DB.Password = password
	}
	if dbname := os.Getenv("DB_NAME"); dbname != "" {
		cfg.DB.DBName = dbname
	}
	if baseURL := os.Getenv("LLM_BASE_URL"); baseURL != "" {
		cfg.LLM.BaseURL = baseURL
	}
	if model := os.Getenv("LLM_MODEL"); model != "" {
		cfg.LLM.Model = model
	}
	if apiKey := os.Getenv("LLM_API_KEY"); apiKey != "" {
		cfg.LLM.APIKey = apiKey
	}

	return cfg, nil
}

// GetDSN builds a Postgres connection string for the pgx stdlib driver.
func (c *Config) GetDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.DB.User,
		c.DB.Password,
		c.DB.Host,
		c.DB.Port,
		c.DB.DBName,
		c.DB.SSLMode,
	)
}
