package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	SourceFile  = "file"
	SourceNeo4j = "neo4j"
)

// getEnv returns the environment variable or a default when it is unset
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	var out []string
	for _, item := range strings.Split(valueStr, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

type Config struct {
	Port           int           `yaml:"port"`
	Env            string        `yaml:"env"`
	LogLevel       string        `yaml:"log_level"`
	DataSource     string        `yaml:"data_source"`
	DataFile       string        `yaml:"data_file"`
	Neo4jURI       string        `yaml:"neo4j_uri"`
	Neo4jUser      string        `yaml:"neo4j_user"`
	Neo4jPassword  string        `yaml:"neo4j_password"`
	SeedCypher     string        `yaml:"seed_cypher"`
	CacheTTL       time.Duration `yaml:"cache_ttl"`
	AllowedOrigins []string      `yaml:"allowed_origins"`
}

func Default() *Config {
	return &Config{
		Port:           8080,
		Env:            "development",
		LogLevel:       "info",
		DataSource:     SourceFile,
		DataFile:       "data/london.json",
		Neo4jURI:       "bolt://localhost:7687",
		Neo4jUser:      "neo4j",
		Neo4jPassword:  "12345678",
		CacheTTL:       10 * time.Minute,
		AllowedOrigins: []string{"*"},
	}
}

// LoadConfig builds the configuration from defaults, then the YAML file named
// by TUBEMAP_CONFIG (if any), then environment variables. A .env file in the
// working directory is loaded first when present; it never overrides
// variables already set.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env: %w", err)
	}

	cfg := Default()
	if path := getEnv("TUBEMAP_CONFIG", ""); path != "" {
		if err := cfg.mergeYAML(path); err != nil {
			return nil, err
		}
	}
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) mergeYAML(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("error parsing config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Port = getEnvAsInt("PORT", c.Port)
	c.Env = getEnv("TUBEMAP_ENV", c.Env)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.DataSource = getEnv("DATA_SOURCE", c.DataSource)
	c.DataFile = getEnv("DATA_FILE", c.DataFile)
	c.Neo4jURI = getEnv("NEO4J_URI", c.Neo4jURI)
	c.Neo4jUser = getEnv("NEO4J_USER", c.Neo4jUser)
	c.Neo4jPassword = getEnv("NEO4J_PASSWORD", c.Neo4jPassword)
	c.SeedCypher = getEnv("SEED_CYPHER", c.SeedCypher)
	c.CacheTTL = getEnvAsDuration("CACHE_TTL", c.CacheTTL)
	c.AllowedOrigins = getEnvAsList("ALLOWED_ORIGINS", c.AllowedOrigins)
}

func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	switch c.DataSource {
	case SourceFile:
		if c.DataFile == "" {
			return errors.New("data_file is required when data_source is file")
		}
	case SourceNeo4j:
		if c.Neo4jURI == "" {
			return errors.New("neo4j_uri is required when data_source is neo4j")
		}
	default:
		return fmt.Errorf("unknown data_source %q", c.DataSource)
	}
	return nil
}
