package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Recommend RecommendConfig `mapstructure:"recommend"`
	Trainer   TrainerConfig   `mapstructure:"trainer"`
	Artifacts ArtifactsConfig `mapstructure:"artifacts"`
}

type ServerConfig struct {
	Port int        `mapstructure:"port"`
	Mode string     `mapstructure:"mode"`
	CORS CORSConfig `mapstructure:"cors"`
}

type CORSConfig struct {
	AllowedOrigins  []string `mapstructure:"allowed_origins"`
	AllowAllOrigins bool     `mapstructure:"allow_all_origins"`
}

type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"`
	Path            string        `mapstructure:"path"`
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	SSLMode         string        `mapstructure:"ssl_mode"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	AutoMigrate     bool          `mapstructure:"auto_migrate"`
}

// DSN builds the driver-specific connection string.
// Parameters: none.
// Returns:
//   - string: SQLite file path or PostgreSQL DSN depending on Driver.
func (c *DatabaseConfig) DSN() string {
	if c.Driver == "postgres" {
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
	}
	return c.Path
}

type RecommendConfig struct {
	Strategy string        `mapstructure:"strategy"`
	TopK     int           `mapstructure:"top_k"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

type TrainerConfig struct {
	DataPath   string `mapstructure:"data_path"`
	WebhookURL string `mapstructure:"webhook_url"`
}

type ArtifactsConfig struct {
	Dir    string           `mapstructure:"dir"`
	Upload bool             `mapstructure:"upload"`
	S3     ArtifactS3Config `mapstructure:"s3"`
}

type ArtifactS3Config struct {
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	UseSSL    bool   `mapstructure:"use_ssl"`
	Bucket    string `mapstructure:"bucket"`
	Region    string `mapstructure:"region"`
}

func Load(configPath string) (*Config, error) {
	// Load .env file if exists
	_ = godotenv.Load()

	v := viper.New()

	// Set config file path
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	// Enable environment variable override
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Set defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.cors.allow_all_origins", true)
	v.SetDefault("server.cors.allowed_origins", []string{})
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.path", "./data/plateful.db")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.max_idle_conns", 2)
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.conn_max_lifetime", time.Hour)
	v.SetDefault("database.auto_migrate", true)
	v.SetDefault("recommend.strategy", "concat")
	v.SetDefault("recommend.top_k", 10)
	v.SetDefault("recommend.cache_ttl", time.Hour)
	v.SetDefault("trainer.data_path", "./ml_models/recommendation_data.csv")
	v.SetDefault("trainer.webhook_url", "")
	v.SetDefault("artifacts.dir", "./ml_models")
	v.SetDefault("artifacts.upload", false)
	v.SetDefault("artifacts.s3.endpoint", "localhost:9000")
	v.SetDefault("artifacts.s3.use_ssl", false)
	v.SetDefault("artifacts.s3.bucket", "plateful-models")
	v.SetDefault("artifacts.s3.region", "")

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Bind environment variables explicitly for sensitive data
	v.BindEnv("database.driver", "DB_DRIVER")
	v.BindEnv("database.host", "DB_HOST")
	v.BindEnv("database.port", "DB_PORT")
	v.BindEnv("database.user", "DB_USER")
	v.BindEnv("database.password", "DB_PASSWORD")
	v.BindEnv("database.name", "DB_NAME")
	v.BindEnv("artifacts.s3.endpoint", "ARTIFACTS_S3_ENDPOINT")
	v.BindEnv("artifacts.s3.access_key", "ARTIFACTS_S3_ACCESS_KEY")
	v.BindEnv("artifacts.s3.secret_key", "ARTIFACTS_S3_SECRET_KEY")
	v.BindEnv("artifacts.s3.use_ssl", "ARTIFACTS_S3_USE_SSL")
	v.BindEnv("trainer.webhook_url", "TRAINER_WEBHOOK_URL")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}
