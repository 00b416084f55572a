package config

import (
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Cache    CacheConfig
	Images   ImageStoreConfig
}

type ServerConfig struct {
	Port           string
	Mode           string
	ReadTimeout    int
	WriteTimeout   int
	AllowedOrigins []string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type AuthConfig struct {
	JWTSecret     string
	TokenTTLHours int
}

type CacheConfig struct {
	Enabled          bool
	RedisURL         string
	RedisHost        string
	RedisPort        string
	RedisPassword    string
	RedisDB          int
	ProfitTTLSeconds int
}

type ImageStoreConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	PublicURL string
}

var (
	once     sync.Once
	instance *Config
)

func Load() *Config {
	once.Do(func() {
		// Load .env file if it exists
		_ = godotenv.Load()

		viper.SetDefault("SERVER_PORT", "8080")
		viper.SetDefault("SERVER_MODE", "debug")
		viper.SetDefault("SERVER_READ_TIMEOUT", 15)
		viper.SetDefault("SERVER_WRITE_TIMEOUT", 15)
		viper.SetDefault("SERVER_ALLOWED_ORIGINS", []string{"*"})
		viper.SetDefault("DB_HOST", "localhost")
		viper.SetDefault("DB_PORT", "5432")
		viper.SetDefault("DB_USER", "postgres")
		viper.SetDefault("DB_PASSWORD", "postgres")
		viper.SetDefault("DB_NAME", "aquatrack")
		viper.SetDefault("DB_SSLMODE", "disable")
		viper.SetDefault("JWT_SECRET", "")
		viper.SetDefault("JWT_TOKEN_TTL_HOURS", 24)
		viper.SetDefault("CACHE_ENABLED", false)
		viper.SetDefault("REDIS_URL", "")
		viper.SetDefault("REDIS_HOST", "127.0.0.1")
		viper.SetDefault("REDIS_PORT", "6379")
		viper.SetDefault("REDIS_PASSWORD", "")
		viper.SetDefault("REDIS_DB", 0)
		viper.SetDefault("CACHE_PROFIT_TTL_SECONDS", 60)
		viper.SetDefault("IMAGES_ENDPOINT", "127.0.0.1:9000")
		viper.SetDefault("IMAGES_ACCESS_KEY", "")
		viper.SetDefault("IMAGES_SECRET_KEY", "")
		viper.SetDefault("IMAGES_BUCKET", "deliveries")
		viper.SetDefault("IMAGES_USE_SSL", false)
		viper.SetDefault("IMAGES_PUBLIC_URL", "")

		// Read from environment variables
		viper.AutomaticEnv()

		instance = &Config{
			Server: ServerConfig{
				Port:           viper.GetString("SERVER_PORT"),
				Mode:           viper.GetString("SERVER_MODE"),
				ReadTimeout:    viper.GetInt("SERVER_READ_TIMEOUT"),
				WriteTimeout:   viper.GetInt("SERVER_WRITE_TIMEOUT"),
				AllowedOrigins: viper.GetStringSlice("SERVER_ALLOWED_ORIGINS"),
			},
			Database: DatabaseConfig{
				Host:     viper.GetString("DB_HOST"),
				Port:     viper.GetString("DB_PORT"),
				User:     viper.GetString("DB_USER"),
				Password: viper.GetString("DB_PASSWORD"),
				DBName:   viper.GetString("DB_NAME"),
				SSLMode:  viper.GetString("DB_SSLMODE"),
			},
			Auth: AuthConfig{
				JWTSecret:     viper.GetString("JWT_SECRET"),
				TokenTTLHours: viper.GetInt("JWT_TOKEN_TTL_HOURS"),
			},
			Cache: CacheConfig{
				Enabled:          viper.GetBool("CACHE_ENABLED"),
				RedisURL:         viper.GetString("REDIS_URL"),
				RedisHost:        viper.GetString("REDIS_HOST"),
				RedisPort:        viper.GetString("REDIS_PORT"),
				RedisPassword:    viper.GetString("REDIS_PASSWORD"),
				RedisDB:          viper.GetInt("REDIS_DB"),
				ProfitTTLSeconds: viper.GetInt("CACHE_PROFIT_TTL_SECONDS"),
			},
			Images: ImageStoreConfig{
				Endpoint:  viper.GetString("IMAGES_ENDPOINT"),
				AccessKey: viper.GetString("IMAGES_ACCESS_KEY"),
				SecretKey: viper.GetString("IMAGES_SECRET_KEY"),
				Bucket:    viper.GetString("IMAGES_BUCKET"),
				UseSSL:    viper.GetBool("IMAGES_USE_SSL"),
				PublicURL: viper.GetString("IMAGES_PUBLIC_URL"),
			},
		}
	})

	return instance
}
