package config

import (
	"time"

	pkgconfig "github.com/fidel-otieno2/KinKeep.app/pkg/config"
	"github.com/fidel-otieno2/KinKeep.app/pkg/storage"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Redis    RedisConfig
	Cache    CacheConfig
	Media    MediaConfig
	OpenAI   OpenAIConfig
	CORS     CORSConfig
	Log      LogConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type DatabaseConfig struct {
	Driver          string `mapstructure:"driver"`
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	FilePath        string `mapstructure:"file_path"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
}

type JWTConfig struct {
	Secret          string        `mapstructure:"secret"`
	AccessDuration  time.Duration `mapstructure:"access_duration"`
	RefreshDuration time.Duration `mapstructure:"refresh_duration"`
	Issuer          string        `mapstructure:"issuer"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type CacheConfig struct {
	Prefix string        `mapstructure:"prefix"`
	TTL    time.Duration `mapstructure:"ttl"`
}

// MediaConfig selects the media store backend. Collaborator calls are bounded
// by UploadTimeout.
type MediaConfig struct {
	Backend       string              `mapstructure:"backend"` // s3 or local
	S3            storage.S3Config    `mapstructure:"s3"`
	Local         storage.LocalConfig `mapstructure:"local"`
	UploadTimeout time.Duration       `mapstructure:"upload_timeout"`
	URLExpiry     time.Duration       `mapstructure:"url_expiry"`
}

type OpenAIConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	Model   string        `mapstructure:"model"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

type LogConfig struct {
	Level string
}

func Load() (*Config, error) {
	v, err := pkgconfig.Load("./config", "config")
	if err != nil {
		return nil, err
	}

	// Set defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "kinkeep")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.file_path", "./data/kinkeep.db")
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_open_conns", 100)
	v.SetDefault("database.conn_max_lifetime", 60)
	v.SetDefault("jwt.secret", "dev-secret-change-in-production")
	v.SetDefault("jwt.access_duration", "1h")
	v.SetDefault("jwt.refresh_duration", "720h")
	v.SetDefault("jwt.issuer", "kinkeep")
	v.SetDefault("redis.address", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("cache.prefix", "kinkeep")
	v.SetDefault("cache.ttl", "10m")
	v.SetDefault("media.backend", "local")
	v.SetDefault("media.local.base_path", "./data/media")
	v.SetDefault("media.upload_timeout", "60s")
	v.SetDefault("media.url_expiry", "24h")
	v.SetDefault("openai.model", "gpt-3.5-turbo")
	v.SetDefault("openai.timeout", "30s")
	v.SetDefault("cors.allow_origins", []string{"http://localhost:3000"})
	v.SetDefault("log.level", "info")

	// Bind environment variables
	v.BindEnv("server.port", "PORT")
	v.BindEnv("database.driver", "DB_DRIVER")
	v.BindEnv("database.host", "DB_HOST")
	v.BindEnv("database.port", "DB_PORT")
	v.BindEnv("database.user", "DB_USER")
	v.BindEnv("database.password", "DB_PASSWORD")
	v.BindEnv("database.dbname", "DB_NAME")
	v.BindEnv("database.sslmode", "DB_SSLMODE")
	v.BindEnv("database.file_path", "DB_FILE_PATH")
	v.BindEnv("jwt.secret", "JWT_SECRET_KEY")
	v.BindEnv("redis.address", "REDIS_ADDRESS")
	v.BindEnv("redis.password", "REDIS_PASSWORD")
	v.BindEnv("media.backend", "MEDIA_BACKEND")
	v.BindEnv("media.s3.endpoint", "S3_ENDPOINT")
	v.BindEnv("media.s3.region", "S3_REGION")
	v.BindEnv("media.s3.bucket", "S3_BUCKET")
	v.BindEnv("media.s3.access_key_id", "S3_ACCESS_KEY_ID")
	v.BindEnv("media.s3.secret_access_key", "S3_SECRET_ACCESS_KEY")
	v.BindEnv("media.s3.public_url", "S3_PUBLIC_URL")
	v.BindEnv("openai.api_key", "OPENAI_API_KEY")
	v.BindEnv("openai.model", "OPENAI_MODEL")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
