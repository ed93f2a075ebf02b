package app

import (
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/yungbote/cleanarch-backend/internal/platform/envutil"
	"github.com/yungbote/cleanarch-backend/internal/platform/logger"
	"github.com/yungbote/cleanarch-backend/internal/services"
)

type Config struct {
	Env     string
	LogMode string
	Port    string

	DBDriver   string
	SQLitePath string

	JWTSecretKey   string
	JWTIssuer      string
	JWTAudience    string
	AccessTokenTTL time.Duration
	BcryptCost     int

	AllowedOrigins []string

	RedisAddr    string
	RedisChannel string

	NATSURL           string
	NATSSubjectPrefix string

	ServiceName    string
	ServiceVersion string

	AutoMigrate bool
	SeedOnStart bool
}

// LoadDotEnv loads .env files when present. Variables already set win.
func LoadDotEnv(files ...string) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		_ = godotenv.Load(f)
	}
}

func LoadConfig(log *logger.Logger) Config {
	cfg := Config{
		Env:     strings.ToLower(envutil.String("APP_ENV", "development")),
		LogMode: envutil.String("LOG_MODE", "development"),
		Port:    envutil.String("PORT", "8080"),

		DBDriver:   strings.ToLower(envutil.String("DB_DRIVER", "postgres")),
		SQLitePath: envutil.String("SQLITE_PATH", "cleanarch.db"),

		JWTSecretKey:   envutil.String("JWT_SECRET_KEY", ""),
		JWTIssuer:      envutil.String("JWT_ISSUER", services.DefaultIssuer),
		JWTAudience:    envutil.String("JWT_AUDIENCE", services.DefaultAudience),
		AccessTokenTTL: envutil.Duration("ACCESS_TOKEN_TTL", services.DefaultAccessTTL),
		BcryptCost:     envutil.Int("BCRYPT_COST", 0),

		AllowedOrigins: envutil.List("CORS_ALLOWED_ORIGINS", nil),

		RedisAddr:    envutil.String("REDIS_ADDR", ""),
		RedisChannel: envutil.String("REDIS_CHANNEL", ""),

		NATSURL:           envutil.String("NATS_URL", ""),
		NATSSubjectPrefix: envutil.String("NATS_SUBJECT_PREFIX", "cleanarch.events"),

		ServiceName:    envutil.String("OTEL_SERVICE_NAME", "cleanarch-api"),
		ServiceVersion: envutil.String("SERVICE_VERSION", "dev"),

		AutoMigrate: envutil.Bool("AUTO_MIGRATE", true),
		SeedOnStart: envutil.Bool("SEED_ON_START", false),
	}
	if log != nil {
		log.Info("configuration loaded",
			"env", cfg.Env,
			"port", cfg.Port,
			"db_driver", cfg.DBDriver,
			"redis", cfg.RedisAddr != "",
			"nats", cfg.NATSURL != "",
			"auto_migrate", cfg.AutoMigrate,
			"seed_on_start", cfg.SeedOnStart,
		)
	}
	return cfg
}

func (c Config) Addr() string {
	port := strings.TrimPrefix(strings.TrimSpace(c.Port), ":")
	if port == "" {
		port = "8080"
	}
	return ":" + port
}
