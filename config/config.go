package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/azimeazdhan1231/trynex-lifestyle-live-sub004/pkg/database"

	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap"
)

type Config struct {
	Port     string
	GRPCPort string
	DB       DB
	Redis    Redis

	KafkaBrokers []string
	KafkaTopic   string

	Admin Admin

	// DeliveryTablePath пустой: используется встроенная таблица.
	DeliveryTablePath string

	Checkout Checkout
	Tracking Tracking
}

type DB struct {
	database.Config
}

type Redis struct {
	Addr     string
	Password string
	DB       int
}

type Admin struct {
	Secret   string
	Issuer   string
	Audience string

	// Username и PasswordHash необязательны: без хэша вход через API выключен.
	Username     string
	PasswordHash string
	TokenTTL     time.Duration
}

type Checkout struct {
	SubmitTimeout time.Duration `envconfig:"CHECKOUT_SUBMIT_TIMEOUT" default:"15s"`
	SessionTTL    time.Duration `envconfig:"CHECKOUT_SESSION_TTL" default:"24h"`
}

type Tracking struct {
	Interval        time.Duration `envconfig:"TRACKING_INTERVAL" default:"10s"`
	NotFoundRetries int           `envconfig:"TRACKING_NOT_FOUND_RETRIES" default:"2"`
	BaseBackoff     time.Duration `envconfig:"TRACKING_BASE_BACKOFF" default:"1s"`
	MaxBackoff      time.Duration `envconfig:"TRACKING_MAX_BACKOFF" default:"30s"`
	CacheTTL        time.Duration `envconfig:"TRACKING_CACHE_TTL" default:"5s"`
	ListCacheTTL    time.Duration `envconfig:"ORDER_LIST_CACHE_TTL" default:"30s"`
}

func Load(log *zap.Logger) *Config {
	c := &Config{
		Port:     getEnv("APP_PORT", log),
		GRPCPort: getEnv("GRPC_PORT", log),
		DB:       loadDB(log),
		Redis: Redis{
			Addr:     getEnv("REDIS_ADDR", log),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       atoiDefault(os.Getenv("REDIS_DB"), 0),
		},
		KafkaBrokers:      splitAndTrim(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:        getEnv("KAFKA_TOPIC_ORDERS", log),
		Admin:             LoadAdmin(log),
		DeliveryTablePath: os.Getenv("DELIVERY_TABLE_PATH"),
	}

	if err := envconfig.Process("", &c.Checkout); err != nil {
		log.Fatal("Ошибка разбора настроек checkout", zap.Error(err))
	}
	if err := envconfig.Process("", &c.Tracking); err != nil {
		log.Fatal("Ошибка разбора настроек tracking", zap.Error(err))
	}
	return c
}

func LoadAdmin(log *zap.Logger) Admin {
	return Admin{
		Secret:   getEnv("ADMIN_JWT_SECRET", log),
		Issuer:   getEnv("ADMIN_JWT_ISSUER", log),
		Audience: getEnv("ADMIN_JWT_AUDIENCE", log),

		Username:     envDefault("ADMIN_USERNAME", "admin"),
		PasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		TokenTTL:     parseDurationDefault(os.Getenv("ADMIN_TOKEN_TTL"), 12*time.Hour),
	}
}

// LoadDB нужен cmd/migrate: ему не требуются Redis, Kafka и ключи.
func LoadDB(log *zap.Logger) DB {
	return loadDB(log)
}

func loadDB(log *zap.Logger) DB {
	return DB{
		Config: database.Config{
			Host:     getEnv("DB_HOST", log),
			Port:     getEnv("DB_PORT", log),
			User:     getEnv("DB_USER", log),
			Password: getEnv("DB_PASSWORD", log),
			Name:     getEnv("DB_NAME", log),
			SSLMode:  getEnv("DB_SSLMODE", log),
		},
	}
}

type Notifier struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	SMTPFrom     string
	SMTPSSL      bool
	LogoPath     string

	// TMPLDir пустой: шаблоны из бинарника.
	TMPLDir    string
	AdminEmail string

	KafkaBrokers []string
	KafkaGroupID string
	KafkaTopic   string
}

func LoadNotifier(log *zap.Logger) *Notifier {
	return &Notifier{
		SMTPHost:     getEnv("SMTP_HOST", log),
		SMTPPort:     getEnvInt("SMTP_PORT", log),
		SMTPUser:     getEnv("SMTP_USER", log),
		SMTPPassword: getEnv("SMTP_PASSWORD", log),
		SMTPFrom:     getEnv("SMTP_FROM", log),
		SMTPSSL:      os.Getenv("SMTP_SSL") == "true",
		LogoPath:     os.Getenv("SMTP_LOGO_PATH"),
		TMPLDir:      os.Getenv("TMPL_DIR"),
		AdminEmail:   getEnv("ADMIN_EMAIL", log),
		KafkaBrokers: splitAndTrim(os.Getenv("KAFKA_BROKERS")),
		KafkaGroupID: getEnv("KAFKA_GROUP_ID", log),
		KafkaTopic:   getEnv("KAFKA_TOPIC_ORDERS", log),
	}
}

func getEnv(key string, log *zap.Logger) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	log.Error("Обязательная переменная окружения не установлена", zap.String("key", key))
	panic("missing required environment variable: " + key)
}

func getEnvInt(key string, log *zap.Logger) int {
	valStr := getEnv(key, log)
	val, err := strconv.Atoi(valStr)
	if err != nil {
		log.Error("Ошибка преобразования переменной окружения в int", zap.String("key", key), zap.Error(err))
		panic("invalid int value for environment variable: " + key)
	}
	return val
}

func envDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseDurationDefault(s string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func atoiDefault(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	parts := []string{}
	for _, p := range strings.Split(s, ",") {
		pt := strings.TrimSpace(p)
		if pt != "" {
			parts = append(parts, pt)
		}
	}
	return parts
}
