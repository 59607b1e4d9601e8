package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/glebarez/sqlite"
	"github.com/pelletier/go-toml/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// JWTSecret used to sign tokens, set by Load
var JWTSecret = []byte(defaultJWTSecret)

const defaultJWTSecret = "storefront_dev_secret_2026"

// Config is read from an optional TOML file and then overridden from env.
type Config struct {
	Port    string `toml:"port"`
	GinMode string `toml:"gin_mode"`

	JWTSecret   string   `toml:"jwt_secret"`
	AdminPhones []string `toml:"admin_phones"`
	OTPEcho     bool     `toml:"otp_echo"`

	// AuditDSN is a SQLite DSN; ":memory:" keeps the journal in-process
	AuditDSN string `toml:"audit_dsn"`

	// DatasetPath replaces the embedded catalog dataset when set
	DatasetPath string `toml:"dataset_path"`

	StrictOrderTransitions bool `toml:"strict_order_transitions"`
	SeedMockSession        bool `toml:"seed_mock_session"`
}

func Default() Config {
	return Config{
		Port:      "8080",
		GinMode:   "debug",
		JWTSecret: defaultJWTSecret,
		OTPEcho:   true,
		AuditDSN:  ":memory:",
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}

// Load builds the configuration: defaults, then the TOML file named by
// STOREFRONT_CONFIG (if any), then environment overrides.
func Load() (Config, error) {
	cfg := Default()

	if path := os.Getenv("STOREFRONT_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.GinMode = getEnv("GIN_MODE", cfg.GinMode)
	cfg.JWTSecret = getEnv("JWT_SECRET", cfg.JWTSecret)
	cfg.AuditDSN = getEnv("AUDIT_DSN", cfg.AuditDSN)
	cfg.DatasetPath = getEnv("CATALOG_DATASET", cfg.DatasetPath)
	if phones := os.Getenv("ADMIN_PHONES"); phones != "" {
		cfg.AdminPhones = strings.Split(phones, ",")
	}

	var err error
	if cfg.StrictOrderTransitions, err = getBool("STRICT_ORDER_TRANSITIONS", cfg.StrictOrderTransitions); err != nil {
		return Config{}, err
	}
	if cfg.SeedMockSession, err = getBool("SEED_MOCK_SESSION", cfg.SeedMockSession); err != nil {
		return Config{}, err
	}
	if cfg.OTPEcho, err = getBool("OTP_ECHO", cfg.OTPEcho); err != nil {
		return Config{}, err
	}

	JWTSecret = []byte(cfg.JWTSecret)
	return cfg, nil
}

// OpenJournal opens the SQLite database backing the order audit journal.
func OpenJournal(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to journal database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// every pooled connection to ":memory:" would be a separate database
	sqlDB.SetMaxOpenConns(1)
	return db, nil
}
