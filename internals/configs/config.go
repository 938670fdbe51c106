package configs

import (
	"context"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	gormLogger "gorm.io/gorm/logger"
	"gorm.io/gorm/utils"
)

// Config dibangun sekali saat start lalu dioper by reference ke komponen yang butuh.
type Config struct {
	Environment string
	Port        string

	DatabaseURL string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBSSLMode   string

	JWTSecret      string
	AccessTokenTTL time.Duration

	// jadwal cron purge token_blacklist
	BlacklistCleanupCron string

	AdminEmail    string
	AdminPassword string
	AdminName     string

	// opsional: file JSON user awal (lihat seeds/users/auth)
	SeedUsersFile string

	CORSOrigins []string

	// batas goroutine paralel untuk bulk mark (jaga pool DB)
	BulkConcurrency int
}

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("[WARN] .env tidak ditemukan, menggunakan ENV dari sistem")
		} else {
			log.Println("[INFO] .env file berhasil dimuat")
		}
	} else {
		log.Println("[INFO] Running in Railway, menggunakan ENV dari sistem")
	}
}

// Load membaca ENV (setelah LoadEnv) ke Config.
func Load() *Config {
	cfg := &Config{
		Environment: GetEnv("RAILWAY_ENVIRONMENT", GetEnv("APP_ENV", "development")),
		Port:        GetEnv("PORT", "3000"),

		DatabaseURL: strings.TrimSpace(GetEnv("DATABASE_URL")),
		DBHost:      GetEnv("DB_HOST", "localhost"),
		DBPort:      GetEnv("DB_PORT", "5432"),
		DBUser:      GetEnv("DB_USER"),
		DBPassword:  GetEnv("DB_PASSWORD"),
		DBName:      GetEnv("DB_NAME"),
		DBSSLMode:   GetEnv("DB_SSLMODE", "require"),

		JWTSecret:      strings.TrimSpace(GetEnv("JWT_SECRET")),
		AccessTokenTTL: getDuration("ACCESS_TOKEN_TTL", 7*24*time.Hour),

		BlacklistCleanupCron: GetEnv("TOKEN_BLACKLIST_CLEANUP_CRON", "@daily"),

		AdminEmail:    strings.TrimSpace(GetEnv("ADMIN_EMAIL")),
		AdminPassword: GetEnv("ADMIN_PASSWORD"),
		AdminName:     GetEnv("ADMIN_NAME", "Administrator"),
		SeedUsersFile: strings.TrimSpace(GetEnv("SEED_USERS_FILE")),

		CORSOrigins:     splitCSV(GetEnv("CORS_ORIGINS", "http://localhost:3000,http://localhost:5173")),
		BulkConcurrency: getInt("BULK_MARK_CONCURRENCY", 8),
	}

	if cfg.JWTSecret == "" {
		log.Println("[ERROR] JWT_SECRET belum diset!")
	} else {
		log.Println("[INFO] JWT_SECRET berhasil dimuat.")
	}
	if cfg.DatabaseURL == "" && cfg.DBName == "" {
		log.Println("[ERROR] DATABASE_URL / DB_NAME belum diset!")
	}
	if cfg.BulkConcurrency < 1 {
		cfg.BulkConcurrency = 1
	}
	return cfg
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func getInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("[WARN] %s tidak valid (%q), pakai default %d", key, v, def)
		return def
	}
	return n
}

func getDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		log.Printf("[WARN] %s tidak valid (%q), pakai default %s", key, v, def)
		return def
	}
	return d
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// =======================
// GORM LOGGER CUSTOM
// =======================
type GormLogger struct {
	SlowThreshold time.Duration
	LogLevel      gormLogger.LogLevel
}

func NewGormLogger(level gormLogger.LogLevel) gormLogger.Interface {
	return &GormLogger{
		SlowThreshold: 200 * time.Millisecond,
		LogLevel:      level,
	}
}

func (l *GormLogger) LogMode(level gormLogger.LogLevel) gormLogger.Interface {
	nl := *l
	nl.LogLevel = level
	return &nl
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Info {
		log.Printf("[INFO] "+msg, data...)
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Warn {
		log.Printf("[WARN] "+msg, data...)
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Error {
		log.Printf("[ERROR] "+msg, data...)
	}
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.LogLevel <= gormLogger.Silent {
		return
	}
	elapsed := time.Since(begin)
	sql, rows := fc()
	file := utils.FileWithLineNum()

	switch {
	case err != nil && l.LogLevel >= gormLogger.Error:
		log.Printf("[ERROR] %s | %v | %s | %d rows | %s", file, err, elapsed, rows, sql)
	case elapsed > l.SlowThreshold && l.LogLevel >= gormLogger.Warn:
		log.Printf("[SLOW SQL] %s | %s | %d rows | %s", file, elapsed, rows, sql)
	case l.LogLevel >= gormLogger.Info:
		log.Printf("[QUERY] %s | %s | %d rows | %s", file, elapsed, rows, sql)
	}
}
