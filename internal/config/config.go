package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreRedis    = "redis"

	PayrollModePolicy = "policy"
	PayrollModeDemo   = "demo"
)

type Config struct {
	App        AppConfig
	JWT        JWTConfig
	Store      StoreConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	Attendance AttendanceConfig
	Payroll    PayrollConfig
	Storage    StorageConfig
	Seed       SeedConfig
}

// AppConfig holds application configuration
type AppConfig struct {
	Port        int
	Env         string
	LogLevel    string
	Timezone    string
	CORSOrigins []string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration time.Duration
}

// StoreConfig selects the record store backend.
type StoreConfig struct {
	Driver string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

type RedisConfig struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
}

type AttendanceConfig struct {
	// LateAfter is a HH:MM wall-clock cutoff in App.Timezone.
	LateAfter   string
	AbsentSweep string
}

type PayrollConfig struct {
	Mode                string
	StandardDailyHours  float64
	WorkingDaysPerMonth int
	OvertimeMultiplier  float64
	DemoSeed            int64
}

type StorageConfig struct {
	UploadDir string
	BaseURL   string
}

type SeedConfig struct {
	FixturesPath string
	SnapshotPath string
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	config := &Config{}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:        appPort,
		Env:         getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		Timezone:    getEnv("APP_TIMEZONE", "UTC"),
		CORSOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
	}

	// JWT configuration
	accessExpiration, err := time.ParseDuration(getEnv("JWT_ACCESS_EXPIRATION_TIME", "12h"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_ACCESS_EXPIRATION_TIME: %w", err)
	}

	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: accessExpiration,
	}

	config.Store = StoreConfig{
		Driver: strings.ToLower(getEnv("STORE_DRIVER", StoreMemory)),
	}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "dayflow"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Redis configuration
	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	config.Redis = RedisConfig{
		Addr:      getEnv("REDIS_ADDR", "localhost:6379"),
		Password:  getEnv("REDIS_PASSWORD", ""),
		DB:        redisDB,
		KeyPrefix: getEnv("REDIS_KEY_PREFIX", ""),
	}

	config.Attendance = AttendanceConfig{
		LateAfter:   getEnv("ATTENDANCE_LATE_AFTER", "09:00"),
		AbsentSweep: getEnv("ATTENDANCE_ABSENT_SWEEP", "5 0 * * *"),
	}

	// Payroll configuration
	dailyHours, err := strconv.ParseFloat(getEnv("PAYROLL_STANDARD_DAILY_HOURS", "8"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid PAYROLL_STANDARD_DAILY_HOURS: %w", err)
	}
	workingDays, err := strconv.Atoi(getEnv("PAYROLL_WORKING_DAYS_PER_MONTH", "22"))
	if err != nil {
		return nil, fmt.Errorf("invalid PAYROLL_WORKING_DAYS_PER_MONTH: %w", err)
	}
	multiplier, err := strconv.ParseFloat(getEnv("PAYROLL_OVERTIME_MULTIPLIER", "1.5"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid PAYROLL_OVERTIME_MULTIPLIER: %w", err)
	}
	demoSeed, err := strconv.ParseInt(getEnv("PAYROLL_DEMO_SEED", "0"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid PAYROLL_DEMO_SEED: %w", err)
	}

	config.Payroll = PayrollConfig{
		Mode:                strings.ToLower(getEnv("PAYROLL_MODE", PayrollModePolicy)),
		StandardDailyHours:  dailyHours,
		WorkingDaysPerMonth: workingDays,
		OvertimeMultiplier:  multiplier,
		DemoSeed:            demoSeed,
	}

	config.Storage = StorageConfig{
		UploadDir: getEnv("UPLOAD_DIR", "./uploads"),
		BaseURL:   getEnv("UPLOAD_BASE_URL", "/uploads"),
	}

	config.Seed = SeedConfig{
		FixturesPath: getEnv("SEED_FIXTURES_PATH", ""),
		SnapshotPath: getEnv("SEED_SNAPSHOT_PATH", ""),
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}

	switch c.Store.Driver {
	case StoreMemory, StoreRedis:
	case StorePostgres:
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD is required for the postgres store")
		}
	default:
		return fmt.Errorf("STORE_DRIVER must be one of memory, postgres, redis")
	}

	if _, err := time.LoadLocation(c.App.Timezone); err != nil {
		return fmt.Errorf("invalid APP_TIMEZONE: %w", err)
	}
	if _, err := ParseClock(c.Attendance.LateAfter); err != nil {
		return fmt.Errorf("invalid ATTENDANCE_LATE_AFTER: %w", err)
	}

	switch c.Payroll.Mode {
	case PayrollModePolicy, PayrollModeDemo:
	default:
		return fmt.Errorf("PAYROLL_MODE must be policy or demo")
	}
	if c.Payroll.StandardDailyHours <= 0 || c.Payroll.WorkingDaysPerMonth <= 0 {
		return fmt.Errorf("payroll working hours must be positive")
	}
	if c.Payroll.OvertimeMultiplier < 0 {
		return fmt.Errorf("PAYROLL_OVERTIME_MULTIPLIER must not be negative")
	}
	return nil
}

// Location returns the configured time zone.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

// URL returns the PostgreSQL connection string
func (d DatabaseConfig) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Name,
		d.SSLMode,
	)
}

// ParseClock parses a HH:MM wall-clock value into an offset from midnight.
func ParseClock(value string) (time.Duration, error) {
	t, err := time.Parse("15:04", value)
	if err != nil {
		return 0, err
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(key string, fallback []string) []string {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	var result []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
