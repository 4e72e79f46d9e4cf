package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/md-rashed-zaman/clinicdesk/libs/config"
	"github.com/md-rashed-zaman/clinicdesk/services/dashboard-service/internal/booking"
)

type settings struct {
	Service  string
	Port     string
	LogLevel string
	Location *time.Location

	SubmitDelay time.Duration
	SessionTTL  time.Duration
	SuccessPath string

	DatabaseURL  string
	AutoMigrate  bool
	KafkaBrokers string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	RateLimitPerMinute int
	CORSOrigins        []string
	BodyLimitBytes     int64
	RequestTimeout     time.Duration
}

func loadSettings() (settings, error) {
	port, err := config.Port("PORT", "8080")
	if err != nil {
		return settings{}, err
	}
	tz := config.String("CLINIC_TIMEZONE", "Europe/Madrid")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return settings{}, fmt.Errorf("CLINIC_TIMEZONE: %w", err)
	}
	redisDB := 0
	if raw := config.String("REDIS_DB", ""); raw != "" {
		redisDB, err = strconv.Atoi(raw)
		if err != nil || redisDB < 0 {
			return settings{}, fmt.Errorf("REDIS_DB must be a non-negative integer (got %q)", raw)
		}
	}

	return settings{
		Service:  config.String("SERVICE_NAME", "dashboard-service"),
		Port:     port,
		LogLevel: config.String("LOG_LEVEL", "info"),
		Location: loc,

		SubmitDelay: config.NonNegativeDuration("BOOKING_SUBMIT_DELAY_MS", time.Millisecond, booking.DefaultSubmitDelay),
		SessionTTL:  config.Duration("BOOKING_SESSION_TTL_MINUTES", time.Minute, 30*time.Minute),
		SuccessPath: config.String("BOOKING_SUCCESS_PATH", booking.DefaultSuccessPath),

		DatabaseURL:  config.String("DATABASE_URL", ""),
		AutoMigrate:  config.Bool("DB_AUTO_MIGRATE", false),
		KafkaBrokers: config.String("KAFKA_BROKERS", ""),

		RedisAddr:     config.String("REDIS_ADDR", ""),
		RedisPassword: config.String("REDIS_PASSWORD", ""),
		RedisDB:       redisDB,

		RateLimitPerMinute: config.Int("RATE_LIMIT_PER_MINUTE", 120),
		CORSOrigins:        config.List("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
		BodyLimitBytes:     int64(config.Int("REQUEST_BODY_LIMIT_BYTES", 64<<10)),
		RequestTimeout:     config.Duration("REQUEST_TIMEOUT_SECONDS", time.Second, 15*time.Second),
	}, nil
}
