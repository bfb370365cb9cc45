package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"labflow/internal/adapters/out/security"
	"labflow/internal/pkg/errs"

	"golang.org/x/crypto/bcrypt"
)

const (
	defaultHTTPPort            = "8080"
	defaultJWTExpiresInMinutes = 60
)

// Config is read from the environment at startup. See LoadConfig for the keys.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	JWTSecret      string
	JWTExpiresIn   time.Duration
	BcryptCost     int
	PasswordPepper string

	// ExpiringOrdersReportSchedule is a seconds-enabled cron spec; empty disables the report.
	ExpiringOrdersReportSchedule string

	LogLevel slog.Level
}

// LoadConfig reads every key through getenv and applies defaults. Parse failures
// and missing required keys are returned together.
func LoadConfig(getenv func(string) string) (Config, error) {
	config := Config{
		HTTPPort:                     withDefault(getenv("HTTP_PORT"), defaultHTTPPort),
		DBHost:                       getenv("DB_HOST"),
		DBPort:                       getenv("DB_PORT"),
		DBUser:                       getenv("DB_USER"),
		DBPassword:                   getenv("DB_PASSWORD"),
		DBName:                       getenv("DB_NAME"),
		DBSslMode:                    withDefault(getenv("DB_SSLMODE"), "disable"),
		JWTSecret:                    getenv("JWT_SECRET"),
		PasswordPepper:               getenv("PASSWORD_PEPPER"),
		ExpiringOrdersReportSchedule: getenv("EXPIRING_ORDERS_REPORT_SCHEDULE"),
	}

	minutes, minutesErr := intWithDefault(getenv, "JWT_EXPIRES_IN_MINUTES", defaultJWTExpiresInMinutes)
	config.JWTExpiresIn = time.Duration(minutes) * time.Minute

	cost, costErr := intWithDefault(getenv, "BCRYPT_COST", bcrypt.DefaultCost)
	config.BcryptCost = cost

	var levelErr error
	if raw := getenv("LOG_LEVEL"); raw != "" {
		if err := config.LogLevel.UnmarshalText([]byte(raw)); err != nil {
			levelErr = errs.NewValueIsInvalidErrorWithCause("LOG_LEVEL", err)
		}
	}

	if err := errors.Join(minutesErr, costErr, levelErr, config.Validate()); err != nil {
		return Config{}, err
	}

	return config, nil
}

// Validate checks the required keys and the bounds of the numeric ones.
func (c Config) Validate() error {
	var err error

	for key, value := range map[string]string{
		"DB_HOST":    c.DBHost,
		"DB_PORT":    c.DBPort,
		"DB_USER":    c.DBUser,
		"DB_NAME":    c.DBName,
		"JWT_SECRET": c.JWTSecret,
	} {
		if value == "" {
			err = errors.Join(err, errs.NewValueIsRequiredError(key))
		}
	}

	if c.JWTSecret != "" && len(c.JWTSecret) < security.MinSecretLength {
		err = errors.Join(err, errs.NewValueIsOutOfRangeError(
			"JWT_SECRET length", len(c.JWTSecret), security.MinSecretLength, "unbounded"))
	}
	if c.JWTExpiresIn <= 0 {
		err = errors.Join(err, errs.NewValueIsOutOfRangeError(
			"JWT_EXPIRES_IN_MINUTES", c.JWTExpiresIn.Minutes(), 1, "unbounded"))
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		err = errors.Join(err, errs.NewValueIsOutOfRangeError(
			"BCRYPT_COST", c.BcryptCost, bcrypt.MinCost, bcrypt.MaxCost))
	}

	return err
}

// DSN is the connection string for gorm.io/driver/postgres.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// Addr is the listen address of the HTTP server.
func (c Config) Addr() string {
	return "0.0.0.0:" + c.HTTPPort
}

func withDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func intWithDefault(getenv func(string) string, key string, fallback int) (int, error) {
	raw := getenv(key)
	if raw == "" {
		return fallback, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback, errs.NewValueIsInvalidErrorWithCause(key, err)
	}
	return value, nil
}
