package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port     string
	LogLevel string
	UserID   string

	// StoreBackend selects the remote Persistence Gateway:
	// memory, file, postgres, gcs or s3.
	StoreBackend string
	CacheDir     string
	DataDir      string

	PostgresAddress  string
	PostgresPort     string
	PostgresDB       string
	PostgresUsername string
	PostgresPassword string

	GCSBucket string
	GCSPrefix string

	S3Bucket   string
	S3Prefix   string
	S3Region   string
	S3Endpoint string

	SaveDebounce        time.Duration
	MigrationTimeout    time.Duration
	MaintenanceSchedule string
}

// PostgresURL is the lib/pq connection string for the configured database.
func (c *Config) PostgresURL() string {
	return "postgres://" + c.PostgresUsername + ":" +
		c.PostgresPassword + "@" + c.PostgresAddress + ":" +
		c.PostgresPort + "/" + c.PostgresDB + "?sslmode=disable"
}

func ProcessEnvironmentVariables() (*Config, error) {
	return processEnvironment(".env")
}

func processEnvironment(envFile string) (*Config, error) {
	// Values already set in the process environment win over the file.
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", envFile, err)
	}

	// In all cases the default behavior should be for the docker compose setup
	env := Config{
		Port:                "9446",
		LogLevel:            "info",
		UserID:              "local",
		StoreBackend:        "file",
		CacheDir:            "data/cache",
		DataDir:             "data/remote",
		PostgresAddress:     "localhost",
		PostgresPort:        "5433",
		PostgresDB:          "postgres",
		PostgresUsername:    "postgres",
		PostgresPassword:    "testpassword",
		S3Region:            "auto",
		SaveDebounce:        500 * time.Millisecond,
		MigrationTimeout:    30 * time.Second,
		MaintenanceSchedule: "@daily",
	}

	textValues := map[string]*string{
		"PORT":                 &env.Port,
		"LOG_LEVEL":            &env.LogLevel,
		"USER_ID":              &env.UserID,
		"STORE_BACKEND":        &env.StoreBackend,
		"CACHE_DIR":            &env.CacheDir,
		"DATA_DIR":             &env.DataDir,
		"POSTGRES_ADDRESS":     &env.PostgresAddress,
		"POSTGRES_PORT":        &env.PostgresPort,
		"POSTGRES_DB":          &env.PostgresDB,
		"POSTGRES_USERNAME":    &env.PostgresUsername,
		"POSTGRES_PASSWORD":    &env.PostgresPassword,
		"GCS_BUCKET":           &env.GCSBucket,
		"GCS_PREFIX":           &env.GCSPrefix,
		"S3_BUCKET":            &env.S3Bucket,
		"S3_PREFIX":            &env.S3Prefix,
		"S3_REGION":            &env.S3Region,
		"S3_ENDPOINT":          &env.S3Endpoint,
		"MAINTENANCE_SCHEDULE": &env.MaintenanceSchedule,
	}
	for key, target := range textValues {
		if value := os.Getenv(key); len(value) != 0 {
			*target = value
		}
	}

	durations := []struct {
		key    string
		unit   time.Duration
		target *time.Duration
	}{
		{"SAVE_DEBOUNCE_MS", time.Millisecond, &env.SaveDebounce},
		{"MIGRATION_TIMEOUT_S", time.Second, &env.MigrationTimeout},
	}
	for _, d := range durations {
		value := os.Getenv(d.key)
		if len(value) == 0 {
			continue
		}
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid %s %q: must be a non-negative integer", d.key, value)
		}
		*d.target = time.Duration(n) * d.unit
	}

	switch env.StoreBackend {
	case "memory", "file", "postgres", "gcs", "s3":
	default:
		return nil, fmt.Errorf("invalid STORE_BACKEND %q", env.StoreBackend)
	}

	return &env, nil
}
