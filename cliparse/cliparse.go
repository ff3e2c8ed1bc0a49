package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Database and blob backends
const (
	DatabaseSQLite   = "sqlite"
	DatabasePostgres = "postgres"

	BlobSQL = "sql"
	BlobS3  = "s3"
)

type Config struct {
	Port             int
	DatabaseURL      string
	DatabaseType     string
	AdminKeySalt     string
	SlugSalt         string
	BlobBackend      string
	S3Bucket         string
	S3Prefix         string
	AWSRegion        string
	BaseURL          string
	MatchMaxAttempts int
	MatchExhaustive  bool
}

// ParseFlags reads flags, then the environment (and a .env file if present) for anything unset
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var envFile string
	var exhaustive string

	fs := flag.NewFlagSet("giftswap", flag.ContinueOnError)

	fs.StringVar(&envFile, "env-file", ".env", "Optional dotenv file")

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	fs.StringVar(&cfg.BlobBackend, "blob", "", "Blob backend (sql or s3)")
	fs.StringVar(&cfg.S3Bucket, "s3-bucket", "", "S3 bucket for the s3 blob backend")
	fs.StringVar(&cfg.BaseURL, "base-url", "", "Public base URL used in share links")
	fs.IntVar(&cfg.MatchMaxAttempts, "max-attempts", 0, "Greedy draw attempts before the exhaustive fallback")
	fs.StringVar(&exhaustive, "exhaustive", "", "Run the exhaustive search when greedy attempts fail (true or false)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.AdminKeySalt, "admin-salt", "", "Admin key salt (prefer env)")
	fs.StringVar(&cfg.SlugSalt, "slug-salt", "", "Share slug salt (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Existing environment wins over the file
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load %s: %w", envFile, err)
	}

	if cfg.Port == 0 {
		port, err := envInt("PORT", 3318)
		if err != nil {
			return Config{}, err
		}
		cfg.Port = port
	}
	if cfg.MatchMaxAttempts == 0 {
		attempts, err := envInt("MATCH_MAX_ATTEMPTS", 100)
		if err != nil {
			return Config{}, err
		}
		cfg.MatchMaxAttempts = attempts
	}

	setDefault(&exhaustive, os.Getenv("MATCH_EXHAUSTIVE"), "true")
	on, err := strconv.ParseBool(exhaustive)
	if err != nil {
		return Config{}, fmt.Errorf("invalid MATCH_EXHAUSTIVE value %q", exhaustive)
	}
	cfg.MatchExhaustive = on

	setDefault(&cfg.DatabaseType, os.Getenv("DATABASE_TYPE"), DatabaseSQLite)
	setDefault(&cfg.DatabaseURL, os.Getenv("DATABASE_URL"), "")
	setDefault(&cfg.BlobBackend, os.Getenv("BLOB_BACKEND"), BlobSQL)
	setDefault(&cfg.S3Bucket, os.Getenv("S3_BUCKET"), "")
	setDefault(&cfg.S3Prefix, os.Getenv("S3_PREFIX"), "giftswap/")
	setDefault(&cfg.AWSRegion, os.Getenv("AWS_REGION"), "us-east-1")
	setDefault(&cfg.BaseURL, os.Getenv("BASE_URL"), "http://localhost:"+strconv.Itoa(cfg.Port))
	setDefault(&cfg.AdminKeySalt, os.Getenv("ADMIN_KEY_SALT"), "")
	setDefault(&cfg.SlugSalt, os.Getenv("SLUG_SALT"), "")

	switch cfg.DatabaseType {
	case DatabaseSQLite:
		if cfg.DatabaseURL == "" {
			cfg.DatabaseURL = "giftswap.db"
		}
	case DatabasePostgres:
		if cfg.DatabaseURL == "" {
			return Config{}, errors.New("database URL required for postgres (use -d or DATABASE_URL env)")
		}
	default:
		return Config{}, fmt.Errorf("unknown database type %q", cfg.DatabaseType)
	}

	switch cfg.BlobBackend {
	case BlobSQL:
	case BlobS3:
		if cfg.S3Bucket == "" {
			return Config{}, errors.New("S3_BUCKET required for the s3 blob backend")
		}
	default:
		return Config{}, fmt.Errorf("unknown blob backend %q", cfg.BlobBackend)
	}

	// Secrets - MUST be provided
	if cfg.AdminKeySalt == "" {
		return Config{}, errors.New("ADMIN_KEY_SALT required")
	}
	if cfg.SlugSalt == "" {
		return Config{}, errors.New("SLUG_SALT required")
	}

	return cfg, nil
}

func setDefault(dst *string, env, fallback string) {
	if *dst != "" {
		return
	}
	if env != "" {
		*dst = env
		return
	}
	*dst = fallback
}

func envInt(key string, fallback int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s env variable", key)
	}
	return n, nil
}
