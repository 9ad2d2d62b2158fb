package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

// Credential backends.
const (
	CredentialBackendMemory = "memory"
	CredentialBackendMongo  = "mongo"
)

// DefaultAuthUsers is the development credential table. It must be
// overridden outside development.
const DefaultAuthUsers = "demo:test123"

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Auth      AuthConfig
	Ask       AskConfig
	JobIntake JobIntakeConfig
	Retrieval RetrievalConfig
	Gemini    GeminiConfig
	Qdrant    QdrantConfig
	Mongo     MongoConfig
	Redis     RedisConfig
}

type AuthConfig struct {
	JWTSecret         string        `env:"JWT_SECRET, required"`
	JWTTTL            time.Duration `env:"JWT_TTL,            default=60m"`
	Users             string        `env:"AUTH_USERS"`
	CredentialBackend string        `env:"CREDENTIAL_BACKEND, default=memory"`
	BcryptCost        int           `env:"BCRYPT_COST,        default=10"`

	LoginMaxFailures   int           `env:"LOGIN_MAX_FAILURES,   default=5"`
	LoginFailureWindow time.Duration `env:"LOGIN_FAILURE_WINDOW, default=15m"`
}

type AskConfig struct {
	Timeout time.Duration `env:"ASK_TIMEOUT, default=10s"`
}

type JobIntakeConfig struct {
	RequireAuth    bool   `env:"JOB_INTAKE_REQUIRE_AUTH, default=false"`
	ExplainWorkers int    `env:"EXPLAIN_WORKERS,         default=4"`
	ResumeSeedPath string `env:"RESUME_SEED_PATH,        default=data/source_of_truth.json"`
}

type RetrievalConfig struct {
	// Retrievers lists backend names separated by "," or "|"; registration
	// order is list order.
	Retrievers    string `env:"RETRIEVERS,      default=flat|qdrant|mock"`
	FlatIndexPath string `env:"FLAT_INDEX_PATH, default=data/flat_index.json"`
	FlatTopK      int    `env:"FLAT_TOP_K,      default=3"`
}

type GeminiConfig struct {
	APIKey         string `env:"GEMINI_API_KEY"`
	Model          string `env:"GEMINI_MODEL,           default=gemini-2.5-flash"`
	EmbeddingModel string `env:"GEMINI_EMBEDDING_MODEL, default=text-embedding-004"`
}

type QdrantConfig struct {
	Host       string `env:"QDRANT_HOST"`
	Port       int    `env:"QDRANT_PORT,       default=6334"`
	APIKey     string `env:"QDRANT_API_KEY"`
	UseTLS     bool   `env:"QDRANT_USE_TLS,    default=false"`
	Collection string `env:"QDRANT_COLLECTION, default=askdesk"`
	TopK       int    `env:"QDRANT_TOP_K,      default=3"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=askdesk"`
}

// RedisConfig enables the login throttle when Addr is set.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB, default=0"`
}

// Load reads an optional .env file and then the process environment.
func Load(ctx context.Context) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: load .env: %w", err)
	}
	return LoadFrom(ctx, envconfig.OsLookuper())
}

// LoadFrom reads configuration through lookuper and validates it.
func LoadFrom(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		return errors.New("JWT_SECRET must not be blank")
	}
	switch c.Auth.CredentialBackend {
	case CredentialBackendMemory:
		if c.Auth.Users == "" {
			if !c.IsDevelopment() {
				return errors.New("AUTH_USERS is required outside development")
			}
			c.Auth.Users = DefaultAuthUsers
		}
	case CredentialBackendMongo:
	default:
		return fmt.Errorf("unknown CREDENTIAL_BACKEND %q", c.Auth.CredentialBackend)
	}
	if c.JobIntake.ExplainWorkers <= 0 {
		return errors.New("EXPLAIN_WORKERS must be positive")
	}
	return nil
}

// IsDevelopment reports whether the service runs with development defaults.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development" || c.Env == "dev" || c.Env == "local"
}

// UsesDefaultUsers reports whether the development credential table is active.
func (c *Config) UsesDefaultUsers() bool {
	return c.Auth.CredentialBackend == CredentialBackendMemory && c.Auth.Users == DefaultAuthUsers
}

// RetrieverNames splits RETRIEVERS on commas or pipes, dropping blanks.
func (c *Config) RetrieverNames() []string {
	fields := strings.FieldsFunc(c.Retrieval.Retrievers, func(r rune) bool { return r == ',' || r == '|' })
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
