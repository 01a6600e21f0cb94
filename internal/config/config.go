package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// Источники вопросов.
const (
	SourceOpenTDB  = "opentdb"
	SourceSample   = "sample"
	SourcePostgres = "postgres"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Config — настройки приложения. Порядок приоритета: флаги, переменные
// окружения, файл .env, значения по умолчанию.
type Config struct {
	Source       string        `validate:"oneof=opentdb sample postgres"`
	TriviaAPIURL string        `validate:"required,url"`
	Amount       int           `validate:"min=1,max=50"`
	Category     int           `validate:"min=0"`
	Difficulty   string        `validate:"omitempty,oneof=easy medium hard"`
	HTTPTimeout  time.Duration `validate:"gt=0"`
	MaxRetries   int           `validate:"min=0,max=10"`
	DatabaseURL  string        `validate:"required_if=Source postgres"`
	MaxDBConns   int32         `validate:"min=1"`
	LogLevel     string        `validate:"oneof=debug info warn error"`
	EffectBuffer int           `validate:"min=1"`
}

// Load читает .env (если есть), окружение и флаги args.
func Load(args []string) (*Config, error) {
	_ = godotenv.Load() // .env необязателен

	cfg := &Config{
		Source:       getEnv("TRIVIA_SOURCE", SourceOpenTDB),
		TriviaAPIURL: getEnv("TRIVIA_API_URL", "https://opentdb.com/api.php"),
		Amount:       getEnvInt("TRIVIA_AMOUNT", 10),
		Category:     getEnvInt("TRIVIA_CATEGORY", 0),
		Difficulty:   strings.ToLower(getEnv("TRIVIA_DIFFICULTY", "")),
		HTTPTimeout:  getEnvDuration("HTTP_TIMEOUT", 10*time.Second),
		MaxRetries:   getEnvInt("HTTP_MAX_RETRIES", 3),
		DatabaseURL:  getEnv("DATABASE_URL", ""),
		MaxDBConns:   int32(getEnvInt("MAX_DB_CONNS", 4)),
		LogLevel:     strings.ToLower(getEnv("LOG_LEVEL", "info")),
		EffectBuffer: getEnvInt("EFFECT_BUFFER", 16),
	}

	flags := pflag.NewFlagSet("quizcli", pflag.ContinueOnError)
	flags.StringVar(&cfg.Source, "source", cfg.Source, "question source: opentdb, sample or postgres")
	flags.StringVar(&cfg.TriviaAPIURL, "api-url", cfg.TriviaAPIURL, "Open Trivia DB endpoint")
	flags.IntVarP(&cfg.Amount, "amount", "n", cfg.Amount, "questions per quiz")
	flags.IntVarP(&cfg.Category, "category", "c", cfg.Category, "category id to start with (0 shows the menu)")
	flags.StringVarP(&cfg.Difficulty, "difficulty", "d", cfg.Difficulty, "easy, medium or hard")
	flags.DurationVar(&cfg.HTTPTimeout, "timeout", cfg.HTTPTimeout, "HTTP request timeout")
	flags.IntVar(&cfg.MaxRetries, "retries", cfg.MaxRetries, "retries for temporary provider errors")
	flags.StringVar(&cfg.DatabaseURL, "database-url", cfg.DatabaseURL, "question bank DSN for the postgres source")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")

	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	cfg.Difficulty = strings.ToLower(cfg.Difficulty)
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate проверяет значения по тегам validate.
func (c *Config) Validate() error {
	err := validator.New().Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fmt.Sprintf("%s failed on %q", fe.Field(), fe.Tag()))
	}

	return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(msgs, ", "))
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
