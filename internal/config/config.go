// Package config assembles the server settings from defaults, an optional
// JSON file, the environment and command-line flags, in that order of
// increasing priority.
package config

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	env "github.com/caarlos0/env/v6"
	validator "github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	RunAddr             string        `env:"SERVER_ADDRESS" json:"server_address" validate:"hostname_port"`
	APIBaseURL          string        `env:"API_BASE_URL" json:"api_base_url" validate:"url"`
	LogLevel            string        `env:"LOG_LEVEL" json:"log_level" validate:"loglevel"`
	DBFileName          string        `env:"FILE_STORAGE_PATH" json:"file_storage_path" validate:"filepath"`
	DatabaseDSN         string        `env:"DATABASE_DSN" json:"database_dsn"`
	RedisAddr           string        `env:"REDIS_ADDR" json:"redis_addr" validate:"omitempty,hostname_port"`
	DBConnectionTimeout time.Duration `env:"DB_CONNECTION_TIMEOUT" json:"db_connection_timeout" validate:"gt=0"`
	TrustedSubnet       string        `env:"TRUSTED_SUBNET" json:"trusted_subnet" validate:"cidr_or_empty"`
	AllowedOrigins      []string      `env:"ALLOWED_ORIGINS" envSeparator:"," json:"allowed_origins"`
	CreateRate          float64       `env:"CREATE_RATE" json:"create_rate" validate:"gte=0"`
	CreateBurst         int           `env:"CREATE_BURST" json:"create_burst" validate:"gte=0"`
	EnableGzip          bool          `env:"ENABLE_GZIP" json:"enable_gzip"`
	ConfigFile          string        `env:"CONFIG" json:"-"`
}

var defaultConfig = Config{
	RunAddr:             ":8080",
	LogLevel:            "info",
	DBFileName:          "data/users.json",
	DBConnectionTimeout: 10 * time.Second,
	CreateRate:          5,
	CreateBurst:         10,
	EnableGzip:          true,
}

type initOptions struct {
	disableFlagsParsing bool
}

type InitOption func(*initOptions)

// WithDisableFlagsParsing leaves os.Args alone. Tests use it.
func WithDisableFlagsParsing(disableFlagsParsing bool) InitOption {
	return func(options *initOptions) {
		options.disableFlagsParsing = disableFlagsParsing
	}
}

func validateFilePath(fieldLevel validator.FieldLevel) bool {
	path := fieldLevel.Field().String()
	if path == "" {
		return false
	}
	_, err := os.Stat(path)

	return err == nil || os.IsNotExist(err)
}

func validateLogLevel(fieldLevel validator.FieldLevel) bool {
	value := fieldLevel.Field().String()

	allowedLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
		"fatal": true,
	}

	return allowedLogLevels[value]
}

func validateCIDROrEmpty(fieldLevel validator.FieldLevel) bool {
	value := fieldLevel.Field().String()
	if value == "" {
		return true
	}
	_, _, err := net.ParseCIDR(value)

	return err == nil
}

func (c *Config) validate() error {
	validate := validator.New()

	err := validate.RegisterValidation("loglevel", validateLogLevel)
	if err != nil {
		return err
	}

	err = validate.RegisterValidation("filepath", validateFilePath)
	if err != nil {
		return err
	}

	err = validate.RegisterValidation("cidr_or_empty", validateCIDROrEmpty)
	if err != nil {
		return err
	}

	return validate.Struct(c)
}

// applyDefaults fills every zero field of values from defaults.
func applyDefaults(values *Config, defaults Config) {
	if values.RunAddr == "" {
		values.RunAddr = defaults.RunAddr
	}
	if values.APIBaseURL == "" {
		values.APIBaseURL = defaults.APIBaseURL
	}
	if values.LogLevel == "" {
		values.LogLevel = defaults.LogLevel
	}
	if values.DBFileName == "" {
		values.DBFileName = defaults.DBFileName
	}
	if values.DBConnectionTimeout == 0 {
		values.DBConnectionTimeout = defaults.DBConnectionTimeout
	}
	if values.CreateRate == 0 {
		values.CreateRate = defaults.CreateRate
	}
	if values.CreateBurst == 0 {
		values.CreateBurst = defaults.CreateBurst
	}
}

// clarifyAPIBaseURL derives the base URL the page uses to reach the API from
// RunAddr when none is configured.
func (c *Config) clarifyAPIBaseURL() error {
	if c.APIBaseURL != "" {
		c.APIBaseURL = strings.TrimRight(c.APIBaseURL, "/")
		return nil
	}

	host, port, err := net.SplitHostPort(c.RunAddr)
	if err != nil {
		return fmt.Errorf("in internal/config/config.go/clarifyAPIBaseURL(): error while `net.SplitHostPort()` calling: %w", err)
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	c.APIBaseURL = "http://" + net.JoinHostPort(host, port)

	return nil
}

func loadJSON(path string, values *Config) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("in internal/config/config.go/loadJSON(): error while `os.ReadFile()` calling: %w", err)
	}

	var fromFile struct {
		Config
		DBConnectionTimeout string `json:"db_connection_timeout"`
	}
	fromFile.Config = *values
	fromFile.DBConnectionTimeout = ""
	if err := json.Unmarshal(raw, &fromFile); err != nil {
		return fmt.Errorf("in internal/config/config.go/loadJSON(): error while `json.Unmarshal()` calling: %w", err)
	}

	timeout := values.DBConnectionTimeout
	if fromFile.DBConnectionTimeout != "" {
		timeout, err = time.ParseDuration(fromFile.DBConnectionTimeout)
		if err != nil {
			return fmt.Errorf("in internal/config/config.go/loadJSON(): bad db_connection_timeout: %w", err)
		}
	}

	configFile := values.ConfigFile
	*values = fromFile.Config
	values.DBConnectionTimeout = timeout
	values.ConfigFile = configFile

	return nil
}

type flagValues struct {
	set map[string]bool

	runAddr       string
	apiBaseURL    string
	logLevel      string
	dbFileName    string
	databaseDSN   string
	redisAddr     string
	trustedSubnet string
	configFile    string
}

func parseFlags(args []string) (*flagValues, error) {
	values := &flagValues{set: map[string]bool{}}

	flags := flag.NewFlagSet(args[0], flag.ContinueOnError)
	flags.StringVar(&values.runAddr, "a", "", "address and port to run server")
	flags.StringVar(&values.apiBaseURL, "b", "", "base URL the page uses to reach the API")
	flags.StringVar(&values.logLevel, "l", "", "logger level")
	flags.StringVar(&values.dbFileName, "f", "", "JSON file name with the users collection")
	flags.StringVar(&values.databaseDSN, "d", "", "A string with the database connection details")
	flags.StringVar(&values.redisAddr, "r", "", "Redis address (host:port)")
	flags.StringVar(&values.trustedSubnet, "t", "", "trusted subnet in CIDR notation")
	flags.StringVar(&values.configFile, "c", "", "JSON config file")
	if err := flags.Parse(args[1:]); err != nil {
		return nil, err
	}
	flags.Visit(func(f *flag.Flag) {
		values.set[f.Name] = true
	})

	return values, nil
}

func (f *flagValues) apply(values *Config) {
	targets := map[string]*string{
		"a": &values.RunAddr,
		"b": &values.APIBaseURL,
		"l": &values.LogLevel,
		"f": &values.DBFileName,
		"d": &values.DatabaseDSN,
		"r": &values.RedisAddr,
		"t": &values.TrustedSubnet,
	}
	sources := map[string]string{
		"a": f.runAddr,
		"b": f.apiBaseURL,
		"l": f.logLevel,
		"f": f.dbFileName,
		"d": f.databaseDSN,
		"r": f.redisAddr,
		"t": f.trustedSubnet,
	}
	for name, target := range targets {
		if f.set[name] {
			*target = sources[name]
		}
	}
}

// New builds and validates the configuration.
func New(optionsProto ...InitOption) (*Config, error) {
	options := &initOptions{
		disableFlagsParsing: false,
	}
	for _, protoOption := range optionsProto {
		protoOption(options)
	}

	err := godotenv.Load()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("in internal/config/config.go/New(): error while `godotenv.Load()` calling: %w", err)
	}

	values := defaultConfig
	values.AllowedOrigins = nil

	var fromFlags *flagValues
	if !options.disableFlagsParsing {
		fromFlags, err = parseFlags(os.Args)
		if err != nil {
			return nil, err
		}
	}

	configFile := os.Getenv("CONFIG")
	if fromFlags != nil && fromFlags.set["c"] {
		configFile = fromFlags.configFile
	}
	if configFile != "" {
		values.ConfigFile = configFile
		if err := loadJSON(configFile, &values); err != nil {
			return nil, err
		}
	}

	err = env.Parse(&values)
	if err != nil {
		return nil, err
	}

	if fromFlags != nil {
		fromFlags.apply(&values)
	}

	applyDefaults(&values, defaultConfig)

	if err := values.clarifyAPIBaseURL(); err != nil {
		return nil, err
	}

	if err := values.validate(); err != nil {
		return nil, err
	}

	return &values, nil
}
