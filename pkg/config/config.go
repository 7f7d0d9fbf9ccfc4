// Package config provides the service configuration, loaded from a YAML file
// and overridden by the environment variables of the deployment.
package config

import (
	"os"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/x/configloader"
	"github.com/effective-security/x/values"
	"github.com/go-playground/validator/v10"
)

// Defaults
const (
	DefaultPort             = "8080"
	DefaultRegion           = "us-east-1"
	DefaultModel            = "anthropic.claude-3-sonnet-20240229-v1:0"
	DefaultMaxTokens        = 4096
	DefaultAnthropicVersion = "bedrock-2023-05-31"
	DefaultTable            = "SOVEREIGN_MIND.RAW.HIVE_MIND"
	DefaultContextLimit     = 3
	DefaultLogLevel         = "INFO"
	DefaultEvents           = EventsLog
)

// Tool event sinks
const (
	EventsNone    = "none"
	EventsLog     = "log"
	EventsPrint   = "print"
	EventsVerbose = "verbose"
)

// Driver names for the Hive Mind store
const (
	DriverNone      = "none"
	DriverSnowflake = "snowflake"
	DriverSQLite    = "sqlite"
	DriverRedis     = "redis"
	DriverMemory    = "memory"
)

// Config for the service
type Config struct {
	// ListenAddr specifies the HTTP listen address, `:$PORT` by default
	ListenAddr string `json:"listen_addr" yaml:"listen_addr"`
	// LogLevel specifies the global log level
	LogLevel string   `json:"log_level" yaml:"log_level" validate:"omitempty,oneof=TRACE DEBUG INFO NOTICE WARNING ERROR CRITICAL"`
	Bedrock  Bedrock  `json:"bedrock" yaml:"bedrock"`
	HiveMind HiveMind `json:"hive_mind" yaml:"hive_mind"`
	Prompt   Prompt   `json:"prompt" yaml:"prompt"`
	Tools    Tools    `json:"tools" yaml:"tools"`
}

// Bedrock specifies the inference endpoint
type Bedrock struct {
	Region           string `json:"region" yaml:"region" validate:"required"`
	Model            string `json:"model" yaml:"model" validate:"required"`
	MaxTokens        int    `json:"max_tokens" yaml:"max_tokens" validate:"gt=0"`
	AnthropicVersion string `json:"anthropic_version" yaml:"anthropic_version" validate:"required"`
	// AccessKeyID selects static credentials instead of the default AWS chain
	AccessKeyID     string `json:"access_key_id,omitempty" yaml:"access_key_id,omitempty"`
	SecretAccessKey string `json:"secret_access_key,omitempty" yaml:"secret_access_key,omitempty" validate:"required_with=AccessKeyID"`
	SessionToken    string `json:"session_token,omitempty" yaml:"session_token,omitempty"`
}

// HiveMind specifies the context store
type HiveMind struct {
	// Driver is one of none|snowflake|sqlite|redis|memory
	Driver string `json:"driver" yaml:"driver" validate:"omitempty,oneof=none snowflake sqlite redis memory"`
	// DSN is used by the sqlite driver
	DSN string `json:"dsn,omitempty" yaml:"dsn,omitempty"`
	// SeedFile is a YAML list of records loaded by the memory driver
	SeedFile string `json:"seed_file,omitempty" yaml:"seed_file,omitempty"`
	// Table is the fully qualified table with the records
	Table string `json:"table" yaml:"table"`
	// Limit is the number of records added to the prompt
	Limit     int       `json:"limit" yaml:"limit" validate:"gte=0"`
	Snowflake Snowflake `json:"snowflake" yaml:"snowflake"`
	Redis     Redis     `json:"redis" yaml:"redis"`
}

// Snowflake connection options
type Snowflake struct {
	Account   string `json:"account" yaml:"account"`
	User      string `json:"user" yaml:"user"`
	Password  string `json:"password,omitempty" yaml:"password,omitempty"`
	Database  string `json:"database" yaml:"database"`
	Warehouse string `json:"warehouse" yaml:"warehouse"`
}

// Redis connection options
type Redis struct {
	URL    string `json:"url" yaml:"url"`
	Prefix string `json:"prefix" yaml:"prefix"`
}

// Prompt specifies the system prompt
type Prompt struct {
	// Identity overrides the built-in identity prompt
	Identity string `json:"identity,omitempty" yaml:"identity,omitempty"`
	// Template overrides the layout of identity and context
	Template string `json:"template,omitempty" yaml:"template,omitempty"`
}

// Tools specifies the dispatcher policy
type Tools struct {
	// StrictArguments rejects calls with missing required arguments
	StrictArguments bool `json:"strict_arguments" yaml:"strict_arguments"`
	// ReportErrors sets isError on results produced from a failed call
	ReportErrors bool `json:"report_errors" yaml:"report_errors"`
	// Events selects the tool event sink: none|log|print|verbose,
	// print and verbose also write the events to stderr
	Events string `json:"events" yaml:"events" validate:"omitempty,oneof=none log print verbose"`
}

// Load returns the configuration from the file, if provided,
// with environment overrides and defaults applied.
func Load(file string) (*Config, error) {
	cfg := new(Config)
	if file != "" {
		if err := configloader.UnmarshalAndExpand(file, cfg); err != nil {
			return nil, errors.WithMessagef(err, "failed to load %s", file)
		}
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	if err := validator.New().Struct(cfg); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if port := os.Getenv("PORT"); port != "" {
		c.ListenAddr = ":" + port
	}
	c.Bedrock.Region = values.StringsCoalesce(os.Getenv("AWS_REGION"), c.Bedrock.Region)
	c.Bedrock.Model = values.StringsCoalesce(os.Getenv("BEDROCK_MODEL"), c.Bedrock.Model)

	sf := &c.HiveMind.Snowflake
	sf.Account = values.StringsCoalesce(os.Getenv("SNOWFLAKE_ACCOUNT"), sf.Account)
	sf.User = values.StringsCoalesce(os.Getenv("SNOWFLAKE_USER"), sf.User)
	sf.Password = values.StringsCoalesce(os.Getenv("SNOWFLAKE_PASSWORD"), sf.Password)
	sf.Database = values.StringsCoalesce(os.Getenv("SNOWFLAKE_DATABASE"), sf.Database)
	sf.Warehouse = values.StringsCoalesce(os.Getenv("SNOWFLAKE_WAREHOUSE"), sf.Warehouse)

	if limit, err := strconv.Atoi(os.Getenv("HIVE_MIND_LIMIT")); err == nil {
		c.HiveMind.Limit = limit
	}
}

func (c *Config) applyDefaults() {
	c.ListenAddr = values.StringsCoalesce(c.ListenAddr, ":"+DefaultPort)
	c.LogLevel = values.StringsCoalesce(c.LogLevel, DefaultLogLevel)
	c.Bedrock.Region = values.StringsCoalesce(c.Bedrock.Region, DefaultRegion)
	c.Bedrock.Model = values.StringsCoalesce(c.Bedrock.Model, DefaultModel)
	c.Bedrock.AnthropicVersion = values.StringsCoalesce(c.Bedrock.AnthropicVersion, DefaultAnthropicVersion)
	if c.Bedrock.MaxTokens == 0 {
		c.Bedrock.MaxTokens = DefaultMaxTokens
	}

	// Snowflake is the default store
	c.HiveMind.Driver = values.StringsCoalesce(c.HiveMind.Driver, DriverSnowflake)
	c.HiveMind.Table = values.StringsCoalesce(c.HiveMind.Table, DefaultTable)
	if c.HiveMind.Limit == 0 {
		c.HiveMind.Limit = DefaultContextLimit
	}
	c.Tools.Events = values.StringsCoalesce(c.Tools.Events, DefaultEvents)
}
