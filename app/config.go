package app

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	dbm "github.com/cosmos/cosmos-db"
	"github.com/spf13/cast"
	"github.com/spf13/viper"

	pooltypes "github.com/paw-chain/cpamm/x/pool/types"
)

const (
	// EnvPrefix prefixes every environment override, e.g. CPAMM_API_ADDRESS.
	EnvPrefix = "CPAMM"

	configDir      = "config"
	dataDir        = "data"
	configFileName = "cpamm.toml"
	genesisFile    = "genesis.json"
)

// DefaultNodeHome is the default home directory for the application daemon.
var DefaultNodeHome string

func init() {
	userHomeDir, err := os.UserHomeDir()
	if err != nil {
		panic(err)
	}
	DefaultNodeHome = filepath.Join(userHomeDir, ".cpamm")
}

// Config is the node configuration read from <home>/config/cpamm.toml,
// CPAMM_* environment variables and command flags.
type Config struct {
	Home      string
	DBBackend string
	LogLevel  string

	DenomA string
	DenomB string

	APIAddress     string
	CORSOrigins    []string
	RateLimitRPS   float64
	RateLimitBurst int

	MetricsAddress  string
	TracingEndpoint string
	SampleRate      float64
	OTelMetrics     bool
}

// DefaultConfig returns the configuration written by init.
func DefaultConfig(home string) Config {
	return Config{
		Home:           home,
		DBBackend:      string(dbm.GoLevelDBBackend),
		LogLevel:       "info",
		DenomA:         "uatom",
		DenomB:         "uosmo",
		APIAddress:     "127.0.0.1:1318",
		CORSOrigins:    []string{"http://localhost:3000"},
		RateLimitRPS:   20,
		RateLimitBurst: 40,
		MetricsAddress: "127.0.0.1:36660",
		SampleRate:     0.1,
	}
}

// NewViper returns a viper instance with defaults and env binding for home.
func NewViper(home string) *viper.Viper {
	def := DefaultConfig(home)

	v := viper.New()
	v.SetConfigType("toml")
	v.SetConfigFile(ConfigPath(home))
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("db.backend", def.DBBackend)
	v.SetDefault("log.level", def.LogLevel)
	v.SetDefault("pool.denom_a", def.DenomA)
	v.SetDefault("pool.denom_b", def.DenomB)
	v.SetDefault("api.address", def.APIAddress)
	v.SetDefault("api.cors_origins", def.CORSOrigins)
	v.SetDefault("api.rate_limit_rps", def.RateLimitRPS)
	v.SetDefault("api.rate_limit_burst", def.RateLimitBurst)
	v.SetDefault("telemetry.metrics_address", def.MetricsAddress)
	v.SetDefault("telemetry.tracing_endpoint", def.TracingEndpoint)
	v.SetDefault("telemetry.sample_rate", def.SampleRate)
	v.SetDefault("telemetry.otel_metrics", def.OTelMetrics)
	return v
}

// LoadConfig reads the config file if present and resolves every key.
func LoadConfig(v *viper.Viper, home string) (Config, error) {
	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("read %s: %w", v.ConfigFileUsed(), err)
	}

	rps, err := cast.ToFloat64E(v.Get("api.rate_limit_rps"))
	if err != nil {
		return Config{}, fmt.Errorf("api.rate_limit_rps: %w", err)
	}
	burst, err := cast.ToIntE(v.Get("api.rate_limit_burst"))
	if err != nil {
		return Config{}, fmt.Errorf("api.rate_limit_burst: %w", err)
	}
	sampleRate, err := cast.ToFloat64E(v.Get("telemetry.sample_rate"))
	if err != nil {
		return Config{}, fmt.Errorf("telemetry.sample_rate: %w", err)
	}
	otelMetrics, err := cast.ToBoolE(v.Get("telemetry.otel_metrics"))
	if err != nil {
		return Config{}, fmt.Errorf("telemetry.otel_metrics: %w", err)
	}

	cfg := Config{
		Home:            home,
		DBBackend:       cast.ToString(v.Get("db.backend")),
		LogLevel:        cast.ToString(v.Get("log.level")),
		DenomA:          cast.ToString(v.Get("pool.denom_a")),
		DenomB:          cast.ToString(v.Get("pool.denom_b")),
		APIAddress:      cast.ToString(v.Get("api.address")),
		CORSOrigins:     splitList(v.Get("api.cors_origins")),
		RateLimitRPS:    rps,
		RateLimitBurst:  burst,
		MetricsAddress:  cast.ToString(v.Get("telemetry.metrics_address")),
		TracingEndpoint: cast.ToString(v.Get("telemetry.tracing_endpoint")),
		SampleRate:      sampleRate,
		OTelMetrics:     otelMetrics,
	}
	return cfg, cfg.Validate()
}

// Validate checks the configuration is usable.
func (c Config) Validate() error {
	if c.Home == "" {
		return fmt.Errorf("home directory must be set")
	}
	switch dbm.BackendType(c.DBBackend) {
	case dbm.GoLevelDBBackend, dbm.MemDBBackend:
	default:
		return fmt.Errorf("unsupported db backend %q", c.DBBackend)
	}
	if _, err := c.Pair(); err != nil {
		return err
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0 {
		return fmt.Errorf("rate limit must be positive, got %v/%d", c.RateLimitRPS, c.RateLimitBurst)
	}
	if c.SampleRate < 0 || c.SampleRate > 1 {
		return fmt.Errorf("sample rate must be within [0, 1], got %v", c.SampleRate)
	}
	return nil
}

// Telemetry returns the telemetry settings of the configured pool.
func (c Config) Telemetry() TelemetryConfig {
	return TelemetryConfig{
		TracingEndpoint: c.TracingEndpoint,
		SampleRate:      c.SampleRate,
		OTelMetrics:     c.OTelMetrics,
		Pair:            c.DenomA + "/" + c.DenomB,
	}
}

// Pair returns the configured asset pair.
func (c Config) Pair() (pooltypes.AssetPair, error) {
	return pooltypes.NewAssetPair(c.DenomA, c.DenomB)
}

// WriteConfigFile writes cfg to <home>/config/cpamm.toml.
func WriteConfigFile(cfg Config) error {
	if err := os.MkdirAll(filepath.Join(cfg.Home, configDir), 0o750); err != nil {
		return err
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("db.backend", cfg.DBBackend)
	v.Set("log.level", cfg.LogLevel)
	v.Set("pool.denom_a", cfg.DenomA)
	v.Set("pool.denom_b", cfg.DenomB)
	v.Set("api.address", cfg.APIAddress)
	v.Set("api.cors_origins", cfg.CORSOrigins)
	v.Set("api.rate_limit_rps", cfg.RateLimitRPS)
	v.Set("api.rate_limit_burst", cfg.RateLimitBurst)
	v.Set("telemetry.metrics_address", cfg.MetricsAddress)
	v.Set("telemetry.tracing_endpoint", cfg.TracingEndpoint)
	v.Set("telemetry.sample_rate", cfg.SampleRate)
	v.Set("telemetry.otel_metrics", cfg.OTelMetrics)
	return v.WriteConfigAs(ConfigPath(cfg.Home))
}

// ConfigPath returns the config file location under home.
func ConfigPath(home string) string {
	return filepath.Join(home, configDir, configFileName)
}

// GenesisPath returns the genesis file location under home.
func GenesisPath(home string) string {
	return filepath.Join(home, configDir, genesisFile)
}

// DataPath returns the database directory under home.
func DataPath(home string) string {
	return filepath.Join(home, dataDir)
}

// splitList accepts both TOML arrays and comma separated env values.
func splitList(raw interface{}) []string {
	if s, ok := raw.(string); ok {
		raw = strings.Split(s, ",")
	}
	var out []string
	for _, item := range cast.ToStringSlice(raw) {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
