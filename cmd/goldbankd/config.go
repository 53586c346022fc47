package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/viper"

	"cosmossdk.io/math"

	vaulttypes "github.com/kgld-labs/goldbank/x/vault/types"
)

const (
	defaultMetricsPort = 36660
	defaultHealthPort  = 36661

	envHome        = "GOLDBANK_HOME"
	envMetricsPort = "GOLDBANK_METRICS_PORT"
	envHealthPort  = "GOLDBANK_HEALTH_PORT"
)

// DefaultNodeHome is the default directory for goldbankd configuration.
var DefaultNodeHome = func() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".goldbank"
	}
	return filepath.Join(home, ".goldbank")
}()

// resolveNodeHome returns the configured home directory. It honors
// GOLDBANK_HOME and the --home flag if provided.
func resolveNodeHome(args []string) string {
	if home := os.Getenv(envHome); home != "" {
		return home
	}

	for i, arg := range args {
		if strings.HasPrefix(arg, "--home=") {
			return strings.SplitN(arg, "=", 2)[1]
		}
		if arg == "--home" && i+1 < len(args) {
			return args[i+1]
		}
	}

	return DefaultNodeHome
}

// loadTelemetryPorts reads the metrics and health ports from config or the
// environment, falling back to defaults when values are missing.
func loadTelemetryPorts(home string) (int, int) {
	metricsPort := defaultMetricsPort
	healthPort := defaultHealthPort

	if v, err := readConfig(home); err == nil {
		if p := v.GetInt("telemetry.metrics-port"); validPort(p) {
			metricsPort = p
		}
		if p := v.GetInt("telemetry.health-port"); validPort(p) {
			healthPort = p
		}
	}

	if env := os.Getenv(envMetricsPort); env != "" {
		if p := cast.ToInt(strings.TrimSpace(env)); validPort(p) {
			metricsPort = p
		}
	}
	if env := os.Getenv(envHealthPort); env != "" {
		if p := cast.ToInt(strings.TrimSpace(env)); validPort(p) {
			healthPort = p
		}
	}

	return metricsPort, healthPort
}

func validPort(p int) bool {
	return p > 0 && p <= 65535
}

// loadVaultConfig reads the vault parameters and demo settings from
// <home>/config/goldbank.toml, applying defaults for anything unset.
func loadVaultConfig(home string) (vaultConfig, error) {
	cfg := defaultVaultConfig()

	v, err := readConfig(home)
	if err != nil {
		// a missing config file means defaults
		return cfg, nil
	}

	if s := v.GetString("vault.owner"); s != "" {
		cfg.Params.Owner = s
	}
	if err := overrideInt(v, "vault.native-withdraw-cap", &cfg.Params.NativeWithdrawCap); err != nil {
		return cfg, err
	}
	if n := cast.ToUint64(v.Get("vault.deposit-count-cap")); n > 0 {
		cfg.Params.DepositCountCap = n
	}
	if err := overrideInt(v, "vault.token-withdraw-cap", &cfg.Params.TokenWithdrawCap); err != nil {
		return cfg, err
	}
	if err := overrideInt(v, "vault.aggregate-valuation-cap", &cfg.Params.AggregateValuationCap); err != nil {
		return cfg, err
	}
	if d := v.GetDuration("vault.max-oracle-delay"); d > 0 {
		cfg.Params.MaxOracleDelay = d
	}
	if err := overrideInt(v, "vault.native-unit-scale", &cfg.Params.NativeUnitScale); err != nil {
		return cfg, err
	}
	if err := overrideInt(v, "vault.token-unit-scale", &cfg.Params.TokenUnitScale); err != nil {
		return cfg, err
	}

	if err := overrideInt(v, "feeds.native-price", &cfg.NativePrice); err != nil {
		return cfg, err
	}
	if err := overrideInt(v, "feeds.token-price", &cfg.TokenPrice); err != nil {
		return cfg, err
	}
	if err := overrideInt(v, "vault.token-float", &cfg.TokenFloat); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// vaultConfig bundles vault parameters with the scripted feed setup the
// daemon boots with.
type vaultConfig struct {
	Params vaulttypes.Params

	// NativePrice and TokenPrice seed the scripted feeds, 8-decimal.
	NativePrice math.Int
	TokenPrice  math.Int

	// TokenFloat is the token inventory minted to the vault at startup.
	TokenFloat math.Int
}

func defaultVaultConfig() vaultConfig {
	params := vaulttypes.DefaultParams()
	params.Owner = "owner"
	return vaultConfig{
		Params:      params,
		NativePrice: math.NewIntWithDecimal(2000, vaulttypes.ValuationDecimals),
		TokenPrice:  math.NewIntWithDecimal(100, vaulttypes.ValuationDecimals),
		TokenFloat:  math.NewInt(1_000_000),
	}
}

func readConfig(home string) (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigType("toml")
	v.SetConfigFile(filepath.Join(home, "config", "goldbank.toml"))
	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}
	return v, nil
}

// overrideInt replaces dst with the config value at key when set. Amounts
// are written as strings so they are not limited to 64 bits.
func overrideInt(v *viper.Viper, key string, dst *math.Int) error {
	raw := v.GetString(key)
	if raw == "" {
		return nil
	}
	parsed, ok := math.NewIntFromString(raw)
	if !ok {
		return vaulttypes.ErrInvalidParams.Wrapf("%s: cannot parse %q as integer", key, raw)
	}
	*dst = parsed
	return nil
}
