package cfg

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SymbolConfig names one instrument and its input artifacts. Exactly one
// bar source should be set per symbol; they are tried in the order CSV,
// DuckDB, binary. ProbaCSV and the threshold files are only read by the
// dual-proba strategy.
type SymbolConfig struct {
	Name          string `yaml:"name"`
	BarsCSV       string `yaml:"bars_csv,omitempty"`
	BarsDuckDB    string `yaml:"bars_duckdb,omitempty"`
	BarsBin       string `yaml:"bars_bin,omitempty"`
	ProbaCSV      string `yaml:"proba_csv,omitempty"`
	ThresholdUp   string `yaml:"threshold_up,omitempty"`
	ThresholdDown string `yaml:"threshold_down,omitempty"`
}

type Config struct {
	Symbols []SymbolConfig `yaml:"symbols"`

	InitialCash    string  `yaml:"initial_cash"`
	Quantity       uint64  `yaml:"quantity"`
	CommissionRate string  `yaml:"commission_rate"`
	SlippageBps    string  `yaml:"slippage_bps"`
	RiskFreeRate   float64 `yaml:"risk_free_rate"`
	PeriodsPerYear int     `yaml:"periods_per_year"`

	Strategy   string  `yaml:"strategy"`
	SmaShort   int     `yaml:"sma_short"`
	SmaLong    int     `yaml:"sma_long"`
	RsiPeriod  int     `yaml:"rsi_period"`
	RsiLongTh  float64 `yaml:"rsi_long_threshold"`
	RsiShortTh float64 `yaml:"rsi_short_threshold"`

	EquityOut  string `yaml:"equity_out,omitempty"`
	SummaryOut string `yaml:"summary_out,omitempty"`
	LedgerPath string `yaml:"ledger_path,omitempty"`
}

func Default() Config {
	return Config{
		InitialCash:    "100000",
		Quantity:       10,
		CommissionRate: "0.001",
		SlippageBps:    "5",
		PeriodsPerYear: 252,
		Strategy:       "sma_rsi",
		SmaShort:       20,
		SmaLong:        50,
		RsiPeriod:      14,
		RsiLongTh:      55,
		RsiShortTh:     45,
	}
}

// Load reads a YAML run configuration on top of the defaults.
func Load(path string) (Config, error) {
	config := Default()

	raw, err := os.ReadFile(path)
	if err != nil {
		return config, fmt.Errorf("unable to read config %q: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &config); err != nil {
		return config, fmt.Errorf("unable to parse config %q: %w", path, err)
	}

	if len(config.Symbols) == 0 {
		return config, fmt.Errorf("config %q: no symbols configured", path)
	}
	return config, nil
}
