package config

import (
	"fmt"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of every environment override.
const EnvPrefix = "LEDGER_"

// envOverrides lists the settings that may come from the environment.
// Unset variables leave the file value alone.
type envOverrides struct {
	HostLabel      string `koanf:"LEDGER_HOST_LABEL"`
	IncomePath     string `koanf:"LEDGER_INCOME"`
	ExpensesPath   string `koanf:"LEDGER_EXPENSES"`
	StorageDriver  string `koanf:"LEDGER_STORAGE_DRIVER"`
	StoragePath    string `koanf:"LEDGER_STORAGE_PATH"`
	StorageDSN     string `koanf:"LEDGER_STORAGE_DSN"`
	StorageTable   string `koanf:"LEDGER_STORAGE_TABLE"`
	ReportPath     string `koanf:"LEDGER_REPORT_PATH"`
	ReportCurrency string `koanf:"LEDGER_REPORT_CURRENCY"`
	MinIncome      string `koanf:"LEDGER_MIN_INCOME"`
	MinSavings     string `koanf:"LEDGER_MIN_SAVINGS"`
	LogsDir        string `koanf:"LEDGER_LOGS_DIR"`
}

// ApplyEnv overlays LEDGER_* environment variables onto cfg.
func ApplyEnv(cfg *Config) error {
	k := koanf.New(".")
	if err := k.Load(env.Provider(EnvPrefix, ".", nil), nil); err != nil {
		return fmt.Errorf("loading environment: %w", err)
	}

	var o envOverrides
	if err := k.UnmarshalWithConf("", &o, koanf.UnmarshalConf{Tag: "koanf", FlatPaths: true}); err != nil {
		return fmt.Errorf("decoding environment: %w", err)
	}

	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&cfg.HostLabel, o.HostLabel)
	set(&cfg.Sources.Income, o.IncomePath)
	set(&cfg.Sources.Expenses, o.ExpensesPath)
	set(&cfg.Storage.Driver, o.StorageDriver)
	set(&cfg.Storage.Path, o.StoragePath)
	set(&cfg.Storage.DSN, o.StorageDSN)
	set(&cfg.Storage.Table, o.StorageTable)
	set(&cfg.Report.Path, o.ReportPath)
	set(&cfg.Report.Currency, o.ReportCurrency)
	set(&cfg.Filter.MinIncome, o.MinIncome)
	set(&cfg.Filter.MinSavings, o.MinSavings)
	set(&cfg.Logs.Dir, o.LogsDir)
	return nil
}
