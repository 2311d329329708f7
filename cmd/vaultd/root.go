package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/iov-one/swapvault/app"
	"github.com/iov-one/swapvault/errors"
	"github.com/iov-one/swapvault/store/iavl"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	flagHome     = "home"
	flagLogLevel = "log_level"
	flagGenesis  = "genesis"

	envPrefix = "VAULTD"
	dbName    = "vaultd"
)

// config is read from flags, VAULTD_* environment variables and an optional
// config.yaml in the home directory, in that order of precedence.
type config struct {
	Home     string
	LogLevel string
	Genesis  string
}

// NewRootCmd returns the vaultd command with all subcommands.
func NewRootCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:          "vaultd",
		Short:        "Atomic swap vault ledger",
		SilenceUsage: true,
	}
	defaultHome := filepath.Join(os.ExpandEnv("$HOME"), ".vaultd")
	cmd.PersistentFlags().String(flagHome, defaultHome, "directory to store files under")
	cmd.PersistentFlags().String(flagLogLevel, "info", "log level: debug, info, error or none")
	cmd.PersistentFlags().String(flagGenesis, "", "genesis file, defaults to genesis.json in home")
	if err := v.BindPFlags(cmd.PersistentFlags()); err != nil {
		panic(err)
	}

	cmd.AddCommand(
		versionCmd(),
		hashCmd(),
		addressCmd(),
		initCmd(v),
		runCmd(v),
		balanceCmd(v),
		swapCmd(v),
	)
	return cmd
}

func loadConfig(v *viper.Viper) (*config, error) {
	home := v.GetString(flagHome)
	v.SetConfigFile(filepath.Join(home, "config.yaml"))
	if err := v.ReadInConfig(); err != nil && !os.IsNotExist(err) {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, errors.Wrapf(errors.ErrInput, "read config: %s", err)
		}
	}

	cfg := &config{
		Home:     v.GetString(flagHome),
		LogLevel: v.GetString(flagLogLevel),
		Genesis:  v.GetString(flagGenesis),
	}
	if cfg.Genesis == "" {
		cfg.Genesis = filepath.Join(cfg.Home, "genesis.json")
	}
	return cfg, nil
}

func newLogger(cmd *cobra.Command, level string) (log.Logger, error) {
	logger := log.NewTMLogger(log.NewSyncWriter(cmd.ErrOrStderr()))
	option, err := log.AllowLevel(level)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "log level: %s", err)
	}
	return log.NewFilter(logger, option).With("module", "vaultd"), nil
}

// withLedger opens the ledger stored in home, runs fn and closes the store.
func withLedger(cmd *cobra.Command, v *viper.Viper, fn func(*config, *app.Ledger) error) error {
	cfg, err := loadConfig(v)
	if err != nil {
		return err
	}
	logger, err := newLogger(cmd, cfg.LogLevel)
	if err != nil {
		return err
	}
	kv, err := iavl.NewCommitStore(filepath.Join(cfg.Home, "data"), dbName)
	if err != nil {
		return err
	}
	defer kv.Close()

	l, err := app.NewLedger(kv, logger)
	if err != nil {
		return err
	}
	return fn(cfg, l)
}
