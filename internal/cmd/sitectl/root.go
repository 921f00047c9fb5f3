// Package sitectl implements the operator CLI for the site: lead ledger
// inspection, CSV export and asset checks.
package sitectl

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kakascoaching/site/internal/platform/sftpclient"
	"github.com/kakascoaching/site/internal/storage/sqlite"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const envPrefix = "SITECTL"

// Config is the resolved sitectl configuration.
type Config struct {
	DBPath string            `mapstructure:"db"`
	SFTP   sftpclient.Config `mapstructure:"sftp"`
}

type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     Config
}

// NewRootCommand builds the sitectl command tree.
func NewRootCommand() *cobra.Command {
	a := &app{v: viper.New()}

	cmd := &cobra.Command{
		Use:           "sitectl",
		Short:         "Operate the institute website",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.loadConfig(cmd)
		},
	}
	cmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default ./sitectl.yaml)")
	cmd.PersistentFlags().String("db", "", "sqlite submission ledger path")
	_ = a.v.BindPFlag("db", cmd.PersistentFlags().Lookup("db"))

	cmd.AddCommand(a.leadsCmd(), a.catalogCmd())
	return cmd
}

// Execute runs sitectl with args.
func Execute(args []string) error {
	cmd := NewRootCommand()
	cmd.SetArgs(args)
	return cmd.Execute()
}

func (a *app) loadConfig(cmd *cobra.Command) error {
	v := a.v
	v.SetDefault("sftp.port", 22)
	v.SetDefault("sftp.remotedir", "/")

	if a.cfgFile != "" {
		v.SetConfigFile(a.cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("sitectl")
		v.SetConfigType("yaml")
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range []string{"db", "sftp.host", "sftp.port", "sftp.remotedir", "sftp.user", "sftp.password", "sftp.knownhosts", "sftp.insecureignorehostkey"} {
		_ = v.BindEnv(key)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || a.cfgFile != "" {
			return fmt.Errorf("read config: %w", err)
		}
	} else {
		fmt.Fprintln(cmd.ErrOrStderr(), "using config file:", v.ConfigFileUsed())
	}
	if err := v.Unmarshal(&a.cfg); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}
	return nil
}

func (a *app) openLedger() (*sqlite.Store, error) {
	path := strings.TrimSpace(a.cfg.DBPath)
	if path == "" {
		return nil, errors.New("ledger path is required (--db or SITECTL_DB)")
	}
	return sqlite.Open(path)
}
