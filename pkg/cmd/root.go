package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/nekruzvatanshoev/carlot/pkg/carlot/config"
	"github.com/nekruzvatanshoev/carlot/pkg/carlot/dal"
	"github.com/nekruzvatanshoev/carlot/pkg/carlot/logger"
	"github.com/nekruzvatanshoev/carlot/pkg/carlot/search"
)

const (
	RootCmdName  = "carlot"
	RootCmdShort = "Browse, search and compare vehicle listings"
	RootCmdLong  = `carlot serves a vehicle storefront catalog: filtered and sorted
searches with pagination, and side-by-side comparisons of up to four cars.`
)

var configFile string

var RootCmd = &cobra.Command{
	Use:           RootCmdName,
	Short:         RootCmdShort,
	Long:          RootCmdLong,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (yaml, toml or json)")
	RootCmd.PersistentFlags().String("log-level", "info", "log level: debug, info, warn, error")
	RootCmd.PersistentFlags().Duration("latency", 0, "simulated catalog latency (0 keeps the configured value)")
	_ = viper.BindPFlag("log.level", RootCmd.PersistentFlags().Lookup("log-level"))
}

// app bundles what every subcommand needs.
type app struct {
	cfg     *config.Config
	log     *zap.Logger
	catalog *dal.Catalog
	search  *search.Service
}

func newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := config.Load(viper.GetViper(), configFile)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("latency") {
		cfg.Catalog.Latency, _ = cmd.Flags().GetDuration("latency")
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		return nil, err
	}

	ds, err := dal.CarsDataset()
	if err != nil {
		return nil, err
	}
	catalog := dal.NewCatalog(ds,
		dal.WithLatency(cfg.Catalog.Latency),
		dal.WithFailure(cfg.Catalog.Fail),
		dal.WithLogger(log.Named("catalog")),
	)

	return &app{
		cfg:     cfg,
		log:     log,
		catalog: catalog,
		search:  search.NewService(catalog, cfg.Search.PageSize),
	}, nil
}
