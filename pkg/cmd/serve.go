package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/nekruzvatanshoev/carlot/pkg/carlot/server"
)

const (
	ServeCmdName  = "serve"
	ServeCmdShort = "Run the catalog HTTP API"
	ServeCmdLong  = `Run the HTTP API: GET /cars searches with the storefront query-string
schema, GET /compare?ids=a,b compares listings, plus /makes, /facets and /metrics.`
)

func init() {
	RootCmd.AddCommand(ServeCmd)
	ServeCmd.Flags().String("addr", ":8080", "listen address")
	_ = viper.BindPFlag("server.address", ServeCmd.Flags().Lookup("addr"))
}

var (
	ServeCmd = &cobra.Command{
		Use:   ServeCmdName,
		Short: ServeCmdShort,
		Long:  ServeCmdLong,
		RunE:  serveCmdFunc(),
	}
)

func serveCmdFunc() func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer func() { _ = a.log.Sync() }()

		serve := server.NewHTTPServer(server.Options{
			Addr:         a.cfg.Server.Address,
			ReadTimeout:  a.cfg.Server.ReadTimeout,
			WriteTimeout: a.cfg.Server.WriteTimeout,
			RateLimit:    a.cfg.Server.RateLimit,
			RateBurst:    a.cfg.Server.RateBurst,
			Logger:       a.log.Named("http"),
		}, a.search, a.catalog.Vocabulary())

		a.log.Info("starting server",
			zap.String("addr", serve.Addr),
			zap.Int("cars", a.catalog.Len()),
			zap.Duration("catalog_latency", a.cfg.Catalog.Latency),
		)

		errCh := make(chan error, 1)
		go func() {
			if err := serve.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		signalCh := make(chan os.Signal, 1)
		signal.Notify(signalCh, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(signalCh)

		select {
		case err := <-errCh:
			return err
		case sig := <-signalCh:
			a.log.Info("shutting down the server", zap.String("signal", sig.String()))
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return serve.Shutdown(ctx)
	}
}
