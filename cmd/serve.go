package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/subcommands"
	"github.com/rs/zerolog"

	"github.com/openfolio/folio/server"
)

type serveCmd struct {
	port int
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serve the portfolio over HTTP" }
func (*serveCmd) Usage() string {
	return `ofl serve [-port <port>]

  Serves positions, growth series and trade booking as a JSON API.
  Trades booked over the API are persisted to the ledger file.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.port, "port", 8080, "port to listen on")
}

func (c *serveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	ledger, err := decodeLedger()
	if err != nil {
		log.Error().Err(err).Msg("Failed to load ledger")
		return subcommands.ExitFailure
	}
	market, err := decodeMarket()
	if err != nil {
		log.Error().Err(err).Msg("Failed to load prices")
		return subcommands.ExitFailure
	}

	srv := server.New(server.Config{
		Port:       c.port,
		Log:        log,
		Account:    account(),
		Ledger:     ledger,
		Market:     market,
		LedgerPath: *ledgerFile,
	})

	errc := make(chan error, 1)
	go func() { errc <- srv.Start() }()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errc:
		log.Error().Err(err).Msg("Server failed")
		return subcommands.ExitFailure
	case sig := <-stop:
		log.Info().Str("signal", sig.String()).Msg("Shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		fmt.Fprintln(os.Stderr, "Error during shutdown:", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
