package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/hdp1213/billionaire/internal/game"
	"github.com/hdp1213/billionaire/internal/ops"
	"github.com/hdp1213/billionaire/internal/transport"
)

const maxPlayers = 8

func main() {
	var (
		players       = pflag.IntP("players", "p", 4, "number of players")
		noBillionaire = pflag.BoolP("no-billionaire", "b", false, "remove billionaire from play")
		noTaxman      = pflag.BoolP("no-taxman", "t", false, "remove tax collector from play")
		seed          = pflag.Int64P("seed", "s", 0, "random seed (default: time-based)")
		listenAddr    = pflag.String("listen", ":5555", "game listen address")
		opsAddr       = pflag.String("ops-listen", ":5000", "ops HTTP listen address")
		debug         = pflag.Bool("debug", false, "enable debug logging")
	)
	pflag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	}).With().Timestamp().Logger()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	if *players < 2 || *players > maxPlayers {
		log.Fatal().Int("players", *players).Msgf("player limit must be between 2 and %d", maxPlayers)
	}

	if !pflag.CommandLine.Changed("seed") {
		*seed = time.Now().UnixNano()
	}

	cfg := game.Config{
		PlayerLimit:     *players,
		HasBillionaire:  !*noBillionaire,
		HasTaxCollector: !*noTaxman,
		Seed:            *seed,
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	gameServer := game.NewServer(cfg, log)
	go gameServer.Run(ctx)

	listener, err := transport.NewListener(*listenAddr, gameServer, log)
	if err != nil {
		log.Fatal().Err(err).Str("listen", *listenAddr).Msg("could not open game listener")
	}

	opsHandler := ops.NewHandler(gameServer, log)
	opsServer := &http.Server{Addr: *opsAddr, Handler: opsHandler.Router()}

	go func() {
		log.Info().Str("listen", *opsAddr).Msg("ops server listening")
		if err := opsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("ops server failed")
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), time.Second*5)
		defer shutdownCancel()
		opsServer.Shutdown(shutdownCtx)
	}()

	log.Info().Str("listen", listener.Addr()).Msg("game server listening")

	if err := listener.Serve(ctx); err != nil {
		log.Fatal().Err(err).Msg("game listener failed")
	}

	log.Info().Msg("exiting cleanly")
}
