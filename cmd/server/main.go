package main

import (
	"flag"
	"net/http"
	"os"
	"time"

	"github.com/atmgo/atmgo"
	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker/v2"
	"golang.org/x/sync/semaphore"
	"gopkg.in/yaml.v3"

	"github.com/rs/zerolog"
)

func main() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfp := flag.String("config", "config.yml", "path to configuration file")
	flag.Parse()
	var cfg atmgo.Config
	cfgfl, err := os.Open(*cfp)
	if err != nil {
		logger.Fatal().Err(err).Msg("error opening config file")
	}
	if err = yaml.NewDecoder(cfgfl).Decode(&cfg); err != nil {
		logger.Fatal().Err(err).Msg("error decoding config file")
	}

	store, err := atmgo.NewMemStore(cfg.Snowflake.Node, &logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("error starting account store")
	}

	svc := atmgo.NewService(store, &logger)

	limits := &atmgo.ServiceLimits{
		CreateAccount: semaphore.NewWeighted(cfg.Limits.CreateAccount),
		DeleteAccount: semaphore.NewWeighted(cfg.Limits.DeleteAccount),
		Apply:         semaphore.NewWeighted(cfg.Limits.Apply),
		Balance:       semaphore.NewWeighted(cfg.Limits.Balance),
		Statement:     semaphore.NewWeighted(cfg.Limits.Statement),
	}
	brkrs := &atmgo.ServiceBreaker{
		CreateAccount: gobreaker.NewTwoStepCircuitBreaker[snowflake.ID](brkSettings("create_account", cfg)),
		DeleteAccount: gobreaker.NewTwoStepCircuitBreaker[interface{}](brkSettings("delete_account", cfg)),
		Apply:         gobreaker.NewTwoStepCircuitBreaker[*decimal.Decimal](brkSettings("apply", cfg)),
		Balance:       gobreaker.NewTwoStepCircuitBreaker[*decimal.Decimal](brkSettings("balance", cfg)),
		Statement:     gobreaker.NewTwoStepCircuitBreaker[interface{}](brkSettings("statement", cfg)),
	}

	wrapped := atmgo.NewCircuitBreakMiddleware(brkrs)(
		atmgo.NewlimitMiddleware(limits, time.Duration(cfg.Limits.TimeoutMS)*time.Millisecond)(
			atmgo.NewValidationMiddleware()(svc)))
	hndlr := atmgo.NewHTTPHandler(wrapped, &logger)

	logger.Info().Str("addr", cfg.Server.Addr).Msg("listening")
	if err = http.ListenAndServe(cfg.Server.Addr, hndlr); err != nil {
		logger.Fatal().Err(err).Msg("server exited")
	}
}

func brkSettings(name string, cfg atmgo.Config) gobreaker.Settings {
	return gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.Breaker.MaxRequests,
		Interval:    time.Duration(cfg.Breaker.IntervalMS) * time.Millisecond,
		Timeout:     time.Duration(cfg.Breaker.TimeoutMS) * time.Millisecond,
	}
}
