package main

import (
	"context"
	"errors"
	"flag"
	"os"

	"wealthtracker/internal/config"
	"wealthtracker/internal/engine"
	"wealthtracker/internal/repository"
	"wealthtracker/types"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	portfolioFlag := flag.String("portfolio", "", "portfolio id to value")
	brokerFlag := flag.String("broker", "", "restrict the valuation to one broker")
	currencyFlag := flag.String("currency", string(types.CurrencyARS), "display currency (ARS or USD)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(level)
	}

	portfolioId, err := uuid.Parse(*portfolioFlag)
	if err != nil {
		log.Fatal().Str("portfolio", *portfolioFlag).Msg("a valid -portfolio id is required")
	}
	currency := types.Currency(*currencyFlag)
	if currency != types.CurrencyARS && currency != types.CurrencyUSD {
		log.Fatal().Str("currency", *currencyFlag).Msg("-currency must be ARS or USD")
	}

	db, err := repository.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to database")
	}
	defer db.Close()

	eng := engine.NewEngine(&db)
	ctx := context.Background()

	var metrics *engine.Metrics
	if *brokerFlag != "" {
		brokerId, err := uuid.Parse(*brokerFlag)
		if err != nil {
			log.Fatal().Str("broker", *brokerFlag).Msg("invalid -broker id")
		}
		metrics, err = eng.BrokerMetrics(ctx, portfolioId, brokerId)
		if err != nil {
			exitOnComputeError(err)
		}
	} else {
		metrics, err = eng.PortfolioMetrics(ctx, portfolioId)
		if err != nil {
			exitOnComputeError(err)
		}
	}

	engine.PrintReport(metrics, currency)
}

func exitOnComputeError(err error) {
	if errors.Is(err, repository.ErrNoTransactions) {
		log.Info().Msg("nothing to value: the ledger is empty")
		os.Exit(0)
	}
	log.Fatal().Err(err).Msg("compute metrics")
}
