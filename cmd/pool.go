package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/kindredlabs/matchcore/internal/logger"
	"github.com/kindredlabs/matchcore/internal/match"
	"github.com/kindredlabs/matchcore/internal/pool"
)

var poolCmd = &cobra.Command{
	Use:   "pool <user>",
	Short: "Rank every other known user against the given user",
	Args:  cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		runPool(args[0])
	},
}

func init() {
	rootCmd.AddCommand(poolCmd)
}

func runPool(raw string) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	userID, err := uuid.Parse(raw)
	if err != nil {
		logger.Fatal("parsing user id", zap.Error(err))
	}

	st, err := openStore(config, logger)
	if err != nil {
		logger.Fatal("opening the score store", zap.Error(err))
	}

	candidates, err := st.ListUsers(ctx)
	if err != nil {
		logger.Fatal("listing users", zap.Error(err))
	}

	others := make([]uuid.UUID, 0, len(candidates))
	for _, candidate := range candidates {
		if candidate != userID {
			others = append(others, candidate)
		}
	}

	if len(others) == 0 {
		logger.Info("exiting", zap.String("reason", "no other users with scores"))
		return
	}

	ranker := pool.NewRanker(match.NewCalculator(st), logger)

	ranked, err := ranker.Rank(ctx, userID, others)
	if err != nil {
		logger.Fatal("ranking the pool", zap.Error(err))
	}

	logger.Info("pool ranked",
		zap.Int("candidates", len(others)),
		zap.Int("shown", len(ranked)),
	)

	pretty, _ := json.MarshalIndent(ranked, "", "  ")
	fmt.Println(string(pretty))
}
