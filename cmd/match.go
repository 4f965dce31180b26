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
)

var matchCmd = &cobra.Command{
	Use:   "match <user-a> <user-b>",
	Short: "Compute the compatibility result for a pair of users",
	Args:  cobra.ExactArgs(2),
	Run: func(_ *cobra.Command, args []string) {
		runMatch(args[0], args[1])
	},
}

func init() {
	rootCmd.AddCommand(matchCmd)
}

func runMatch(rawA, rawB string) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	userA, err := uuid.Parse(rawA)
	if err != nil {
		logger.Fatal("parsing first user id", zap.Error(err))
	}

	userB, err := uuid.Parse(rawB)
	if err != nil {
		logger.Fatal("parsing second user id", zap.Error(err))
	}

	st, err := openStore(config, logger)
	if err != nil {
		logger.Fatal("opening the score store", zap.Error(err))
	}

	calc := match.NewCalculator(st)

	result, err := calc.Calculate(ctx, userA, userB)
	if err != nil {
		logger.Fatal("calculating the match", zap.Error(err))
	}

	if !result.Compatible {
		logger.Info("pair is blocked by dealbreakers",
			zap.Strings("reasons", result.Reasons),
		)
	} else {
		logger.Info("pair scored",
			zap.Int("overall", result.Overall),
			zap.Int("lifestyle", result.Lifestyle),
			zap.Int("values", result.Values),
			zap.String("confidence", string(result.Confidence)),
		)
	}

	pretty, _ := json.MarshalIndent(result, "", "  ")
	fmt.Println(string(pretty))
}
