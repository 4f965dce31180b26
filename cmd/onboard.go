package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/kindredlabs/matchcore/internal/dimension"
	"github.com/kindredlabs/matchcore/internal/extract"
	"github.com/kindredlabs/matchcore/internal/logger"
	"github.com/kindredlabs/matchcore/internal/questions"
	"github.com/kindredlabs/matchcore/internal/store"
)

const (
	PromptYes = "Yes"
	PromptNo  = "No"
)

var onboardCmd = &cobra.Command{
	Use:   "onboard",
	Short: "Run the interactive onboarding flow and store the extracted dimension scores",
	Run: func(cmd *cobra.Command, _ []string) {
		onboard(cmd)
	},
}

func init() {
	rootCmd.AddCommand(onboardCmd)

	onboardCmd.Flags().StringP("user", "u", "", "user id (uuid) to onboard")
	onboardCmd.Flags().Bool("dry-run", false, "extract scores without persisting them")

	onboardCmd.MarkFlagRequired("user")
}

func onboard(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	userID, err := uuid.Parse(cmd.Flag("user").Value.String())
	if err != nil {
		logger.Fatal("parsing user id", zap.Error(err))
	}

	var st store.Store
	if cmd.Flag("dry-run").Value.String() == "true" {
		logger.Info("dry run: scores will not be persisted")
		st = store.NewMemory()
	} else {
		st, err = openStore(config, logger)
		if err != nil {
			logger.Fatal("opening the score store", zap.Error(err))
		}
	}

	extractor, err := newScoreExtractor(ctx, config, st, logger)
	if err != nil {
		logger.Fatal("building the score extractor", zap.Error(err))
	}

	level, err := askExperience()
	if err != nil {
		logger.Fatal("exiting", zap.Error(err))
	}

	logger.Info("starting onboarding",
		zap.String("user_id", userID.String()),
		zap.String("experience", string(level)),
	)

	for _, question := range questions.ForExperience(level) {
		if err := askQuestion(ctx, question, userID, extractor, st, logger); err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}
	}

	logger.Info("onboarding complete", zap.String("user_id", userID.String()))
}

func askExperience() (questions.ExperienceLevel, error) {
	labels := make([]string, 0, len(questions.Experience.Options))
	for _, option := range questions.Experience.Options {
		labels = append(labels, option.Label)
	}

	prompt := promptui.Select{
		Label: questions.Experience.Prompt,
		Items: labels,
	}

	idx, _, err := prompt.Run()
	if err != nil {
		return "", err
	}

	return questions.ExperienceLevel(questions.Experience.Options[idx].Value), nil
}

func askQuestion(ctx context.Context, question questions.Question, userID uuid.UUID, extractor *extract.Extractor, st store.Store, logger *zap.Logger) error {
	switch question.Kind {
	case questions.KindChoice:
		return askChoice(ctx, question, userID, extractor, st, logger)
	case questions.KindText:
		return askText(ctx, question, userID, extractor, logger)
	default:
		return fmt.Errorf("unsupported question kind: %s", question.Kind)
	}
}

func askChoice(ctx context.Context, question questions.Question, userID uuid.UUID, extractor *extract.Extractor, st store.Store, logger *zap.Logger) error {
	labels := make([]string, 0, len(question.Options))
	for _, option := range question.Options {
		labels = append(labels, option.Label)
	}

	prompt := promptui.Select{
		Label: question.Prompt,
		Items: labels,
	}

	idx, _, err := prompt.Run()
	if err != nil {
		return err
	}

	value := question.Options[idx].Value
	key := question.Dimensions[0]

	result, err := extractor.SaveDirectChoice(ctx, userID, key, value, question.Mapping, value)
	if err != nil {
		return err
	}

	logger.Info("recorded direct choice",
		zap.String("dimension", string(result.Dimension)),
		zap.Int("position", result.Position),
		zap.Int("importance", result.Importance),
	)

	return askDealbreaker(ctx, key, userID, st, logger)
}

// askDealbreaker offers to mark direct dimensions as hard requirements.
func askDealbreaker(ctx context.Context, key dimension.Key, userID uuid.UUID, st store.Store, logger *zap.Logger) error {
	def, err := dimension.Lookup(key)
	if err != nil {
		return err
	}
	if def.Category != dimension.CategoryDirect {
		return nil
	}

	prompt := promptui.Select{
		Label: fmt.Sprintf("Is %s a dealbreaker for you?", key),
		Items: []string{PromptNo, PromptYes},
	}

	_, answer, err := prompt.Run()
	if err != nil {
		return err
	}

	if answer != PromptYes {
		return nil
	}

	if err := st.SetDealbreaker(ctx, userID, key, true); err != nil {
		return err
	}

	logger.Info("marked dealbreaker", zap.String("dimension", string(key)))
	return nil
}

func askText(ctx context.Context, question questions.Question, userID uuid.UUID, extractor *extract.Extractor, logger *zap.Logger) error {
	prompt := promptui.Prompt{
		Label:   question.Prompt,
		Default: "",
	}

	answer, err := prompt.Run()
	if err != nil {
		return err
	}

	results, err := extractor.ExtractAndSave(ctx, userID, question.Prompt, answer, question.Dimensions, question.QuestionType)
	if err != nil {
		return err
	}

	for _, result := range results {
		logger.Info("extracted dimension score",
			zap.String("dimension", string(result.Dimension)),
			zap.Int("formation", result.Formation),
			zap.Int("position", result.Position),
			zap.Int("importance", result.Importance),
			zap.String("reasoning", result.Reasoning),
		)
	}

	return nil
}
