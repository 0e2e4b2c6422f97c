package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/okhramov/impact-matcher/internal/backend"
	"github.com/okhramov/impact-matcher/internal/batch"
	"github.com/okhramov/impact-matcher/internal/evaluator"
	"github.com/okhramov/impact-matcher/internal/extract"
	"github.com/okhramov/impact-matcher/internal/results"
)

const (
	PromptYes       = "Yes"
	PromptNo        = "No"
	PromptShowFiles = "Show files"
)

var errExit = errors.New("exit requested")

var batchCmd = &cobra.Command{
	Use:   "batch DIR",
	Short: "Evaluate every resume in a directory and save the results",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runBatch(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringP("job-description", "j", "", "path to a job description file, the built-in default is used when unset")
	batchCmd.Flags().StringP("model", "m", backend.SelectorOpenAI, "model to use: openai, openai-fast or anthropic")
	batchCmd.Flags().StringP("role-type", "t", "", "role type the reports are written for")
	batchCmd.Flags().Int("max-tokens", backend.DefaultMaxTokens, "completion token limit for the model")
	batchCmd.Flags().String("results-dir", "", `directory for result files (default "results")`)
	batchCmd.Flags().Duration("delay", 0, "pause between evaluations, e.g. 2s")
	batchCmd.Flags().BoolP("auto-approve", "y", false, "do not ask for confirmation before evaluating")
	batchCmd.Flags().Bool("force", false, "re-evaluate resumes that already have a saved result")
}

// runBatch sweeps a directory of resumes through the evaluation pipeline.
func runBatch(cmd *cobra.Command, dir string) {
	ctx := context.Background()

	logger := newLogger()
	logger.Info("starting the impact-matcher", zap.String("version", version))

	settings, err := backend.Resolve(backendOptions(cmd))
	if err != nil {
		logger.Fatal("configuring the model backend",
			zap.Error(err),
			zap.String("hint", credentialHint),
		)
	}

	completer, err := backend.New(settings, logger)
	if err != nil {
		logger.Fatal("building the model backend", zap.Error(err))
	}

	store := results.New(stringSetting(cmd, "results-dir", "results-dir"), logger)

	files, err := batch.Discover(dir)
	if err != nil {
		logger.Fatal("listing resumes", zap.Error(err))
	}

	force := cmd.Flag("force").Value.String() == "true"
	files, err = batch.Run(logger, []batch.Filter{
		batch.NewSupportedTypes(),
		batch.NewAlreadyEvaluated(store, force),
	}, files)
	if err != nil {
		logger.Fatal("filtering resumes", zap.Error(err))
	}

	if len(files) == 0 {
		logger.Info("exiting", zap.String("reason", "no resumes left to evaluate"))
		return
	}

	logger.Info("resumes to evaluate",
		zap.Int("count", len(files)),
		zap.String("model", settings.Model),
		zap.String("results_dir", store.Dir()),
	)

	if cmd.Flag("auto-approve").Value.String() != "true" {
		if err := confirm(files); err != nil {
			if errors.Is(err, errExit) {
				logger.Info("exiting", zap.String("reason", "got no from prompt"))
				return
			}
			logger.Fatal("reading confirmation", zap.Error(err))
		}
	}

	runner := batch.NewRunner(evaluator.New(evaluator.Deps{
		Completer: completer,
		Extractor: extract.New(logger),
		MaxTokens: settings.MaxTokens,
		Logger:    logger,
	}), store, logger)

	delay, err := cmd.Flags().GetDuration("delay")
	if err != nil {
		logger.Fatal("reading the delay flag", zap.Error(err))
	}

	summary, err := runner.Sweep(ctx, files, batch.Options{
		JobDescriptionPath: cmd.Flag("job-description").Value.String(),
		RoleType:           stringSetting(cmd, "role-type", "role-type"),
		Delay:              delay,
	})
	if err != nil {
		logger.Fatal("sweep interrupted", zap.Error(err))
	}

	if summary.Failed > 0 {
		logger.Warn("some resumes failed",
			zap.Int("failed", summary.Failed),
			zap.Int("succeeded", summary.Succeeded),
		)
	}
}

func confirm(files []string) error {
	prompt := promptui.Select{
		Label: fmt.Sprintf("Evaluate %d resumes?", len(files)),
		Items: []string{PromptYes, PromptNo, PromptShowFiles},
	}

	for {
		_, action, err := prompt.Run()
		if err != nil {
			return err
		}

		switch action {
		case PromptYes:
			return nil
		case PromptNo:
			return errExit
		case PromptShowFiles:
			for _, file := range files {
				fmt.Println(file)
			}
		default:
			return fmt.Errorf("invalid action: %s", action)
		}
	}
}
