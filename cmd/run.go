package cmd

import (
	"context"
	"errors"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/okhramov/impact-matcher/internal/backend"
	"github.com/okhramov/impact-matcher/internal/evaluator"
	"github.com/okhramov/impact-matcher/internal/extract"
	"github.com/okhramov/impact-matcher/internal/report"
)

const credentialHint = "set OPENAI_API_KEY or ANTHROPIC_API_KEY (or the *_FILE variants pointing at a secret file)"

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Evaluate a single resume and print the scored report",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("resume", "r", "", "path to the resume file (.pdf, .docx or .txt)")
	runCmd.Flags().StringP("job-description", "j", "", "path to a job description file, the built-in default is used when unset")
	runCmd.Flags().StringP("output", "o", "", "path to save the result JSON")
	runCmd.Flags().StringP("model", "m", backend.SelectorOpenAI, "model to use: openai, openai-fast or anthropic")
	runCmd.Flags().StringP("role-type", "t", "", "role type the report is written for")
	runCmd.Flags().Int("max-tokens", backend.DefaultMaxTokens, "completion token limit for the model")

	runCmd.MarkFlagRequired("resume")
}

// run is the single-resume command: extract, score, render, optionally save.
func run(cmd *cobra.Command) {
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

	eval := evaluator.New(evaluator.Deps{
		Completer: completer,
		Extractor: extract.New(logger),
		MaxTokens: settings.MaxTokens,
		Logger:    logger,
	})

	result, err := eval.Run(ctx, evaluator.Input{
		ResumePath:         cmd.Flag("resume").Value.String(),
		JobDescriptionPath: cmd.Flag("job-description").Value.String(),
		RoleType:           stringSetting(cmd, "role-type", "role-type"),
	})
	if err != nil {
		var parseErr *report.ParseError
		if errors.As(err, &parseErr) {
			logger.Fatal("parsing the model response",
				zap.Error(parseErr),
				zap.String("raw_response", parseErr.Raw),
			)
		}
		logger.Fatal("evaluating the resume", zap.Error(err))
	}

	report.Render(os.Stdout, result)

	if output := cmd.Flag("output").Value.String(); output != "" {
		if err := report.Write(output, result); err != nil {
			logger.Fatal("saving the result", zap.Error(err))
		}
		logger.Info("result saved", zap.String("path", output))
	}
}
