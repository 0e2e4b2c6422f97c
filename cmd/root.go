package cmd

import (
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/okhramov/impact-matcher/internal/backend"
	"github.com/okhramov/impact-matcher/internal/logger"
	"github.com/okhramov/impact-matcher/internal/prompt"
	"github.com/okhramov/impact-matcher/internal/results"
)

const (
	app = "impact-matcher"
)

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "impact-matcher scores resumes against a job description using the IMPACT-V framework",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	envBindings := map[string]string{
		"openai.api-key":         "OPENAI_API_KEY",
		"openai.api-key-file":    "OPENAI_API_KEY_FILE",
		"openai.model":           "OPENAI_MODEL",
		"openai.fast-model":      "OPENAI_FAST_MODEL",
		"anthropic.api-key":      "ANTHROPIC_API_KEY",
		"anthropic.api-key-file": "ANTHROPIC_API_KEY_FILE",
		"anthropic.model":        "ANTHROPIC_MODEL",
		"max-tokens":             "DEFAULT_MAX_TOKENS",
	}
	for key, env := range envBindings {
		if err := viper.BindEnv(key, env); err != nil {
			log.Fatalf("binding %s environment variable: %v", env, err)
		}
	}

	viper.SetDefault("model", backend.SelectorOpenAI)
	viper.SetDefault("max-tokens", backend.DefaultMaxTokens)
	viper.SetDefault("role-type", prompt.DefaultRoleType)
	viper.SetDefault("results-dir", results.DefaultDir)

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is impact-matcher.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().Bool("json-log", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json-log", rootCmd.PersistentFlags().Lookup("json-log"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		// The default config file is optional, an explicitly given one is not.
		if _, notFound := err.(viper.ConfigFileNotFoundError); notFound && cfgFile == "" {
			return
		}
		log.Fatal(err)
	}
}

// newLogger builds the process logger from the persistent logging flags.
func newLogger() *zap.Logger {
	l, err := logger.New(viper.GetBool("json-log"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	return l
}

// backendOptions assembles the model backend configuration for a command.
// An explicitly set flag wins over environment variables and the config file.
func backendOptions(cmd *cobra.Command) backend.Options {
	return backend.Options{
		Selector:  stringSetting(cmd, "model", "model"),
		MaxTokens: intSetting(cmd, "max-tokens", "max-tokens"),
		OpenAI: backend.ProviderOptions{
			APIKey:     viper.GetString("openai.api-key"),
			APIKeyFile: viper.GetString("openai.api-key-file"),
			Model:      viper.GetString("openai.model"),
			FastModel:  viper.GetString("openai.fast-model"),
		},
		Anthropic: backend.ProviderOptions{
			APIKey:     viper.GetString("anthropic.api-key"),
			APIKeyFile: viper.GetString("anthropic.api-key-file"),
			Model:      viper.GetString("anthropic.model"),
		},
	}
}

// stringSetting resolves a setting that exists both as a command flag and a
// viper key: the flag when the user set it, the viper chain otherwise.
func stringSetting(cmd *cobra.Command, flagName, key string) string {
	if flag := cmd.Flag(flagName); flag != nil && flag.Changed {
		return flag.Value.String()
	}
	return viper.GetString(key)
}

func intSetting(cmd *cobra.Command, flagName, key string) int {
	if flag := cmd.Flag(flagName); flag != nil && flag.Changed {
		if v, err := cmd.Flags().GetInt(flagName); err == nil {
			return v
		}
	}
	return viper.GetInt(key)
}
