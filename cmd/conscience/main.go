package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/kardolus/conscience/cmd/conscience/utils"
	"github.com/kardolus/conscience/config"
	"github.com/kardolus/conscience/history"
	"github.com/kardolus/conscience/internal"
)

const envPrefix = "CONSCIENCE"

var (
	saveConfig   bool
	clearHistory bool
)

func main() {
	var rootCmd = &cobra.Command{
		Use:               "conscience",
		Short:             "Headless GUI test harness",
		Long:              "Inspect the keys, configuration and lobes that drive headless GUI scenarios.",
		SilenceUsage:      true,
		PersistentPreRunE: setup,
	}

	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error or quiet")
	rootCmd.PersistentFlags().String("color", "", "Highlight output in red, green, yellow, blue, magenta or cyan")
	_ = viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("color", rootCmd.PersistentFlags().Lookup("color"))

	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv()

	var keysCmd = &cobra.Command{
		Use:   "keys KEY...",
		Short: "Show the event and binding sequences of keys",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runKeys,
	}

	var configCmd = &cobra.Command{
		Use:   "config",
		Short: "Show the merged configuration",
		RunE:  runConfig,
	}
	configCmd.Flags().BoolVar(&saveConfig, "save", false, "Write the merged configuration to the config file")

	var historyCmd = &cobra.Command{
		Use:   "history",
		Short: "Show the recorded scenario failures",
		RunE:  runHistory,
	}
	historyCmd.Flags().BoolVar(&clearHistory, "clear", false, "Delete the recorded failures")

	rootCmd.AddCommand(keysCmd, configCmd, historyCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setup(cmd *cobra.Command, args []string) error {
	level := viper.GetString("log_level")
	if level == "" {
		level = config.NewManager(config.New()).WithEnvironment().Config.LogLevel
	}

	logger, err := internal.NewLogger(level)
	if err != nil {
		return err
	}
	logger.Debug("logger ready", zap.String("level", level))
	return nil
}

func runKeys(cmd *cobra.Command, args []string) error {
	color := viper.GetString("color")
	for _, key := range args {
		fmt.Fprint(cmd.OutOrStdout(), utils.FormatKey(key, color))
	}
	return nil
}

func runConfig(cmd *cobra.Command, args []string) error {
	store := config.New()
	if store.Path() == "" {
		return errors.New("could not determine the config location")
	}

	manager := config.NewManager(store).WithEnvironment()

	out, err := manager.ShowConfig()
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), out)

	if saveConfig {
		if err := manager.Save(); err != nil {
			return err
		}
		zap.L().Info("configuration saved", zap.String("path", store.Path()))
	}
	return nil
}

func runHistory(cmd *cobra.Command, args []string) error {
	manager := history.NewManager(history.New())

	if clearHistory {
		if err := manager.Clear(); err != nil {
			return err
		}
		zap.L().Info("history cleared")
		return nil
	}

	out, err := manager.Print()
	if err != nil {
		return err
	}
	if out == "" {
		fmt.Fprintln(cmd.OutOrStdout(), "no failures recorded")
		return nil
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}
