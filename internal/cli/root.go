// internal/cli/root.go
package zoolaunch

import (
	"fmt"
	"os"
	"strconv"

	"github.com/mwiater/zoolaunch/internal/appconfig"
	"github.com/mwiater/zoolaunch/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile       string
	currentConfig *appconfig.Config
	appVersion    = "dev"
	appCommit     = "none"
	appDate       = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:          "zoolaunch",
	Short:        "zoolaunch — configure and launch model-zoo benchmark runs",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := ensureConfigLoaded(); err != nil {
			return err
		}

		// If the user did NOT set a flag, copy the config value into the
		// flag so both pflags and viper reflect the same, final value.
		if !cmd.Flags().Changed("verbose") {
			_ = cmd.Flags().Set("verbose", strconv.FormatBool(viper.GetBool("verbose")))
		}

		// Materialize the fully merged configuration (flags > config >
		// defaults) into a stable snapshot for the other packages.
		var cfg appconfig.Config
		if err := viper.Unmarshal(&cfg); err != nil {
			return fmt.Errorf("unmarshal config: %w", err)
		}
		cfg.ConfigPath = viper.ConfigFileUsed()
		currentConfig = &cfg

		if err := logging.Init(cfg.LogFilePath()); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", appVersion, appCommit, appDate)

	defer logging.Close()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", appconfig.DefaultConfigPath, "config file (e.g., config/config.json)")

	rootCmd.PersistentFlags().Bool("verbose", false, "log the resolved location and launch command")
	rootCmd.PersistentFlags().String("logFile", "", "path to the log file")

	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("logFile", rootCmd.PersistentFlags().Lookup("logFile"))
}

// initConfig points viper at the config file chosen on the command line.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
}

// ensureConfigLoaded reads the config, sets safe defaults, and rejects
// files that fail the embedded schema.
func ensureConfigLoaded() error {
	viper.SetDefault("benchmarksRoot", "benchmarks")
	viper.SetDefault("modelsRoot", "")
	viper.SetDefault("pythonExe", "python")
	viper.SetDefault("dockerImage", "")
	viper.SetDefault("logFile", "zoolaunch.log")
	viper.SetDefault("verbose", false)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// No file: fine, we'll use defaults/flags
			return nil
		}
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to load config: %w", err)
	}
	if file := viper.ConfigFileUsed(); file != "" {
		if err := appconfig.ValidateFile(file); err != nil {
			return err
		}
	}
	return nil
}

// GetConfig returns the loaded application configuration for other packages.
func GetConfig() *appconfig.Config {
	return currentConfig
}

// VerboseEnabled returns true if verbose logging is enabled.
func VerboseEnabled() bool { return viper.GetBool("verbose") }

// SetVersionInfo allows the main package to inject build-time variables.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}
