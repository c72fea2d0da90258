package main

import (
	"os"
	"strings"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Set by the root command before any subcommand runs.
var (
	appConfig *Config
	appLog    logr.Logger
)

var rootCmd = &cobra.Command{
	Use:   "barchart",
	Short: "Animated bar charts from label/value data",
	Long: `barchart draws bar charts from [label, value] datasets and animates them
from one dataset to the next. Charts can be served over HTTP, rendered to
files, or watched live in the terminal.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := Load()
		if err != nil {
			return err
		}
		appConfig = cfg
		appLog = newLogger(cfg.Log.Verbosity)
		if used := viper.ConfigFileUsed(); used != "" {
			appLog.V(1).Info("loaded config", "file", used)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringP("config", "c", "", "config file (default is ./barchart.yaml)")
	flags.String("orientation", "", "bar orientation: horizontal or vertical")
	flags.Int("width", 0, "chart width in pixels")
	flags.Int("height", 0, "chart height in pixels")
	flags.String("title", "", "chart title")
	flags.CountP("verbose", "v", "log verbosity, repeat for more")

	_ = viper.BindPFlag("config", flags.Lookup("config"))
	_ = viper.BindPFlag("chart.orientation", flags.Lookup("orientation"))
	_ = viper.BindPFlag("chart.width", flags.Lookup("width"))
	_ = viper.BindPFlag("chart.height", flags.Lookup("height"))
	_ = viper.BindPFlag("chart.title", flags.Lookup("title"))
	_ = viper.BindPFlag("log.verbosity", flags.Lookup("verbose"))
}

func initConfig() {
	SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("barchart")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.config/barchart")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("BARCHART")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// a missing config file is fine, defaults apply
	_ = viper.ReadInConfig()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
