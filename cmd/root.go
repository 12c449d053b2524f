package cmd

import (
	"os"

	"github.com/jsphweid/songtask/analysis"
	"github.com/jsphweid/songtask/config"
	"github.com/jsphweid/songtask/constants"
	"github.com/jsphweid/songtask/notes"
	"github.com/jsphweid/songtask/util"
	"github.com/spf13/cobra"
)

var (
	cfgFile  string
	logLevel string

	cfg    = config.Default()
	logger = util.OrDiscard(nil)
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "YAML config file (default $"+constants.EnvConfigPath+")")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error")
}

var rootCmd = &cobra.Command{
	Use:   constants.AppName,
	Short: "Finds voice tracks in MIDI songs and transposes or speeds them up",
	Long: `songtask reads Standard MIDI Files. "analyze" reports which tracks a single
voice can sing together with their range, note durations and pitches.
"change" writes a transposed and/or tempo scaled copy of a file.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup()
	},
}

func setup() error {
	path := cfgFile
	if path == "" {
		path = constants.GetConfigPath()
	}
	c, err := config.Load(path)
	if err != nil {
		return err
	}
	if logLevel != "" {
		c.LogLevel = logLevel
		if err := c.Validate(); err != nil {
			return err
		}
	}
	cfg = c
	logger = cfg.Logger()
	return nil
}

func newReconstructor() *notes.Reconstructor {
	strategy, err := cfg.Strategy()
	if err != nil {
		strategy = notes.FIFO
	}
	return notes.New(logger, notes.WithStrategy(strategy))
}

func newAnalyzer() *analysis.Analyzer {
	return analysis.New(logger)
}

func Execute() {
	rootCmd.SetArgs(normalizeArgs(os.Args[1:]))
	cobra.CheckErr(rootCmd.Execute())
}
