package cmd

import (
	"fmt"
	"io"

	"github.com/jsphweid/songtask/analysis"
	"github.com/jsphweid/songtask/midi"
	"github.com/jsphweid/songtask/report"
	"github.com/jsphweid/songtask/util"
	"github.com/spf13/cobra"
)

var (
	matchLyrics bool
	format      string
)

func init() {
	analyzeCmd.Flags().BoolVar(&matchLyrics, "lyrics", false, "only report the voice track whose note count best matches the number of text events")
	analyzeCmd.Flags().StringVar(&format, "format", "", "text, yaml or json (default from config)")
	rootCmd.AddCommand(analyzeCmd)
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze <path>",
	Short: "Reports the voice tracks of a MIDI file or a directory of them",
	Long: `Reports, for every track a single voice can perform, its range, a histogram
of note durations in milliseconds and a histogram of pitches.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f := report.Format(cfg.Format)
		if format != "" {
			f = report.Format(format)
		}
		switch f {
		case report.FormatText, report.FormatYAML, report.FormatJSON:
		default:
			return fmt.Errorf("unsupported report format: %s", f)
		}
		cmd.SilenceUsage = true
		return analyze(cmd.OutOrStdout(), args[0], f)
	},
}

func analyzeFile(path string) (*analysis.SongReport, error) {
	song, err := midi.ReadMidiFile(path)
	if err != nil {
		return nil, err
	}
	r, err := newAnalyzer().Song(song, analysis.Options{
		MatchLyrics:   matchLyrics,
		Reconstructor: newReconstructor(),
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	r.Source = path
	return r, nil
}

func analyze(w io.Writer, path string, f report.Format) error {
	paths, err := util.GatherAllMidiPaths(path, 0)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		logger.Info("no midi files found", "path", path)
		return nil
	}

	for i, p := range paths {
		logger.Debug("processing midi file", "file", p, "n", i+1, "of", len(paths))
		r, err := analyzeFile(p)
		if err != nil {
			if len(paths) == 1 {
				return err
			}
			logger.Warn("skipping file", "file", p, "err", err)
			continue
		}
		if len(r.Tracks) == 0 {
			logger.Info(report.NoVoiceTracks, "file", p)
		}
		if err := report.Write(w, r, f); err != nil {
			return err
		}
	}
	return nil
}
