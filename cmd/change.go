package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/jsphweid/songtask/midi"
	"github.com/jsphweid/songtask/transform"
	"github.com/jsphweid/songtask/util"
	"github.com/spf13/cobra"
)

var (
	trans int
	tempo float64
)

var errTempoTooLow = errors.New("-tempo must be greater than -100")

func init() {
	changeCmd.Flags().IntVar(&trans, "trans", 0, "semitones to transpose by")
	changeCmd.Flags().Float64Var(&tempo, "tempo", 0, "percent to change the tempo by")
	changeCmd.MarkFlagRequired("trans")
	changeCmd.MarkFlagRequired("tempo")
	rootCmd.AddCommand(changeCmd)
}

var changeCmd = &cobra.Command{
	Use:   "change <path> -trans <int> -tempo <float>",
	Short: "Writes a transposed and tempo scaled copy of a MIDI file",
	Long: `Writes <path-without-extension>-trans<N>-tempo<T>.mid next to the source,
with every note moved by N semitones and every tempo changed by T percent.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if tempo <= -100 {
			return errTempoTooLow
		}
		cmd.SilenceUsage = true
		_, err := change(cmd.OutOrStdout(), args[0], transform.Request{Semitones: trans, TempoPercent: tempo})
		return err
	},
}

func change(w io.Writer, path string, req transform.Request) (string, error) {
	song, err := midi.ReadMidiFile(path)
	if err != nil {
		return "", err
	}
	policy, err := cfg.Policy()
	if err != nil {
		return "", err
	}

	changed := transform.New(logger).Change(song, req)
	out := util.ChangedFileName(path, req.Semitones, req.TempoPercent)
	if err := midi.WriteMidiFile(out, changed, policy); err != nil {
		return "", err
	}
	logger.Info("wrote changed file", "file", out, "trans", req.Semitones, "tempo", req.TempoPercent)
	fmt.Fprintln(w, out)
	return out, nil
}
