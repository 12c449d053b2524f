// Package analysis reports the range and note statistics of voice tracks.
package analysis

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/jsphweid/songtask/model"
	"github.com/jsphweid/songtask/timing"
	"github.com/jsphweid/songtask/util"
)

// DefaultBPM is assumed when track 0 carries no tempo event.
const DefaultBPM = 120

var ErrInvalidTiming = errors.New("analysis: invalid tempo or resolution")

// TempoContext is what tick to millisecond conversion needs. Only the first
// tempo of the song is considered.
type TempoContext struct {
	BPM        float64
	Resolution int
}

type Analyzer struct {
	Logger *slog.Logger
}

func New(logger *slog.Logger) *Analyzer {
	return &Analyzer{Logger: util.OrDiscard(logger)}
}

// ContextFor takes the first tempo event of track 0.
func (a *Analyzer) ContextFor(song *model.Song) (TempoContext, error) {
	ctx := TempoContext{BPM: DefaultBPM, Resolution: int(song.Resolution)}
	if tempo, ok := song.FirstTempo(); ok {
		ctx.BPM = tempo.BPM()
	} else {
		a.Logger.Debug("no tempo event in track 0, assuming default", "bpm", DefaultBPM)
	}
	if !timing.Valid(ctx.BPM, ctx.Resolution) {
		return ctx, fmt.Errorf("%w: bpm=%v resolution=%d", ErrInvalidTiming, ctx.BPM, ctx.Resolution)
	}
	a.Logger.Debug("tempo context", "bpm", ctx.BPM, "resolution", ctx.Resolution)
	return ctx, nil
}

// Extremes returns the lowest and highest pitch of notes.
func (a *Analyzer) Extremes(notes []model.Note) (lowest, highest model.Pitch, ok bool) {
	byMidi := make(map[int]model.Note)
	for _, n := range notes {
		byMidi[n.Pitch.Midi()] = n
	}
	if len(byMidi) == 0 {
		return 0, 0, false
	}
	keys := util.SortedKeys(byMidi)
	lowest = byMidi[keys[0]].Pitch
	highest = byMidi[keys[len(keys)-1]].Pitch
	a.Logger.Debug("track extremes", "lowest", lowest, "highest", highest)
	return lowest, highest, true
}

// Range is the distance in semitones between the extremes of notes.
func (a *Analyzer) Range(notes []model.Note) (int, bool) {
	lowest, highest, ok := a.Extremes(notes)
	if !ok {
		return 0, false
	}
	return highest.Midi() - lowest.Midi(), true
}

// Durations counts notes by their length in milliseconds.
func (a *Analyzer) Durations(notes []model.Note, ctx TempoContext) map[int64]int {
	res := make(map[int64]int)
	for _, n := range notes {
		res[timing.Millis(ctx.BPM, ctx.Resolution, n.DurationTicks)]++
	}
	a.Logger.Debug("duration analysis done", "distinct", len(res))
	return res
}

// Pitches counts notes by pitch.
func (a *Analyzer) Pitches(notes []model.Note) map[model.Pitch]int {
	res := make(map[model.Pitch]int)
	for _, n := range notes {
		res[n.Pitch]++
	}
	a.Logger.Debug("pitch analysis done", "distinct", len(res))
	return res
}
