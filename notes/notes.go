// Package notes rebuilds sounded notes from a track's raw note events.
//
// Each closing event (a NoteOff, or a NoteOn with zero velocity) is paired
// with an open NoteOn chosen by the Strategy. The default, FIFO, takes the
// oldest open NoteOn even when its pitch differs from the closing event; the
// emitted Note carries the closing event's pitch. PitchStack is the stricter
// alternative.
package notes

import (
	"log/slog"

	"github.com/jsphweid/songtask/model"
	"github.com/jsphweid/songtask/util"
)

type Reconstructor struct {
	Strategy Strategy
	Logger   *slog.Logger
}

type Option func(*Reconstructor)

func WithStrategy(s Strategy) Option {
	return func(r *Reconstructor) {
		r.Strategy = s
	}
}

func New(logger *slog.Logger, opts ...Option) *Reconstructor {
	r := &Reconstructor{Strategy: FIFO, Logger: util.OrDiscard(logger)}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Notes returns the notes of one track in the order they were closed.
func (r *Reconstructor) Notes(events []model.Event) []model.Note {
	res := []model.Note{}
	open := r.Strategy()
	for _, e := range events {
		switch {
		case e.IsNoteStart():
			open.Push(e)
		case e.IsNoteEnd():
			pitch, ok := model.PitchFromMidi(e.Pitch)
			if !ok {
				r.Logger.Debug("dropping closing event with invalid pitch", "tick", e.Tick, "pitch", e.Pitch)
				continue
			}
			start, ok := open.Pop(e)
			if !ok {
				r.Logger.Debug("dropping unmatched closing event", "tick", e.Tick, "pitch", e.Pitch)
				continue
			}
			res = append(res, model.Note{
				Pitch:         pitch,
				StartTick:     start.Tick,
				DurationTicks: e.Tick - start.Tick,
			})
		}
	}
	return res
}

// Song returns the notes of every track, in track order.
func (r *Reconstructor) Song(song *model.Song) [][]model.Note {
	res := make([][]model.Note, len(song.Tracks))
	for i, t := range song.Tracks {
		res[i] = r.Notes(t.Events)
	}
	r.Logger.Debug("reconstructed notes", "tracks", len(res))
	return res
}
