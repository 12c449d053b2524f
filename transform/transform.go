// Package transform rewrites the raw events of a song. Tick and delta values
// are never touched and every event survives, so the output has the same
// shape as the input.
package transform

import (
	"log/slog"

	"github.com/jsphweid/songtask/model"
	"github.com/jsphweid/songtask/util"
)

type Request struct {
	Semitones    int
	TempoPercent float64
}

// ScaleTempo speeds every tempo event up by pct percent (negative slows down).
func ScaleTempo(song *model.Song, pct float64) *model.Song {
	multiplier := 1 + pct/100
	return rewrite(song, func(e model.Event) model.Event {
		if e.Kind != model.KindTempo {
			return e
		}
		return e.WithBPM(e.BPM() * multiplier)
	})
}

// Transpose moves every note event by semitones. The result is not bounded
// to the MIDI range; writers decide what to do with pitches outside it.
func Transpose(song *model.Song, semitones int) *model.Song {
	return rewrite(song, func(e model.Event) model.Event {
		switch e.Kind {
		case model.KindNoteOn, model.KindNoteOff:
			return e.WithPitch(e.Pitch + semitones)
		}
		return e
	})
}

func rewrite(song *model.Song, f func(model.Event) model.Event) *model.Song {
	res := &model.Song{Resolution: song.Resolution, Tracks: make([]model.Track, len(song.Tracks))}
	for i, t := range song.Clone().Tracks {
		for j, e := range t.Events {
			t.Events[j] = f(e)
		}
		res.Tracks[i] = t
	}
	return res
}

type Pipeline struct {
	Logger *slog.Logger
}

func New(logger *slog.Logger) *Pipeline {
	return &Pipeline{Logger: util.OrDiscard(logger)}
}

// Change scales the tempo first and transposes second.
func (p *Pipeline) Change(song *model.Song, req Request) *model.Song {
	p.Logger.Debug("tempo multiplier", "value", 1+req.TempoPercent/100)
	res := ScaleTempo(song, req.TempoPercent)
	if before, ok := song.FirstTempo(); ok {
		after, _ := res.FirstTempo()
		p.Logger.Debug("tempo changed", "old_bpm", before.BPM(), "new_bpm", after.BPM())
	}

	res = Transpose(res, req.Semitones)
	if before, ok := firstNoteStart(song); ok {
		after, _ := firstNoteStart(res)
		p.Logger.Debug("transposed", "semitones", req.Semitones, "first_before", before.Pitch, "first_after", after.Pitch)
	}
	return res
}

func firstNoteStart(song *model.Song) (model.Event, bool) {
	for _, t := range song.Tracks {
		for _, e := range t.Events {
			if e.IsNoteStart() {
				return e, true
			}
		}
	}
	return model.Event{}, false
}
