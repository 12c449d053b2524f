// Package midi converts between Standard MIDI Files and the model package.
package midi

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jsphweid/songtask/model"
	"github.com/jsphweid/songtask/timing"
	"gitlab.com/gomidi/midi/v2/smf"
)

var ErrUnsupportedTimeFormat = errors.New("midi: only metric time formats are supported")

func ReadMidiFile(filepath string) (*model.Song, error) {
	dat, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("error reading midi file: %w", err)
	}
	song, err := Decode(bytes.NewReader(dat))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath, err)
	}
	return song, nil
}

func Decode(r io.Reader) (s *model.Song, e error) {
	// handle panics
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if r := recover(); r != nil {
			s, e = nil, fmt.Errorf("error parsing midi file: %v", r)
		}
	}()

	parsed, err := smf.ReadFrom(r)
	if err != nil {
		return nil, fmt.Errorf("error parsing midi file: %w", err)
	}
	return FromSMF(parsed)
}

// FromSMF lays the tracks of s out as absolute-tick events.
func FromSMF(s *smf.SMF) (*model.Song, error) {
	ticks, ok := s.TimeFormat.(smf.MetricTicks)
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedTimeFormat, s.TimeFormat)
	}

	song := &model.Song{Resolution: ticks.Resolution()}
	for _, track := range s.Tracks {
		var t model.Track
		var absTicks int64
		for _, evt := range track {
			absTicks += int64(evt.Delta)
			t.Events = append(t.Events, toEvent(absTicks, evt))
		}
		song.Tracks = append(song.Tracks, t)
	}
	return song, nil
}

var textGetters = []struct {
	kind model.TextKind
	get  func(smf.Message, *string) bool
}{
	{model.TextGeneric, smf.Message.GetMetaText},
	{model.TextLyric, smf.Message.GetMetaLyric},
	{model.TextMarker, smf.Message.GetMetaMarker},
	{model.TextCuePoint, smf.Message.GetMetaCuepoint},
	{model.TextTrackName, smf.Message.GetMetaTrackName},
	{model.TextInstrument, smf.Message.GetMetaInstrument},
	{model.TextCopyright, smf.Message.GetMetaCopyright},
}

func toEvent(tick int64, evt smf.Event) model.Event {
	msg := evt.Message
	raw := append([]byte(nil), msg...)

	var channel, key, velocity uint8
	var bpm float64
	var e model.Event
	switch {
	case msg.GetNoteOn(&channel, &key, &velocity):
		e = model.NoteOn(tick, evt.Delta, channel, int(key), velocity)
	case msg.GetNoteOff(&channel, &key, &velocity):
		e = model.NoteOff(tick, evt.Delta, channel, int(key), velocity)
	case msg.GetMetaTempo(&bpm):
		e = model.Tempo(tick, evt.Delta, timing.MPQN(bpm))
	default:
		e = model.Other(tick, evt.Delta, nil)
		for _, g := range textGetters {
			var text string
			if g.get(msg, &text) {
				e = model.Text(tick, evt.Delta, g.kind, text)
				break
			}
		}
	}
	e.Raw = raw
	return e
}
