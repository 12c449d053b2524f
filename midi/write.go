package midi

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jsphweid/songtask/model"
	"github.com/jsphweid/songtask/util"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

var (
	ErrPitchOutOfRange = errors.New("midi: pitch out of range")
	ErrTempoOutOfRange = errors.New("midi: tempo out of range")
	ErrMissingRaw      = errors.New("midi: event has no message to write")
)

// PitchPolicy decides what happens to note pitches outside 0-127 on write.
type PitchPolicy uint8

const (
	PitchReject PitchPolicy = iota
	PitchClamp
)

func ParsePitchPolicy(s string) (PitchPolicy, error) {
	switch strings.ToLower(s) {
	case "", "reject":
		return PitchReject, nil
	case "clamp":
		return PitchClamp, nil
	}
	return 0, fmt.Errorf("unknown pitch policy %q (must be reject or clamp)", s)
}

func (p PitchPolicy) String() string {
	if p == PitchClamp {
		return "clamp"
	}
	return "reject"
}

func (p PitchPolicy) key(pitch int) (uint8, error) {
	if pitch >= 0 && pitch <= model.MaxPitch {
		return uint8(pitch), nil
	}
	if p != PitchClamp {
		return 0, fmt.Errorf("%w: %d", ErrPitchOutOfRange, pitch)
	}
	if pitch < 0 {
		return 0, nil
	}
	return model.MaxPitch, nil
}

var textBuilders = map[model.TextKind]func(string) smf.Message{
	model.TextGeneric:    smf.MetaText,
	model.TextLyric:      smf.MetaLyric,
	model.TextMarker:     smf.MetaMarker,
	model.TextCuePoint:   smf.MetaCuepoint,
	model.TextTrackName:  smf.MetaTrackSequenceName,
	model.TextInstrument: smf.MetaInstrument,
	model.TextCopyright:  smf.MetaCopyright,
}

// maxMPQN is the largest value the three byte tempo meta event holds,
// about 3.58 bpm.
const maxMPQN = 0xFFFFFF

func tempoMessage(mpqn uint32) (smf.Message, error) {
	if mpqn == 0 || mpqn > maxMPQN {
		return nil, fmt.Errorf("%w: %d microseconds per quarter note", ErrTempoOutOfRange, mpqn)
	}
	return smf.Message{0xFF, 0x51, 0x03, byte(mpqn >> 16), byte(mpqn >> 8), byte(mpqn)}, nil
}

func toMessage(e model.Event, policy PitchPolicy) (smf.Message, error) {
	switch e.Kind {
	case model.KindNoteOn:
		key, err := policy.key(e.Pitch)
		if err != nil {
			return nil, err
		}
		return smf.Message(gomidi.NoteOn(e.Channel, key, e.Velocity)), nil
	case model.KindNoteOff:
		key, err := policy.key(e.Pitch)
		if err != nil {
			return nil, err
		}
		return smf.Message(gomidi.NoteOffVelocity(e.Channel, key, e.Velocity)), nil
	case model.KindTempo:
		return tempoMessage(e.MPQN)
	case model.KindText:
		if e.Raw != nil {
			return smf.Message(e.Raw), nil
		}
		return textBuilders[e.TextKind](e.Text), nil
	case model.KindOther:
		if e.Raw == nil {
			return nil, ErrMissingRaw
		}
		return smf.Message(e.Raw), nil
	}
	return nil, fmt.Errorf("midi: unknown event kind %v", e.Kind)
}

func isEndOfTrack(e model.Event) bool {
	return e.Kind == model.KindOther && len(e.Raw) >= 2 && e.Raw[0] == 0xFF && e.Raw[1] == 0x2F
}

func ToSMF(song *model.Song, policy PitchPolicy) (*smf.SMF, error) {
	res := smf.New()
	res.TimeFormat = smf.MetricTicks(song.Resolution)

	for i, t := range song.Tracks {
		var track smf.Track
		for j, e := range t.Events {
			msg, err := toMessage(e, policy)
			if err != nil {
				return nil, fmt.Errorf("track %d event %d: %w", i, j, err)
			}
			track = append(track, smf.Event{Delta: e.Delta, Message: msg})
		}
		if n := len(t.Events); n == 0 || !isEndOfTrack(t.Events[n-1]) {
			track.Close(0)
		}
		if err := res.Add(track); err != nil {
			return nil, fmt.Errorf("track %d: %w", i, err)
		}
	}
	return res, nil
}

func Encode(w io.Writer, song *model.Song, policy PitchPolicy) error {
	s, err := ToSMF(song, policy)
	if err != nil {
		return err
	}
	if _, err := s.WriteTo(w); err != nil {
		return fmt.Errorf("error writing midi: %w", err)
	}
	return nil
}

func WriteMidiFile(filepath string, song *model.Song, policy PitchPolicy) error {
	var buf bytes.Buffer
	if err := Encode(&buf, song, policy); err != nil {
		return fmt.Errorf("%s: %w", filepath, err)
	}
	return util.WriteFileAtomic(filepath, buf.Bytes())
}
