package model

import "fmt"

type Kind uint8

const (
	KindNoteOn Kind = iota
	KindNoteOff
	KindTempo
	KindText
	KindOther
)

func (k Kind) String() string {
	switch k {
	case KindNoteOn:
		return "NoteOn"
	case KindNoteOff:
		return "NoteOff"
	case KindTempo:
		return "Tempo"
	case KindText:
		return "Text"
	case KindOther:
		return "Other"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// TextKind tells which textual meta event a Text event was read from.
type TextKind uint8

const (
	TextGeneric TextKind = iota
	TextLyric
	TextMarker
	TextCuePoint
	TextTrackName
	TextInstrument
	TextCopyright
)

// Event is one timestamped entry of a track. Kind selects which of the
// kind-specific fields are meaningful.
type Event struct {
	Kind  Kind
	Tick  int64
	Delta uint32

	// NoteOn, NoteOff
	Channel  uint8
	Pitch    int
	Velocity uint8

	// Tempo
	MPQN uint32

	// Text
	TextKind TextKind
	Text     string

	// Raw is the message as read from the container, if any. Text and Other
	// events are written back from it untouched.
	Raw []byte
}

func NoteOn(tick int64, delta uint32, channel uint8, pitch int, velocity uint8) Event {
	return Event{Kind: KindNoteOn, Tick: tick, Delta: delta, Channel: channel, Pitch: pitch, Velocity: velocity}
}

func NoteOff(tick int64, delta uint32, channel uint8, pitch int, velocity uint8) Event {
	return Event{Kind: KindNoteOff, Tick: tick, Delta: delta, Channel: channel, Pitch: pitch, Velocity: velocity}
}

func Tempo(tick int64, delta uint32, mpqn uint32) Event {
	return Event{Kind: KindTempo, Tick: tick, Delta: delta, MPQN: mpqn}
}

func Text(tick int64, delta uint32, kind TextKind, text string) Event {
	return Event{Kind: KindText, Tick: tick, Delta: delta, TextKind: kind, Text: text}
}

func Other(tick int64, delta uint32, raw []byte) Event {
	return Event{Kind: KindOther, Tick: tick, Delta: delta, Raw: raw}
}

// IsNoteStart reports a NoteOn with a non-zero velocity.
func (e Event) IsNoteStart() bool {
	return e.Kind == KindNoteOn && e.Velocity > 0
}

// IsNoteEnd reports a NoteOff, or a NoteOn with zero velocity.
func (e Event) IsNoteEnd() bool {
	switch e.Kind {
	case KindNoteOff:
		return true
	case KindNoteOn:
		return e.Velocity == 0
	}
	return false
}

// IsSung reports a lyric or plain text event. Track names, instruments and
// copyright notices are metadata and not sung.
func (e Event) IsSung() bool {
	return e.Kind == KindText && (e.TextKind == TextLyric || e.TextKind == TextGeneric)
}

// BPM is only meaningful for Tempo events.
func (e Event) BPM() float64 {
	if e.MPQN == 0 {
		return 0
	}
	return 60_000_000 / float64(e.MPQN)
}

// WithBPM returns a copy of a Tempo event set to bpm. MPQN is rounded so that
// e.WithBPM(e.BPM()) == e.
func (e Event) WithBPM(bpm float64) Event {
	e.MPQN = mpqnFor(bpm)
	e.Raw = nil
	return e
}

// WithPitch returns a copy of a note event moved to pitch.
func (e Event) WithPitch(pitch int) Event {
	e.Pitch = pitch
	e.Raw = nil
	return e
}

func mpqnFor(bpm float64) uint32 {
	if bpm <= 0 {
		return 0
	}
	v := 60_000_000/bpm + 0.5
	if v >= float64(^uint32(0)) {
		return ^uint32(0)
	}
	return uint32(v)
}

func (e Event) String() string {
	switch e.Kind {
	case KindNoteOn, KindNoteOff:
		return fmt.Sprintf("%v@%d(ch=%d pitch=%d vel=%d)", e.Kind, e.Tick, e.Channel, e.Pitch, e.Velocity)
	case KindTempo:
		return fmt.Sprintf("%v@%d(bpm=%.2f)", e.Kind, e.Tick, e.BPM())
	case KindText:
		return fmt.Sprintf("%v@%d(%q)", e.Kind, e.Tick, e.Text)
	}
	return fmt.Sprintf("%v@%d", e.Kind, e.Tick)
}
