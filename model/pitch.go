package model

import "fmt"

var pitchNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// Pitch is a MIDI note number, 0-127. Middle C (60) is C4.
type Pitch uint8

const MaxPitch = 127

func PitchFromMidi(n int) (Pitch, bool) {
	if n < 0 || n > MaxPitch {
		return 0, false
	}
	return Pitch(n), true
}

func (p Pitch) Midi() int {
	return int(p)
}

func (p Pitch) Name() string {
	return pitchNames[int(p)%12]
}

func (p Pitch) Octave() int {
	return int(p)/12 - 1
}

func (p Pitch) String() string {
	return fmt.Sprintf("%s%d", p.Name(), p.Octave())
}

func (p Pitch) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}
