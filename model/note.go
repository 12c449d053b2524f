package model

import "fmt"

// Note is a sounded interval reconstructed from a track's note events.
type Note struct {
	Pitch         Pitch
	StartTick     int64
	DurationTicks int64
}

func (n Note) EndTick() int64 {
	return n.StartTick + n.DurationTicks
}

func (n Note) String() string {
	return fmt.Sprintf("{%v, %d, %d}", n.Pitch, n.StartTick, n.DurationTicks)
}
