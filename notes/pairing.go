package notes

import "github.com/jsphweid/songtask/model"

// Pairer holds the open note starts of one track while it is scanned.
type Pairer interface {
	Push(start model.Event)
	// Pop returns the start that the closing event end closes, if any.
	Pop(end model.Event) (model.Event, bool)
}

// Strategy creates a fresh Pairer for every track.
type Strategy func() Pairer

// FIFO closes the oldest open start regardless of its pitch.
func FIFO() Pairer {
	return &fifo{}
}

// PitchStack closes the most recent open start of the same pitch.
func PitchStack() Pairer {
	return &pitchStack{open: make(map[int][]model.Event)}
}

type fifo struct {
	queue []model.Event
	head  int
}

func (f *fifo) Push(start model.Event) {
	f.queue = append(f.queue, start)
}

func (f *fifo) Pop(model.Event) (model.Event, bool) {
	if f.head == len(f.queue) {
		return model.Event{}, false
	}
	e := f.queue[f.head]
	f.head++
	if f.head == len(f.queue) {
		f.queue = f.queue[:0]
		f.head = 0
	}
	return e, true
}

type pitchStack struct {
	open map[int][]model.Event
}

func (p *pitchStack) Push(start model.Event) {
	p.open[start.Pitch] = append(p.open[start.Pitch], start)
}

func (p *pitchStack) Pop(end model.Event) (model.Event, bool) {
	stack := p.open[end.Pitch]
	if len(stack) == 0 {
		return model.Event{}, false
	}
	e := stack[len(stack)-1]
	p.open[end.Pitch] = stack[:len(stack)-1]
	return e, true
}
