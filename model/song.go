package model

type Track struct {
	Events []Event
}

// Name returns the first track name text event, or "".
func (t Track) Name() string {
	for _, e := range t.Events {
		if e.Kind == KindText && e.TextKind == TextTrackName {
			return e.Text
		}
	}
	return ""
}

// TextCount counts the sung text events of t.
func (t Track) TextCount() int {
	var n int
	for _, e := range t.Events {
		if e.IsSung() {
			n++
		}
	}
	return n
}

func (t Track) Clone() Track {
	events := make([]Event, len(t.Events))
	for i, e := range t.Events {
		if e.Raw != nil {
			e.Raw = append([]byte(nil), e.Raw...)
		}
		events[i] = e
	}
	return Track{Events: events}
}

// Song is a whole file: its ticks-per-quarter-note and its tracks.
type Song struct {
	Resolution uint16
	Tracks     []Track
}

// FirstTempo returns the first Tempo event in track 0.
func (s *Song) FirstTempo() (Event, bool) {
	if len(s.Tracks) == 0 {
		return Event{}, false
	}
	for _, e := range s.Tracks[0].Events {
		if e.Kind == KindTempo {
			return e, true
		}
	}
	return Event{}, false
}

func (s *Song) TextCount() int {
	var n int
	for _, t := range s.Tracks {
		n += t.TextCount()
	}
	return n
}

func (s *Song) Clone() *Song {
	res := &Song{Resolution: s.Resolution, Tracks: make([]Track, len(s.Tracks))}
	for i, t := range s.Tracks {
		res.Tracks[i] = t.Clone()
	}
	return res
}
