package analysis

import (
	"github.com/jsphweid/songtask/model"
	"github.com/jsphweid/songtask/notes"
	"github.com/jsphweid/songtask/voice"
)

type TrackReport struct {
	Index     int
	Name      string
	NoteCount int
	Lowest    *model.Pitch
	Highest   *model.Pitch
	Range     *int
	Durations map[int64]int
	Pitches   map[model.Pitch]int
}

type SongReport struct {
	Source     string
	Resolution int
	BPM        float64
	TextCount  int
	Tracks     []TrackReport
}

type Options struct {
	// MatchLyrics narrows the report to the one voice track whose note count
	// is closest to the number of lyric and text events in the song.
	MatchLyrics   bool
	Reconstructor *notes.Reconstructor
}

func (a *Analyzer) Track(index int, name string, ns []model.Note, ctx TempoContext) TrackReport {
	r := TrackReport{
		Index:     index,
		Name:      name,
		NoteCount: len(ns),
		Durations: a.Durations(ns, ctx),
		Pitches:   a.Pitches(ns),
	}
	if lowest, highest, ok := a.Extremes(ns); ok {
		span := highest.Midi() - lowest.Midi()
		r.Lowest, r.Highest, r.Range = &lowest, &highest, &span
	}
	return r
}

// Song analyses the voice tracks of song. A song without any voice track
// yields a report with no tracks.
func (a *Analyzer) Song(song *model.Song, opts Options) (*SongReport, error) {
	ctx, err := a.ContextFor(song)
	if err != nil {
		return nil, err
	}

	rec := opts.Reconstructor
	if rec == nil {
		rec = notes.New(a.Logger)
	}
	all := rec.Song(song)
	classifier := voice.NewClassifier(a.Logger)

	var selected []voice.Track
	textCount := song.TextCount()
	if opts.MatchLyrics {
		if t, ok := classifier.Select(all, textCount); ok {
			selected = append(selected, t)
		}
	} else {
		selected = classifier.Candidates(all)
	}

	res := &SongReport{
		Resolution: ctx.Resolution,
		BPM:        ctx.BPM,
		TextCount:  textCount,
		Tracks:     []TrackReport{},
	}
	for _, t := range selected {
		res.Tracks = append(res.Tracks, a.Track(t.Index, song.Tracks[t.Index].Name(), t.Notes, ctx))
	}
	return res, nil
}
