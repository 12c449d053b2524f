// Package report renders analysis results as text, YAML or JSON.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/jsphweid/songtask/analysis"
	"github.com/jsphweid/songtask/model"
	"github.com/jsphweid/songtask/util"
)

type Format string

const (
	FormatText Format = "text"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// NoVoiceTracks is printed for a song without any performable track.
const NoVoiceTracks = "no tracks suitable for single-voice performance"

type DurationCount struct {
	Millis int64 `json:"ms" yaml:"ms"`
	Count  int   `json:"count" yaml:"count"`
}

type PitchCount struct {
	Pitch string `json:"pitch" yaml:"pitch"`
	Midi  int    `json:"midi" yaml:"midi"`
	Count int    `json:"count" yaml:"count"`
}

type TrackView struct {
	Index     int             `json:"index" yaml:"index"`
	Name      string          `json:"name,omitempty" yaml:"name,omitempty"`
	NoteCount int             `json:"note_count" yaml:"note_count"`
	Lowest    string          `json:"lowest,omitempty" yaml:"lowest,omitempty"`
	Highest   string          `json:"highest,omitempty" yaml:"highest,omitempty"`
	Range     *int            `json:"range,omitempty" yaml:"range,omitempty"`
	Durations []DurationCount `json:"durations" yaml:"durations"`
	Pitches   []PitchCount    `json:"pitches" yaml:"pitches"`
}

type SongView struct {
	Source     string      `json:"source,omitempty" yaml:"source,omitempty"`
	Resolution int         `json:"resolution" yaml:"resolution"`
	BPM        float64     `json:"bpm" yaml:"bpm"`
	TextCount  int         `json:"text_count" yaml:"text_count"`
	Tracks     []TrackView `json:"tracks" yaml:"tracks"`
}

// View orders the histograms of r by key.
func View(r *analysis.SongReport) SongView {
	v := SongView{
		Source:     r.Source,
		Resolution: r.Resolution,
		BPM:        r.BPM,
		TextCount:  r.TextCount,
		Tracks:     []TrackView{},
	}
	for _, t := range r.Tracks {
		tv := TrackView{
			Index:     t.Index,
			Name:      t.Name,
			NoteCount: t.NoteCount,
			Range:     t.Range,
			Durations: []DurationCount{},
			Pitches:   []PitchCount{},
		}
		if t.Lowest != nil && t.Highest != nil {
			tv.Lowest, tv.Highest = t.Lowest.String(), t.Highest.String()
		}
		for _, ms := range util.SortedKeys(t.Durations) {
			tv.Durations = append(tv.Durations, DurationCount{Millis: ms, Count: t.Durations[ms]})
		}
		byMidi := make(map[int]model.Pitch, len(t.Pitches))
		for p := range t.Pitches {
			byMidi[p.Midi()] = p
		}
		for _, m := range util.SortedKeys(byMidi) {
			p := byMidi[m]
			tv.Pitches = append(tv.Pitches, PitchCount{Pitch: p.String(), Midi: m, Count: t.Pitches[p]})
		}
		v.Tracks = append(v.Tracks, tv)
	}
	return v
}

func Write(w io.Writer, r *analysis.SongReport, format Format) error {
	switch format {
	case FormatText, "":
		return writeText(w, View(r))
	case FormatYAML:
		data, err := yaml.Marshal(View(r))
		if err != nil {
			return fmt.Errorf("failed to format report: %w", err)
		}
		_, err = w.Write(data)
		return err
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(View(r))
	}
	return fmt.Errorf("unsupported report format: %s", format)
}

func writeText(w io.Writer, v SongView) error {
	var b strings.Builder
	if v.Source != "" {
		fmt.Fprintf(&b, "%s\n", v.Source)
	}
	fmt.Fprintf(&b, "resolution: %d, tempo: %.2f bpm, text events: %d\n", v.Resolution, v.BPM, v.TextCount)
	if len(v.Tracks) == 0 {
		fmt.Fprintf(&b, "%s\n", NoVoiceTracks)
	}
	for _, t := range v.Tracks {
		fmt.Fprintf(&b, "\ntrack %d", t.Index)
		if t.Name != "" {
			fmt.Fprintf(&b, " %q", t.Name)
		}
		fmt.Fprintf(&b, " (%d notes)\n", t.NoteCount)
		if t.Range != nil {
			fmt.Fprintf(&b, "  range: %s-%s, %d semitones\n", t.Lowest, t.Highest, *t.Range)
		}
		b.WriteString("  durations:\n")
		for _, d := range t.Durations {
			fmt.Fprintf(&b, "    %dms: %d\n", d.Millis, d.Count)
		}
		b.WriteString("  pitches:\n")
		for _, p := range t.Pitches {
			fmt.Fprintf(&b, "    %s: %d\n", p.Pitch, p.Count)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}
