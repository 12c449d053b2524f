// Package voice finds the tracks that a single voice can perform.
package voice

import (
	"log/slog"

	"github.com/jsphweid/songtask/model"
	"github.com/jsphweid/songtask/util"
)

// Track is a track's notes together with its index in the song.
type Track struct {
	Index int
	Notes []model.Note
}

// IsCandidate reports whether no note starts before the previous one ends.
// An empty sequence passes; callers must check for emptiness themselves.
func IsCandidate(notes []model.Note) bool {
	for i := 1; i < len(notes); i++ {
		if notes[i].StartTick < notes[i-1].EndTick() {
			return false
		}
	}
	return true
}

type Classifier struct {
	Logger *slog.Logger
}

func NewClassifier(logger *slog.Logger) *Classifier {
	return &Classifier{Logger: util.OrDiscard(logger)}
}

// Candidates returns the non-empty monophonic tracks in track order.
func (c *Classifier) Candidates(all [][]model.Note) []Track {
	var res []Track
	for i, notes := range all {
		if len(notes) == 0 {
			continue
		}
		if !IsCandidate(notes) {
			c.Logger.Debug("track is polyphonic", "track", i)
			continue
		}
		res = append(res, Track{Index: i, Notes: notes})
	}
	c.Logger.Debug("found voice tracks", "count", len(res), "of", len(all))
	return res
}

// Select returns the candidate whose note count is closest to textCount.
// Ties go to the lowest track index. ok is false if no track is a candidate.
func (c *Classifier) Select(all [][]model.Note, textCount int) (Track, bool) {
	var best Track
	bestDiff := -1
	for _, t := range c.Candidates(all) {
		diff := util.Abs(len(t.Notes) - textCount)
		if bestDiff < 0 || diff < bestDiff {
			best, bestDiff = t, diff
		}
	}
	if bestDiff < 0 {
		return Track{}, false
	}
	c.Logger.Debug("selected voice track", "track", best.Index, "notes", len(best.Notes), "texts", textCount)
	return best, true
}
