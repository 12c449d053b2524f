package notes

import (
	"testing"

	"github.com/jsphweid/songtask/model"
	"github.com/stretchr/testify/assert"
)

func TestNotesPairsStartAndEnd(t *testing.T) {
	events := []model.Event{
		model.Tempo(0, 0, 500000),
		model.NoteOn(0, 0, 0, 60, 100),
		model.NoteOff(480, 480, 0, 60, 0),
		model.NoteOn(480, 0, 0, 62, 100),
		model.NoteOn(960, 480, 0, 62, 0),
	}

	notes := New(nil).Notes(events)
	assert.Equal(t, []model.Note{
		{Pitch: 60, StartTick: 0, DurationTicks: 480},
		{Pitch: 62, StartTick: 480, DurationTicks: 480},
	}, notes)
}

func TestNotesClosesOldestOpenRegardlessOfPitch(t *testing.T) {
	events := []model.Event{
		model.NoteOn(0, 0, 0, 60, 100),
		model.NoteOn(100, 100, 0, 64, 100),
		model.NoteOff(200, 100, 0, 64, 0),
		model.NoteOff(300, 100, 0, 60, 0),
	}

	notes := New(nil).Notes(events)
	assert.Equal(t, []model.Note{
		{Pitch: 64, StartTick: 0, DurationTicks: 200},
		{Pitch: 60, StartTick: 100, DurationTicks: 200},
	}, notes)
}

func TestNotesWithPitchStack(t *testing.T) {
	events := []model.Event{
		model.NoteOn(0, 0, 0, 60, 100),
		model.NoteOn(100, 100, 0, 64, 100),
		model.NoteOff(200, 100, 0, 64, 0),
		model.NoteOff(300, 100, 0, 60, 0),
	}

	notes := New(nil, WithStrategy(PitchStack)).Notes(events)
	assert.Equal(t, []model.Note{
		{Pitch: 64, StartTick: 100, DurationTicks: 100},
		{Pitch: 60, StartTick: 0, DurationTicks: 300},
	}, notes)
}

func TestNotesDropsUnmatchedEnd(t *testing.T) {
	events := []model.Event{
		model.NoteOff(0, 0, 0, 60, 0),
		model.NoteOn(10, 10, 0, 62, 80),
		model.NoteOff(20, 10, 0, 62, 0),
		model.NoteOff(30, 10, 0, 62, 0),
	}

	notes := New(nil).Notes(events)
	assert.Equal(t, []model.Note{{Pitch: 62, StartTick: 10, DurationTicks: 10}}, notes)
}

func TestNotesDropsInvalidPitchWithoutConsumingQueue(t *testing.T) {
	events := []model.Event{
		model.NoteOn(0, 0, 0, 125, 100),
		model.NoteOff(10, 10, 0, 130, 0),
		model.NoteOff(20, 10, 0, 60, 0),
	}

	notes := New(nil).Notes(events)
	assert.Equal(t, []model.Note{{Pitch: 60, StartTick: 0, DurationTicks: 20}}, notes)
}

func TestNotesIgnoresOtherKinds(t *testing.T) {
	events := []model.Event{
		model.Text(0, 0, model.TextLyric, "la"),
		model.Other(0, 0, []byte{0xC0, 5}),
		model.Tempo(0, 0, 500000),
	}

	notes := New(nil).Notes(events)
	assert.Empty(t, notes)
	assert.NotNil(t, notes)
}

func TestSongKeepsTrackOrder(t *testing.T) {
	song := &model.Song{
		Resolution: 96,
		Tracks: []model.Track{
			{Events: []model.Event{model.Tempo(0, 0, 500000)}},
			{Events: []model.Event{model.NoteOn(0, 0, 0, 60, 1), model.NoteOff(96, 96, 0, 60, 0)}},
		},
	}

	all := New(nil).Song(song)
	assert := assert.New(t)
	assert.Len(all, 2)
	assert.Empty(all[0])
	assert.Equal([]model.Note{{Pitch: 60, StartTick: 0, DurationTicks: 96}}, all[1])
}

func TestFIFOReusesQueue(t *testing.T) {
	f := FIFO()
	for i := 0; i < 3; i++ {
		f.Push(model.NoteOn(int64(i), 0, 0, 60, 1))
		e, ok := f.Pop(model.Event{})
		assert.True(t, ok)
		assert.Equal(t, int64(i), e.Tick)
	}
	_, ok := f.Pop(model.Event{})
	assert.False(t, ok)
}
