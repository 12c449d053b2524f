package midi

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jsphweid/songtask/model"
	"github.com/stretchr/testify/assert"
)

func testSong() *model.Song {
	return &model.Song{
		Resolution: 480,
		Tracks: []model.Track{
			{Events: []model.Event{
				model.Text(0, 0, model.TextTrackName, "conductor"),
				model.Tempo(0, 0, 500000),
			}},
			{Events: []model.Event{
				model.Text(0, 0, model.TextLyric, "hel"),
				model.NoteOn(0, 0, 2, 60, 100),
				model.NoteOff(480, 480, 2, 60, 64),
				model.Text(480, 0, model.TextLyric, "lo"),
				model.NoteOn(480, 0, 2, 67, 90),
				model.NoteOff(1200, 720, 2, 67, 0),
			}},
		},
	}
}

func withoutEndOfTrack(events []model.Event) []model.Event {
	var res []model.Event
	for _, e := range events {
		if !isEndOfTrack(e) {
			e.Raw = nil
			res = append(res, e)
		}
	}
	return res
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	song := testSong()
	var buf bytes.Buffer
	assert := assert.New(t)
	assert.NoError(Encode(&buf, song, PitchReject))

	decoded, err := Decode(&buf)
	assert.NoError(err)
	assert.Equal(song.Resolution, decoded.Resolution)
	if assert.Len(decoded.Tracks, len(song.Tracks)) {
		for i := range song.Tracks {
			assert.Equal(song.Tracks[i].Events, withoutEndOfTrack(decoded.Tracks[i].Events), "track %d", i)
		}
	}
}

func TestDecodeKeepsRawForPassthrough(t *testing.T) {
	var buf bytes.Buffer
	assert := assert.New(t)
	assert.NoError(Encode(&buf, testSong(), PitchReject))
	decoded, err := Decode(&buf)
	assert.NoError(err)

	for _, tr := range decoded.Tracks {
		for _, e := range tr.Events {
			assert.NotEmpty(e.Raw, "%v", e)
		}
	}

	var again bytes.Buffer
	assert.NoError(Encode(&again, decoded, PitchReject))
	redecoded, err := Decode(&again)
	assert.NoError(err)
	assert.Equal(decoded, redecoded)
}

// smfBytes is a format 0 file at 96 ticks per quarter note holding a
// NoteOn that is closed by a zero velocity NoteOn.
func smfBytes() []byte {
	track := []byte{
		0x00, 0xFF, 0x51, 0x03, 0x0F, 0x42, 0x40, // tempo 1000000 (60 bpm)
		0x00, 0xFF, 0x05, 0x02, 'l', 'a', // lyric
		0x00, 0x90, 0x3C, 0x40, // note on C4
		0x60, 0x90, 0x3C, 0x00, // note on C4, velocity 0 after 96 ticks
		0x00, 0xFF, 0x2F, 0x00,
	}
	var buf bytes.Buffer
	buf.Write([]byte("MThd"))
	buf.Write([]byte{0, 0, 0, 6, 0, 0, 0, 1, 0, 96})
	buf.Write([]byte("MTrk"))
	buf.Write([]byte{0, 0, 0, byte(len(track))})
	buf.Write(track)
	return buf.Bytes()
}

func TestDecodeHandWrittenFile(t *testing.T) {
	song, err := Decode(bytes.NewReader(smfBytes()))
	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal(uint16(96), song.Resolution)
	if !assert.Len(song.Tracks, 1) {
		return
	}

	events := song.Tracks[0].Events
	if assert.GreaterOrEqual(len(events), 4) {
		assert.Equal(model.KindTempo, events[0].Kind)
		assert.Equal(uint32(1000000), events[0].MPQN)
		assert.Equal(model.KindText, events[1].Kind)
		assert.Equal(model.TextLyric, events[1].TextKind)
		assert.Equal("la", events[1].Text)
		assert.True(events[2].IsNoteStart())
		assert.Equal(60, events[2].Pitch)
		assert.True(events[3].IsNoteEnd())
		assert.Equal(int64(96), events[3].Tick)
		assert.Equal(uint32(96), events[3].Delta)
	}
}

func TestDecodeGarbage(t *testing.T) {
	_, err := Decode(bytes.NewReader([]byte("definitely not midi")))
	assert.Error(t, err)
}

func TestReadMissingFile(t *testing.T) {
	_, err := ReadMidiFile(filepath.Join(t.TempDir(), "missing.mid"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestPitchPolicy(t *testing.T) {
	song := testSong()
	song.Tracks[1].Events[4] = song.Tracks[1].Events[4].WithPitch(130)
	song.Tracks[1].Events[5] = song.Tracks[1].Events[5].WithPitch(130)

	assert := assert.New(t)
	var buf bytes.Buffer
	err := Encode(&buf, song, PitchReject)
	assert.True(errors.Is(err, ErrPitchOutOfRange))
	assert.Contains(err.Error(), "track 1 event 4")

	buf.Reset()
	assert.NoError(Encode(&buf, song, PitchClamp))
	decoded, err := Decode(&buf)
	assert.NoError(err)
	assert.Equal(127, decoded.Tracks[1].Events[4].Pitch)

	low, err := PitchClamp.key(-4)
	assert.NoError(err)
	assert.Equal(uint8(0), low)
}

func TestParsePitchPolicy(t *testing.T) {
	assert := assert.New(t)
	p, err := ParsePitchPolicy("")
	assert.NoError(err)
	assert.Equal(PitchReject, p)
	p, err = ParsePitchPolicy("Clamp")
	assert.NoError(err)
	assert.Equal(PitchClamp, p)
	_, err = ParsePitchPolicy("wrap")
	assert.Error(err)
}

func TestWriteAndReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "song.mid")
	assert := assert.New(t)
	assert.NoError(WriteMidiFile(path, testSong(), PitchReject))

	song, err := ReadMidiFile(path)
	assert.NoError(err)
	assert.Len(song.Tracks, 2)
}

func TestMissingRaw(t *testing.T) {
	song := &model.Song{Resolution: 96, Tracks: []model.Track{{Events: []model.Event{model.Other(0, 0, nil)}}}}
	err := Encode(&bytes.Buffer{}, song, PitchReject)
	assert.True(t, errors.Is(err, ErrMissingRaw))
}

func TestTempoOutOfRange(t *testing.T) {
	assert := assert.New(t)
	for _, mpqn := range []uint32{0, 0x1000000, 50_000_000} {
		song := &model.Song{Resolution: 96, Tracks: []model.Track{{Events: []model.Event{model.Tempo(0, 0, mpqn)}}}}
		err := Encode(&bytes.Buffer{}, song, PitchClamp)
		assert.ErrorIs(err, ErrTempoOutOfRange, mpqn)
		assert.Contains(err.Error(), "track 0 event 0")
	}

	song := &model.Song{Resolution: 96, Tracks: []model.Track{{Events: []model.Event{model.Tempo(0, 0, 0xFFFFFF)}}}}
	var buf bytes.Buffer
	assert.NoError(Encode(&buf, song, PitchReject))
	decoded, err := Decode(&buf)
	assert.NoError(err)
	tempo, ok := decoded.FirstTempo()
	assert.True(ok)
	assert.Equal(uint32(0xFFFFFF), tempo.MPQN)
}

func TestEncodeWritesFormatOne(t *testing.T) {
	var buf bytes.Buffer
	assert.NoError(t, Encode(&buf, testSong(), PitchReject))
	header := buf.Bytes()
	assert.Equal(t, []byte("MThd"), header[:4])
	// format, then track count
	assert.Equal(t, []byte{0, 1, 0, 2}, header[8:12])
}
