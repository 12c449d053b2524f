package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChangedFileName(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("song-trans2-tempo10.5.mid", ChangedFileName("song.mid", 2, 10.5))
	assert.Equal(filepath.Join("a", "b", "x-trans-3-tempo-20.mid"), ChangedFileName(filepath.Join("a", "b", "x.midi"), -3, -20))
	assert.Equal("noext-trans0-tempo0.mid", ChangedFileName("noext", 0, 0))
}

func TestSortedKeys(t *testing.T) {
	m := map[int64]int{500: 1, 250: 4, 1000: 2}
	assert.Equal(t, []int64{250, 500, 1000}, SortedKeys(m))
}

func TestAbs(t *testing.T) {
	assert.Equal(t, 3, Abs(-3))
	assert.Equal(t, int64(5), Abs(int64(5)))
}

func TestGatherAllMidiPaths(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.mid", "b.MIDI", "c.txt", filepath.Join("sub", "d.mid")} {
		path := filepath.Join(dir, name)
		assert.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		assert.NoError(t, os.WriteFile(path, nil, 0644))
	}

	assert := assert.New(t)
	paths, err := GatherAllMidiPaths(dir, 0)
	assert.NoError(err)
	assert.Len(paths, 3)

	limited, err := GatherAllMidiPaths(dir, 2)
	assert.NoError(err)
	assert.Len(limited, 2)

	single, err := GatherAllMidiPaths(filepath.Join(dir, "c.txt"), 0)
	assert.NoError(err)
	assert.Equal([]string{filepath.Join(dir, "c.txt")}, single)

	_, err = GatherAllMidiPaths(filepath.Join(dir, "missing"), 0)
	assert.Error(err)
}

func TestWriteFileAtomic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.mid")
	assert := assert.New(t)
	assert.NoError(WriteFileAtomic(path, []byte("MThd")))
	data, err := os.ReadFile(path)
	assert.NoError(err)
	assert.Equal([]byte("MThd"), data)

	entries, err := os.ReadDir(filepath.Dir(path))
	assert.NoError(err)
	assert.Len(entries, 1)
}
