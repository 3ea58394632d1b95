package binary

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonhull/spikeglx/internal/types"
)

// writeInt16 writes samples (sample-major) as little-endian int16.
func writeInt16(t *testing.T, path string, samples []int16) {
	t.Helper()
	buf := make([]byte, 2*len(samples))
	for i, s := range samples {
		binary.LittleEndian.PutUint16(buf[2*i:], uint16(s))
	}
	require.NoError(t, os.WriteFile(path, buf, 0o644))
}

func TestMap_CreateThenReadInfersSampleCount(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rec.bin")

	w, err := Map[int16](path, Config{Channels: 3, Mode: ModeCreateWrite, Samples: 10})
	require.NoError(t, err)
	assert.True(t, w.Writable())
	rows, cols := w.Shape()
	assert.Equal(t, 10, rows)
	assert.Equal(t, 3, cols)
	require.NoError(t, w.Close())

	stat, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, int64(10*3*2), stat.Size())

	r, err := Map[int16](path, Config{Channels: 3})
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, r.Close()) })
	assert.Equal(t, 10, r.Samples())
	assert.False(t, r.Writable())
}

func TestMap_SampleCountFloorsPartialFrames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rec.bin")
	writeInt16(t, path, make([]int16, 7)) // 14 bytes, 2 channels -> 3 full samples

	v, err := Map[int16](path, Config{Channels: 2})
	require.NoError(t, err)
	defer v.Close()
	assert.Equal(t, 3, v.Samples())
	assert.Len(t, v.Data(), 6)
}

func TestMap_ReadsInterleavedSamples(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rec.bin")
	// 3 samples x 2 channels
	writeInt16(t, path, []int16{1, 10, 2, 20, 3, -30})

	v, err := Map[int16](path, Config{Channels: 2})
	require.NoError(t, err)
	defer v.Close()

	assert.Equal(t, int16(1), v.At(0, 0))
	assert.Equal(t, int16(20), v.At(1, 1))
	assert.Equal(t, int16(-30), v.At(2, 1))
	assert.Equal(t, []int16{2, 20}, v.Frame(1))
	assert.Equal(t, []int16{10, 20, -30}, v.Channel(1))
	assert.Equal(t, []int16{10, 20, -30}, v.Channel(-1))
}

func TestMap_Transpose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rec.bin")
	writeInt16(t, path, []int16{1, 10, 2, 20, 3, 30})

	v, err := Map[int16](path, Config{Channels: 2, Transpose: true})
	require.NoError(t, err)
	defer v.Close()

	rows, cols := v.Shape()
	assert.Equal(t, 2, rows)
	assert.Equal(t, 3, cols)
	assert.True(t, v.Transposed())
	assert.Equal(t, int16(30), v.At(1, 2))
	assert.Equal(t, int16(3), v.At(0, 2))
}

func TestMap_WritesReachFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rec.bin")
	writeInt16(t, path, []int16{0, 0, 0, 0})

	v, err := Map[int16](path, Config{Channels: 2, Mode: ModeAppendWrite})
	require.NoError(t, err)
	v.Set(1, 0, 42)
	require.NoError(t, v.Flush())
	require.NoError(t, v.Close())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, uint16(42), binary.LittleEndian.Uint16(raw[4:]))
}

func TestMap_TransposedWriteThrough(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rec.bin")

	v, err := Map[float32](path, Config{Channels: 4, Mode: ModeCreateWrite, Samples: 5, Transpose: true})
	require.NoError(t, err)
	v.Set(3, 4, 1.5) // channel 3, sample 4
	require.NoError(t, v.Close())

	r, err := Map[float32](path, Config{Channels: 4})
	require.NoError(t, err)
	defer r.Close()
	assert.Equal(t, float32(1.5), r.At(4, 3))
}

func TestMap_SetOnReadOnlyPanics(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rec.bin")
	writeInt16(t, path, []int16{0, 0})

	v, err := Map[int16](path, Config{Channels: 1})
	require.NoError(t, err)
	defer v.Close()
	assert.Panics(t, func() { v.Set(0, 0, 1) })
	assert.Panics(t, func() { v.At(2, 0) })
	assert.Panics(t, func() { v.At(0, 1) })
}

func TestMap_CreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "rec.bin")

	v, err := Map[uint16](path, Config{Channels: 1, Mode: ModeCreateWrite, Samples: 2})
	require.NoError(t, err)
	require.NoError(t, v.Close())
	assert.FileExists(t, path)
}

func TestMap_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.bin")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	v, err := Map[int16](path, Config{Channels: 385})
	require.NoError(t, err)
	assert.Equal(t, 0, v.Samples())
	assert.Empty(t, v.Data())
	require.NoError(t, v.Close())
	require.NoError(t, v.Close())
}

func TestMap_Errors(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "small.bin")
	writeInt16(t, existing, make([]int16, 4))

	tests := []struct {
		name     string
		path     string
		cfg      Config
		sentinel error
	}{
		{"missing file read", filepath.Join(dir, "nope.bin"), Config{Channels: 2}, types.ErrFileNotFound},
		{"missing file append", filepath.Join(dir, "nope.bin"), Config{Channels: 2, Mode: ModeAppendWrite}, types.ErrFileNotFound},
		{"create without samples", filepath.Join(dir, "new.bin"), Config{Channels: 2, Mode: ModeCreateWrite}, types.ErrConfig},
		{"zero channels", existing, Config{Channels: 0}, types.ErrConfig},
		{"negative channels", existing, Config{Channels: -3}, types.ErrConfig},
		{"too many samples", existing, Config{Channels: 2, Samples: 3}, types.ErrConfig},
		{"unknown mode", existing, Config{Channels: 2, Mode: Mode(9)}, types.ErrConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Map[int16](tt.path, tt.cfg)
			assert.Nil(t, v)
			assert.ErrorIs(t, err, tt.sentinel)
		})
	}

	assert.NoFileExists(t, filepath.Join(dir, "new.bin"))
}

func TestSizeOf(t *testing.T) {
	assert.Equal(t, 1, SizeOf[uint8]())
	assert.Equal(t, 2, SizeOf[int16]())
	assert.Equal(t, 4, SizeOf[float32]())
	assert.Equal(t, 8, SizeOf[float64]())
}

func TestMode_String(t *testing.T) {
	assert.Equal(t, "read", ModeRead.String())
	assert.Equal(t, "create-write", ModeCreateWrite.String())
	assert.Equal(t, "append-write", ModeAppendWrite.String())
	assert.Equal(t, "mode(7)", Mode(7).String())
	assert.False(t, ModeRead.Writable())
}
