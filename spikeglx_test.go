package spikeglx_test

import (
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonhull/spikeglx"
)

// probeMeta describes a four-channel NP1.0 probe file plus the sync channel.
const probeMeta = "imDatPrb_type=0\n" +
	"imSampRate=30000\n" +
	"nSavedChans=5\n" +
	"typeThis=imec\n" +
	"~imroTbl=(0,384)(0 0 0 500 250 1)(1 0 0 500 250 1)(2 0 0 500 250 1)(3 0 0 500 250 1)\n" +
	"~snsShankMap=(1,2,480)(0:0:0:1)(0:1:0:1)(0:0:1:1)(0:1:1:1)\n"

const nidqMeta = "niSampRate=25000\n" +
	"nSavedChans=2\n" +
	"typeThis=nidq\n"

// probeFrames holds six samples of five channels; the last column is the
// sync word with lane 3 high for samples 1-2 and lane 0 high for sample 4.
var probeFrames = [][]int16{
	{10, 20, 30, 40, 0},
	{11, 21, 31, 41, 8},
	{12, 22, 32, 42, 8},
	{13, 23, 33, 43, 0},
	{14, 24, 34, 44, 1},
	{15, 25, 35, 45, 0},
}

// writeRecording writes base+".meta" and base+".bin" under dir and returns
// the binary path.
func writeRecording(t *testing.T, dir, base, meta string, frames [][]int16) string {
	t.Helper()

	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, base+".meta"), []byte(meta), 0o644))

	var raw []byte
	for _, frame := range frames {
		for _, v := range frame {
			raw = binary.LittleEndian.AppendUint16(raw, uint16(v))
		}
	}
	binPath := filepath.Join(dir, base+".bin")
	require.NoError(t, os.WriteFile(binPath, raw, 0o644))
	return binPath
}

func writeMeta(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rec.ap.meta")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseMeta_DecodesGeometry(t *testing.T) {
	md, err := spikeglx.ParseMeta(writeMeta(t, probeMeta))
	require.NoError(t, err)

	assert.Equal(t, spikeglx.StreamIMEC, md.Stream)
	assert.Equal(t, 30000.0, md.SampleRateHz)
	assert.True(t, md.HasGeometry())
	assert.NoError(t, md.GeometryErr)
	assert.Empty(t, md.Warnings)
	assert.Equal(t, []int{0, 1, 2, 3}, md.ChannelIndex)
	assert.Equal(t, []spikeglx.Point{
		{X: 11, Y: 0},
		{X: 59, Y: 0},
		{X: 27, Y: 20},
		{X: 43, Y: 20},
	}, md.Coords)
}

func TestParseMeta_GeometryIsBestEffort(t *testing.T) {
	content := strings.Replace(probeMeta, "imDatPrb_type=0", "imDatPrb_type=999", 1)

	md, err := spikeglx.ParseMeta(writeMeta(t, content))
	require.NoError(t, err)

	assert.False(t, md.HasGeometry())
	assert.Nil(t, md.Coords)
	assert.ErrorIs(t, md.GeometryErr, spikeglx.ErrUnsupportedProbeType)
	require.Len(t, md.Warnings, 1)
	assert.Equal(t, "geometry", md.Warnings[0].Stage)
	assert.Equal(t, 30000.0, md.SampleRateHz)
}

func TestParseMeta_StrictGeometry(t *testing.T) {
	content := strings.Replace(probeMeta, "imDatPrb_type=0", "imDatPrb_type=999", 1)

	md, err := spikeglx.ParseMeta(writeMeta(t, content), spikeglx.WithStrictGeometry())
	assert.Nil(t, md)
	assert.ErrorIs(t, err, spikeglx.ErrUnsupportedProbeType)

	var probeErr *spikeglx.UnsupportedProbeTypeError
	require.True(t, errors.As(err, &probeErr))
	assert.Equal(t, 999, probeErr.ProbeType)
}

func TestParseMeta_AuxiliaryStreamHasNoGeometry(t *testing.T) {
	md, err := spikeglx.ParseMeta(writeMeta(t, nidqMeta))
	require.NoError(t, err)

	assert.Equal(t, spikeglx.StreamNIDQ, md.Stream)
	assert.Equal(t, 25000.0, md.SampleRateHz)
	assert.False(t, md.HasGeometry())
	assert.ErrorIs(t, md.GeometryErr, spikeglx.ErrMalformedMetadata)
}

func TestParseMeta_Errors(t *testing.T) {
	_, err := spikeglx.ParseMeta(filepath.Join(t.TempDir(), "absent.meta"))
	assert.ErrorIs(t, err, spikeglx.ErrFileNotFound)

	_, err = spikeglx.ParseMeta(writeMeta(t, "typeThis=imec\nimSampRate=30000\nnot a pair\n"))
	assert.ErrorIs(t, err, spikeglx.ErrMalformedMetadata)

	var malformed *spikeglx.MalformedMetadataError
	require.True(t, errors.As(err, &malformed))
	assert.Equal(t, 3, malformed.Line)
}

func TestParseMetaReader(t *testing.T) {
	md, err := spikeglx.ParseMetaReader(strings.NewReader(probeMeta), "inline.meta")
	require.NoError(t, err)
	assert.Equal(t, "inline.meta", md.Path)
	assert.Len(t, md.Coords, 4)

	v, ok := md.Get("imroTbl")
	require.True(t, ok)
	assert.Equal(t, spikeglx.KindList, v.Kind())
}

func TestDecodeGeometry_ShankSeparation(t *testing.T) {
	content := "imDatPrb_type=24\n" +
		"imSampRate=30000\n" +
		"nSavedChans=3\n" +
		"typeThis=imec\n" +
		"~imroTbl=(24,2)(0 0 0 0 0)(1 3 0 0 7)\n" +
		"~snsShankMap=(4,2,640)(0:0:0:1)(3:1:0:1)\n"

	md, err := spikeglx.ParseMetaReader(strings.NewReader(content), "np2.meta")
	require.NoError(t, err)

	g, err := spikeglx.DecodeGeometry(md, spikeglx.WithShankSeparation(300))
	require.NoError(t, err)
	assert.Equal(t, spikeglx.ProbeNP20Multi, g.ProbeType)
	assert.Equal(t, []spikeglx.Point{
		{X: 0, Y: 0},
		{X: 3*300 + 32, Y: 3 * 15},
	}, g.Coords)

	// ParseMeta used the default separation.
	assert.Equal(t, spikeglx.Point{X: 3*spikeglx.DefaultShankSeparation + 32, Y: 45}, md.Coords[1])
}

func TestDetectEvents(t *testing.T) {
	ev := spikeglx.DetectEvents([]int16{0, 8, 0}, 1)
	assert.Equal(t, map[int][]float64{3: {1}}, ev.Onsets)
	assert.Equal(t, map[int][]float64{3: {2}}, ev.Offsets)

	lanes := spikeglx.Lanes([]int16{8})
	require.Len(t, lanes, 1)
	assert.Len(t, lanes[0], spikeglx.SyncLanes)
	assert.True(t, lanes[0][3])

	assert.Equal(t, [][]bool{{true, false}}, spikeglx.UnpackBits([]uint8{1}, 2))
}

func TestMapBinary_CreateThenRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "synthetic.bin")

	w, err := spikeglx.MapBinary[int16](path, 3, spikeglx.ModeCreateWrite, spikeglx.WithSampleCount(4))
	require.NoError(t, err)
	for s := range 4 {
		for c := range 3 {
			w.Set(s, c, int16(s*10+c))
		}
	}
	require.NoError(t, w.Flush())
	require.NoError(t, w.Close())

	r, err := spikeglx.MapBinary[int16](path, 3, spikeglx.ModeRead)
	require.NoError(t, err)
	defer r.Close()

	rows, cols := r.Shape()
	assert.Equal(t, 4, rows)
	assert.Equal(t, 3, cols)
	assert.Equal(t, int16(32), r.At(3, 2))
	assert.Equal(t, []int16{2, 12, 22, 32}, r.Channel(-1))

	_, err = spikeglx.MapBinary[int16](path, 3, spikeglx.ModeCreateWrite)
	assert.ErrorIs(t, err, spikeglx.ErrConfig)
}

func TestVersion(t *testing.T) {
	assert.Equal(t, spikeglx.Version, spikeglx.GetVersion())
	info := spikeglx.GetVersionInfo()
	assert.Equal(t, spikeglx.Version, info.Version)
	assert.NotEmpty(t, info.GoVersion)
}
