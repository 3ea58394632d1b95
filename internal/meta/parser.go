// Package meta decodes SpikeGLX .meta sidecar files.
//
// A .meta file is newline-delimited "key=value" text. Keys starting with a
// tilde hold parenthesised lists such as "(a)(b)(c)"; every other value is a
// number when it parses as one and literal text otherwise.
package meta

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/simonhull/spikeglx/internal/types"
)

// maxLineSize bounds a single metadata line. imroTbl and snsShankMap for a
// 384-channel probe run to a few tens of kilobytes.
const maxLineSize = 4 << 20

// ParseFile reads and decodes the metadata file at path.
func ParseFile(path string) (*types.Metadata, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &types.FileNotFoundError{Path: path, What: "metadata file"}
		}
		return nil, fmt.Errorf("open metadata: %w", err)
	}
	defer f.Close()

	return Parse(f, path)
}

// Parse decodes metadata text from r. path is only used in error messages.
//
// The stream named by typeThis must be known and its sample-rate field must be
// present and numeric; otherwise the error matches types.ErrMalformedMetadata.
// Parse does not decode probe geometry.
func Parse(r io.Reader, path string) (*types.Metadata, error) {
	entries, err := readEntries(r, path)
	if err != nil {
		return nil, err
	}

	md := types.NewMetadata(path, entries)
	if err := deriveSampleRate(md); err != nil {
		return nil, err
	}
	return md, nil
}

func readEntries(r io.Reader, path string) ([]types.Entry, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var entries []types.Entry
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimRight(sc.Text(), "\r\n")
		if strings.TrimSpace(text) == "" {
			continue
		}
		entry, err := ParseLine(text)
		if err != nil {
			return nil, &types.MalformedMetadataError{Path: path, Line: line, Reason: err.Error()}
		}
		entries = append(entries, entry)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read metadata %s: %w", path, err)
	}
	return entries, nil
}

// ParseLine decodes a single "key=value" line.
//
// The line is split on the first '='. A key starting with '~' yields a list
// value stored under the key without the tilde; any other value becomes a
// number if strconv.ParseFloat accepts it, including values that overflow
// to ±Inf, and text otherwise.
func ParseLine(line string) (types.Entry, error) {
	eq := strings.IndexByte(line, '=')
	if eq == -1 {
		return types.Entry{}, fmt.Errorf("missing '=' in line %q", line)
	}

	key := strings.TrimSpace(line[:eq])
	value := strings.TrimRight(line[eq+1:], "\r\n")
	if key == "" || key == "~" {
		return types.Entry{}, fmt.Errorf("empty key in line %q", line)
	}

	if list, ok := strings.CutPrefix(key, "~"); ok {
		return types.Entry{Key: list, Value: types.ListValue(splitList(value))}, nil
	}

	// Out-of-range numbers keep the ±Inf or zero ParseFloat returns.
	if f, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil || errors.Is(err, strconv.ErrRange) {
		return types.Entry{Key: key, Value: types.NumberValue(f)}, nil
	}
	return types.Entry{Key: key, Value: types.TextValue(value)}, nil
}

// splitList turns "(a)(b)(c)" into ["a", "b", "c"].
func splitList(value string) []string {
	value = strings.TrimLeft(value, "(")
	value = strings.TrimRight(value, ")")
	return strings.Split(value, ")(")
}

// deriveSampleRate resolves typeThis to a stream and copies that stream's
// rate field into md.SampleRateHz.
func deriveSampleRate(md *types.Metadata) error {
	tag, err := md.Text("typeThis")
	if err != nil {
		return err
	}
	stream, ok := types.StreamFromTag(tag)
	if !ok {
		return &types.MalformedMetadataError{Path: md.Path, Key: "typeThis", Reason: fmt.Sprintf("unknown stream type %q", tag)}
	}

	rate, err := md.Number(stream.SampleRateKey())
	if err != nil {
		return err
	}

	md.Stream = stream
	md.SampleRateHz = rate
	return nil
}
