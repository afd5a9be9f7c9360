package music

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/faiface/beep"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/wav"
)

// ErrUnsupportedFormat is returned for a track whose extension has no decoder.
var ErrUnsupportedFormat = errors.New("unsupported audio format")

// memFile serves an in-memory track to the decoders; it keeps io.Seeker
// visible so the decoded stream can rewind.
type memFile struct {
	*bytes.Reader
}

func (memFile) Close() error { return nil }

// isRemote reports whether location names an http(s) resource.
func isRemote(location string) bool {
	u, err := url.Parse(location)
	if err != nil {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}

// fetch reads the whole track, over HTTP or from disk.
func fetch(ctx context.Context, client *http.Client, location string) ([]byte, error) {
	if !isRemote(location) {
		data, err := os.ReadFile(location)
		if err != nil {
			return nil, fmt.Errorf("read track: %w", err)
		}
		return data, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch track: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch track: unexpected status %s", resp.Status)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read track body: %w", err)
	}
	return data, nil
}

// extension returns the lower-cased file extension of a URL or path.
func extension(location string) string {
	if isRemote(location) {
		u, _ := url.Parse(location)
		return strings.ToLower(path.Ext(u.Path))
	}
	return strings.ToLower(filepath.Ext(location))
}

// decode picks a decoder by extension.
func decode(location string, data []byte) (beep.StreamSeekCloser, beep.Format, error) {
	f := memFile{bytes.NewReader(data)}

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
		err      error
	)
	switch ext := extension(location); ext {
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".flac":
		streamer, format, err = flac.Decode(f)
	default:
		return nil, beep.Format{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, beep.Format{}, fmt.Errorf("decode track: %w", err)
	}
	return streamer, format, nil
}
