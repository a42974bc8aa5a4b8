package stream

import (
	"fmt"
	"io"
	"strings"
)

// metaReader strips ICY metadata blocks out of a SHOUTcast stream.
// The server interleaves a metadata block every metaint audio bytes:
// one length byte (count of 16-byte units) followed by the padded
// metadata text. Extracted titles are delivered through the callback;
// the audio bytes pass through untouched.
type metaReader struct {
	r       io.Reader
	metaint int
	left    int
	onTitle func(title string)
}

func newMetaReader(r io.Reader, metaint int, onTitle func(string)) *metaReader {
	return &metaReader{
		r:       r,
		metaint: metaint,
		left:    metaint,
		onTitle: onTitle,
	}
}

func (m *metaReader) Read(p []byte) (int, error) {
	if m.left == 0 {
		if err := m.readMeta(); err != nil {
			return 0, err
		}
		m.left = m.metaint
	}
	if len(p) > m.left {
		p = p[:m.left]
	}
	n, err := m.r.Read(p)
	m.left -= n
	return n, err
}

func (m *metaReader) readMeta() error {
	var lengthByte [1]byte
	if _, err := io.ReadFull(m.r, lengthByte[:]); err != nil {
		return err
	}
	size := int(lengthByte[0]) * 16
	if size == 0 {
		return nil
	}
	block := make([]byte, size)
	if _, err := io.ReadFull(m.r, block); err != nil {
		return fmt.Errorf("truncated metadata block: %w", err)
	}
	if title, ok := parseStreamTitle(string(block)); ok && m.onTitle != nil {
		m.onTitle(title)
	}
	return nil
}

// parseStreamTitle extracts the StreamTitle value from a metadata
// block such as "StreamTitle='Artist - Song';StreamUrl='';"
func parseStreamTitle(block string) (string, bool) {
	const key = "StreamTitle='"
	start := strings.Index(block, key)
	if start < 0 {
		return "", false
	}
	rest := block[start+len(key):]
	end := strings.Index(rest, "';")
	if end < 0 {
		// Some servers omit the trailing semicolon on the last field.
		end = strings.LastIndex(rest, "'")
		if end < 0 {
			return "", false
		}
	}
	title := strings.TrimRight(rest[:end], " \x00")
	if title == "" {
		return "", false
	}
	return title, true
}
