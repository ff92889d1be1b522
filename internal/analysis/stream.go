package analysis

import (
	"bytes"
	"errors"
	"io"
	"unicode/utf8"
)

// ConsumeStream reads r chunk by chunk, strictly in order, and pushes the
// whole accumulated text to onStream after each chunk. A multi-byte character
// split across chunks is held back until it is complete.
func ConsumeStream(r io.Reader, onStream func(string)) (string, error) {
	var acc bytes.Buffer
	buf := make([]byte, 4096)
	pushed := 0

	for {
		n, err := r.Read(buf)
		if n > 0 {
			acc.Write(buf[:n])
			if cut := completePrefix(acc.Bytes()); cut > pushed {
				pushed = cut
				if onStream != nil {
					onStream(string(acc.Bytes()[:cut]))
				}
			}
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return acc.String(), err
		}
	}

	if pushed < acc.Len() && onStream != nil {
		onStream(acc.String())
	}
	return acc.String(), nil
}

// completePrefix returns the length of b without a trailing partial rune.
func completePrefix(b []byte) int {
	for back := 1; back <= utf8.UTFMax && back <= len(b); back++ {
		start := len(b) - back
		if utf8.RuneStart(b[start]) {
			if utf8.FullRune(b[start:]) {
				return len(b)
			}
			return start
		}
	}
	return len(b)
}
