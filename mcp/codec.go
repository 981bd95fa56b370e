package mcp

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// maxLineBytes bounds the size of a single JSON-RPC message on the wire.
const maxLineBytes = 4 * 1024 * 1024

// lineCodec frames JSON-RPC messages as one JSON object per
// newline-terminated line. Responses are written unbuffered so a client
// reading from a pipe sees each one as soon as it is produced.
type lineCodec struct {
	scanner *bufio.Scanner
	out     io.Writer
}

func newLineCodec(in io.Reader, out io.Writer) *lineCodec {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	return &lineCodec{
		scanner: scanner,
		out:     out,
	}
}

// next returns the next non-blank input line with the line terminator (and
// any stray carriage return) removed. Whitespace-only lines are skipped.
// Returns io.EOF at end of input.
func (c *lineCodec) next() ([]byte, error) {
	for c.scanner.Scan() {
		line := strings.TrimSpace(c.scanner.Text())
		if line == "" {
			continue
		}
		return []byte(line), nil
	}
	if err := c.scanner.Err(); err != nil {
		return nil, err
	}
	return nil, io.EOF
}

// write serializes a response as a single JSON object followed by a newline.
// encoding/json escapes newlines inside strings, so the framing invariant of
// one object per line holds for any payload.
func (c *lineCodec) write(resp *Response) error {
	payload, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("marshal response: %w", err)
	}
	payload = append(payload, '\n')
	if _, err := c.out.Write(payload); err != nil {
		return err
	}
	return nil
}
