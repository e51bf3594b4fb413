package cli

import (
	"bufio"
	"io"
)

// promptReader reads answer lines from the user. Lines end at LF or CR so
// Enter works in normal and raw terminal modes; CRLF counts as one ending.
type promptReader struct {
	r       *bufio.Reader
	afterCR bool
}

func newPromptReader(in io.Reader) *promptReader {
	if in == nil {
		return &promptReader{}
	}
	return &promptReader{r: bufio.NewReader(in)}
}

// ReadLine returns the next line without its terminator. A final line
// without a terminator is returned with a nil error; io.EOF follows.
func (p *promptReader) ReadLine() (string, error) {
	if p.r == nil {
		return "", io.EOF
	}

	var buf []byte
	for {
		b, err := p.r.ReadByte()
		if err != nil {
			if err == io.EOF && len(buf) > 0 {
				return string(buf), nil
			}
			return string(buf), err
		}

		if p.afterCR {
			p.afterCR = false
			if b == '\n' {
				continue
			}
		}

		switch b {
		case '\n':
			return string(buf), nil
		case '\r':
			p.afterCR = true
			return string(buf), nil
		default:
			buf = append(buf, b)
		}
	}
}
