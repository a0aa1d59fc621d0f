package cmd

import (
	"bufio"
	"context"
	"io"
)

// lineReader delivers the lines of in on a channel so callers can also wait on a
// context. The reading goroutine stops when ctx is done or input ends.
type lineReader struct {
	lines <-chan string
	errc  <-chan error
}

func newLineReader(ctx context.Context, in io.Reader) *lineReader {
	lines := make(chan string)
	errc := make(chan error, 1)

	go func() {
		defer close(lines)

		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				errc <- ctx.Err()
				return
			}
		}
		errc <- scanner.Err()
	}()

	return &lineReader{lines: lines, errc: errc}
}

// next blocks until a line arrives, input ends (io.EOF) or ctx is done
func (r *lineReader) next(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-r.lines:
		if !ok {
			if err := <-r.errc; err != nil {
				return "", err
			}
			return "", io.EOF
		}
		return line, nil
	}
}
