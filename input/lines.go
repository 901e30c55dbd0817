package input

import (
	"bufio"
	"strings"

	"github.com/ab180/carrierdelay/lrdd"
	"github.com/ab180/carrierdelay/output"
	"github.com/pkg/errors"
	"github.com/therne/errorist"
)

const maxLineLength = 1024 * 1024

// Line is a line of a text file. Number starts from 1.
type Line struct {
	Number int
	Text   string
}

// LineFeeder feeds lines of a local text file, in file order.
type LineFeeder struct {
	Path string
}

func NewLineFeeder(path string) *LineFeeder {
	return &LineFeeder{Path: path}
}

// FeedInput writes a row for each non-empty line. The value of the row is a Line.
// The file is closed on every return path.
func (l *LineFeeder) FeedInput(out output.Output) (err error) {
	file, err := Open(l.Path)
	if err != nil {
		return errors.Wrap(err, "open input")
	}
	defer errorist.CloseWithErrCapture(file, &err, errorist.Wrapf("close input"))

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 64*1024), maxLineLength)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		text := strings.TrimSuffix(scanner.Text(), "\r")
		if text == "" {
			continue
		}
		if err := out.Write(lrdd.Value(Line{Number: lineNo, Text: text})); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrapf(err, "read input at line %d", lineNo+1)
	}
	return nil
}

// RowsFeeder feeds predefined rows.
type RowsFeeder struct {
	Rows []*lrdd.Row
}

func (p *RowsFeeder) FeedInput(out output.Output) error {
	return out.Write(p.Rows...)
}
