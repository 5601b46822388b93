// Package events reads and writes the per-event CSV files consumed and
// produced by pmucorr.
//
// Input files carry a header row. The muon momentum comes either from a
// "p" column (GeV) or from "px", "py" and "pz" columns; "contained" and
// "mu_quality" are required and accept 1/0/true/false.
package events

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"go-hep.org/x/hep/fmom"
)

// MuonMass is the muon rest mass in GeV.
const MuonMass = 0.1056583755

// Errors returned by the reader.
var (
	ErrMissingColumn = errors.New("events: missing column")
	ErrEmptyInput    = errors.New("events: empty input")
)

// Event is one reconstructed muon candidate.
type Event struct {
	P         float64
	Contained bool
	MuQuality bool
}

// FromMomentum builds an event from the muon 3-momentum.
func FromMomentum(px, py, pz float64, contained, muQuality bool) Event {
	e := math.Sqrt(px*px + py*py + pz*pz + MuonMass*MuonMass)
	p4 := fmom.NewPxPyPzE(px, py, pz, e)

	return Event{P: p4.P(), Contained: contained, MuQuality: muQuality}
}

// ParseError reports a malformed field.
type ParseError struct {
	Line   int
	Column string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("events: line %d, column %q: %v", e.Line, e.Column, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

type columns struct {
	p, px, py, pz int
	contained     int
	muQuality     int
}

func parseHeader(header []string) (columns, error) {
	cols := columns{p: -1, px: -1, py: -1, pz: -1, contained: -1, muQuality: -1}

	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "p":
			cols.p = i
		case "px":
			cols.px = i
		case "py":
			cols.py = i
		case "pz":
			cols.pz = i
		case "contained":
			cols.contained = i
		case "mu_quality":
			cols.muQuality = i
		}
	}

	hasVec := cols.px >= 0 && cols.py >= 0 && cols.pz >= 0
	switch {
	case cols.p < 0 && !hasVec:
		return cols, fmt.Errorf("%w: need p or px,py,pz", ErrMissingColumn)
	case cols.contained < 0:
		return cols, fmt.Errorf("%w: contained", ErrMissingColumn)
	case cols.muQuality < 0:
		return cols, fmt.Errorf("%w: mu_quality", ErrMissingColumn)
	}

	return cols, nil
}

// Reader decodes events from CSV.
type Reader struct {
	r    *csv.Reader
	cols columns
	line int
}

// NewReader reads the header row and returns a Reader positioned at the
// first event.
func NewReader(r io.Reader) (*Reader, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyInput
	}
	if err != nil {
		return nil, fmt.Errorf("events: read header: %w", err)
	}

	cols, err := parseHeader(header)
	if err != nil {
		return nil, err
	}

	line, _ := cr.FieldPos(0)

	return &Reader{r: cr, cols: cols, line: line}, nil
}

// Read returns the next event, or io.EOF after the last one.
func (r *Reader) Read() (Event, error) {
	rec, err := r.r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Event{}, io.EOF
		}
		return Event{}, fmt.Errorf("events: %w", err)
	}
	r.line, _ = r.r.FieldPos(0)

	contained, err := r.boolField(rec, r.cols.contained, "contained")
	if err != nil {
		return Event{}, err
	}

	muQuality, err := r.boolField(rec, r.cols.muQuality, "mu_quality")
	if err != nil {
		return Event{}, err
	}

	if r.cols.p >= 0 {
		p, err := r.floatField(rec, r.cols.p, "p")
		if err != nil {
			return Event{}, err
		}
		return Event{P: p, Contained: contained, MuQuality: muQuality}, nil
	}

	var v [3]float64
	for i, c := range [3]struct {
		idx  int
		name string
	}{{r.cols.px, "px"}, {r.cols.py, "py"}, {r.cols.pz, "pz"}} {
		v[i], err = r.floatField(rec, c.idx, c.name)
		if err != nil {
			return Event{}, err
		}
	}

	return FromMomentum(v[0], v[1], v[2], contained, muQuality), nil
}

// ReadAll reads all remaining events.
func (r *Reader) ReadAll() ([]Event, error) {
	var out []Event
	for {
		ev, err := r.Read()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, ev)
	}
}

// Line returns the input line of the most recently read record.
func (r *Reader) Line() int {
	return r.line
}

func (r *Reader) floatField(rec []string, idx int, name string) (float64, error) {
	if idx >= len(rec) {
		return 0, &ParseError{Line: r.line, Column: name, Err: ErrMissingColumn}
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(rec[idx]), 64)
	if err != nil {
		return 0, &ParseError{Line: r.line, Column: name, Err: err}
	}

	return v, nil
}

func (r *Reader) boolField(rec []string, idx int, name string) (bool, error) {
	if idx >= len(rec) {
		return false, &ParseError{Line: r.line, Column: name, Err: ErrMissingColumn}
	}

	v, err := strconv.ParseBool(strings.TrimSpace(rec[idx]))
	if err != nil {
		return false, &ParseError{Line: r.line, Column: name, Err: err}
	}

	return v, nil
}

// Writer encodes corrected events as CSV.
type Writer struct {
	w *csv.Writer
}

// NewWriter writes the header row and returns a Writer.
func NewWriter(w io.Writer) (*Writer, error) {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"p", "contained", "mu_quality", "correction"}); err != nil {
		return nil, fmt.Errorf("events: write header: %w", err)
	}

	return &Writer{w: cw}, nil
}

// Write appends one event and its correction.
func (w *Writer) Write(ev Event, correction float64) error {
	rec := []string{
		strconv.FormatFloat(ev.P, 'g', -1, 64),
		boolString(ev.Contained),
		boolString(ev.MuQuality),
		strconv.FormatFloat(correction, 'g', -1, 64),
	}

	if err := w.w.Write(rec); err != nil {
		return fmt.Errorf("events: write: %w", err)
	}

	return nil
}

// Flush writes buffered rows to the underlying writer.
func (w *Writer) Flush() error {
	w.w.Flush()
	return w.w.Error()
}

func boolString(v bool) string {
	if v {
		return "1"
	}
	return "0"
}
