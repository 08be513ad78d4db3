// Package dataset reads and writes the CSV files exchanged between the
// collect, classify and ratings commands.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/kittclouds/pollfinder/internal/ratings"
)

// Positive is a sentence labelled with the pollster it credits.
type Positive struct {
	Text     string
	Pollster string
}

// ReadPositive reads text,pollster rows.
func ReadPositive(r io.Reader) ([]Positive, error) {
	records, err := readAll(r, 2)
	if err != nil {
		return nil, err
	}
	out := make([]Positive, len(records))
	for i, rec := range records {
		out[i] = Positive{Text: rec[0], Pollster: rec[1]}
	}
	return out, nil
}

// ReadNegative reads single-column text rows.
func ReadNegative(r io.Reader) ([]string, error) {
	records, err := readAll(r, 1)
	if err != nil {
		return nil, err
	}
	return column(records, 0), nil
}

// ReadRoster reads pollster names from the first column. Rows may carry
// further columns, such as a grade.
func ReadRoster(r io.Reader) ([]string, error) {
	records, err := readAll(r, -1)
	if err != nil {
		return nil, err
	}
	return column(records, 0), nil
}

// ReadRatings reads name,grade rows.
func ReadRatings(r io.Reader) ([]ratings.Rating, error) {
	records, err := readAll(r, 2)
	if err != nil {
		return nil, err
	}
	out := make([]ratings.Rating, len(records))
	for i, rec := range records {
		out[i] = ratings.Rating{Pollster: rec[0], Grade: rec[1]}
	}
	return out, nil
}

// WritePositive writes text,pollster rows, dropping repeats.
func WritePositive(w io.Writer, cases []Positive) error {
	rows := make([][]string, 0, len(cases))
	for _, c := range cases {
		rows = append(rows, []string{c.Text, c.Pollster})
	}
	return writeAll(w, rows)
}

// WriteNegative writes single-column text rows, dropping repeats.
func WriteNegative(w io.Writer, texts []string) error {
	rows := make([][]string, 0, len(texts))
	for _, t := range texts {
		rows = append(rows, []string{t})
	}
	return writeAll(w, rows)
}

// WriteRatings writes name,grade rows in page order.
func WriteRatings(w io.Writer, rs []ratings.Rating) error {
	rows := make([][]string, 0, len(rs))
	for _, r := range rs {
		rows = append(rows, []string{r.Pollster, r.Grade})
	}
	return writeAll(w, rows)
}

// ReadFile opens filename and decodes it with read.
func ReadFile[T any](filename string, read func(io.Reader) (T, error)) (T, error) {
	var zero T
	f, err := os.Open(filename)
	if err != nil {
		return zero, err
	}
	defer f.Close()

	v, err := read(f)
	if err != nil {
		return zero, fmt.Errorf("%s: %w", filename, err)
	}
	return v, nil
}

// WriteFile creates filename and encodes v into it with write.
func WriteFile[T any](filename string, v T, write func(io.Writer, T) error) (err error) {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()
	return write(f, v)
}

func readAll(r io.Reader, fields int) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = fields
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed reading csv: %w", err)
	}
	return records, nil
}

func writeAll(w io.Writer, rows [][]string) error {
	cw := csv.NewWriter(w)
	seen := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		key := fmt.Sprintf("%q", row)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed writing csv: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func column(records [][]string, i int) []string {
	out := make([]string, 0, len(records))
	for _, rec := range records {
		if i < len(rec) {
			out = append(out, rec[i])
		}
	}
	return out
}
