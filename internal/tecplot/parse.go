package tecplot

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

var (
	ErrNoHeader = errors.New("tecplot: no VARIABLES block found")
	ErrShape    = errors.New("tecplot: value count is not a multiple of the column count")
)

// ParseError ties a parse failure to the file it came from.
type ParseError struct {
	File string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %v", e.File, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

var quoted = regexp.MustCompile(`"([^"]+)"`)

// Parse reads one table from r. name identifies the source in errors and
// becomes the table name.
func Parse(r io.Reader, name string) (*Table, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, &ParseError{File: name, Err: err}
	}

	headers, start := header(lines)
	if len(headers) == 0 {
		return nil, &ParseError{File: name, Err: ErrNoHeader}
	}

	var raw []float64
	for _, line := range lines[start:] {
		line = strings.TrimSpace(line)
		upper := strings.ToUpper(line)
		if strings.HasPrefix(upper, "ZONE") {
			break
		}
		if line == "" || strings.HasPrefix(upper, "TITLE") || strings.HasPrefix(upper, "VARIABLES") {
			continue
		}
		vals, ok := numbers(line)
		if !ok {
			continue
		}
		raw = append(raw, vals...)
	}

	if len(raw)%len(headers) != 0 {
		return nil, &ParseError{File: name, Err: fmt.Errorf("%w: %d values for %d columns", ErrShape, len(raw), len(headers))}
	}

	points := len(raw) / len(headers)
	t := &Table{Name: name, Columns: make([]Column, len(headers))}
	for i, h := range headers {
		t.Columns[i] = Column{Name: h, Values: raw[i*points : (i+1)*points : (i+1)*points]}
	}
	return t, nil
}

// header collects the quoted names from the VARIABLES line up to the first
// ZONE line and returns them with the index of the first data line. Quoted
// strings on the ZONE line itself are zone titles, not columns.
func header(lines []string) ([]string, int) {
	var headers []string
	inside := false
	for i, line := range lines {
		upper := strings.ToUpper(strings.TrimSpace(line))
		if strings.HasPrefix(upper, "VARIABLES") {
			inside = true
		}
		if !inside {
			continue
		}
		if strings.HasPrefix(upper, "ZONE") {
			return headers, i + 1
		}
		for _, m := range quoted.FindAllStringSubmatch(line, -1) {
			headers = append(headers, strings.TrimSpace(m[1]))
		}
	}
	return headers, 0
}

// numbers parses every whitespace-separated field of line; one bad field
// rejects the whole line.
func numbers(line string) ([]float64, bool) {
	fields := strings.Fields(line)
	out := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, false
		}
		out = append(out, v)
	}
	return out, true
}

// Load parses the file at path. The table is named after the file's base name.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ParseError{File: path, Err: err}
	}
	defer f.Close()

	t, err := Parse(f, path)
	if err != nil {
		return nil, err
	}
	t.Name = filepath.Base(path)
	return t, nil
}

// LoadAll loads every path. A file that fails is reported in errs and the
// rest of the batch is still loaded.
func LoadAll(paths []string) (tables []*Table, errs []error) {
	for _, p := range paths {
		t, err := Load(p)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		tables = append(tables, t)
	}
	return tables, errs
}
