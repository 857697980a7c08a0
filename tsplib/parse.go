package tsplib

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// mode tracks which section of the file we are currently reading.
type mode int

const (
	modeHeader mode = iota
	modeCoords
)

// ParseFile reads a TSPLIB instance from path.
//
// Contract: header lines include "DIMENSION: <n>" and a
// "NODE_COORD_SECTION" marker; coordinate lines are "<id> <y> <x>" with
// integer coordinates; "EOF" terminates. Tolerant parsing: the first
// matching key on each header line wins, numbers are split on single
// spaces (fields are collapsed via strings.Fields, which also tolerates
// repeated spaces).
//
// Errors: ErrIO wraps os.Open failures; ErrInputFormat covers any
// structural mismatch (missing DIMENSION, missing NODE_COORD_SECTION,
// coordinate count mismatch, unparseable numbers).
func ParseFile(path string) (*Instance, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIO, err)
	}
	defer f.Close()

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	var (
		dimension = -1
		ys        []int64
		xs        []int64
		cur       = modeHeader
	)

	scanner := bufio.NewScanner(f)
	// TSPLIB coordinate lines for very large instances can exceed the
	// default 64KiB token buffer only in pathological cases; raise it
	// defensively to a generous 1MiB line limit.
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.Contains(line, "EOF") {
			break
		}

		switch cur {
		case modeHeader:
			if strings.Contains(line, "DIMENSION") {
				dimension, err = parseDimension(line)
				if err != nil {
					return nil, err
				}
			} else if strings.Contains(line, "NODE_COORD_SECTION") {
				cur = modeCoords
			}
		case modeCoords:
			y, x, perr := parseCoordLine(line)
			if perr != nil {
				return nil, perr
			}
			ys = append(ys, y)
			xs = append(xs, x)
		}
	}
	if err = scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIO, err)
	}

	if dimension < 0 {
		return nil, fmt.Errorf("%w: missing DIMENSION header", ErrInputFormat)
	}
	if len(ys) != dimension {
		return nil, fmt.Errorf("%w: expected %d coordinate lines, got %d", ErrInputFormat, dimension, len(ys))
	}

	return &Instance{Name: name, N: dimension, Ys: ys, Xs: xs}, nil
}

// parseDimension extracts the integer following "DIMENSION" on a header
// line of the form "DIMENSION: <n>" or "DIMENSION : <n>".
func parseDimension(line string) (int, error) {
	parts := strings.SplitN(line, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("%w: malformed DIMENSION line %q", ErrInputFormat, line)
	}
	n, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, fmt.Errorf("%w: non-integer DIMENSION %q", ErrInputFormat, line)
	}
	return n, nil
}

// parseCoordLine parses "<id> <y> <x>"; the id field is positional and
// discarded (we re-derive a dense 0-based index from read order).
func parseCoordLine(line string) (y, x int64, err error) {
	fields := strings.Fields(line)
	if len(fields) < 3 {
		return 0, 0, fmt.Errorf("%w: malformed coordinate line %q", ErrInputFormat, line)
	}
	y, err = strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: non-integer y in %q", ErrInputFormat, line)
	}
	x, err = strconv.ParseInt(fields[2], 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: non-integer x in %q", ErrInputFormat, line)
	}
	return y, x, nil
}
