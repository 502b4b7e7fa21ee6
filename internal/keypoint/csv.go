package keypoint

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// DecodeCSV reads keypoints from a CSV with a header row.
// Column detection: id|index|frame for the id and x, y, z for coordinates
// (case-insensitive). z is optional; without it records carry two coordinates.
func DecodeCSV(data []byte, policy Policy) ([]Record, Report, error) {
	var rep Report
	r := csv.NewReader(bytes.NewReader(data))
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, rep, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if len(rows) == 0 {
		return nil, rep, fmt.Errorf("%w: empty csv", ErrDecode)
	}
	idxID, idxX, idxY, idxZ := -1, -1, -1, -1
	for i, h := range rows[0] {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "id", "index", "frame":
			if idxID == -1 {
				idxID = i
			}
		case "x":
			if idxX == -1 {
				idxX = i
			}
		case "y":
			if idxY == -1 {
				idxY = i
			}
		case "z":
			if idxZ == -1 {
				idxZ = i
			}
		}
	}
	if idxID == -1 || idxX == -1 || idxY == -1 {
		return nil, rep, fmt.Errorf("%w: csv: id/x/y columns not found", ErrDecode)
	}
	cols := []int{idxX, idxY}
	if idxZ != -1 {
		cols = append(cols, idxZ)
	}
	out := make([]Record, 0, len(rows)-1)
	for i, row := range rows[1:] {
		rec, rerr := csvRecord(i, row, idxID, cols)
		if rerr != nil {
			if policy == FailFast {
				return nil, rep, rerr
			}
			rep.add(rerr)
			continue
		}
		out = append(out, rec)
	}
	return out, rep, nil
}

func csvRecord(i int, row []string, idxID int, cols []int) (Record, *RecordError) {
	cell := func(c int) (string, error) {
		if c >= len(row) {
			return "", errors.New("short row")
		}
		return strings.TrimSpace(row[c]), nil
	}
	s, err := cell(idxID)
	if err != nil {
		return Record{}, &RecordError{Index: i, Err: fmt.Errorf("%w: missing id: %v", ErrDecode, err)}
	}
	id, err := strconv.Atoi(s)
	if err != nil {
		return Record{}, &RecordError{Index: i, Err: fmt.Errorf("%w: id %q is not an integer", ErrDecode, s)}
	}
	coords := make([]float64, 0, len(cols))
	for _, c := range cols {
		s, err := cell(c)
		if err != nil {
			return Record{}, &RecordError{Index: i, ID: id, HasID: true, Err: fmt.Errorf("%w: %v", ErrDecode, err)}
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return Record{}, &RecordError{Index: i, ID: id, HasID: true, Err: fmt.Errorf("%w: coordinate %q is not a number", ErrDecode, s)}
		}
		// ParseFloat accepts NaN and Inf spellings, JSON cannot carry them
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Record{}, &RecordError{Index: i, ID: id, HasID: true, Err: fmt.Errorf("%w: coordinate %q is not finite", ErrDecode, s)}
		}
		coords = append(coords, v)
	}
	return Record{ID: id, Coordinates: coords}, nil
}
