package keypoint

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
)

// wireRecord mirrors one JSON entry. Pointers let missing and null fields be
// told apart from zero values.
type wireRecord struct {
	ID        *float64   `json:"id"`
	Keypoints []*float64 `json:"keypoints"`
}

// Decode parses a JSON array of {"id": int, "keypoints": [number, ...]}.
// A document that is not an array always fails. Bad entries fail the parse
// under FailFast and are reported and skipped under SkipInvalid.
func Decode(data []byte, policy Policy) ([]Record, Report, error) {
	var rep Report
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, rep, fmt.Errorf("%w: empty input", ErrDecode)
	}
	var entries []json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, rep, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	out := make([]Record, 0, len(entries))
	for i, raw := range entries {
		rec, rerr := decodeEntry(i, raw)
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

func decodeEntry(i int, raw json.RawMessage) (Record, *RecordError) {
	var w wireRecord
	if err := json.Unmarshal(raw, &w); err != nil {
		return Record{}, &RecordError{Index: i, Err: fmt.Errorf("%w: %v", ErrDecode, err)}
	}
	if w.ID == nil {
		return Record{}, &RecordError{Index: i, Err: fmt.Errorf("%w: missing id", ErrDecode)}
	}
	id, ok := integral(*w.ID)
	if !ok {
		return Record{}, &RecordError{Index: i, Err: fmt.Errorf("%w: id %v is not an integer", ErrDecode, *w.ID)}
	}
	if w.Keypoints == nil {
		return Record{}, &RecordError{Index: i, ID: id, HasID: true, Err: fmt.Errorf("%w: missing keypoints", ErrDecode)}
	}
	coords := make([]float64, len(w.Keypoints))
	for j, v := range w.Keypoints {
		if v == nil {
			return Record{}, &RecordError{Index: i, ID: id, HasID: true, Err: fmt.Errorf("%w: keypoints[%d] is null", ErrDecode, j)}
		}
		coords[j] = *v
	}
	return Record{ID: id, Coordinates: coords}, nil
}

// integral accepts whole-valued numbers such as 1 and 1.0 that fit an int.
func integral(f float64) (int, bool) {
	if f != math.Trunc(f) || math.Abs(f) > 1<<53 {
		return 0, false
	}
	return int(f), true
}

// Parse sniffs the payload: JSON documents start with '[' or '{', anything
// else is read as CSV.
func Parse(data []byte, policy Policy) ([]Record, Report, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && (trimmed[0] == '[' || trimmed[0] == '{') {
		return Decode(trimmed, policy)
	}
	return DecodeCSV(data, policy)
}
