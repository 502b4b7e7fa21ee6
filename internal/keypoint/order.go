package keypoint

import (
	"fmt"
	"sort"
)

// Sort returns a copy ordered ascending by ID. Equal IDs keep input order.
func Sort(records []Record) []Record {
	out := make([]Record, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Project2D takes the first two coordinates of each record. Records with
// fewer than two are an error under FailFast and dropped under SkipInvalid.
func Project2D(records []Record, policy Policy) ([]Point2D, Report, error) {
	var rep Report
	out := make([]Point2D, 0, len(records))
	for i, r := range records {
		if len(r.Coordinates) < 2 {
			rerr := &RecordError{Index: i, ID: r.ID, HasID: true,
				Err: fmt.Errorf("%w: have %d, need 2", ErrInsufficientCoordinates, len(r.Coordinates))}
			if policy == FailFast {
				return nil, rep, rerr
			}
			rep.add(rerr)
			continue
		}
		out = append(out, Point2D{X: r.Coordinates[0], Y: r.Coordinates[1]})
	}
	return out, rep, nil
}

// Project3D requires exactly three coordinates per record.
func Project3D(records []Record, policy Policy) ([]Point3D, Report, error) {
	var rep Report
	out := make([]Point3D, 0, len(records))
	for i, r := range records {
		if len(r.Coordinates) != 3 {
			rerr := &RecordError{Index: i, ID: r.ID, HasID: true,
				Err: fmt.Errorf("%w: have %d, need exactly 3", ErrInsufficientCoordinates, len(r.Coordinates))}
			if policy == FailFast {
				return nil, rep, rerr
			}
			rep.add(rerr)
			continue
		}
		c := r.Coordinates
		out = append(out, Point3D{X: c[0], Y: c[1], Z: c[2]})
	}
	return out, rep, nil
}
