package keypoint

import (
	"fmt"
	"strings"
)

// Record is one decoded input entry. Coordinates keep their input order.
type Record struct {
	ID          int
	Coordinates []float64
}

type Point2D struct {
	X float64
	Y float64
}

type Point3D struct {
	X float64
	Y float64
	Z float64
}

// Mode selects which coordinate subset a render uses.
type Mode int

const (
	Mode2D Mode = iota
	Mode3D
)

func (m Mode) String() string {
	switch m {
	case Mode2D:
		return "2d"
	case Mode3D:
		return "3d"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// Dims is the number of coordinates a record needs in this mode.
func (m Mode) Dims() int {
	if m == Mode3D {
		return 3
	}
	return 2
}

func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "2d", "2":
		return Mode2D, nil
	case "3d", "3":
		return Mode3D, nil
	}
	return 0, fmt.Errorf("unknown render mode %q (want 2d or 3d)", s)
}

// Policy decides what happens to a record that cannot be used.
type Policy int

const (
	// FailFast aborts the whole parse or projection on the first bad record.
	FailFast Policy = iota
	// SkipInvalid drops bad records and lists them in the Report.
	SkipInvalid
)

func (p Policy) String() string {
	switch p {
	case FailFast:
		return "fail"
	case SkipInvalid:
		return "skip"
	}
	return fmt.Sprintf("policy(%d)", int(p))
}

func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fail", "failfast", "fail-fast", "strict":
		return FailFast, nil
	case "skip", "lenient", "drop":
		return SkipInvalid, nil
	}
	return 0, fmt.Errorf("unknown record policy %q (want fail or skip)", s)
}

// DefaultPolicy is strict for 2D sources and lenient for 3D sources.
func DefaultPolicy(m Mode) Policy {
	if m == Mode3D {
		return SkipInvalid
	}
	return FailFast
}

// Report lists the records dropped under SkipInvalid.
type Report struct {
	Dropped []*RecordError
}

func (r Report) Degraded() bool { return len(r.Dropped) > 0 }

func (r *Report) add(e *RecordError) { r.Dropped = append(r.Dropped, e) }

func (r *Report) Merge(o Report) { r.Dropped = append(r.Dropped, o.Dropped...) }
