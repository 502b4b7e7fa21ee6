package source

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"testing/fstest"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"TW_Keypoints.json": {Data: []byte(`[{"id":0,"keypoints":[0,0]}]`)},
		"CA_Keypoints.json": {Data: []byte(`[]`)},
		"walk.csv":          {Data: []byte("id,x,y\n0,1,2\n")},
		"notes.txt":         {Data: []byte("ignored")},
		"nested/deep.json":  {Data: []byte(`[]`)},
	}
}

func TestFSFetch(t *testing.T) {
	s := NewFS(testFS())
	ctx := context.Background()
	tests := []struct {
		name string
		want string
	}{
		{"TW_Keypoints", `[{"id":0,"keypoints":[0,0]}]`},
		{"TW_Keypoints.json", `[{"id":0,"keypoints":[0,0]}]`},
		{"walk", "id,x,y\n0,1,2\n"},
	}
	for _, tt := range tests {
		got, err := s.Fetch(ctx, tt.name)
		if err != nil {
			t.Fatalf("Fetch(%q): %v", tt.name, err)
		}
		if string(got) != tt.want {
			t.Errorf("Fetch(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestFSFetchNotFound(t *testing.T) {
	s := NewFS(testFS())
	for _, name := range []string{"missing", "", "../etc/passwd", "notes"} {
		if _, err := s.Fetch(context.Background(), name); !errors.Is(err, ErrNotFound) {
			t.Errorf("Fetch(%q) err = %v, want ErrNotFound", name, err)
		}
	}
}

func TestFSFetchCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewFS(testFS()).Fetch(ctx, "walk"); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestFSNames(t *testing.T) {
	names, err := NewFS(testFS()).Names()
	if err != nil {
		t.Fatalf("Names: %v", err)
	}
	want := []string{"CA_Keypoints", "TW_Keypoints", "walk"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("Names = %v, want %v", names, want)
	}
}

func TestMemory(t *testing.T) {
	m := Memory{"b": []byte("2"), "a": []byte("1")}
	got, err := m.Fetch(context.Background(), "a")
	if err != nil || string(got) != "1" {
		t.Fatalf("Fetch(a) = %q, %v", got, err)
	}
	if _, err := m.Fetch(context.Background(), "c"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Fetch(c) err = %v", err)
	}
	names, _ := m.Names()
	if !reflect.DeepEqual(names, []string{"a", "b"}) {
		t.Errorf("Names = %v", names)
	}
}
