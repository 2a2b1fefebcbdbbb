package store

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"
)

type record struct {
	Start  time.Time
	Amount int
	Unit   string
	Tags   map[string][]string
}

func TestSaveLoad(t *testing.T) {
	s := NewStore(zaptest.NewLogger(t))
	path := filepath.Join(t.TempDir(), "obj.gob")

	in := []record{
		{Start: time.Date(2023, 6, 16, 0, 0, 0, 0, time.UTC), Amount: 1, Unit: "BD", Tags: map[string][]string{"k": {"v"}}},
		{Start: time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), Amount: -2, Unit: "M"},
	}
	if err := s.Save(path, in); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	var out []record
	if err := s.Load(path, &out); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(out) != len(in) {
		t.Fatalf("Load() returned %d records, want %d", len(out), len(in))
	}
	for i := range in {
		if !out[i].Start.Equal(in[i].Start) || out[i].Amount != in[i].Amount || out[i].Unit != in[i].Unit {
			t.Errorf("record %d = %+v, want %+v", i, out[i], in[i])
		}
	}
	if !reflect.DeepEqual(out[0].Tags, in[0].Tags) {
		t.Errorf("record 0 tags = %v, want %v", out[0].Tags, in[0].Tags)
	}
}

func TestLoadErrors(t *testing.T) {
	s := NewStore(nil)
	dir := t.TempDir()

	var out []record
	if err := s.Load(filepath.Join(dir, "missing.gob"), &out); err == nil {
		t.Errorf("Load(missing) error = nil, want error")
	}

	garbage := filepath.Join(dir, "garbage.gob")
	if err := os.WriteFile(garbage, []byte("not gob"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := s.Load(garbage, &out); err == nil {
		t.Errorf("Load(garbage) error = nil, want error")
	}
}
