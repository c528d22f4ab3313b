package telemetry

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/perlin/config"
)

func TestOutputManager_Disabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil || om != nil {
		t.Fatalf("NewOutputManager(\"\") = %v, %v; want nil, nil", om, err)
	}

	// Every method is a no-op on a nil manager
	if err := om.WriteStats(FieldStats{}); err != nil {
		t.Error(err)
	}
	if err := om.WriteRaw("x", []float32{1}); err != nil {
		t.Error(err)
	}
	if err := om.Close(); err != nil {
		t.Error(err)
	}
	if om.Dir() != "" {
		t.Errorf("Dir() = %q, want empty", om.Dir())
	}
}

func TestOutputManager_StatsHeaderOnce(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{"tile", "layers"} {
		if err := om.WriteStats(ComputeFieldStats(name, 2, 1, []float32{0.5, -0.5})); err != nil {
			t.Fatal(err)
		}
	}
	if err := om.Close(); err != nil {
		t.Fatal(err)
	}

	b, err := os.ReadFile(filepath.Join(dir, "stats.csv"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	if len(lines) != 3 {
		t.Fatalf("stats.csv has %d lines, want header + 2 records:\n%s", len(lines), b)
	}
	if !strings.HasPrefix(lines[0], "field,width,height,samples,min,max") {
		t.Errorf("unexpected header %q", lines[0])
	}
	if !strings.HasPrefix(lines[2], "layers,2,1,2") {
		t.Errorf("unexpected second record %q", lines[2])
	}
}

func TestOutputManager_Samples(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer om.Close()

	if err := om.WriteSamples("tile", 2, []float32{1, 2, 3, 4}); err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(filepath.Join(dir, "tile_samples.csv"))
	if err != nil {
		t.Fatal(err)
	}
	want := "row,col,value\n0,0,1\n0,1,2\n1,0,3\n1,1,4\n"
	if string(b) != want {
		t.Errorf("tile_samples.csv =\n%s\nwant\n%s", b, want)
	}

	if err := om.WriteSamples("bad", 3, []float32{1, 2}); err == nil {
		t.Error("expected error for a ragged field")
	}
}

func TestOutputManager_RawRoundTrip(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer om.Close()

	data := []float32{0, -0.25, 0.7071, 1e-7}
	if err := om.WriteRaw("a", data); err != nil {
		t.Fatal(err)
	}
	if err := om.WriteRaw("b", data); err != nil {
		t.Fatal(err)
	}

	a, _ := os.ReadFile(filepath.Join(dir, "a.f32"))
	b, _ := os.ReadFile(filepath.Join(dir, "b.f32"))
	if len(a) != 16 || !bytes.Equal(a, b) {
		t.Errorf("raw files differ or have wrong size: %d vs %d bytes", len(a), len(b))
	}

	got, err := ReadRaw(filepath.Join(dir, "a.f32"))
	if err != nil {
		t.Fatal(err)
	}
	for i := range data {
		if got[i] != data[i] {
			t.Errorf("sample %d = %v, want %v", i, got[i], data[i])
		}
	}
}

func TestOutputManager_WriteConfig(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer om.Close()

	if err := om.WriteConfig(config.Defaults()); err != nil {
		t.Fatal(err)
	}
	if _, err := config.Load(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("snapshot does not load back: %v", err)
	}
}
