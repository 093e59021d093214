package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/DataDog/zstd"
	"github.com/aclements/stl"
)

const testSTL = `solid audit
facet normal 0 0 1
outer loop
vertex 0 0 0
vertex 1 0 0
vertex 0 1 0
endloop
endfacet
facet normal 1 0 0
outer loop
vertex 0 0 0
vertex 1 0 0
vertex 0 1 0
endloop
endfacet
facet normal 0 0 0
outer loop
vertex 0 0 0
vertex 1 0 0
vertex 0 1 0
endloop
endfacet
facet normal 0 0 1
outer loop
vertex 0 0 0
vertex 1 1 1
vertex 2 2 2
endloop
endfacet
endsolid audit
`

func mustDecode(t *testing.T, src string) *stl.Mesh {
	t.Helper()
	m, err := stl.Decode(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestAuditNormals(t *testing.T) {
	a := auditNormals(mustDecode(t, testSTL), 1)
	if a.n != 4 {
		t.Errorf("got %d triangles, want 4", a.n)
	}
	if want := []int{2}; !equalInts(a.nonUnit, want) {
		t.Errorf("got nonUnit = %v, want %v", a.nonUnit, want)
	}
	if want := []int{1}; !equalInts(a.deviant, want) {
		t.Errorf("got deviant = %v, want %v", a.deviant, want)
	}
	if want := []int{3}; !equalInts(a.degenerate, want) {
		t.Errorf("got degenerate = %v, want %v", a.degenerate, want)
	}
	if len(a.deviation) != 2 {
		t.Fatalf("got %d deviations, want 2", len(a.deviation))
	}
	if a.deviation[0] > 1e-6 || a.deviation[1] < 89.999 || a.deviation[1] > 90.001 {
		t.Errorf("got deviation %v, want [0 90]", a.deviation)
	}
	if a.ok() {
		t.Error("audit with problems reported ok")
	}
}

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "audit.stl")
	if err := os.WriteFile(path, []byte(testSTL), 0666); err != nil {
		t.Fatal(err)
	}

	out, err := runCmd(t, "--check", "--dump", path)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		path + `: text, 4 triangles, name "audit"`,
		"Triangle 3:",
		"triangle 1: stored normal is more than 1° from computed normal",
		"triangle 2: stored normal is not unit length",
		"triangle 3: degenerate",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	out, err = runCmd(t, "--check", "--recompute", path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(out, "more than") {
		t.Errorf("recomputed normals reported as deviant:\n%s", out)
	}
}

func TestRunZstd(t *testing.T) {
	data, err := zstd.Compress(nil, []byte(testSTL))
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "audit.stl.zst")
	if err := os.WriteFile(path, data, 0666); err != nil {
		t.Fatal(err)
	}
	out, err := runCmd(t, path)
	if err != nil {
		t.Fatal(err)
	}
	if want := path + `: text, 4 triangles`; !strings.Contains(out, want) {
		t.Errorf("output missing %q:\n%s", want, out)
	}
}

func TestRunHist(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "audit.stl")
	if err := os.WriteFile(path, []byte(testSTL), 0666); err != nil {
		t.Fatal(err)
	}
	png := filepath.Join(dir, "hist.png")
	if _, err := runCmd(t, "--hist", png, path); err != nil {
		t.Fatal(err)
	}
	if fi, err := os.Stat(png); err != nil || fi.Size() == 0 {
		t.Errorf("histogram not written: %v", err)
	}

	if _, err := runCmd(t, "--hist", png, path, path); err == nil {
		t.Error("--hist with two files succeeded")
	}
}

func TestRunErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := runCmd(t, filepath.Join(dir, "missing.stl")); err == nil {
		t.Error("missing file succeeded")
	}
	if _, err := runCmd(t); err == nil {
		t.Error("no arguments succeeded")
	}
}

func TestRunHistNoData(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.stl")
	if err := os.WriteFile(path, []byte("solid e\nendsolid e\n"), 0666); err != nil {
		t.Fatal(err)
	}
	png := filepath.Join(dir, "hist.png")
	if _, err := runCmd(t, "--hist", png, path); err != nil {
		t.Fatalf("--hist on empty mesh: %v", err)
	}
	if _, err := os.Stat(png); !os.IsNotExist(err) {
		t.Errorf("histogram written for empty mesh: %v", err)
	}
}

func TestLoadZstdErrors(t *testing.T) {
	dir := t.TempDir()
	var dec stl.Decoder

	missing := filepath.Join(dir, "missing.stl.zst")
	_, err := load(&dec, missing)
	if !errors.Is(err, stl.PathError) {
		t.Errorf("got %v, want PathError", err)
	}

	data, err := zstd.Compress(nil, []byte("sol"))
	if err != nil {
		t.Fatal(err)
	}
	short := filepath.Join(dir, "short.stl.zst")
	if err := os.WriteFile(short, data, 0666); err != nil {
		t.Fatal(err)
	}
	_, err = load(&dec, short)
	var se *stl.Error
	if !errors.As(err, &se) || se.Kind != stl.ReadError || se.Path != short {
		t.Errorf("got %v, want ReadError for %s", err, short)
	}
}
