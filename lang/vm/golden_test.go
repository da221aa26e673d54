package vm

import (
	"bytes"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/emberlang/ember/internal/filetest"
)

var updateGoldenTests = flag.Bool("test.update-golden-tests", false, "update testdata/*.want golden files instead of checking them")

// TestGolden runs every testdata/*.ash script and compares its stdout
// against the matching testdata/*.ash.want file, the same way the teacher's
// filetest harness compares a phase's output against a recorded golden
// result.
func TestGolden(t *testing.T) {
	const dir = "../../testdata"
	files := filetest.SourceFiles(t, dir, ".ash")
	for _, fi := range files {
		fi := fi
		t.Run(fi.Name(), func(t *testing.T) {
			src, err := os.ReadFile(filepath.Join(dir, fi.Name()))
			if err != nil {
				t.Fatal(err)
			}

			var out, errs bytes.Buffer
			machine := New(&out, &errs, NewOptions())
			if err := machine.Interpret(src); err != nil {
				t.Fatalf("unexpected error running %s: %s\n%s", fi.Name(), err, errs.String())
			}

			filetest.DiffCustom(t, fi, "output", ".want", out.String(), dir, updateGoldenTests)
		})
	}
}
