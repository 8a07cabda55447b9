// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"errors"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cu3/mmstat/mmfmt"
	"github.com/cu3/mmstat/mmmath"
	"github.com/cu3/mmstat/mmreport"
)

func TestReport(t *testing.T) {
	// Each golden run needs its own test so it gets a fresh
	// working directory.
	t.Run("numeric", func(t *testing.T) {
		golden(t, "mpi", "mpi.csv")
	})
	t.Run("input", func(t *testing.T) {
		golden(t, "mpiInput", "-order", "input", "mpi.csv")
	})
}

func TestPerfectScaling(t *testing.T) {
	golden(t, "scaling", "scaling.csv")
}

func TestIdempotent(t *testing.T) {
	dir := inTestdataCopy(t)
	var first []byte
	for i := 0; i < 2; i++ {
		var out, errOut bytes.Buffer
		if err := mmstat(&out, &errOut, []string{"mpi.csv"}); err != nil {
			t.Fatal(err)
		}
		data, err := os.ReadFile(filepath.Join(dir, "mpi_resumen.txt"))
		if err != nil {
			t.Fatal(err)
		}
		if i == 0 {
			first = data
		} else if !bytes.Equal(first, data) {
			t.Errorf("second run produced a different report")
		}
	}
}

func TestQuietAndOutput(t *testing.T) {
	dir := inTestdataCopy(t)
	var out, errOut bytes.Buffer
	if err := mmstat(&out, &errOut, []string{"-q", "-o", "custom.txt", "scaling.csv"}); err != nil {
		t.Fatal(err)
	}
	if want := "Resumen guardado en: custom.txt\n"; out.String() != want {
		t.Errorf("want only the confirmation line, got:\n%s", out.String())
	}
	want, err := os.ReadFile(filepath.Join(dir, "scaling.stdout"))
	if err != nil {
		t.Fatal(err)
	}
	got, err := os.ReadFile(filepath.Join(dir, "custom.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(want), string(got)) {
		t.Errorf("custom.txt is not the report:\n%s", got)
	}
	if _, err := os.Stat(filepath.Join(dir, "scaling_resumen.txt")); !os.IsNotExist(err) {
		t.Errorf("default output written despite -o")
	}
}

func TestErrors(t *testing.T) {
	dir := inTestdataCopy(t)
	check := func(args []string, errAs interface{}, wantMsg string) {
		t.Helper()
		var out, errOut bytes.Buffer
		err := mmstat(&out, &errOut, args)
		if err == nil {
			t.Fatalf("mmstat %s: want error, got none", strings.Join(args, " "))
		}
		if errAs != nil && !errors.As(err, errAs) {
			t.Errorf("mmstat %s: want %T, got %T (%s)", strings.Join(args, " "), errAs, err, err)
		}
		if !strings.Contains(err.Error(), wantMsg) {
			t.Errorf("mmstat %s: want error containing %q, got %q", strings.Join(args, " "), wantMsg, err)
		}
		// A failed run never leaves a report behind.
		matches, _ := filepath.Glob(filepath.Join(dir, "*"+mmreport.SummarySuffix))
		if len(matches) > 0 {
			t.Errorf("mmstat %s: left report files %v", strings.Join(args, " "), matches)
		}
		if strings.Contains(out.String(), "RESUMEN") {
			t.Errorf("mmstat %s: printed a report despite failing", strings.Join(args, " "))
		}
	}

	var nf *mmfmt.NotFoundError
	var fe *mmfmt.FormatError
	var mb *mmmath.MissingBaselineError
	var we *mmreport.WriteError
	check([]string{"missing.csv"}, &nf, "missing.csv")
	check([]string{"badcell.csv"}, &fe, `badcell.csv:3: parsing process_count "two"`)
	check([]string{"nobaseline.csv"}, &mb, "matrix size 1000 has no single-process baseline")
	check([]string{"-o", filepath.Join("nodir", "out.txt"), "mpi.csv"}, &we, "nodir")
	check([]string{"-o", "mpi.csv", "mpi.csv"}, nil, "would overwrite its input")
}

func TestUsage(t *testing.T) {
	check := func(args ...string) {
		t.Helper()
		var out, errOut bytes.Buffer
		err := mmstat(&out, &errOut, args)
		if err == nil {
			t.Errorf("mmstat %s: want error, got none", strings.Join(args, " "))
		}
		if !strings.Contains(out.String(), "usage: mmstat") {
			t.Errorf("mmstat %s: want usage on stdout, got:\n%s", strings.Join(args, " "), out.String())
		}
	}
	check()
	check("a.csv", "b.csv")
	check("-order", "random", "a.csv")
	check("-nosuchflag", "a.csv")
}

// TestMainExit checks the exit status and message of a failing run.
func TestMainExit(t *testing.T) {
	defer func(args []string, e func(int)) {
		os.Args, exit = args, e
		log.SetOutput(os.Stderr)
		log.SetPrefix("")
		log.SetFlags(log.LstdFlags)
	}(os.Args, exit)

	type exitCode int
	var logBuf bytes.Buffer
	log.SetOutput(&logBuf)
	exit = func(code int) { panic(exitCode(code)) }
	path := filepath.Join(t.TempDir(), "missing.csv")
	os.Args = []string{"mmstat", path}

	func() {
		defer func() {
			code, ok := recover().(exitCode)
			if !ok || code != 1 {
				t.Errorf("want exit status 1, got %v", code)
			}
		}()
		main()
	}()
	if want := "mmstat: no such file: " + path + "\n"; logBuf.String() != want {
		t.Errorf("want message %q, got %q", want, logBuf.String())
	}
}

// inTestdataCopy copies testdata into a temporary directory and
// changes into it for the rest of the test, so reports written next
// to their inputs don't land in the source tree.
func inTestdataCopy(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	ents, err := os.ReadDir("testdata")
	if err != nil {
		t.Fatal(err)
	}
	for _, ent := range ents {
		data, err := os.ReadFile(filepath.Join("testdata", ent.Name()))
		if err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(dir, ent.Name()), data, 0666); err != nil {
			t.Fatal(err)
		}
	}

	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(wd) })
	return dir
}

func golden(t *testing.T, name string, args ...string) {
	t.Helper()
	inTestdataCopy(t)

	// Get the mmstat output.
	var got, gotErr bytes.Buffer
	t.Logf("mmstat %s", strings.Join(args, " "))
	if err := mmstat(&got, &gotErr, args); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	// Compare to the golden output.
	compare(t, name, "stdout", got.Bytes())
	compare(t, name, "stderr", gotErr.Bytes())

	// The saved report is the printed one, without the
	// confirmation line.
	report := got.Bytes()
	i := bytes.LastIndex(report[:len(report)-1], []byte("\n"))
	output := strings.TrimPrefix(string(report[i+1:len(report)-1]), "Resumen guardado en: ")
	saved, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(saved, report[:i+1]) {
		t.Errorf("%s differs from the printed report", output)
		diff(t, report[:i+1], saved)
	}
}

func compare(t *testing.T, name, sub string, got []byte) {
	t.Helper()

	want, err := os.ReadFile(name + "." + sub)
	if err != nil {
		if os.IsNotExist(err) {
			// Treat a missing file as empty.
			want = nil
		} else {
			t.Fatal(err)
		}
	}
	diff(t, want, got)
}

func diff(t *testing.T, want, got []byte) bool {
	t.Helper()
	if bytes.Equal(want, got) {
		return false
	}

	d := t.TempDir()
	wantPath, gotPath := filepath.Join(d, "want"), filepath.Join(d, "got")
	if err := os.WriteFile(wantPath, want, 0666); err != nil {
		t.Fatalf("error writing %s: %s", wantPath, err)
	}
	if err := os.WriteFile(gotPath, got, 0666); err != nil {
		t.Fatalf("error writing %s: %s", gotPath, err)
	}

	cmd := exec.Command("diff", "-Nu", "want", "got")
	cmd.Dir = d
	data, _ := cmd.CombinedOutput()
	if len(data) > 0 {
		t.Errorf("\n%s", data)
	} else {
		// Most likely, "diff not found" so print the bad
		// output so there is something.
		t.Errorf("want:\n%sgot:\n%s", want, got)
	}
	return true
}
