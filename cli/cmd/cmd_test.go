package cmd

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

// writeSource writes content to a new file named name in a temporary
// directory and returns its path.
func writeSource(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	return path
}

func TestWithSourceFilesEmpty(t *testing.T) {
	for _, sources := range [][]string{nil, {}} {
		if srcs := sourceFilesFrom(WithSourceFiles(t.Context(), sources)); srcs != nil {
			t.Errorf("WithSourceFiles(%v) should store nil", sources)
		}
	}

	if srcs := sourceFilesFrom(context.Background()); srcs != nil {
		t.Error("expected nil without WithSourceFiles")
	}
}

func TestWithSourceFilesAll(t *testing.T) {
	dir := t.TempDir()

	first := filepath.Join(dir, "first.reap")
	second := filepath.Join(dir, "second.reap")

	for path, content := range map[string]string{first: "a = 1", second: "b = 2"} {
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	srcs := sourceFilesFrom(WithSourceFiles(t.Context(), []string{second, first}))
	if srcs == nil {
		t.Fatal("expected source files")
	}

	var (
		names    []string
		contents []string
	)

	for name, r := range srcs.All() {
		data, err := io.ReadAll(r)
		if err != nil {
			t.Fatal(err)
		}

		names = append(names, name)
		contents = append(contents, string(data))
	}

	if !slices.Equal(names, []string{second, first}) {
		t.Errorf("expected command line order, got %v", names)
	}

	if !slices.Equal(contents, []string{"b = 2", "a = 1"}) {
		t.Errorf("unexpected contents %q", contents)
	}
}

func TestWithSourceFilesRead(t *testing.T) {
	dir := t.TempDir()
	file1 := filepath.Join(dir, "file1.reap")
	file2 := filepath.Join(dir, "file2.reap")

	if err := os.WriteFile(file1, []byte("x = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(file2, []byte("y = 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	srcs := sourceFilesFrom(WithSourceFiles(t.Context(), []string{file1, file2}))

	data, err := io.ReadAll(srcs)
	if err != nil {
		t.Fatal(err)
	}

	if string(data) != "x = 1\ny = 2\n" {
		t.Errorf("got %q", string(data))
	}
}

func TestWithSourceFilesDuplicates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dup.reap")

	if err := os.WriteFile(path, []byte("d = 4"), 0o644); err != nil {
		t.Fatal(err)
	}

	link := filepath.Join(dir, "link.reap")
	if err := os.Symlink(path, link); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}

	rel, err := filepath.Rel(wd, path)
	if err != nil {
		t.Fatal(err)
	}

	srcs := sourceFilesFrom(WithSourceFiles(t.Context(), []string{path, rel, link, path}))

	count := 0
	for range srcs.All() {
		count++
	}

	if count != 1 {
		t.Errorf("expected duplicates collapsed to 1 source, got %d", count)
	}
}

func TestWithSourceFilesStdin(t *testing.T) {
	path := writeSource(t, "lib.reap", "z = 0")

	srcs := sourceFilesFrom(WithSourceFiles(t.Context(), []string{"-", path, "-"}))
	if srcs == nil {
		t.Fatal("expected source files")
	}

	if srcs.Stdin() == nil {
		t.Error("expected stdin to be included")
	}

	var names []string
	for name := range srcs.All() {
		names = append(names, name)
	}

	if !slices.Equal(names, []string{path, stdinSource}) {
		t.Errorf("expected stdin once and last, got %v", names)
	}
}

func TestWithSourceFilesNonexistent(t *testing.T) {
	path := writeSource(t, "real.reap", "r = 1")
	missing := filepath.Join(t.TempDir(), "missing.reap")

	srcs := sourceFilesFrom(WithSourceFiles(t.Context(), []string{missing, path}))
	if srcs == nil {
		t.Fatal("expected the existing file to be kept")
	}

	if srcs.Stdin() != nil {
		t.Error("expected no stdin")
	}

	if srcs := sourceFilesFrom(WithSourceFiles(t.Context(), []string{missing})); srcs != nil {
		t.Error("expected nil when no source can be opened")
	}
}

func TestOpenSource(t *testing.T) {
	if _, err := openSource(filepath.Join(t.TempDir(), "none.reap")); err == nil {
		t.Error("expected error for missing file")
	} else if !errors.Is(err, ErrOpenSource) {
		t.Errorf("expected ErrOpenSource, got %v", err)
	}

	rc, err := openSource(stdinSource)
	if err != nil {
		t.Fatal(err)
	}

	if err := rc.Close(); err != nil {
		t.Errorf("closing stdin source: %v", err)
	}
}

func TestOutputAndOptionsDefaults(t *testing.T) {
	stdout, stderr := outputFrom(t.Context())
	if stdout != os.Stdout || stderr != os.Stderr {
		t.Error("expected standard streams by default")
	}

	if n := len(optionsFrom(t.Context())); n != 1 {
		t.Errorf("expected only the logger option, got %d", n)
	}

	if kongVar(t.Context(), CacheIdentifier) != "" {
		t.Error("expected empty variable without a kong context")
	}
}
