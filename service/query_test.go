package service

import (
	"bytes"
	"errors"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"gopkg.in/yaml.v2"

	"go-eix/database"
	"go-eix/version"
)

func TestList(t *testing.T) {
	svc, _ := setupTestService(t)
	mustUpdate(t, svc, UpdateOptions{})

	names, err := svc.List(ListOptions{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	want := []string{"app-editors/nano", "app-editors/vim", "dev-lang/python"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("List = %v, want %v", names, want)
	}
}

func TestList_MissingDatabase(t *testing.T) {
	svc, _ := setupTestService(t)

	_, err := svc.List(ListOptions{})
	var ioErr *database.IOError
	if !errors.As(err, &ioErr) || ioErr.Op != "open" {
		t.Errorf("expected open IOError, got %v", err)
	}
}

func TestSearch(t *testing.T) {
	svc, _ := setupTestService(t)
	mustUpdate(t, svc, UpdateOptions{})

	tests := []struct {
		name        string
		pattern     string
		description bool
		want        []string
	}{
		{"by name", "^vim$", false, []string{"app-editors/vim"}},
		{"by full name", "^app-editors/", false, []string{"app-editors/nano", "app-editors/vim"}},
		{"description not searched", "Pico", false, nil},
		{"by description", "Pico", true, []string{"app-editors/nano"}},
		{"no match", "emacs", true, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := svc.Search(SearchOptions{Pattern: tt.pattern, Description: tt.description})
			if err != nil {
				t.Fatalf("Search failed: %v", err)
			}
			var got []string
			for _, p := range result.Packages {
				got = append(got, p.FullName())
				if len(p.Versions) == 0 {
					t.Errorf("%s: matches should carry versions", p.FullName())
				}
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Search(%q) = %v, want %v", tt.pattern, got, tt.want)
			}
			if result.Stats.Packages != 3 {
				t.Errorf("Stats.Packages = %d, want 3", result.Stats.Packages)
			}
			if result.Stats.Skipped != 3-len(tt.want) {
				t.Errorf("Stats.Skipped = %d, want %d", result.Stats.Skipped, 3-len(tt.want))
			}
		})
	}
}

func TestSearch_InvalidPattern(t *testing.T) {
	svc, _ := setupTestService(t)
	if _, err := svc.Search(SearchOptions{Pattern: "("}); err == nil {
		t.Error("expected an error for an invalid pattern")
	}
}

func TestDiff(t *testing.T) {
	svc, _ := setupTestService(t)
	dir := t.TempDir()
	oldPath := filepath.Join(dir, "old.eix")
	newPath := filepath.Join(dir, "new.eix")
	repo := svc.Config().PortDir

	mustUpdate(t, svc, UpdateOptions{Output: oldPath})

	// add python 3.13, drop nano, add zig, keep vim
	writeEntry(t, repo, "dev-lang", "python-3.13.0", "SLOT", "3.13")
	writeEntry(t, repo, "dev-lang", "zig-0.11.0", "SLOT", "0")
	removeFile(t, filepath.Join(repo, "metadata/md5-cache/app-editors/nano-7.2"))
	mustUpdate(t, svc, UpdateOptions{Output: newPath})

	result, err := svc.Diff(oldPath, newPath)
	if err != nil {
		t.Fatalf("Diff failed: %v", err)
	}

	want := []DiffEntry{
		{Kind: DiffRemoved, Name: "app-editors/nano", Old: "7.2"},
		{Kind: DiffUpgraded, Name: "dev-lang/python", Old: "3.12.1", New: "3.13.0"},
		{Kind: DiffAdded, Name: "dev-lang/zig", New: "0.11.0"},
	}
	if !reflect.DeepEqual(result.Entries, want) {
		t.Errorf("Diff entries:\ngot  %+v\nwant %+v", result.Entries, want)
	}

	reverse, err := svc.Diff(newPath, oldPath)
	if err != nil {
		t.Fatal(err)
	}
	if reverse.Count(DiffDowngraded) != 1 || reverse.Count(DiffAdded) != 1 || reverse.Count(DiffRemoved) != 1 {
		t.Errorf("reverse diff: %+v", reverse.Entries)
	}
}

func TestCompareVersions(t *testing.T) {
	svc, _ := setupTestService(t)

	tests := []struct {
		a, b  string
		tilde bool
		want  int
	}{
		{"1.0", "1.0.0", false, -1},
		{"1.0-r1", "1.0", false, 1},
		{"1.0-r1", "1.0", true, 0},
		{"2.0_rc1", "2.0", false, -1},
		{"1.2", "1.2", false, 0},
	}
	for _, tt := range tests {
		got, err := svc.CompareVersions(tt.a, tt.b, tt.tilde)
		if err != nil {
			t.Fatalf("CompareVersions(%s, %s) failed: %v", tt.a, tt.b, err)
		}
		if got != tt.want {
			t.Errorf("CompareVersions(%s, %s, %v) = %d, want %d", tt.a, tt.b, tt.tilde, got, tt.want)
		}
	}

	if _, err := svc.CompareVersions("x1", "1", false); !errors.Is(err, version.ErrUnparseable) {
		t.Errorf("expected ErrUnparseable, got %v", err)
	}
}

func TestDump(t *testing.T) {
	svc, _ := setupTestService(t)
	mustUpdate(t, svc, UpdateOptions{})

	doc, err := svc.Dump("")
	if err != nil {
		t.Fatalf("Dump failed: %v", err)
	}
	if len(doc.Categories) != 2 || doc.Categories[0].Name != "app-editors" {
		t.Fatalf("unexpected categories: %+v", doc.Categories)
	}
	python := doc.Categories[1].Packages[0]
	if python.Name != "python" || python.Versions[0].Slot != "3.12" || python.Versions[0].Restrict != "test" {
		t.Errorf("unexpected python entry: %+v", python)
	}

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		if err := doc.Encode(&buf, FormatYAML); err != nil {
			t.Fatalf("Encode failed: %v", err)
		}
		var back DumpDocument
		if err := yaml.Unmarshal(buf.Bytes(), &back); err != nil {
			t.Fatalf("output is not valid yaml: %v", err)
		}
		if !reflect.DeepEqual(&back, doc) {
			t.Errorf("yaml does not describe the same database:\n%s", buf.String())
		}
	})

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		if err := doc.Encode(&buf, FormatText); err != nil {
			t.Fatalf("Encode failed: %v", err)
		}
		out := buf.String()
		for _, want := range []string{"app-editors/vim\n", "  9.1.0 [0] slot=0", "description: Vi IMproved", `restrict="test"`} {
			if !strings.Contains(out, want) {
				t.Errorf("text dump lacks %q:\n%s", want, out)
			}
		}
	})

	t.Run("unknown format", func(t *testing.T) {
		if err := doc.Encode(&bytes.Buffer{}, "xml"); err == nil {
			t.Error("expected an error for an unknown format")
		}
	})
}
