package registry

import (
	"io/fs"
	"testing"
	"testing/fstest"
)

func TestRegisterAndOpen(t *testing.T) {
	files := fstest.MapFS{"a.yaml": &fstest.MapFile{Data: []byte("id: a")}}
	Register("test-pack", "Test Pack", func() (fs.FS, error) { return files, nil })

	if !Exists("test-pack") {
		t.Fatal("expected test-pack to exist")
	}
	if Exists("nope") {
		t.Error("unregistered pack reported as existing")
	}

	fsys, err := Open("test-pack")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	data, err := fs.ReadFile(fsys, "a.yaml")
	if err != nil || string(data) != "id: a" {
		t.Errorf("ReadFile = %q, %v", data, err)
	}

	found := false
	for _, p := range List() {
		if p.ID == "test-pack" {
			found = true
			if p.Title != "Test Pack" {
				t.Errorf("title = %q", p.Title)
			}
		}
	}
	if !found {
		t.Error("test-pack missing from List")
	}
}

func TestOpenUnknown(t *testing.T) {
	if _, err := Open("missing-pack"); err == nil {
		t.Error("expected error for unknown pack")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	open := func() (fs.FS, error) { return fstest.MapFS{}, nil }
	Register("dup-pack", "Dup", open)

	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate registration")
		}
	}()
	Register("dup-pack", "Dup", open)
}

func TestListSorted(t *testing.T) {
	open := func() (fs.FS, error) { return fstest.MapFS{}, nil }
	Register("zz-pack", "Z", open)
	Register("aa-pack", "A", open)

	packs := List()
	for i := 1; i < len(packs); i++ {
		if packs[i-1].ID >= packs[i].ID {
			t.Errorf("packs not sorted: %s >= %s", packs[i-1].ID, packs[i].ID)
		}
	}
}
