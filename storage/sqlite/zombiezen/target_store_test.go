package zombiezen

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/revelaction/tdsent/target"
	"zombiezen.com/go/sqlite/sqlitex"
)

func testPool(t *testing.T) *sqlitex.Pool {
	t.Helper()

	pool, err := NewPool(filepath.Join(t.TempDir(), "targets.db"))
	if err != nil {
		t.Fatalf("failed to create pool: %v", err)
	}
	t.Cleanup(func() { pool.Close() })

	if err := CreateTargetTables(pool); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}
	return pool
}

func testCollection(t *testing.T) *target.Collection {
	t.Helper()

	first, err := target.New("12345#1", "12345", "I like kippers", "kippers", 1, []target.Span{{Start: 7, End: 14}})
	if err != nil {
		t.Fatalf("failed to build target: %v", err)
	}
	second, err := target.New("0", "", "the cat sat on the cat mat", "cat", 0,
		[]target.Span{{Start: 4, End: 7}, {Start: 19, End: 22}})
	if err != nil {
		t.Fatalf("failed to build target: %v", err)
	}

	c, err := target.NewCollection(first, second)
	if err != nil {
		t.Fatalf("failed to build collection: %v", err)
	}
	return c
}

func TestTargetStoreRoundtrip(t *testing.T) {
	store := NewTargetStore(testPool(t))

	c := testCollection(t)
	if err := store.Write("train", c); err != nil {
		t.Fatalf("write: %v", err)
	}

	read, err := store.Read("train")
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	if !reflect.DeepEqual(read.Targets(), c.Targets()) {
		t.Errorf("targets changed in roundtrip:\nwrote %+v\nread  %+v", c.Targets(), read.Targets())
	}
}

func TestTargetStoreWriteReplaces(t *testing.T) {
	store := NewTargetStore(testPool(t))

	c := testCollection(t)
	if err := store.Write("train", c); err != nil {
		t.Fatalf("write: %v", err)
	}
	// writing again must replace, not violate the unique constraint
	if err := store.Write("train", c); err != nil {
		t.Fatalf("rewrite: %v", err)
	}

	read, err := store.Read("train")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if read.Len() != c.Len() {
		t.Errorf("expected %d targets after rewrite, got %d", c.Len(), read.Len())
	}
}

func TestTargetStoreCollections(t *testing.T) {
	store := NewTargetStore(testPool(t))

	c := testCollection(t)
	for _, name := range []string{"train", "test"} {
		if err := store.Write(name, c); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	names, err := store.Collections()
	if err != nil {
		t.Fatalf("collections: %v", err)
	}

	expected := []string{"test", "train"}
	if !reflect.DeepEqual(names, expected) {
		t.Errorf("expected %v, got %v", expected, names)
	}
}

func TestTargetStoreReadMissing(t *testing.T) {
	store := NewTargetStore(testPool(t))
	if _, err := store.Read("nope"); err == nil {
		t.Fatalf("expected error for missing collection")
	}
}
