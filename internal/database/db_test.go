package database

import (
	"bytes"
	"fmt"
	"sync"
	"testing"
)

func TestDB_GetSet(t *testing.T) {
	t.Run("missing key", func(t *testing.T) {
		db := MakeDB(1)
		v, ok := db.Get("hey")
		if ok || v != nil {
			t.Errorf("Get(missing) = (%q, %v), want (nil, false)", v, ok)
		}
	})

	t.Run("set then get", func(t *testing.T) {
		db := MakeDB(1)
		db.Set("hey", []byte("you"))
		v, ok := db.Get("hey")
		if !ok || !bytes.Equal(v, []byte("you")) {
			t.Errorf("Get(hey) = (%q, %v), want (you, true)", v, ok)
		}
		if db.Len() != 1 {
			t.Errorf("Len() = %d, want 1", db.Len())
		}
	})

	t.Run("last write wins", func(t *testing.T) {
		db := MakeDB(1)
		db.Set("k", []byte("v1"))
		db.Set("k", []byte("v2"))
		v, _ := db.Get("k")
		if string(v) != "v2" {
			t.Errorf("Get(k) = %q, want v2", v)
		}
		if db.Len() != 1 {
			t.Errorf("Len() = %d, want 1", db.Len())
		}
	})

	t.Run("empty value is present", func(t *testing.T) {
		db := MakeDB(1)
		db.Set("empty", nil)
		v, ok := db.Get("empty")
		if !ok || len(v) != 0 {
			t.Errorf("Get(empty) = (%q, %v), want (\"\", true)", v, ok)
		}
	})

	t.Run("values are copied", func(t *testing.T) {
		db := MakeDB(1)
		src := []byte("value")
		db.Set("k", src)
		src[0] = 'X'

		got, _ := db.Get("k")
		if string(got) != "value" {
			t.Errorf("stored value changed with caller buffer: %q", got)
		}

		got[0] = 'Y'
		again, _ := db.Get("k")
		if string(again) != "value" {
			t.Errorf("stored value changed through returned slice: %q", again)
		}
	})
}

func TestDB_Properties(t *testing.T) {
	db := MakeDB(4)
	for i := 0; i < 500; i++ {
		k := fmt.Sprintf("key-%d", i%37)
		v1 := []byte(fmt.Sprintf("v1-%d", i))
		v2 := []byte(fmt.Sprintf("v2-%d", i))

		db.Set(k, v1)
		if got, _ := db.Get(k); !bytes.Equal(got, v1) {
			t.Fatalf("set(%s, %s) then get = %s", k, v1, got)
		}
		db.Set(k, v2)
		if got, _ := db.Get(k); !bytes.Equal(got, v2) {
			t.Fatalf("second set(%s, %s) then get = %s", k, v2, got)
		}
	}
	if db.Len() != 37 {
		t.Errorf("Len() = %d, want 37", db.Len())
	}
}

func TestDB_Concurrent(t *testing.T) {
	db := MakeDB(1)
	const workers = 8
	const ops = 500

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(id int) {
			defer wg.Done()
			for i := 0; i < ops; i++ {
				db.Set("shared", []byte(fmt.Sprintf("%d-%d", id, i)))
				if _, ok := db.Get("shared"); !ok {
					t.Error("shared key should exist after a write")
					return
				}
			}
		}(w)
	}
	wg.Wait()

	if db.Len() != 1 {
		t.Errorf("Len() = %d, want 1", db.Len())
	}
}
