package cache

import (
	"strings"
	"testing"
	"time"
)

func TestMemoryCache_SetGet(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	key := Key("icon", "cdxIconAdd")
	c.Set(key, []byte(`"M11 9V4H9v5H4v2h5v5h2v-5h5V9z"`), 0)

	got, ok := c.Get(key)
	if !ok {
		t.Fatal("Expected cached value")
	}
	if string(got) != `"M11 9V4H9v5H4v2h5v5h2v-5h5V9z"` {
		t.Errorf("Unexpected value: %s", got)
	}

	// Returned slices are copies
	got[0] = 'X'
	again, _ := c.Get(key)
	if again[0] == 'X' {
		t.Error("Expected Get to return a copy")
	}

	if c.Len() != 1 {
		t.Errorf("Expected 1 item, got %d", c.Len())
	}
}

func TestMemoryCache_Expiry(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)
	c.Set("k", []byte("v"), 10*time.Millisecond)

	time.Sleep(30 * time.Millisecond)
	if _, ok := c.Get("k"); ok {
		t.Error("Expected value to expire")
	}
}

func TestMemoryCache_DeleteFlush(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)
	c.Set("a", []byte("1"), 0)
	c.Set("b", []byte("2"), 0)

	c.Delete("a")
	if _, ok := c.Get("a"); ok {
		t.Error("Expected a to be deleted")
	}

	c.Flush()
	if c.Len() != 0 {
		t.Errorf("Expected empty cache, got %d items", c.Len())
	}
}

func TestKey(t *testing.T) {
	a := Key("icon", "cdxIconAdd")
	b := Key("icon", "cdxIconTrash")

	if a == b {
		t.Error("Expected different keys for different names")
	}
	if !strings.HasPrefix(a, "draftgate:v1:icon:") {
		t.Errorf("Unexpected key prefix: %s", a)
	}
	if Key("icon", "a", "b") == Key("icon", "ab") {
		t.Error("Expected part boundaries to matter")
	}

	var _ Cache = NewMemoryCache(time.Minute, time.Minute)
}
