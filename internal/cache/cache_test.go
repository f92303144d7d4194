package cache

import (
	"testing"
	"time"

	"github.com/pkg/errors"
)

func TestGetSet(t *testing.T) {
	c := New(time.Minute)

	if _, ok := c.Get("tok", "venues:1"); ok {
		t.Error("Get: expected miss on empty cache")
	}

	c.Set("tok", "venues:1", 42)

	value, ok := c.Get("tok", "venues:1")
	if !ok {
		t.Fatal("Get: expected hit")
	}

	if e, g := 42, value; e != g {
		t.Errorf("value: expected '%v', got '%v'", e, g)
	}
}

func TestExpiry(t *testing.T) {
	c := New(time.Minute)

	current := time.Now()
	c.now = func() time.Time { return current }

	c.Set("tok", "venues:1", 42)

	current = current.Add(30 * time.Second)
	if _, ok := c.Get("tok", "venues:1"); !ok {
		t.Error("Get: expected hit before the TTL")
	}

	current = current.Add(31 * time.Second)
	if _, ok := c.Get("tok", "venues:1"); ok {
		t.Error("Get: expected miss after the TTL")
	}
}

func TestPurgeOwner(t *testing.T) {
	c := New(time.Minute)

	c.Set("tok-a", "venues:1", 1)
	c.Set("tok-a", "companies:1", 2)
	c.Set("tok-b", "venues:1", 3)

	c.PurgeOwner("tok-a")

	if _, ok := c.Get("tok-a", "venues:1"); ok {
		t.Error("Get: expected tok-a entries purged")
	}

	if _, ok := c.Get("tok-a", "companies:1"); ok {
		t.Error("Get: expected tok-a entries purged")
	}

	if _, ok := c.Get("tok-b", "venues:1"); !ok {
		t.Error("Get: expected tok-b entries untouched")
	}
}

func TestFetch(t *testing.T) {
	c := New(time.Minute)

	calls := 0
	fn := func() ([]string, error) {
		calls++
		return []string{"Messehalle Nord"}, nil
	}

	for i := 0; i < 3; i++ {
		items, err := Fetch(c, "tok", "venues:1", fn)
		if err != nil {
			t.Fatalf("%+v", errors.WithStack(err))
		}

		if e, g := 1, len(items); e != g {
			t.Fatalf("len(items): expected '%v', got '%v'", e, g)
		}
	}

	if e, g := 1, calls; e != g {
		t.Errorf("calls: expected '%v', got '%v'", e, g)
	}
}

func TestFetchDoesNotCacheFailures(t *testing.T) {
	c := New(time.Minute)

	calls := 0
	fn := func() (int, error) {
		calls++
		return 0, errors.New("backend down")
	}

	for i := 0; i < 2; i++ {
		if _, err := Fetch(c, "tok", "venues:1", fn); err == nil {
			t.Fatal("Fetch: expected error")
		}
	}

	if e, g := 2, calls; e != g {
		t.Errorf("calls: expected '%v', got '%v'", e, g)
	}
}
