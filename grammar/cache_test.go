package grammar

import (
	"fmt"
	"reflect"
	"sync"
	"testing"
)

func TestCache_Parse(t *testing.T) {
	t.Parallel()

	g := MustNew(Declare("poll").ChainList(
		String("title"),
		String("options").StoreAsVarArg(),
	))
	c := NewCache(g, 0)

	first := c.Parse("poll Lunch pizza tacos")
	second := c.Parse("poll Lunch pizza tacos")

	if !reflect.DeepEqual(first.Native(), second.Native()) {
		t.Errorf("cached result differs: %v != %v", first.Native(), second.Native())
	}

	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}

	// Mutating a returned Result must not leak into later calls.
	delete(first.Tree("poll"), "title")

	if !c.Parse("poll Lunch pizza tacos").Tree("poll").Has("title") {
		t.Error("cache returned a shared Result")
	}

	if !reflect.DeepEqual(c.Parse("poll x").Native(), g.Parse("poll x").Native()) {
		t.Error("cache disagrees with Parse")
	}
}

func TestCache_Reset(t *testing.T) {
	t.Parallel()

	c := NewCache(MustNew(Declare("a")), 3)

	for i := range 3 {
		c.Parse(fmt.Sprint("a ", i))
	}

	if c.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", c.Len())
	}

	c.Parse("a overflow")

	if c.Len() != 1 {
		t.Errorf("Len() after overflow = %d, want 1", c.Len())
	}

	c.Reset()

	if c.Len() != 0 {
		t.Errorf("Len() after Reset = %d, want 0", c.Len())
	}
}

func TestCache_Concurrent(t *testing.T) {
	t.Parallel()

	g := MustNew(Declare("n").ChainSingle(Integer("v")))
	c := NewCache(g, 8)

	var wg sync.WaitGroup

	for i := range 32 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			in := fmt.Sprint("n ", i%10)
			if got, _ := c.Parse(in).Tree("n").Word("v"); got != fmt.Sprint(i%10) {
				t.Errorf("Parse(%q) v = %q", in, got)
			}
		}()
	}

	wg.Wait()
}
