package spoiler

import (
	"fmt"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestToggle(t *testing.T) {
	r := NewRegistry()
	if r.IsRevealed("1", 1) {
		t.Fatal("fresh registry should have nothing revealed")
	}
	if !r.Toggle("1", 1) {
		t.Error("first toggle should reveal")
	}
	if !r.IsRevealed("1", 1) {
		t.Error("spoiler should be revealed")
	}
	if r.IsRevealed("1", 2) || r.IsRevealed("2", 1) {
		t.Error("toggle leaked to another spoiler")
	}
	if r.Toggle("1", 1) {
		t.Error("second toggle should hide")
	}
	if r.IsRevealed("1", 1) {
		t.Error("spoiler should be hidden again")
	}
}

func TestRevealAndHideAll(t *testing.T) {
	r := NewRegistry()
	r.Toggle("p", 7)
	r.RevealAll("p", 3)
	if diff := cmp.Diff([]int{1, 2, 3}, r.Revealed("p")); diff != "" {
		t.Errorf("RevealAll replaced set mismatch (-want +got):\n%s", diff)
	}

	r.RevealAll("q", 0)
	if diff := cmp.Diff([]int{1}, r.Revealed("q")); diff != "" {
		t.Errorf("RevealAll with zero count mismatch (-want +got):\n%s", diff)
	}

	r.HideAll("p")
	if got := r.Revealed("p"); len(got) != 0 {
		t.Errorf("Expected nothing revealed, Actual %v", got)
	}
	if !r.IsRevealed("q", 1) {
		t.Error("HideAll touched another post")
	}

	r.Clear()
	if r.IsRevealed("q", 1) {
		t.Error("Clear should forget every post")
	}
}

func TestRevealAllIsBounded(t *testing.T) {
	r := NewRegistry()
	r.RevealAll("p", 2_000_000_000)
	got := r.Revealed("p")
	if len(got) != MaxIndex {
		t.Fatalf("Expected: %d revealed Actual %d", MaxIndex, len(got))
	}
	if got[len(got)-1] != MaxIndex {
		t.Errorf("Expected: %d Actual %d", MaxIndex, got[len(got)-1])
	}
}

func TestConcurrentToggles(t *testing.T) {
	r := NewRegistry()

	const workers = 16
	const perWorker = 100

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			post := fmt.Sprintf("post-%d", w%4)
			for i := 0; i < perWorker; i++ {
				r.Toggle(post, i%5+1)
				_ = r.IsRevealed(post, 1)
				if i%25 == 0 {
					_ = r.Revealed(post)
				}
			}
		}(w)
	}
	wg.Wait()

	// Each (post, index) pair was toggled an even number of times: four
	// workers per post, twenty toggles per index each.
	for p := 0; p < 4; p++ {
		if got := r.Revealed(fmt.Sprintf("post-%d", p)); len(got) != 0 {
			t.Errorf("post-%d: lost update, still revealed %v", p, got)
		}
	}
}
