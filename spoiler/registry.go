// Package spoiler tracks which spoilers a reader has revealed, keyed by post
// id and the 1-based index of the spoiler within that post.
package spoiler

import (
	"slices"
	"sync"
)

// MaxIndex bounds the spoiler indices RevealAll will mark. No post holds
// anywhere near this many spoilers.
const MaxIndex = 1000

// Registry is safe for concurrent use. Readers proceed in parallel; every
// mutation of a post's set happens under the write lock. The zero value is
// ready to use.
type Registry struct {
	mu    sync.RWMutex
	posts map[string]map[int]struct{}
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{posts: make(map[string]map[int]struct{})}
}

// IsRevealed reports whether spoiler index of post has been revealed.
func (r *Registry) IsRevealed(post string, index int) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.posts[post][index]
	return ok
}

// Toggle flips the state of a single spoiler and returns the new state.
func (r *Registry) Toggle(post string, index int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.posts == nil {
		r.posts = make(map[string]map[int]struct{})
	}
	set, ok := r.posts[post]
	if !ok {
		set = make(map[int]struct{})
		r.posts[post] = set
	}
	if _, revealed := set[index]; revealed {
		delete(set, index)
		return false
	}
	set[index] = struct{}{}
	return true
}

// RevealAll reveals spoilers 1 through count of post. At least the first
// spoiler is revealed even if count is zero, and at most MaxIndex.
func (r *Registry) RevealAll(post string, count int) {
	count = min(max(1, count), MaxIndex)
	set := make(map[int]struct{}, count)
	for i := 1; i <= count; i++ {
		set[i] = struct{}{}
	}

	r.mu.Lock()
	r.set(post, set)
	r.mu.Unlock()
}

// HideAll hides every spoiler of post.
func (r *Registry) HideAll(post string) {
	r.mu.Lock()
	r.set(post, make(map[int]struct{}))
	r.mu.Unlock()
}

// set replaces the whole set of post. Callers hold the write lock.
func (r *Registry) set(post string, s map[int]struct{}) {
	if r.posts == nil {
		r.posts = make(map[string]map[int]struct{})
	}
	r.posts[post] = s
}

// Clear forgets every post.
func (r *Registry) Clear() {
	r.mu.Lock()
	r.posts = make(map[string]map[int]struct{})
	r.mu.Unlock()
}

// Revealed returns the revealed indices of post in ascending order.
func (r *Registry) Revealed(post string) []int {
	r.mu.RLock()
	idx := make([]int, 0, len(r.posts[post]))
	for i := range r.posts[post] {
		idx = append(idx, i)
	}
	r.mu.RUnlock()

	slices.Sort(idx)
	return idx
}
