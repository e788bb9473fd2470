// Package profile keeps the active search filter and the user's saved ones.
package profile

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rcliao/merchant-memory/internal/model"
)

// ErrNotFound is returned when loading or deleting an unknown profile name.
var ErrNotFound = errors.New("profile: not found")

// Store holds one active FilterProfile and any number of named copies.
// Named profiles never alias the active one.
type Store struct {
	active model.FilterProfile
	saved  map[string]model.FilterProfile
}

// New returns a Store whose active profile filters nothing.
func New() *Store {
	return &Store{
		active: model.DefaultFilterProfile(),
		saved:  make(map[string]model.FilterProfile),
	}
}

// Active returns a copy of the active profile.
func (s *Store) Active() model.FilterProfile {
	return s.active.Clone()
}

// Save copies the active profile under name, replacing any previous entry.
func (s *Store) Save(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("profile: empty name")
	}
	s.saved[name] = s.active.Clone()
	return nil
}

// Load copies the named profile into the active slot.
func (s *Store) Load(name string) error {
	p, ok := s.saved[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	s.active = p.Clone()
	return nil
}

// Get returns a copy of a saved profile.
func (s *Store) Get(name string) (model.FilterProfile, error) {
	p, ok := s.saved[name]
	if !ok {
		return model.FilterProfile{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return p.Clone(), nil
}

// Delete removes a saved profile.
func (s *Store) Delete(name string) error {
	if _, ok := s.saved[name]; !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	delete(s.saved, name)
	return nil
}

// ListNames returns the saved profile names in sorted order.
func (s *Store) ListNames() []string {
	names := make([]string, 0, len(s.saved))
	for n := range s.saved {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func (s *Store) SetMinSpend(v int) {
	s.active.MinSpend = v
}

// SetMaxSpend sets the upper price bound. model.Unbounded clears it.
func (s *Store) SetMaxSpend(v int) {
	s.active.MaxSpend = v
}

func (s *Store) SetOnlyRestocking(v bool) {
	s.active.OnlyRestocking = v
}

// ToggleOnlyRestocking flips the restock-only flag and returns the new value.
func (s *Store) ToggleOnlyRestocking() bool {
	s.active.OnlyRestocking = !s.active.OnlyRestocking
	return s.active.OnlyRestocking
}

// SetCategories replaces the category allow-list. An empty list removes the
// restriction.
func (s *Store) SetCategories(names []string) {
	s.active.Categories = model.CategorySet(names)
}

// Export returns copies of the active profile and every saved profile.
func (s *Store) Export() (model.FilterProfile, map[string]model.FilterProfile) {
	saved := make(map[string]model.FilterProfile, len(s.saved))
	for n, p := range s.saved {
		saved[n] = p.Clone()
	}
	return s.active.Clone(), saved
}

// Replace installs a freshly loaded active profile and saved set.
func (s *Store) Replace(active model.FilterProfile, saved map[string]model.FilterProfile) {
	s.active = active.Clone()
	s.saved = make(map[string]model.FilterProfile, len(saved))
	for n, p := range saved {
		s.saved[n] = p.Clone()
	}
}

// Reset restores defaults and forgets every saved profile.
func (s *Store) Reset() {
	s.Replace(model.DefaultFilterProfile(), nil)
}

// ParseSpend coerces user input into a spend bound.
func ParseSpend(input string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return 0, fmt.Errorf("profile: invalid amount %q", input)
	}
	return v, nil
}

// ParseCategories splits a comma-separated category list.
func ParseCategories(input string) []string {
	return model.CategorySet(strings.Split(input, ","))
}

// Describe summarises p in one line for prompts.
func Describe(p model.FilterProfile) string {
	max := "any"
	if p.HasMax() {
		max = strconv.Itoa(p.MaxSpend)
	}
	cats := "all"
	if len(p.Categories) > 0 {
		cats = strings.Join(p.Categories, ", ")
	}
	restock := "no"
	if p.OnlyRestocking {
		restock = "yes"
	}
	return fmt.Sprintf("min %d, max %s, restocking only: %s, categories: %s", p.MinSpend, max, restock, cats)
}
