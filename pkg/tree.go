package pkg

import (
	"sort"

	"go-eix/version"
)

// Tree is the whole package database: overlays plus categories in order.
// It exclusively owns its categories, packages and versions.
type Tree struct {
	Overlays []Overlay

	categories []*Category
	byName     map[string]*Category
}

// Category is a named, ordered list of packages.
type Category struct {
	Name string

	packages []*Package
	byName   map[string]*Package
}

// NewTree returns an empty tree without overlays.
func NewTree() *Tree {
	return &Tree{byName: make(map[string]*Category)}
}

// AddOverlay appends an overlay and returns its index.
func (t *Tree) AddOverlay(path, label string) int {
	t.Overlays = append(t.Overlays, Overlay{Path: path, Label: label})
	return len(t.Overlays) - 1
}

// OverlayLabel returns the label for an overlay index, or "" if the index
// is unknown.
func (t *Tree) OverlayLabel(i int) string {
	if i < 0 || i >= len(t.Overlays) {
		return ""
	}
	return t.Overlays[i].Label
}

// Category returns the category with the given name, creating it if needed.
func (t *Tree) Category(name string) *Category {
	if c, ok := t.byName[name]; ok {
		return c
	}
	c := &Category{Name: name, byName: make(map[string]*Package)}
	t.categories = append(t.categories, c)
	t.byName[name] = c
	return c
}

// FindCategory returns the named category or nil.
func (t *Tree) FindCategory(name string) *Category {
	return t.byName[name]
}

// FindPackage returns category/name or nil.
func (t *Tree) FindPackage(category, name string) *Package {
	c := t.byName[category]
	if c == nil {
		return nil
	}
	return c.Find(name)
}

// Categories returns the categories in tree order.
func (t *Tree) Categories() []*Category {
	return t.categories
}

// AddRecord converts rec and files it under its category and package.
// The version is parsed with p; records that fail are returned as errors
// and leave the tree untouched.
func (t *Tree) AddRecord(rec Record, overlay int, p version.Parser) (*Version, error) {
	if rec.Category == "" || rec.Name == "" {
		return nil, &RecordError{Category: rec.Category, Name: rec.Name, Version: rec.Version, Err: ErrInvalidRecord}
	}
	if overlay < 0 || overlay >= len(t.Overlays) {
		return nil, &RecordError{Category: rec.Category, Name: rec.Name, Version: rec.Version, Err: ErrOverlayRange}
	}

	v, err := NewVersion(rec, overlay, p)
	if err != nil {
		return nil, err
	}
	t.Category(rec.Category).Package(rec.Name).AddVersion(v, rec)
	return v, nil
}

// Sort orders categories and packages by name and every package's
// versions ascending.
func (t *Tree) Sort() {
	sort.Slice(t.categories, func(i, j int) bool {
		return t.categories[i].Name < t.categories[j].Name
	})
	for _, c := range t.categories {
		sort.Slice(c.packages, func(i, j int) bool {
			return c.packages[i].Name < c.packages[j].Name
		})
		for _, p := range c.packages {
			p.SortVersions()
		}
	}
}

// Size returns the number of categories.
func (t *Tree) Size() int {
	return len(t.categories)
}

// PackageCount returns the number of packages in all categories.
func (t *Tree) PackageCount() int {
	n := 0
	for _, c := range t.categories {
		n += len(c.packages)
	}
	return n
}

// VersionCount returns the number of versions in all packages.
func (t *Tree) VersionCount() int {
	n := 0
	t.Walk(func(p *Package) bool {
		n += len(p.Versions)
		return true
	})
	return n
}

// Walk calls fn for every package in tree order until fn returns false.
func (t *Tree) Walk(fn func(p *Package) bool) {
	for _, c := range t.categories {
		for _, p := range c.packages {
			if !fn(p) {
				return
			}
		}
	}
}

// Package returns the package with the given name, creating it if needed.
func (c *Category) Package(name string) *Package {
	if p, ok := c.byName[name]; ok {
		return p
	}
	p := &Package{Category: c.Name, Name: name}
	c.packages = append(c.packages, p)
	c.byName[name] = p
	return p
}

// Add files an already built package, replacing one of the same name.
func (c *Category) Add(p *Package) {
	p.Category = c.Name
	if old, ok := c.byName[p.Name]; ok {
		for i := range c.packages {
			if c.packages[i] == old {
				c.packages[i] = p
				break
			}
		}
	} else {
		c.packages = append(c.packages, p)
	}
	c.byName[p.Name] = p
}

// Find returns the named package or nil.
func (c *Category) Find(name string) *Package {
	return c.byName[name]
}

// Packages returns the packages in category order.
func (c *Category) Packages() []*Package {
	return c.packages
}

// Len returns the number of packages.
func (c *Category) Len() int {
	return len(c.packages)
}
