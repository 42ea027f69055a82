// Package puzzle owns the category catalog: the ordered name -> item-list
// definitions, the strict/great split, the "#" position pseudo-category, the
// short-name ambiguity table, and the dense row-index assignment every other
// package in the solver core addresses rows by.
//
// RowKey ("category.item") stays the string-keyed, human-facing identity for
// the resolver and for error messages; Catalog interns every RowKey to an
// integer row index at load time so internal/matrix, internal/propagate,
// internal/elim and internal/search never touch strings on the hot path.
package puzzle

import (
	"fmt"
	"sort"
)

// RowKey is a fully-qualified row identity, "category.item".
type RowKey string

// PositionCategory is the synthetic strict category name ("#") whose items
// are the positions themselves, added by NewCatalog.
const PositionCategory = "#"

// CategoryDef is one category as declared by the puzzle source: an ordered
// name and an ordered item list, plus whether it is a great category.
type CategoryDef struct {
	Name  string
	Items []string
	Great bool
}

// Catalog is the fully resolved, validated set of categories for one puzzle,
// with the "#" position pseudo-category injected and every row assigned a
// dense integer index.
type Catalog struct {
	N int // number of positions; defined by any strict category's length

	order []string               // category names, declaration order, "#" last
	great map[string]bool        // category name -> is-great
	items map[string][]string    // category name -> ordered item list
	rowID map[RowKey]int         // row key -> dense row index
	key   []RowKey               // row index -> row key (inverse of rowID)
	cats  []string               // row index -> owning category name

	shortName map[string]RowKey // unambiguous short name -> full row key
	ambiguous map[string]bool   // short name -> seen in >1 category
}

// Errors surfaced to the caller from catalog construction.
var (
	ErrNoCategories = fmt.Errorf("puzzle: no categories declared")
)

// MismatchedCategorySizeError reports that a strict category's length
// disagrees with the puzzle's established N.
type MismatchedCategorySizeError struct {
	Category string
	Got      int
	Want     int
}

func (e *MismatchedCategorySizeError) Error() string {
	return fmt.Sprintf("puzzle: category %q has %d items, want %d (strict categories must match size)", e.Category, e.Got, e.Want)
}

// UnknownCategoryError reports a reference to a category that was never
// declared.
type UnknownCategoryError struct {
	Category string
}

func (e *UnknownCategoryError) Error() string {
	return fmt.Sprintf("puzzle: unknown category %q", e.Category)
}

// NewCatalog validates and builds a Catalog from the declared categories.
// defs must be in declaration order; at least one must be non-great (a
// strict category), and every strict category must share the same item
// count, which becomes Catalog.N. A synthetic strict category "#" with
// items "1".."N" is appended automatically.
func NewCatalog(defs []CategoryDef) (*Catalog, error) {
	if len(defs) == 0 {
		return nil, ErrNoCategories
	}

	n := -1
	for _, d := range defs {
		if d.Great {
			continue
		}
		if n == -1 {
			n = len(d.Items)
		} else if len(d.Items) != n {
			return nil, &MismatchedCategorySizeError{Category: d.Name, Got: len(d.Items), Want: n}
		}
	}
	if n == -1 {
		return nil, ErrNoCategories
	}

	c := &Catalog{
		N:         n,
		great:     make(map[string]bool),
		items:     make(map[string][]string),
		rowID:     make(map[RowKey]int),
		shortName: make(map[string]RowKey),
		ambiguous: make(map[string]bool),
	}

	add := func(name string, items []string, great bool) {
		c.order = append(c.order, name)
		c.great[name] = great
		c.items[name] = items
		for _, it := range items {
			rk := RowKey(name + "." + it)
			idx := len(c.key)
			c.rowID[rk] = idx
			c.key = append(c.key, rk)
			c.cats = append(c.cats, name)

			if existing, seen := c.shortName[it]; seen && existing != rk {
				c.ambiguous[it] = true
			} else {
				c.shortName[it] = rk
			}
		}
	}

	for _, d := range defs {
		add(d.Name, d.Items, d.Great)
	}

	posItems := make([]string, n)
	for i := 0; i < n; i++ {
		posItems[i] = fmt.Sprintf("%d", i+1)
	}
	add(PositionCategory, posItems, false)

	for s := range c.ambiguous {
		delete(c.shortName, s)
	}

	return c, nil
}

// Categories returns category names in declaration order, including the
// trailing "#" pseudo-category.
func (c *Catalog) Categories() []string { return c.order }

// StrictCategories returns the non-great category names, in declaration
// order, including "#".
func (c *Catalog) StrictCategories() []string {
	var out []string
	for _, name := range c.order {
		if !c.great[name] {
			out = append(out, name)
		}
	}
	return out
}

// IsGreat reports whether name is a great category.
func (c *Catalog) IsGreat(name string) bool { return c.great[name] }

// Items returns the ordered item list for a category.
func (c *Catalog) Items(name string) ([]string, error) {
	items, ok := c.items[name]
	if !ok {
		return nil, &UnknownCategoryError{Category: name}
	}
	return items, nil
}

// RowsOf returns the dense row indices belonging to a category, in item
// order.
func (c *Catalog) RowsOf(name string) ([]int, error) {
	items, err := c.Items(name)
	if err != nil {
		return nil, err
	}
	out := make([]int, len(items))
	for i, it := range items {
		out[i] = c.rowID[RowKey(name+"."+it)]
	}
	return out, nil
}

// RowID resolves a fully-qualified row key to its dense index. ok is false
// if the key was never declared.
func (c *Catalog) RowID(key RowKey) (int, bool) {
	id, ok := c.rowID[key]
	return id, ok
}

// RowKeyOf returns the fully-qualified key for a dense row index.
func (c *Catalog) RowKeyOf(row int) RowKey { return c.key[row] }

// CategoryOf returns the owning category name for a dense row index.
func (c *Catalog) CategoryOf(row int) string { return c.cats[row] }

// NumRows returns the total number of rows across all categories.
func (c *Catalog) NumRows() int { return len(c.key) }

// ShortNameRowKey resolves an unambiguous short item name to its full row
// key. ok is false if the name is unknown or ambiguous across categories.
func (c *Catalog) ShortNameRowKey(name string) (RowKey, bool) {
	rk, ok := c.shortName[name]
	return rk, ok
}

// PositionRowKey returns the row key for the "#"-category item representing
// 1-based position p.
func (c *Catalog) PositionRowKey(p int) RowKey {
	return RowKey(fmt.Sprintf("%s.%d", PositionCategory, p))
}

// SortedCategoryNames returns category names (excluding "#") sorted
// alphabetically; used only for deterministic diagnostic output.
func (c *Catalog) SortedCategoryNames() []string {
	var out []string
	for _, name := range c.order {
		if name != PositionCategory {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}
