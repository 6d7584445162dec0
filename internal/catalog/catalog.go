// Package catalog loads the drillable word set and its static difficulty
// classification.
package catalog

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// Tier is the static difficulty classification of an item.
type Tier string

const (
	TierEasy   Tier = "easy"
	TierMedium Tier = "medium"
	TierHard   Tier = "hard"
)

// Tiers lists all tiers in ascending difficulty order.
var Tiers = []Tier{TierEasy, TierMedium, TierHard}

// Item is one drillable word or phrase. Immutable once loaded.
type Item struct {
	ID          string // the word itself, as typed by the learner
	AudioFile   string // file name relative to the audio directory
	Tier        Tier
	Translation string // optional, empty when unknown
	Chapter     string // optional chapter key
}

// Classify derives a tier from length and token count. Used when the
// source carries no explicit difficulty tag.
func Classify(word string) Tier {
	length := utf8.RuneCountInString(word)
	tokens := len(strings.Fields(word))
	switch {
	case tokens == 1 && length <= 8:
		return TierEasy
	case tokens <= 2 && length <= 15:
		return TierMedium
	default:
		return TierHard
	}
}

// Catalog is a read-only view over the loaded item set. Tier assignment
// happens once at construction and is cached for the catalog's lifetime.
type Catalog struct {
	items map[string]Item
	tiers map[Tier][]string
}

// New builds a catalog from loaded items, classifying any item without an
// explicit tier tag.
func New(items []Item) *Catalog {
	c := &Catalog{
		items: make(map[string]Item, len(items)),
		tiers: make(map[Tier][]string),
	}
	for _, it := range items {
		if it.Tier == "" {
			it.Tier = Classify(it.ID)
		}
		c.items[it.ID] = it
		c.tiers[it.Tier] = append(c.tiers[it.Tier], it.ID)
	}
	for _, tier := range Tiers {
		sort.Strings(c.tiers[tier])
	}
	return c
}

// Item returns the item with the given ID.
func (c *Catalog) Item(id string) (Item, bool) {
	it, ok := c.items[id]
	return it, ok
}

// TierPool returns the IDs of all items in a tier, sorted.
func (c *Catalog) TierPool(tier Tier) []string {
	pool := c.tiers[tier]
	out := make([]string, len(pool))
	copy(out, pool)
	return out
}

// Len returns the total number of items.
func (c *Catalog) Len() int {
	return len(c.items)
}

// Empty reports whether the catalog holds no items at all.
func (c *Catalog) Empty() bool {
	return len(c.items) == 0
}
