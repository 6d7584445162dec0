package session

import (
	"errors"
	"math/rand"

	"github.com/arnvid/diktat/internal/catalog"
)

// ErrNoContent is returned when no items are available for the requested
// tier or mode. It is the only planning failure surfaced to the caller.
var ErrNoContent = errors.New("no content available")

// Planner builds session plans from the catalog and the due-review set.
// The rand source is injected so tests can pin the selection order.
type Planner struct {
	Catalog *catalog.Catalog
	Rand    *rand.Rand
}

// NewPlanner creates a planner over cat using rng for sampling.
func NewPlanner(cat *catalog.Catalog, rng *rand.Rand) *Planner {
	return &Planner{Catalog: cat, Rand: rng}
}

// BuildPractice selects up to targetSize words from one tier, preferring
// words that are due for review:
//   - enough due words in the tier: the session is all review
//   - some due words: take them all, fill from the tier's non-due pool,
//     then shuffle so review words are not clustered at the front
//   - none due: plain random sample from the tier pool
func (p *Planner) BuildPractice(tier catalog.Tier, targetSize int, due map[string]bool) (*Plan, error) {
	pool := p.Catalog.TierPool(tier)
	if len(pool) == 0 {
		return nil, ErrNoContent
	}

	var dueInTier, fresh []string
	for _, id := range pool {
		if due[id] {
			dueInTier = append(dueInTier, id)
		} else {
			fresh = append(fresh, id)
		}
	}

	var chosen []string
	switch {
	case len(dueInTier) >= targetSize:
		chosen = p.sample(dueInTier, targetSize)
	case len(dueInTier) > 0:
		chosen = append(chosen, dueInTier...)
		chosen = append(chosen, p.sample(fresh, targetSize-len(dueInTier))...)
		p.Rand.Shuffle(len(chosen), func(i, j int) {
			chosen[i], chosen[j] = chosen[j], chosen[i]
		})
	default:
		chosen = p.sample(pool, targetSize)
	}

	return &Plan{Mode: ModePractice, Items: p.resolve(chosen)}, nil
}

// BuildAction concatenates the full easy, medium, and hard pools, each
// shuffled within its own block. Blocks are never interleaved, which is
// what guarantees non-decreasing difficulty across the run.
func (p *Planner) BuildAction() (*Plan, error) {
	easy := p.sample(p.Catalog.TierPool(catalog.TierEasy), p.Catalog.Len())
	medium := p.sample(p.Catalog.TierPool(catalog.TierMedium), p.Catalog.Len())
	hard := p.sample(p.Catalog.TierPool(catalog.TierHard), p.Catalog.Len())

	if len(easy)+len(medium)+len(hard) == 0 {
		return nil, ErrNoContent
	}

	var ids []string
	ids = append(ids, easy...)
	ids = append(ids, medium...)
	ids = append(ids, hard...)

	return &Plan{
		Mode:        ModeAction,
		Items:       p.resolve(ids),
		easyCount:   len(easy),
		mediumCount: len(medium),
	}, nil
}

// sample returns min(n, len(pool)) elements drawn uniformly without
// replacement. The input slice is not modified.
func (p *Planner) sample(pool []string, n int) []string {
	if n > len(pool) {
		n = len(pool)
	}
	if n <= 0 {
		return nil
	}
	perm := p.Rand.Perm(len(pool))
	out := make([]string, n)
	for i := 0; i < n; i++ {
		out[i] = pool[perm[i]]
	}
	return out
}

func (p *Planner) resolve(ids []string) []catalog.Item {
	items := make([]catalog.Item, 0, len(ids))
	for _, id := range ids {
		if it, ok := p.Catalog.Item(id); ok {
			items = append(items, it)
		}
	}
	return items
}
