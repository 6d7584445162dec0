// Package translate resolves English glosses for Norwegian words.
// Lookups go through a local cache and a built-in dictionary first; a
// remote backend, when configured, fills the gaps on a best-effort
// basis. Translation failures never block a session.
package translate

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/arnvid/diktat/internal/store"
)

// Translator resolves a gloss for one word. Implementations must never
// fail: an unknown word yields a fallback string.
type Translator interface {
	Translate(word string) string
}

// Remote is a network-backed translation source.
type Remote interface {
	Lookup(ctx context.Context, word string) (string, error)
}

// Service is the layered translator: cache, then the user dictionary,
// then the built-in dictionary (exact match, then substring), then the
// remote backend if present.
type Service struct {
	mu     sync.Mutex
	cache  map[string]string
	extra  map[string]string
	remote Remote

	// RemoteTimeout bounds each remote lookup.
	RemoteTimeout time.Duration
}

// NewService creates a translator. remote may be nil for offline use.
func NewService(remote Remote) *Service {
	return &Service{
		cache:         make(map[string]string),
		extra:         make(map[string]string),
		remote:        remote,
		RemoteTimeout: 5 * time.Second,
	}
}

// LoadUserDictionary merges a word→gloss JSON document into the lookup
// chain. Entries override the built-in dictionary. A missing file is not
// an error.
func (s *Service) LoadUserDictionary(path string) error {
	var entries map[string]string
	if _, err := store.LoadDoc(path, &entries); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for word, gloss := range entries {
		s.extra[strings.ToLower(strings.TrimSpace(word))] = gloss
	}
	return nil
}

func (s *Service) Translate(word string) string {
	key := strings.ToLower(strings.TrimSpace(word))
	if key == "" {
		return ""
	}

	s.mu.Lock()
	if cached, ok := s.cache[key]; ok {
		s.mu.Unlock()
		return cached
	}
	result := s.extra[key]
	s.mu.Unlock()

	if result == "" {
		result = lookupBuiltin(key)
	}
	if result == "" && s.remote != nil {
		ctx, cancel := context.WithTimeout(context.Background(), s.RemoteTimeout)
		remote, err := s.remote.Lookup(ctx, key)
		cancel()
		if err == nil {
			result = strings.TrimSpace(remote)
		}
	}
	if result == "" {
		result = "(oversettelse utilgjengelig)"
	}

	s.mu.Lock()
	s.cache[key] = result
	s.mu.Unlock()
	return result
}

// lookupBuiltin tries an exact dictionary hit, then a substring match
// for compounds like "kaffekopp".
func lookupBuiltin(key string) string {
	if gloss, ok := builtin[key]; ok {
		return gloss
	}
	best := ""
	for no := range builtin {
		if len(no) >= 4 && strings.Contains(key, no) && len(no) > len(best) {
			best = no
		}
	}
	if best != "" {
		return builtin[best] + " (del av ordet)"
	}
	return ""
}

// builtin covers the common words of the starter chapters.
var builtin = map[string]string{
	"hei":        "hello",
	"takk":       "thanks",
	"ja":         "yes",
	"nei":        "no",
	"god":        "good",
	"morgen":     "morning",
	"kveld":      "evening",
	"natt":       "night",
	"dag":        "day",
	"uke":        "week",
	"måned":      "month",
	"år":         "year",
	"hus":        "house",
	"hjem":       "home",
	"skole":      "school",
	"jobb":       "work",
	"mat":        "food",
	"vann":       "water",
	"kaffe":      "coffee",
	"te":         "tea",
	"melk":       "milk",
	"brød":       "bread",
	"ost":        "cheese",
	"eple":       "apple",
	"bok":        "book",
	"bil":        "car",
	"tog":        "train",
	"buss":       "bus",
	"by":         "city",
	"land":       "country",
	"venn":       "friend",
	"familie":    "family",
	"mor":        "mother",
	"far":        "father",
	"barn":       "child",
	"gutt":       "boy",
	"jente":      "girl",
	"mann":       "man",
	"kvinne":     "woman",
	"stor":       "big",
	"liten":      "small",
	"ny":         "new",
	"gammel":     "old",
	"fin":        "nice",
	"vakker":     "beautiful",
	"rask":       "fast",
	"langsom":    "slow",
	"varm":       "warm",
	"kald":       "cold",
	"rød":        "red",
	"blå":        "blue",
	"grønn":      "green",
	"gul":        "yellow",
	"svart":      "black",
	"hvit":       "white",
	"spise":      "to eat",
	"drikke":     "to drink",
	"lese":       "to read",
	"skrive":     "to write",
	"snakke":     "to speak",
	"høre":       "to hear",
	"se":         "to see",
	"gå":         "to walk",
	"løpe":       "to run",
	"sove":       "to sleep",
	"arbeide":    "to work",
	"lære":       "to learn",
	"forstå":     "to understand",
	"hjelpe":     "to help",
	"kjøpe":      "to buy",
	"selge":      "to sell",
	"komme":      "to come",
	"reise":      "to travel",
	"språk":      "language",
	"ord":        "word",
	"setning":    "sentence",
	"spørsmål":   "question",
	"svar":       "answer",
	"tid":        "time",
	"klokke":     "clock",
	"penger":     "money",
	"butikk":     "shop",
	"vei":        "road",
	"gate":       "street",
	"dør":        "door",
	"vindu":      "window",
	"bord":       "table",
	"stol":       "chair",
	"seng":       "bed",
	"rom":        "room",
	"kjøkken":    "kitchen",
	"vær":        "weather",
	"sol":        "sun",
	"regn":       "rain",
	"snø":        "snow",
	"vind":       "wind",
	"fjell":      "mountain",
	"skog":       "forest",
	"sjø":        "lake",
	"hav":        "sea",
	"sommer":     "summer",
	"vinter":     "winter",
	"vår":        "spring",
	"høst":       "autumn",
	"i dag":      "today",
	"i morgen":   "tomorrow",
	"i går":      "yesterday",
	"hyggelig":   "pleasant",
	"viktig":     "important",
	"vanskelig":  "difficult",
	"enkel":      "simple",
	"sulten":     "hungry",
	"tørst":      "thirsty",
	"trøtt":      "tired",
	"glad":       "happy",
	"trist":      "sad",
	"unnskyld":   "sorry",
	"vær så god": "you're welcome",
}
