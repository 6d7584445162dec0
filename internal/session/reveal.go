package session

// Reveal produces the letter-by-letter reveal of a correct answer as a
// lazy, finite sequence of partial strings. The presentation layer pulls
// frames on its own cadence; the engine's timing is not involved.
type Reveal struct {
	word string
	pos  int
}

// NewReveal starts a reveal for word.
func NewReveal(word string) *Reveal {
	return &Reveal{word: word}
}

// Next returns the next partial string. ok is false once the full word
// has been produced.
func (r *Reveal) Next() (frame string, ok bool) {
	runes := []rune(r.word)
	if r.pos >= len(runes) {
		return r.word, false
	}
	r.pos++
	return string(runes[:r.pos]), true
}

// Done reports whether the full word has been revealed.
func (r *Reveal) Done() bool {
	return r.pos >= len([]rune(r.word))
}

// Restart rewinds the reveal for a fresh wrong answer.
func (r *Reveal) Restart() {
	r.pos = 0
}
