package session

import "testing"

func TestRevealFrames(t *testing.T) {
	r := NewReveal("blå")

	want := []string{"b", "bl", "blå"}
	for _, w := range want {
		frame, ok := r.Next()
		if !ok {
			t.Fatalf("Next() ended early, want frame %q", w)
		}
		if frame != w {
			t.Errorf("frame = %q, want %q", frame, w)
		}
	}
	if !r.Done() {
		t.Error("Done() = false after full reveal")
	}
	if frame, ok := r.Next(); ok || frame != "blå" {
		t.Errorf("Next() after done = (%q, %v), want (%q, false)", frame, ok, "blå")
	}
}

func TestRevealRestart(t *testing.T) {
	r := NewReveal("hei")
	r.Next()
	r.Next()
	r.Restart()

	frame, ok := r.Next()
	if !ok || frame != "h" {
		t.Errorf("Next() after restart = (%q, %v), want (\"h\", true)", frame, ok)
	}
}
