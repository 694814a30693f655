package orchestration

import (
	"errors"
	"testing"
)

func TestNewProgressTracker(t *testing.T) {
	t.Parallel()
	if NewProgressTracker(0) != nil {
		t.Error("expected nil tracker for total=0")
	}
	if NewProgressTracker(-1) != nil {
		t.Error("expected nil tracker for total=-1")
	}
	if NewProgressTracker(3) == nil {
		t.Fatal("expected tracker for total=3")
	}
}

func TestProgressTracker_Update(t *testing.T) {
	t.Parallel()
	p := NewProgressTracker(2)

	p.Update(ProgressUpdate{Index: 0, Key: "manual"})
	if p.Active() != "manual" {
		t.Errorf("Active() = %q, want manual", p.Active())
	}
	if p.Fraction() != 0 {
		t.Errorf("Fraction() = %v, want 0", p.Fraction())
	}

	p.Update(ProgressUpdate{Index: 0, Key: "manual", Done: true})
	if p.Active() != "" {
		t.Errorf("Active() = %q after finish, want empty", p.Active())
	}
	if p.Fraction() != 0.5 {
		t.Errorf("Fraction() = %v, want 0.5", p.Fraction())
	}

	p.Update(ProgressUpdate{Index: 1, Key: "aggregate", Done: true, Err: errors.New("x")})
	done, failed, total := p.Counts()
	if done != 2 || failed != 1 || total != 2 {
		t.Errorf("Counts() = %d,%d,%d, want 2,1,2", done, failed, total)
	}
	if p.Fraction() != 1 {
		t.Errorf("Fraction() = %v, want 1", p.Fraction())
	}
}

func TestDrainChannel(t *testing.T) {
	t.Parallel()
	ch := make(chan ProgressUpdate, 3)
	ch <- ProgressUpdate{Index: 0}
	ch <- ProgressUpdate{Index: 0, Done: true}
	close(ch)

	DrainChannel(ch)
}
