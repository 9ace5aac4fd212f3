package calls

import "testing"

func TestValidRating(t *testing.T) {
	cases := map[int]bool{0: false, 1: true, 3: true, 5: true, 6: false, -1: false}
	for r, want := range cases {
		if got := ValidRating(r); got != want {
			t.Fatalf("ValidRating(%d) = %v, want %v", r, got, want)
		}
	}
}

func TestStatusValuesAreNonEmpty(t *testing.T) {
	statuses := []Status{
		StatusQueued,
		StatusRinging,
		StatusInProgress,
		StatusCompleted,
		StatusFailed,
		StatusNoAnswer,
		StatusBusy,
		StatusCanceled,
	}
	for _, s := range statuses {
		if s == "" {
			t.Fatalf("expected non-empty status")
		}
	}
}
