package timespinner

import "testing"

func TestNumberFieldFullCycleReturnsToStart(t *testing.T) {
	ranges := []struct{ min, max int }{{0, 23}, {1, 12}, {0, 59}}
	for _, r := range ranges {
		f := NewNumberField(r.min, r.max)
		for n := r.min; n <= r.max; n++ {
			f.Set(n)
			for i := 0; i < r.max-r.min+1; i++ {
				f.Increment()
			}
			if f.Get() != n {
				t.Fatalf("[%d,%d] increment cycle from %d ended at %d", r.min, r.max, n, f.Get())
			}
			for i := 0; i < r.max-r.min+1; i++ {
				f.Decrement()
			}
			if f.Get() != n {
				t.Fatalf("[%d,%d] decrement cycle from %d ended at %d", r.min, r.max, n, f.Get())
			}
		}
	}
}

func TestNumberFieldWrapsAtBounds(t *testing.T) {
	f := NewNumberField(0, 23)
	f.Set(23)
	f.Increment()
	if f.Get() != 0 {
		t.Fatalf("23+1 = %d, want 0", f.Get())
	}
	f.Decrement()
	if f.Get() != 23 {
		t.Fatalf("0-1 = %d, want 23", f.Get())
	}
}

func TestValidateAndCommitRejectsOutOfRange(t *testing.T) {
	f := NewNumberField(0, 59)
	f.Set(30)
	var shown string
	f.SetDisplay(func(s string) { shown = s })
	changes := 0
	f.OnChange(func() { changes++ })

	shown = "61"
	if f.ValidateAndCommit("61") {
		t.Fatal("61 should be rejected")
	}
	if f.Get() != 30 || changes != 0 {
		t.Fatalf("after reject: value=%d changes=%d", f.Get(), changes)
	}
	if shown != "30" {
		t.Fatalf("display = %q, want last committed 30", shown)
	}

	for _, raw := range []string{"", "ab", "-1", "4.5"} {
		if f.ValidateAndCommit(raw) {
			t.Fatalf("%q should be rejected", raw)
		}
	}
	if changes != 0 {
		t.Fatalf("rejections fired %d callbacks", changes)
	}

	if !f.ValidateAndCommit(" 7 ") || f.Get() != 7 || changes != 1 {
		t.Fatalf("accept 7: value=%d changes=%d", f.Get(), changes)
	}
	if shown != "07" {
		t.Fatalf("display = %q, want 07", shown)
	}
}

func TestOnChangeOncePerMutation(t *testing.T) {
	f := NewNumberField(0, 59)
	changes := 0
	f.OnChange(func() { changes++ })
	f.Increment()
	f.Decrement()
	f.Scroll(3)
	f.Scroll(0)
	f.Scroll(-2)
	f.Set(10)
	if changes != 5 {
		t.Fatalf("changes = %d, want 5 (Set does not notify)", changes)
	}
}

func TestScrollDirection(t *testing.T) {
	f := NewNumberField(0, 59)
	f.Set(10)
	f.Scroll(1)
	if f.Get() != 11 {
		t.Fatalf("positive delta: %d", f.Get())
	}
	f.Scroll(0)
	if f.Get() != 10 {
		t.Fatalf("zero delta: %d", f.Get())
	}
	f.Scroll(-1)
	if f.Get() != 9 {
		t.Fatalf("negative delta: %d", f.Get())
	}
}

func TestSetOutOfRangeIgnored(t *testing.T) {
	f := NewNumberField(1, 12)
	f.Set(5)
	if f.Set(0) || f.Set(13) {
		t.Fatal("Set outside range should fail")
	}
	if f.Get() != 5 {
		t.Fatalf("value = %d, want 5", f.Get())
	}
}

func TestAmPmField(t *testing.T) {
	f := NewAmPmField(AM)
	changes := 0
	f.OnChange(func() { changes++ })

	if f.CanIncrement() || !f.CanDecrement() {
		t.Fatal("at AM only decrement should be available")
	}
	f.Increment()
	if f.Get() != PM {
		t.Fatalf("toggle from AM = %v", f.Get())
	}
	if !f.CanIncrement() || f.CanDecrement() {
		t.Fatal("at PM only increment should be available")
	}
	f.Decrement()
	if f.Get() != AM {
		t.Fatalf("toggle from PM = %v", f.Get())
	}

	if f.ValidateAndCommit("noon") {
		t.Fatal("noon should be rejected")
	}
	if !f.ValidateAndCommit("pm") || f.Text() != "PM" {
		t.Fatalf("pm: %q", f.Text())
	}
	if changes != 3 {
		t.Fatalf("changes = %d, want 3", changes)
	}
}
