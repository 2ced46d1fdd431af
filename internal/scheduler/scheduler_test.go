package scheduler

import (
	"testing"
)

func TestTick_FiresWhenDue(t *testing.T) {
	s := New(nil)

	var fires []uint32
	s.Register("sample", 100, func(nowMs uint32) {
		fires = append(fires, nowMs)
	})

	s.Tick(0)   // never fired: due immediately
	s.Tick(50)  // 50ms elapsed: not due
	s.Tick(99)  // 99ms elapsed: not due
	s.Tick(100) // due
	s.Tick(150) // not due
	s.Tick(210) // due

	want := []uint32{0, 100, 210}
	if len(fires) != len(want) {
		t.Fatalf("fired at %v, want %v", fires, want)
	}
	for i := range want {
		if fires[i] != want[i] {
			t.Errorf("fire %d at %d, want %d", i, fires[i], want[i])
		}
	}
}

func TestTick_NoCatchUpBurst(t *testing.T) {
	s := New(nil)

	count := 0
	s.Register("slow", 100, func(uint32) { count++ })

	s.Tick(0)
	// A stalled loop resumes 950ms late. The task must fire once, not nine
	// times, and its next due time counts from the late fire.
	s.Tick(950)
	if count != 2 {
		t.Fatalf("count = %d after late tick, want 2", count)
	}

	s.Tick(1000) // only 50ms since last run
	if count != 2 {
		t.Errorf("count = %d, want 2 (no catch-up burst)", count)
	}

	s.Tick(1050)
	if count != 3 {
		t.Errorf("count = %d, want 3", count)
	}
}

func TestTick_WrapAround(t *testing.T) {
	s := New(nil)

	count := 0
	s.Register("wrap", 1000, func(uint32) { count++ })

	// Last run just before the 32-bit counter rolls over.
	s.Tick(0xFFFFFFFF - 100)
	if count != 1 {
		t.Fatalf("count = %d, want 1", count)
	}

	// 101ms later the counter has wrapped to 0; not yet due.
	s.Tick(0)
	if count != 1 {
		t.Errorf("count = %d after wrap, want 1", count)
	}

	// 1000ms after the last run (across the wrap): due.
	s.Tick(899)
	if count != 2 {
		t.Errorf("count = %d after wrapped interval, want 2", count)
	}
}

func TestTick_ZeroIntervalRunsEveryTick(t *testing.T) {
	s := New(nil)

	count := 0
	s.Register("service", 0, func(uint32) { count++ })

	for _, now := range []uint32{0, 0, 1, 5, 5} {
		s.Tick(now)
	}
	if count != 5 {
		t.Errorf("count = %d, want 5", count)
	}
}

func TestTick_RegistrationOrder(t *testing.T) {
	s := New(nil)

	var order []string
	for _, name := range []string{"sense", "policy", "actuate"} {
		name := name
		s.Register(name, 10, func(uint32) { order = append(order, name) })
	}

	s.Tick(0)

	want := []string{"sense", "policy", "actuate"}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

func TestRegister_TaskCount(t *testing.T) {
	s := New(nil)
	s.Register("a", 1, func(uint32) {})
	s.Register("b", 2, func(uint32) {})
	if s.TaskCount() != 2 {
		t.Errorf("TaskCount() = %d, want 2", s.TaskCount())
	}
}
