package scheduler

import "testing"

func TestRepeatingTaskFiresEveryInterval(t *testing.T) {
	c := NewClock()
	fired := 0
	c.Schedule(Task{Name: "wall", Interval: 2.0, Repeat: true, OnFire: func() { fired++ }})

	// 120 帧 1/60 秒，浮点累加不精确也应在 2.0 秒时触发
	for i := 0; i < 120; i++ {
		c.Advance(1.0 / 60.0)
	}
	if fired != 1 {
		t.Fatalf("fired after 2.0s: got %d, want 1", fired)
	}

	for i := 0; i < 120; i++ {
		c.Advance(1.0 / 60.0)
	}
	if fired != 2 {
		t.Errorf("fired after 4.0s: got %d, want 2", fired)
	}
}

func TestOneShotTaskFiresOnce(t *testing.T) {
	c := NewClock()
	fired := 0
	id := c.Schedule(Task{Name: "once", Interval: 0.5, OnFire: func() { fired++ }})

	c.Advance(1.0)
	c.Advance(1.0)

	if fired != 1 {
		t.Errorf("fired: got %d, want 1", fired)
	}
	if c.IsPending(id) {
		t.Error("one-shot task should not be pending after firing")
	}
	if c.Pending() != 0 {
		t.Errorf("Pending: got %d, want 0", c.Pending())
	}
}

func TestZeroSpeedPausesTasks(t *testing.T) {
	c := NewClock()
	fired := 0
	c.Schedule(Task{Name: "paused", Interval: 1.0, Repeat: true, OnFire: func() { fired++ }})

	c.Advance(0.75)
	c.Speed = 0
	c.Advance(10)
	if fired != 0 {
		t.Fatalf("task fired while paused: %d", fired)
	}

	// 恢复后保留暂停前的进度
	c.Speed = 1
	c.Advance(0.25)
	if fired != 1 {
		t.Errorf("fired after resume: got %d, want 1", fired)
	}
}

func TestSpeedScalesTime(t *testing.T) {
	c := NewClock()
	c.Speed = 0.5
	fired := 0
	c.Schedule(Task{Name: "slow", Interval: 1.0, OnFire: func() { fired++ }})

	c.Advance(1.0)
	if fired != 0 {
		t.Fatal("half-speed clock should not fire after 1s")
	}
	c.Advance(1.0)
	if fired != 1 {
		t.Errorf("fired: got %d, want 1", fired)
	}
}

func TestCancel(t *testing.T) {
	c := NewClock()
	fired := 0
	id := c.Schedule(Task{Name: "cancel", Interval: 1.0, Repeat: true, OnFire: func() { fired++ }})

	if !c.Cancel(id) {
		t.Fatal("Cancel should report pending task")
	}
	if c.Cancel(id) {
		t.Error("second Cancel should report false")
	}
	c.Advance(5)
	if fired != 0 {
		t.Errorf("cancelled task fired %d times", fired)
	}
}

func TestCancelAll(t *testing.T) {
	c := NewClock()
	for i := 0; i < 3; i++ {
		c.Schedule(Task{Name: "n", Interval: 1.0, Repeat: true, OnFire: func() {}})
	}
	c.CancelAll()
	if c.Pending() != 0 {
		t.Errorf("Pending after CancelAll: got %d, want 0", c.Pending())
	}
}

func TestNextIntervalRedrawn(t *testing.T) {
	c := NewClock()
	intervals := []float64{2.0, 3.0}
	next := 0
	var firedAt []float64
	now := 0.0
	c.Schedule(Task{
		Name:     "item",
		Interval: 1.0,
		Repeat:   true,
		OnFire:   func() { firedAt = append(firedAt, now) },
		NextInterval: func() float64 {
			v := intervals[next%len(intervals)]
			next++
			return v
		},
	})

	for i := 0; i < 8; i++ {
		now += 1.0
		c.Advance(1.0)
	}

	want := []float64{1, 3, 6, 8}
	if len(firedAt) != len(want) {
		t.Fatalf("fire count: got %v, want %v", firedAt, want)
	}
	for i := range want {
		if firedAt[i] != want[i] {
			t.Errorf("fire %d at %v, want %v", i, firedAt[i], want[i])
		}
	}
}

func TestScheduleFromCallbackStartsNextFrame(t *testing.T) {
	c := NewClock()
	inner := 0
	c.Schedule(Task{Name: "outer", Interval: 1.0, OnFire: func() {
		c.Schedule(Task{Name: "inner", Interval: 1.0, OnFire: func() { inner++ }})
	}})

	c.Advance(1.0)
	if inner != 0 {
		t.Fatal("task scheduled inside callback must not fire in the same Advance")
	}
	c.Advance(1.0)
	if inner != 1 {
		t.Errorf("inner fired: got %d, want 1", inner)
	}
}

func TestScheduleInvalidPanics(t *testing.T) {
	tests := []struct {
		name string
		task Task
	}{
		{"zero interval", Task{Name: "z", Interval: 0, OnFire: func() {}}},
		{"negative interval", Task{Name: "n", Interval: -1, OnFire: func() {}}},
		{"nil callback", Task{Name: "nil", Interval: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			NewClock().Schedule(tt.task)
		})
	}
}
