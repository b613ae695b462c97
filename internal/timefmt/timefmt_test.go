package timefmt_test

import (
	"testing"
	"time"

	"github.com/news-comment-engine/internal/timefmt"
)

func TestFormat(t *testing.T) {
	now := time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		ts   time.Time
		want string
	}{
		{"future timestamp tolerated as clock skew", now.Add(5 * time.Second), "just now"},
		{"zero age", now, "just now"},
		{"one second", now.Add(-1 * time.Second), "1 second ago"},
		{"thirty seconds", now.Add(-30 * time.Second), "30 seconds ago"},
		{"ninety seconds", now.Add(-90 * time.Second), "1 minute ago"},
		{"five minutes", now.Add(-5 * time.Minute), "5 minutes ago"},
		{"fiftynine minutes", now.Add(-59 * time.Minute), "59 minutes ago"},
		{"one hour", now.Add(-1 * time.Hour), "1 hour ago"},
		{"twentythree hours", now.Add(-23 * time.Hour), "23 hours ago"},
		{"two days falls back to absolute date", now.Add(-48 * time.Hour), "Mar 13, 2024"},
		{"one year", now.Add(-365 * 24 * time.Hour), "Mar 16, 2023"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := timefmt.Format(tt.ts, now); got != tt.want {
				t.Errorf("Format(%v) = %q, want %q", now.Sub(tt.ts), got, tt.want)
			}
		})
	}
}

func TestClock_SharedBroadcast(t *testing.T) {
	clock := timefmt.NewClock(20 * time.Millisecond)

	ch1, cancel1 := clock.Subscribe()
	ch2, cancel2 := clock.Subscribe()
	defer cancel2()

	// Both subscribers receive ticks from the single shared ticker.
	for i, ch := range []<-chan time.Time{ch1, ch2} {
		select {
		case <-ch:
		case <-time.After(time.Second):
			t.Fatalf("Subscriber %d received no tick", i+1)
		}
	}

	cancel1()
	// Double-unsubscribe is harmless.
	cancel1()

	select {
	case <-ch2:
	case <-time.After(time.Second):
		t.Fatal("Remaining subscriber must keep receiving ticks")
	}
}

func TestClock_StopsWithoutSubscribers(t *testing.T) {
	clock := timefmt.NewClock(10 * time.Millisecond)

	ch, cancel := clock.Subscribe()
	cancel()

	// Give the ticker time to stop, then drain whatever tick may have
	// been buffered before the unsubscribe.
	time.Sleep(30 * time.Millisecond)
	select {
	case <-ch:
	default:
	}

	select {
	case <-ch:
		t.Error("No ticks may arrive after the last unsubscribe")
	case <-time.After(50 * time.Millisecond):
	}

	// A fresh subscriber restarts the clock.
	ch2, cancel2 := clock.Subscribe()
	defer cancel2()
	select {
	case <-ch2:
	case <-time.After(time.Second):
		t.Fatal("Clock must restart for a new subscriber")
	}
}
