package notify

import (
	"testing"

	"github.com/siegfried/desktopclock/internal/config"
)

func TestNotifier_Subscribe(t *testing.T) {
	n := New()

	var got []int
	sub := n.Subscribe(func(cfg *config.Config) {
		got = append(got, cfg.FontSize)
	})

	cfg := config.DefaultConfig()
	cfg.FontSize = 42
	n.Notify(cfg)

	if len(got) != 1 || got[0] != 42 {
		t.Fatalf("received %v, want [42]", got)
	}

	sub.Unsubscribe()
	n.Notify(cfg)
	if len(got) != 1 {
		t.Error("unsubscribed observer received notification")
	}
	if n.Len() != 0 {
		t.Errorf("Len() = %d, want 0", n.Len())
	}
}

func TestNotifier_OrderAndIsolation(t *testing.T) {
	n := New()

	var order []string
	n.Subscribe(func(cfg *config.Config) {
		order = append(order, "first")
		cfg.FontSize = 1
	})
	n.Subscribe(func(cfg *config.Config) {
		order = append(order, "second")
		if cfg.FontSize != 120 {
			t.Errorf("second observer saw mutation from first: %d", cfg.FontSize)
		}
	})

	src := config.DefaultConfig()
	n.Notify(src)

	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Errorf("order = %v", order)
	}
	if src.FontSize != 120 {
		t.Errorf("observer mutated the source snapshot")
	}
}

func TestSubscription_UnsubscribeDuringDelivery(t *testing.T) {
	n := New()

	var sub *Subscription
	calls := 0
	sub = n.Subscribe(func(*config.Config) {
		calls++
		sub.Unsubscribe()
	})

	n.Notify(config.DefaultConfig())
	n.Notify(config.DefaultConfig())

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestSubscription_UnsubscribeTwice(t *testing.T) {
	n := New()
	a := n.Subscribe(func(*config.Config) {})
	n.Subscribe(func(*config.Config) {})

	a.Unsubscribe()
	a.Unsubscribe()

	if n.Len() != 1 {
		t.Errorf("Len() = %d, want 1", n.Len())
	}

	var nilSub *Subscription
	nilSub.Unsubscribe()
}
