package status

import (
	"testing"
	"time"

	"github.com/fxjung/pushover-watchdog/internal/domain"
)

func TestStore_SetOverwrites(t *testing.T) {
	s := New()
	s.Set(domain.TargetStatus{Name: "RAM", Fraction: 0.5})
	s.Set(domain.TargetStatus{Name: "RAM", Fraction: 0.9, Above: true})

	got, ok := s.Get("RAM")
	if !ok {
		t.Fatal("missing record")
	}
	if got.Fraction != 0.9 || !got.Above {
		t.Fatalf("latest record not kept: %+v", got)
	}
	if len(s.List()) != 1 {
		t.Fatal("Set must overwrite, not append")
	}
}

func TestStore_ListSortedByName(t *testing.T) {
	s := New()
	now := time.Now()
	s.Set(domain.TargetStatus{Name: "RAM", SampledAt: now})
	s.Set(domain.TargetStatus{Name: "Disk(/home)", SampledAt: now})

	list := s.List()
	if len(list) != 2 {
		t.Fatalf("want 2 records, got %d", len(list))
	}
	if list[0].Name != "Disk(/home)" || list[1].Name != "RAM" {
		t.Fatalf("not sorted: %v, %v", list[0].Name, list[1].Name)
	}
}

func TestStore_GetMissing(t *testing.T) {
	if _, ok := New().Get("nope"); ok {
		t.Fatal("expected miss")
	}
}
