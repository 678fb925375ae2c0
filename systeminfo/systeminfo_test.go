package systeminfo

import (
	"context"
	"testing"
)

func TestCollect(t *testing.T) {
	info := Collect(context.Background())
	if info == nil {
		t.Fatal("expected a snapshot")
	}
	if info.Architecture == "" {
		t.Error("expected architecture to be set")
	}
	if info.CPUCount <= 0 {
		t.Errorf("CPUCount = %d, want positive", info.CPUCount)
	}
}
