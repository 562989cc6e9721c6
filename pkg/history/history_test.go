package history

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/paiyou/paiyou/pkg/model"
)

func result(id string) *model.ScheduleOptimizationResult {
	return &model.ScheduleOptimizationResult{
		OptimizationID: id,
		Status:         model.StatusSuccess,
	}
}

func TestMemoryStoreAppendAndRecent(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(10)

	for i := 1; i <= 3; i++ {
		if err := store.Append(ctx, result(fmt.Sprintf("opt-%d", i))); err != nil {
			t.Fatal(err)
		}
	}

	recent, err := store.Recent(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(recent) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(recent))
	}
	// 新者在前
	if recent[0].OptimizationID != "opt-3" || recent[1].OptimizationID != "opt-2" {
		t.Errorf("Wrong order: %s, %s", recent[0].OptimizationID, recent[1].OptimizationID)
	}

	count, err := store.Count(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if count != 3 {
		t.Errorf("Count = %d, want 3", count)
	}
}

func TestMemoryStoreCapacityWrap(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(2)

	for i := 1; i <= 5; i++ {
		store.Append(ctx, result(fmt.Sprintf("opt-%d", i)))
	}

	// 容量 2：只保留最新两条
	recent, err := store.Recent(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(recent) != 2 {
		t.Fatalf("Expected 2 retained results, got %d", len(recent))
	}
	if recent[0].OptimizationID != "opt-5" || recent[1].OptimizationID != "opt-4" {
		t.Errorf("Wrong retained entries: %s, %s", recent[0].OptimizationID, recent[1].OptimizationID)
	}

	// 总数仍按追加次数计
	count, _ := store.Count(ctx)
	if count != 5 {
		t.Errorf("Count = %d, want 5", count)
	}
}

func TestMemoryStoreDefaultCapacity(t *testing.T) {
	store := NewMemoryStore(0)
	if store.capacity != 1000 {
		t.Errorf("Default capacity = %d, want 1000", store.capacity)
	}
}

func TestMemoryStoreRecentEmpty(t *testing.T) {
	store := NewMemoryStore(5)

	recent, err := store.Recent(context.Background(), 3)
	if err != nil {
		t.Fatal(err)
	}
	if recent != nil {
		t.Errorf("Empty store should return nil, got %v", recent)
	}
}

func TestMemoryStoreConcurrentAppend(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(1000)

	var wg sync.WaitGroup
	const writers = 10
	const perWriter = 50

	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				store.Append(ctx, result(fmt.Sprintf("opt-%d-%d", w, i)))
			}
		}(w)
	}
	wg.Wait()

	count, err := store.Count(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if count != writers*perWriter {
		t.Errorf("Count = %d, want %d", count, writers*perWriter)
	}

	recent, err := store.Recent(ctx, writers*perWriter)
	if err != nil {
		t.Fatal(err)
	}
	for i, r := range recent {
		if r == nil {
			t.Fatalf("Nil entry at %d after concurrent appends", i)
		}
	}
}
