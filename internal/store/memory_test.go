package store

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/robalobadob/notthefan/internal/game"
	"github.com/robalobadob/notthefan/internal/words"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	m, err := game.NewModule(words.Default(), game.DefaultConfig(), "", nil)
	if err != nil {
		t.Fatalf("NewModule: %v", err)
	}
	if _, err := st.Get(ctx, m.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get before Save err = %v, want ErrNotFound", err)
	}
	if err := st.Save(ctx, m); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := st.Get(ctx, m.ID)
	if err != nil || got != m {
		t.Fatalf("Get = %p, %v; want %p", got, err, m)
	}
	if err := st.Delete(ctx, m.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := st.Get(ctx, m.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after Delete err = %v, want ErrNotFound", err)
	}
}

func TestConcurrentSubmissionsAreSerialized(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	m, _ := game.NewModule(words.Default(), game.DefaultConfig(), "", nil)
	_ = st.Save(ctx, m)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			mod, err := st.Get(ctx, m.ID)
			if err != nil {
				t.Error(err)
				return
			}
			for j := 0; j < 50; j++ {
				_, exp := mod.Reveal()
				if len(exp) == 0 {
					return
				}
				mod.Submit(exp[0])
			}
		}()
	}
	wg.Wait()

	st2 := m.State()
	if st2.CompletedLetters > 4 || st2.CompletedWords > 4 {
		t.Errorf("state out of bounds after concurrent input: %+v", st2)
	}
}
