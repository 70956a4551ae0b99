package common

import (
	"strings"
	"sync"
	"testing"
)

func TestNewIDs_Prefixes(t *testing.T) {
	m, err := NewMessageID()
	if err != nil || !strings.HasPrefix(m, "msg_") || len(m) != len("msg_")+26 {
		t.Fatalf("unexpected message id %q (%v)", m, err)
	}
	c, err := NewConversationID()
	if err != nil || !strings.HasPrefix(c, "conv_") || len(c) != len("conv_")+26 {
		t.Fatalf("unexpected conversation id %q (%v)", c, err)
	}
}

func TestNewULID_UniqueUnderConcurrency(t *testing.T) {
	const workers, per = 16, 500

	var mu sync.Mutex
	seen := make(map[string]struct{}, workers*per)
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			local := make([]string, 0, per)
			for j := 0; j < per; j++ {
				id, err := NewULID()
				if err != nil {
					t.Errorf("new ulid: %v", err)
					return
				}
				local = append(local, id)
			}
			mu.Lock()
			for _, id := range local {
				seen[id] = struct{}{}
			}
			mu.Unlock()
		}()
	}
	wg.Wait()

	if len(seen) != workers*per {
		t.Fatalf("expected %d unique ids, got %d", workers*per, len(seen))
	}
}
