package session

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/aretw0/wizard/pkg/adapters/memory"
	"github.com/aretw0/wizard/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestManager_LockEntriesAreReleased(t *testing.T) {
	m := NewManager(memory.NewStore())
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("s%d", i%5)
			assert.NoError(t, m.Save(ctx, id, domain.AnswerStore{"i": i}))
		}(i)
	}
	wg.Wait()

	m.mu.Lock()
	defer m.mu.Unlock()
	assert.Empty(t, m.locks)
}
