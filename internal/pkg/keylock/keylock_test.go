package keylock_test

import (
	"sync"
	"testing"

	"neuroload/internal/pkg/keylock"

	"github.com/stretchr/testify/assert"
)

func TestKeyedMutex_SerializesSameKey(t *testing.T) {
	km := keylock.NewKeyedMutex()

	var mu sync.Mutex
	var active, maxActive int

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			km.Lock("ord-1")
			defer km.Unlock("ord-1")

			mu.Lock()
			active++
			if active > maxActive {
				maxActive = active
			}
			mu.Unlock()

			mu.Lock()
			active--
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxActive, "only one holder per key at a time")
}

func TestKeyedMutex_IndependentKeys(t *testing.T) {
	km := keylock.NewKeyedMutex()

	km.Lock("ord-1")
	done := make(chan struct{})
	go func() {
		km.Lock("ord-2")
		km.Unlock("ord-2")
		close(done)
	}()

	<-done // would deadlock if keys shared a lock
	km.Unlock("ord-1")
}
