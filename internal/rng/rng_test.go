package rng

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeeded_Intn(t *testing.T) {
	a := assert.New(t)

	s1 := NewSeeded(42)
	s2 := NewSeeded(42)
	for i := 0; i < 100; i++ {
		n := s1.Intn(52)
		a.Equal(n, s2.Intn(52))
		a.True(n >= 0 && n < 52)
	}
}

func TestSeeded_concurrent(t *testing.T) {
	s := NewSeeded(1)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				n := s.Intn(52)
				assert.True(t, n >= 0 && n < 52)
			}
		}()
	}

	wg.Wait()
}
