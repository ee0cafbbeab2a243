package rescache

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSet(t *testing.T) {
	c := New()

	_, ok := c.Get("pedigree:p1:3")
	assert.False(t, ok)

	c.Set("pedigree:p1:3", 42)
	v, ok := c.Get("pedigree:p1:3")
	require.True(t, ok)
	assert.Equal(t, 42, v)

	// Same key overwrites.
	c.Set("pedigree:p1:3", 43)
	v, _ = c.Get("pedigree:p1:3")
	assert.Equal(t, 43, v)
	assert.Equal(t, 1, c.Len())
}

func TestClearAll(t *testing.T) {
	c := New()
	c.Set("pedigree:p1:3", 1)
	c.Set("descendants:p1:3", 2)

	c.Clear()

	assert.Equal(t, 0, c.Len())
	_, ok := c.Get("pedigree:p1:3")
	assert.False(t, ok)
}

func TestClearPattern(t *testing.T) {
	c := New()
	c.Set("pedigree:p1:3", 1)
	c.Set("pedigree:p2:3", 2)
	c.Set("descendants:p1:3", 3)
	c.Set("notable:p1", 4)

	// Everything touching p1, regardless of shape.
	c.Clear(":p1")

	assert.Equal(t, 1, c.Len())
	_, ok := c.Get("pedigree:p2:3")
	assert.True(t, ok)
}

func TestClearMultiplePatterns(t *testing.T) {
	c := New()
	c.Set("pedigree:p1:3", 1)
	c.Set("descendants:p2:3", 2)
	c.Set("notable:p3", 3)

	c.Clear("pedigree:", "notable:")

	assert.Equal(t, 1, c.Len())
	_, ok := c.Get("descendants:p2:3")
	assert.True(t, ok)
}

func TestConcurrentAccess(t *testing.T) {
	c := New()
	var wg sync.WaitGroup

	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				key := fmt.Sprintf("pedigree:p%d:%d", n, j%10)
				c.Set(key, j)
				c.Get(key)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 160, c.Len())
}
