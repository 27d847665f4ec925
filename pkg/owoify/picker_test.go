package owoify

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFacesTable(t *testing.T) {
	assert.Len(t, Faces, 12)
	assert.Equal(t, "(・`ω´・)", Faces[0])
}

func TestPickerFixed(t *testing.T) {
	assert.Equal(t, Faces[0], NewPicker(fixedSource(0)).Face())
	assert.Equal(t, Faces[6], NewPicker(fixedSource(0.5)).Face())
	assert.Equal(t, Faces[11], NewPicker(fixedSource(0.999)).Face())

	assert.False(t, NewPicker(fixedSource(0.49)).Coin())
	assert.True(t, NewPicker(fixedSource(0.5)).Coin())
}

func TestSeededPickerDistribution(t *testing.T) {
	p := NewSeededPicker()

	seen := make(map[string]int)
	for i := 0; i < 6000; i++ {
		seen[p.Face()]++
	}
	assert.Len(t, seen, len(Faces))
	for face, n := range seen {
		// expected 500 per face
		assert.InDelta(t, 500, n, 150, face)
	}

	heads := 0
	for i := 0; i < 10000; i++ {
		if p.Coin() {
			heads++
		}
	}
	assert.InDelta(t, 5000, heads, 400)
}

func TestPickerConcurrent(t *testing.T) {
	p := NewSeededPicker()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 500; j++ {
				v := p.Float64()
				assert.GreaterOrEqual(t, v, 0.0)
				assert.Less(t, v, 1.0)
			}
		}()
	}
	wg.Wait()
}
