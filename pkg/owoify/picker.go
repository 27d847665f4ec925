package owoify

import (
	crand "crypto/rand"
	"math"
	"math/rand/v2"
	"sync"
)

// Faces is the table punctuation is replaced with. Index selection is uniform.
var Faces = [...]string{
	"(・`ω´・)", ";;w;;", "owo", "UwU", ">w<", "^w^", "(* ^ ω ^)",
	"(⌒ω⌒)", "ヽ(*・ω・)ﾉ", "(o´∀`o)", "(o･ω･o)", "＼(＾▽＾)／",
}

// Source yields uniformly distributed floats in [0, 1).
type Source interface {
	Float64() float64
}

// Picker hands out random faces and coin flips. It is safe for concurrent use;
// draws are serialized so no two callers observe the same generator state.
type Picker struct {
	mu  sync.Mutex
	src Source
}

// NewPicker wraps src. Tests pass a fixed source to make the output predictable.
func NewPicker(src Source) *Picker {
	return &Picker{src: src}
}

// NewSeededPicker returns a Picker backed by a ChaCha8 generator seeded from
// the operating system's entropy source.
func NewSeededPicker() *Picker {
	var seed [32]byte
	if _, err := crand.Read(seed[:]); err != nil {
		// crypto/rand never fails on supported platforms
		panic(err)
	}
	return NewPicker(rand.New(rand.NewChaCha8(seed)))
}

// Float64 draws the next value in [0, 1)
func (p *Picker) Float64() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.src.Float64()
}

// Face picks one entry of Faces uniformly at random
func (p *Picker) Face() string {
	i := int(math.Floor(p.Float64() * float64(len(Faces))))
	if i < 0 {
		i = 0
	}
	if i >= len(Faces) {
		i = len(Faces) - 1
	}
	return Faces[i]
}

// Coin rounds a uniform draw to 0 or 1 and reports whether it came up 1
func (p *Picker) Coin() bool {
	return math.Round(p.Float64()) > 0
}
