package mixer

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// TappedBlock is one emitted mix block retained by the tap.
type TappedBlock struct {
	Samples   []float32
	Timestamp int64
}

// BlockTap keeps the most recently emitted mix blocks, keyed by emission
// sequence number, for inspection and troubleshooting. Older blocks are
// evicted once the tap is full.
type BlockTap struct {
	cache *lru.Cache[uint64, TappedBlock]
}

// NewBlockTap creates a tap retaining up to size blocks.
func NewBlockTap(size int) (*BlockTap, error) {
	cache, err := lru.New[uint64, TappedBlock](size)
	if err != nil {
		return nil, err
	}
	return &BlockTap{cache: cache}, nil
}

// Record stores an emitted block. The tap copies the samples so the
// consumer is free to mutate the block it was handed.
func (t *BlockTap) Record(seq uint64, samples []float32, timestamp int64) {
	kept := make([]float32, len(samples))
	copy(kept, samples)
	t.cache.Add(seq, TappedBlock{Samples: kept, Timestamp: timestamp})
}

// Block looks up a retained block by emission sequence number.
func (t *BlockTap) Block(seq uint64) (TappedBlock, bool) {
	return t.cache.Get(seq)
}

// Len returns the number of retained blocks.
func (t *BlockTap) Len() int {
	return t.cache.Len()
}

// Purge drops all retained blocks.
func (t *BlockTap) Purge() {
	t.cache.Purge()
}
