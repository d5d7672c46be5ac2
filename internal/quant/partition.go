// Package quant reduces the number of distinct values in each RGB channel
// by mapping them onto a small set of representative levels.
//
// Two partitioning policies are provided. Uniform splits the fixed domain
// [0,255] into equal-width buckets shared by all channels. NonUniform splits
// each channel's observed population into equal-count buckets, so every
// channel gets its own partition.
package quant

import (
	"errors"
	"fmt"
	"sort"
)

// Channel value domain.
const (
	MinValue = 0
	MaxValue = 255
	Levels   = MaxValue - MinValue + 1
)

// ErrInvalidPartitions is returned when a partition count is outside the
// range a policy can split without producing empty buckets.
var ErrInvalidPartitions = errors.New("invalid partition count")

// Boundary selects the bucket membership rule used by Partition.Map.
type Boundary uint8

const (
	// Closed matches lo <= v <= hi. Used by uniform partitions, whose
	// buckets never share a bound.
	Closed Boundary = iota

	// HalfOpen matches lo <= v < hi for every bucket except the last,
	// which is closed. Adjacent equal-count buckets may share a bound when
	// duplicate values straddle a split; the shared value belongs to the
	// later bucket.
	HalfOpen
)

func (b Boundary) String() string {
	switch b {
	case Closed:
		return "closed"
	case HalfOpen:
		return "half-open"
	default:
		return fmt.Sprintf("Boundary(%d)", uint8(b))
	}
}

// Bucket is one interval of channel values and its representative.
type Bucket struct {
	Lo  uint8
	Hi  uint8
	Rep uint8
	// Count is the number of domain values covered (uniform) or the number
	// of pixels grouped into the bucket (non-uniform).
	Count int
}

// Partition is an immutable, ordered set of buckets covering one channel.
// Buckets are sorted by Lo and never empty.
type Partition struct {
	Buckets  []Bucket
	Boundary Boundary
}

// Len returns the number of buckets.
func (p *Partition) Len() int { return len(p.Buckets) }

// Index returns the position of the bucket that owns v.
//
// It panics when no bucket owns v: construction guarantees coverage, so a
// miss means the partition was built wrong or v was never observed.
func (p *Partition) Index(v uint8) int {
	n := len(p.Buckets)
	var i int
	switch p.Boundary {
	case Closed:
		// first bucket whose upper bound reaches v
		i = sort.Search(n, func(k int) bool { return p.Buckets[k].Hi >= v })
	default:
		// last bucket whose lower bound is at or below v
		i = sort.Search(n, func(k int) bool { return p.Buckets[k].Lo > v }) - 1
	}
	if i < 0 || i >= n || v < p.Buckets[i].Lo || v > p.Buckets[i].Hi {
		panic(fmt.Sprintf("quant: value %d not covered by %s partition of %d buckets", v, p.Boundary, n))
	}
	return i
}

// Map returns the representative value for v.
func (p *Partition) Map(v uint8) uint8 {
	return p.Buckets[p.Index(v)].Rep
}

// roundDiv returns num/den rounded half away from zero, for num >= 0, den > 0.
func roundDiv(num, den int) int {
	return (2*num + den) / (2 * den)
}
