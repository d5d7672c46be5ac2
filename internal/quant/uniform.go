package quant

import "fmt"

// BuildUniform splits [0,255] into p contiguous buckets of equal width.
// When 256 is not divisible by p, the first 256%p buckets are one value wider.
// Each representative is the midpoint of its bucket, rounded half up.
func BuildUniform(p int) (*Partition, error) {
	if p < 1 || p > Levels {
		return nil, fmt.Errorf("%w: uniform needs 1..%d, got %d", ErrInvalidPartitions, Levels, p)
	}

	base, extra := Levels/p, Levels%p
	buckets := make([]Bucket, p)
	lo := MinValue
	for k := range buckets {
		size := base
		if k < extra {
			size++
		}
		hi := lo + size - 1
		buckets[k] = Bucket{
			Lo:    uint8(lo),
			Hi:    uint8(hi),
			Rep:   uint8(roundDiv(lo+hi, 2)),
			Count: size,
		}
		lo = hi + 1
	}

	return &Partition{Buckets: buckets, Boundary: Closed}, nil
}
