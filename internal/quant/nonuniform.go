package quant

import "fmt"

// Histogram counts occurrences of each value in one channel.
// Walking it in index order is equivalent to walking the sorted values.
type Histogram [Levels]int

// Add counts one occurrence of v.
func (h *Histogram) Add(v uint8) { h[v]++ }

// Total returns the number of values counted.
func (h *Histogram) Total() int {
	var n int
	for _, c := range h {
		n += c
	}
	return n
}

// Distinct returns how many different values were counted.
func (h *Histogram) Distinct() int {
	var n int
	for _, c := range h {
		if c > 0 {
			n++
		}
	}
	return n
}

// HistogramOf counts the given values.
func HistogramOf(values []uint8) *Histogram {
	var h Histogram
	for _, v := range values {
		h.Add(v)
	}
	return &h
}

// BuildNonUniform groups the sorted population described by h into p runs
// of equal length. With N values, the first N%p groups hold N/p+1 values and
// the rest hold N/p. A bucket spans the smallest and largest value of its
// group, and its representative is the group mean rounded half up.
//
// Adjacent buckets may share a bound, so the partition uses HalfOpen
// membership.
func BuildNonUniform(h *Histogram, p int) (*Partition, error) {
	n := h.Total()
	if p < 1 || p > n {
		return nil, fmt.Errorf("%w: non-uniform needs 1..%d, got %d", ErrInvalidPartitions, n, p)
	}

	base, extra := n/p, n%p
	buckets := make([]Bucket, p)

	v := MinValue
	left := h[v] // values of v not yet consumed
	for k := range buckets {
		size := base
		if k < extra {
			size++
		}

		for left == 0 {
			v++
			left = h[v]
		}
		lo := v

		var sum int
		need := size
		for {
			take := min(need, left)
			sum += take * v
			need -= take
			left -= take
			if need == 0 {
				break
			}
			v++
			left = h[v]
		}

		buckets[k] = Bucket{
			Lo:    uint8(lo),
			Hi:    uint8(v),
			Rep:   uint8(roundDiv(sum, size)),
			Count: size,
		}
	}

	return &Partition{Buckets: buckets, Boundary: HalfOpen}, nil
}
