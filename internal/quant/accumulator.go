package quant

// Channel identifies one component of an RGB triple.
type Channel int

const (
	Red Channel = iota
	Green
	Blue
)

// Channels lists all channels in interleaved order.
var Channels = [3]Channel{Red, Green, Blue}

func (c Channel) String() string {
	switch c {
	case Red:
		return "red"
	case Green:
		return "green"
	case Blue:
		return "blue"
	default:
		return "unknown"
	}
}

// Accumulator sums absolute quantization error per channel.
// The zero value is ready to use. Sums only grow.
type Accumulator struct {
	sums [3]int64
}

// Record adds |original - quantized| to the channel's running sum.
func (a *Accumulator) Record(c Channel, original, quantized uint8) {
	d := int64(original) - int64(quantized)
	if d < 0 {
		d = -d
	}
	a.sums[c] += d
}

// Merge adds another accumulator's sums into a. Used to combine per-worker
// partial sums; addition keeps the result independent of merge order.
func (a *Accumulator) Merge(o *Accumulator) {
	for c := range a.sums {
		a.sums[c] += o.sums[c]
	}
}

// Sum returns one channel's error sum.
func (a *Accumulator) Sum(c Channel) int64 { return a.sums[c] }

// Total returns the sum over all three channels.
func (a *Accumulator) Total() int64 {
	return a.sums[Red] + a.sums[Green] + a.sums[Blue]
}
