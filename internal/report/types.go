package report

// Report is the JSON record of one quantization pass.
type Report struct {
	Version     int     `json:"version"`
	GeneratedAt string  `json:"generated_at"`
	Source      string  `json:"source"`
	Profile     string  `json:"profile"`
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	Mode        int     `json:"mode"`
	ModeName    string  `json:"mode_name"`
	Colors      int64   `json:"colors"`               // requested color budget
	Requested   int     `json:"requested_partitions"` // round(cbrt(colors))
	Partitions  int     `json:"partitions"`           // after clamping
	Workers     int     `json:"workers,omitempty"`    // scan goroutines
	Errors      Errors  `json:"errors"`
	InputHash   string  `json:"input_hash"`  // xxhash64 of the raster before the pass
	OutputHash  string  `json:"output_hash"` // and after
	Tables      []Table `json:"tables,omitempty"`
}

// Errors holds the absolute error sums of a pass.
type Errors struct {
	Red   int64 `json:"red"`
	Green int64 `json:"green"`
	Blue  int64 `json:"blue"`
	Total int64 `json:"total"`
}

// Table is one partition and the channels it was applied to.
type Table struct {
	Channels []string `json:"channels"`
	Boundary string   `json:"boundary"` // "closed" or "half-open"
	Buckets  []Bucket `json:"buckets"`
}

// Bucket mirrors quant.Bucket with stable JSON names.
type Bucket struct {
	Lo    uint8 `json:"lo"`
	Hi    uint8 `json:"hi"`
	Rep   uint8 `json:"rep"`
	Count int   `json:"count"`
}

// SweepRow is one point of an error-versus-buckets curve.
type SweepRow struct {
	Buckets int   // per-channel partition count
	Error   int64 // total error sum
}

// SupportedVersion is the current schema version.
const SupportedVersion = 1
