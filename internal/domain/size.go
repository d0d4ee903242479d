package domain

import "fmt"

// Size is the S/M/L/XL band of a pull request.
type Size string

const (
	SizeS  Size = "S"
	SizeM  Size = "M"
	SizeL  Size = "L"
	SizeXL Size = "XL"
)

// File-count cutoffs that escalate a PR regardless of its line counts.
const (
	xlFileCount    = 25
	largeFileCount = 15
)

// SizeThresholds holds the ascending line-change cutoffs between S, M and L.
// Anything above Large is XL.
type SizeThresholds struct {
	Small  int `toml:"small" json:"small"`
	Medium int `toml:"medium" json:"medium"`
	Large  int `toml:"large" json:"large"`
}

// DefaultSizeThresholds returns the stock 50/200/500 cutoffs.
func DefaultSizeThresholds() SizeThresholds {
	return SizeThresholds{Small: 50, Medium: 200, Large: 500}
}

// Validate returns a ThresholdError unless the cutoffs increase strictly.
func (t SizeThresholds) Validate() error {
	if t.Small < t.Medium && t.Medium < t.Large {
		return nil
	}
	return &ThresholdError{Small: t.Small, Medium: t.Medium, Large: t.Large}
}

// Classify buckets a pull request by its change size. File-count overrides are
// checked before the line thresholds and only ever escalate the band, never
// downgrade it; the guard order must not be rearranged.
func Classify(additions, deletions, changedFiles int, t SizeThresholds) Size {
	totalLines := additions + deletions
	if changedFiles >= xlFileCount {
		return SizeXL
	}
	if changedFiles >= largeFileCount {
		if totalLines > t.Large {
			return SizeXL
		}
		return SizeL
	}
	switch {
	case totalLines <= t.Small:
		return SizeS
	case totalLines <= t.Medium:
		return SizeM
	case totalLines <= t.Large:
		return SizeL
	default:
		return SizeXL
	}
}

// SizeDistribution counts PRs per size band.
type SizeDistribution struct {
	S  int `json:"s"`
	M  int `json:"m"`
	L  int `json:"l"`
	XL int `json:"xl"`
}

// Add increments the counter for the given band.
func (d *SizeDistribution) Add(s Size) {
	switch s {
	case SizeS:
		d.S++
	case SizeM:
		d.M++
	case SizeL:
		d.L++
	case SizeXL:
		d.XL++
	}
}

// Total is the number of PRs counted across all bands.
func (d SizeDistribution) Total() int {
	return d.S + d.M + d.L + d.XL
}

func (d SizeDistribution) String() string {
	return fmt.Sprintf("S:%d M:%d L:%d XL:%d", d.S, d.M, d.L, d.XL)
}
