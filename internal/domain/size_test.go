package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	thresholds := DefaultSizeThresholds()

	testCases := []struct {
		name         string
		additions    int
		deletions    int
		changedFiles int
		expected     Size
	}{
		{name: "zero change is S", additions: 0, deletions: 0, changedFiles: 1, expected: SizeS},
		{name: "at small boundary is S", additions: 30, deletions: 20, changedFiles: 3, expected: SizeS},
		{name: "just above small is M", additions: 31, deletions: 20, changedFiles: 3, expected: SizeM},
		{name: "at medium boundary is M", additions: 100, deletions: 100, changedFiles: 5, expected: SizeM},
		{name: "just above medium is L", additions: 101, deletions: 100, changedFiles: 5, expected: SizeL},
		{name: "at large boundary is L", additions: 250, deletions: 250, changedFiles: 10, expected: SizeL},
		{name: "just above large is XL", additions: 251, deletions: 250, changedFiles: 10, expected: SizeXL},
		{name: "25 files is XL regardless of lines", additions: 1, deletions: 0, changedFiles: 25, expected: SizeXL},
		{name: "15 files escalates small change to L", additions: 10, deletions: 5, changedFiles: 15, expected: SizeL},
		{name: "15 files with huge change is XL", additions: 400, deletions: 200, changedFiles: 15, expected: SizeXL},
		{name: "14 files does not escalate", additions: 10, deletions: 5, changedFiles: 14, expected: SizeS},
		{name: "15 files keeps large change at L", additions: 300, deletions: 200, changedFiles: 20, expected: SizeL},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Classify(tc.additions, tc.deletions, tc.changedFiles, thresholds)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestClassify_CustomThresholds(t *testing.T) {
	thresholds := SizeThresholds{Small: 10, Medium: 20, Large: 30}

	assert.Equal(t, SizeS, Classify(5, 5, 1, thresholds))
	assert.Equal(t, SizeM, Classify(11, 0, 1, thresholds))
	assert.Equal(t, SizeL, Classify(21, 0, 1, thresholds))
	assert.Equal(t, SizeXL, Classify(31, 0, 1, thresholds))
}

func TestSizeThresholds_Validate(t *testing.T) {
	testCases := []struct {
		name       string
		thresholds SizeThresholds
		wantErr    bool
	}{
		{name: "defaults are valid", thresholds: DefaultSizeThresholds(), wantErr: false},
		{name: "equal small and medium", thresholds: SizeThresholds{Small: 50, Medium: 50, Large: 500}, wantErr: true},
		{name: "medium above large", thresholds: SizeThresholds{Small: 50, Medium: 600, Large: 500}, wantErr: true},
		{name: "descending", thresholds: SizeThresholds{Small: 500, Medium: 200, Large: 50}, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.thresholds.Validate()
			if !tc.wantErr {
				assert.NoError(t, err)
				return
			}
			var thresholdErr *ThresholdError
			assert.ErrorAs(t, err, &thresholdErr)
			assert.Equal(t, tc.thresholds.Small, thresholdErr.Small)
		})
	}
}

func TestSizeThresholds_Validate_ErrorAsTarget(t *testing.T) {
	err := SizeThresholds{Small: 9, Medium: 9, Large: 9}.Validate()
	assert.True(t, errors.As(err, new(*ThresholdError)))
}

func TestSizeDistribution(t *testing.T) {
	var d SizeDistribution
	d.Add(SizeS)
	d.Add(SizeS)
	d.Add(SizeM)
	d.Add(SizeXL)

	assert.Equal(t, 2, d.S)
	assert.Equal(t, 1, d.M)
	assert.Equal(t, 0, d.L)
	assert.Equal(t, 1, d.XL)
	assert.Equal(t, 4, d.Total())
	assert.Equal(t, "S:2 M:1 L:0 XL:1", d.String())
}
