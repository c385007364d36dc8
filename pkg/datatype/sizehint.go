package datatype

import (
	"math"

	"github.com/vireodata/vireo/pkg/column"
)

// maxAvgValueSizeHint caps the hint so one pathological batch cannot
// cause gross overallocation on every later batch.
const maxAvgValueSizeHint = 1024.0

// UpdateAvgValueSizeHint folds a just-decoded batch into the caller's
// average value size estimate. The hint belongs to the deserialization
// session, not to the type, and is only ever used for preallocation.
//
// The policy is asymmetric on purpose: underestimating costs a
// reallocation during decode, overestimating wastes memory across a
// whole batch, so the hint grows immediately and decays in quarter steps
// only when observations drop below half of it. Batches of ten rows or
// fewer are too small to be informative and leave the hint unchanged.
func UpdateAvgValueSizeHint(col column.Column, avgValueSizeHint *float64) {
	rows := col.Len()
	if rows <= 10 {
		return
	}

	current := float64(col.ByteSize()) / float64(rows)

	if current > *avgValueSizeHint {
		*avgValueSizeHint = math.Min(maxAvgValueSizeHint, current)
	} else if current*2 < *avgValueSizeHint {
		*avgValueSizeHint = (current + *avgValueSizeHint*3) / 4
	}
}
