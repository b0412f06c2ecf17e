package cellcore

import "math"

// floatBits and bitsFloat are the same float64<->uint64 reinterpretation
// the teacher's NaN-boxed Value uses for its number case (value.go's
// BoxNumber/AsNumber); here they just fill a Cell's inline bits field
// instead of a whole boxed Value.
func floatBits(f float64) uint64 { return math.Float64bits(f) }
func bitsFloat(b uint64) float64 { return math.Float64frombits(b) }
