// SPDX-License-Identifier: MIT

// Package matrix: the public Matrix contract and solver result types.
package matrix

// Matrix represents a two-dimensional mutable array of float64 values.
// *Dense is the only implementation shipped here; kernels take fast paths on
// *Dense and materialize other implementations into a Dense copy first.
//
// Complexity notes: all methods are expected O(1) except Clone (O(r*c)).
type Matrix interface {
	// Rows returns the number of rows in the matrix.
	Rows() int

	// Cols returns the number of columns in the matrix.
	Cols() int

	// At retrieves the element at position (i, j).
	// Returns ErrOutOfRange if i<0, i>=Rows(), j<0 or j>=Cols().
	At(i, j int) (float64, error)

	// Set assigns the value v at position (i, j).
	// Returns ErrOutOfRange if indices are invalid.
	Set(i, j int, v float64) error

	// Clone returns a deep copy of the matrix.
	Clone() Matrix
}

// Method identifies which tier of the least-squares strategy produced a solution.
type Method int

const (
	// MethodQR marks a solution from Householder QR and back substitution.
	MethodQR Method = iota
	// MethodPseudoInverse marks a minimum-norm solution from the eigen-based pseudoinverse.
	MethodPseudoInverse
)

// String returns a short lowercase name, suitable for log attributes.
func (m Method) String() string {
	switch m {
	case MethodQR:
		return "qr"
	case MethodPseudoInverse:
		return "pseudoinverse"
	default:
		return "unknown"
	}
}

// Solution is the result of LeastSquares.
type Solution struct {
	// X is the coefficient vector (length A.Cols()).
	X []float64
	// Method reports which tier produced X.
	Method Method
	// Rank is the numerical rank seen by the producing tier: A.Cols() for MethodQR,
	// the number of retained singular values for MethodPseudoInverse.
	Rank int
}
