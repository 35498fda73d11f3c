package mat

import (
	"errors"

	"github.com/chewxy/math32"
	"github.com/icub-wbd/wbcore/pkg/vec"
)

// ErrNotPositiveDefinite is returned when Cholesky encounters a
// non-positive diagonal pivot, which happens if the matrix isn't
// symmetric positive definite (or has degraded to singular through
// accumulated floating point error).
var ErrNotPositiveDefinite = errors.New("mat: matrix is not positive definite")

// Cholesky factors m = L * L^T for a symmetric positive definite m, writing
// the lower-triangular factor into dst (dst's strictly-upper entries are
// zeroed). This is the path used for the normal-equations Gram matrix A =
// Phi^T*Phi of the adaptive-window polynomial fit, where A is positive
// definite by construction as long as enough independent samples have been
// fed in.
func (m Matrix) Cholesky(dst Matrix) error {
	if len(m) == 0 || len(m[0]) == 0 {
		return errors.New("mat: cholesky on empty matrix")
	}
	n := len(m)
	if len(m[0]) != n {
		return errors.New("mat: cholesky requires a square matrix")
	}
	if len(dst) != n || len(dst[0]) != n {
		return errors.New("mat: cholesky destination size mismatch")
	}

	for i := range dst {
		row := dst[i][:]
		for j := range row {
			row[j] = 0
		}
	}

	for i := 0; i < n; i++ {
		for j := 0; j <= i; j++ {
			sum := m[i][j]
			for k := 0; k < j; k++ {
				sum -= dst[i][k] * dst[j][k]
			}
			if i == j {
				if sum <= 0 {
					return ErrNotPositiveDefinite
				}
				dst[i][j] = math32.Sqrt(sum)
				continue
			}
			if dst[j][j] == 0 {
				return ErrNotPositiveDefinite
			}
			dst[i][j] = sum / dst[j][j]
		}
	}
	return nil
}

// CholeskySolve solves m*x = b for positive definite m by factoring m = L *
// L^T, then running forward substitution on L*y = b followed by backward
// substitution on L^T*x = y. The factor is scratch-allocated per call; the
// adaptive filter calls this once per sample on a small (joint-count-sized)
// Gram matrix, so the allocation isn't on a hot enough path to warrant a
// caller-supplied workspace.
func (m Matrix) CholeskySolve(b vec.Vector, dst vec.Vector) error {
	n := len(m)
	if n == 0 || len(m[0]) == 0 {
		return errors.New("mat: cholesky solve on empty matrix")
	}
	if len(b) != n {
		return errors.New("mat: cholesky solve vector size mismatch")
	}

	L := New(n, n)
	if err := m.Cholesky(L); err != nil {
		return err
	}

	y := make(vec.Vector, n)
	for i := 0; i < n; i++ {
		sum := b[i]
		for j := 0; j < i; j++ {
			sum -= L[i][j] * y[j]
		}
		if L[i][i] == 0 {
			return ErrNotPositiveDefinite
		}
		y[i] = sum / L[i][i]
	}

	for i := n - 1; i >= 0; i-- {
		sum := y[i]
		for j := i + 1; j < n; j++ {
			sum -= L[j][i] * dst[j] // L^T[i][j] == L[j][i]
		}
		if L[i][i] == 0 {
			return ErrNotPositiveDefinite
		}
		dst[i] = sum / L[i][i]
	}
	return nil
}
