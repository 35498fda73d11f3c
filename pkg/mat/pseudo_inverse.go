package mat

import (
	"errors"
)

// ErrPseudoInverseFailed is returned when the Gram matrix behind a
// pseudo-inverse (J^T*J, J*J^T, or the damped variant) is singular to the
// point LU refuses to invert it. Callers in tasksolver and estimator treat
// this as "drop this update" rather than a fatal error.
var ErrPseudoInverseFailed = errors.New("pseudo-inverse computation failed")

// gramInverse builds the normal-equations Gram matrix for either the
// overdetermined (rows >= cols: J^T*J) or underdetermined (rows < cols:
// J*J^T) case, optionally ridge-regularized by lambda^2, and inverts it.
// gram must be sized to the smaller of rows/cols on each side.
func gramInverse(mT, m Matrix, transposed bool, lambda float32, gram, gramInv Matrix) error {
	if transposed {
		gram.Mul(mT, m)
	} else {
		gram.Mul(m, mT)
	}
	if lambda != 0 {
		lambda2 := lambda * lambda
		for i := range gram {
			gram[i][i] += lambda2
		}
	}
	if err := gram.Inverse(gramInv); err != nil {
		return ErrPseudoInverseFailed
	}
	return nil
}

// PseudoInverse computes the Moore-Penrose pseudo-inverse of m into dst
// (sized cols x rows):
//
//	rows >= cols (overdetermined): J+ = (J^T J)^-1 J^T
//	rows <  cols (underdetermined): J+ = J^T (J J^T)^-1
//
// Used where the exact least-squares solution is wanted and the Gram
// matrix is known to be well conditioned; prefer DampedLeastSquares near a
// kinematic singularity.
func (m Matrix) PseudoInverse(dst Matrix) error {
	rows := len(m)
	if rows == 0 || len(m[0]) == 0 {
		return ErrPseudoInverseFailed
	}
	cols := len(m[0])

	mT := New(cols, rows)
	mT.Transpose(m)

	if rows >= cols {
		gram, gramInv := New(cols, cols), New(cols, cols)
		if err := gramInverse(mT, m, true, 0, gram, gramInv); err != nil {
			return err
		}
		dst.Mul(gramInv, mT)
	} else {
		gram, gramInv := New(rows, rows), New(rows, rows)
		if err := gramInverse(mT, m, false, 0, gram, gramInv); err != nil {
			return err
		}
		dst.Mul(mT, gramInv)
	}
	return nil
}

// DampedLeastSquares computes the Levenberg-Marquardt-damped pseudo-inverse
// J+ = J^T (J J^T + lambda^2 I)^-1 into dst (sized cols x rows). The damping
// term trades exactness for a bounded solution norm as J approaches rank
// deficiency, which is what lets tasksolver and the estimator's contact
// Jacobian keep producing a finite answer through a kinematic singularity
// instead of PseudoInverse's unbounded blow-up.
func (m Matrix) DampedLeastSquares(lambda float32, dst Matrix) error {
	rows := len(m)
	if rows == 0 || len(m[0]) == 0 {
		return ErrPseudoInverseFailed
	}
	cols := len(m[0])

	mT := New(cols, rows)
	mT.Transpose(m)

	gram, gramInv := New(rows, rows), New(rows, rows)
	if err := gramInverse(mT, m, false, lambda, gram, gramInv); err != nil {
		return err
	}
	dst.Mul(mT, gramInv)
	return nil
}
