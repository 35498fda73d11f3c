// Package tasksolver implements the per-tick whole-body task solver: a
// damped-least-squares split between a hard support-contact constraint and
// a weighted sum of soft tasks, projected into the constraint's null space.
package tasksolver

import (
	"sync"

	"github.com/chewxy/math32"
	"github.com/icub-wbd/wbcore/pkg/mat"
	"github.com/icub-wbd/wbcore/pkg/vec"
	"github.com/icub-wbd/wbcore/pkg/wbd/types"
)

// TaskKind names one of the three soft tasks the controller competes for
// joint-velocity authority. Exactly one task may be active per kind at a
// time; setting a kind again replaces its previous task.
type TaskKind int

const (
	TaskCoM TaskKind = iota
	TaskFoot
	TaskPosture
)

func (k TaskKind) String() string {
	switch k {
	case TaskCoM:
		return "COM"
	case TaskFoot:
		return "FOOT"
	case TaskPosture:
		return "POSTURE"
	default:
		return "UNKNOWN"
	}
}

// taskOrder fixes the stacking order of soft tasks so Solve is
// deterministic regardless of the order callers happen to call SetTask in.
var taskOrder = [...]TaskKind{TaskCoM, TaskFoot, TaskPosture}

type task struct {
	a      mat.Matrix
	b      vec.Vector
	weight float32
}

// Solver finds dqFull minimising the weighted sum of soft-task residuals
// subject to a hard linear constraint, after resize(k, m) fixes the
// constraint row count k and the full velocity dimension m = N+6.
type Solver struct {
	mu sync.Mutex

	k, m int

	constraintA mat.Matrix
	constraintB vec.Vector

	tasks map[TaskKind]*task

	lambda float32
}

// New returns a solver damped by lambda (applied to every pseudoinverse the
// solve step computes). Call Resize before SetTask/SetConstraint/Solve.
func New(lambda float32) *Solver {
	return &Solver{tasks: make(map[TaskKind]*task), lambda: lambda}
}

// Resize fixes the constraint row count and the full velocity dimension,
// discarding any previously set constraint and soft tasks.
func (s *Solver) Resize(k, m int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.k, s.m = k, m
	s.constraintA = mat.New(k, m)
	s.constraintB = vec.New(k)
	s.tasks = make(map[TaskKind]*task)
}

// SetConstraint installs the support-contact constraint A_c dqFull = b_c.
// A must be k×m and b length k, matching the most recent Resize call.
func (s *Solver) SetConstraint(a mat.Matrix, b vec.Vector) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.k == 0 {
		s.constraintA = mat.New(0, s.m)
		s.constraintB = vec.New(0)
		return nil
	}
	if len(a) != s.k || len(a[0]) != s.m || len(b) != s.k {
		return types.ErrDimensionMismatch
	}
	s.constraintA = cloneMatrix(a)
	s.constraintB = b.Clone()
	return nil
}

// SetTask installs (or replaces) the soft task named kind: A is rows×m, b
// is length rows, weight scales its contribution to the solve.
func (s *Solver) SetTask(kind TaskKind, a mat.Matrix, b vec.Vector, weight float32) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(a) == 0 || len(a[0]) != s.m || len(b) != len(a) {
		return types.ErrDimensionMismatch
	}
	s.tasks[kind] = &task{a: cloneMatrix(a), b: b.Clone(), weight: weight}
	return nil
}

// ClearTask drops the soft task named kind, if any.
func (s *Solver) ClearTask(kind TaskKind) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tasks, kind)
}

// Solve returns dqFull ∈ ℝ^m. The constraint Jacobian's damped pseudoinverse
// yields a particular solution satisfying the constraint; the remaining
// soft tasks are solved by weighted damped least squares inside its null
// space. A rank-deficient constraint or task stack still yields the damped
// solution rather than failing — only a dimension mismatch is an error, and
// SetTask/SetConstraint already reject those before Solve ever runs.
func (s *Solver) Solve() (vec.Vector, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.m == 0 {
		return nil, types.ErrDimensionMismatch
	}

	dqParticular := vec.New(s.m)
	projector := mat.New(s.m, s.m)
	projector.Eye()

	if s.k > 0 {
		pinvC := mat.New(s.m, s.k)
		if err := s.constraintA.DampedLeastSquares(s.lambda, pinvC); err != nil {
			return nil, err
		}
		pinvC.MulVec(s.constraintB, dqParticular)

		pa := mat.New(s.m, s.m)
		pa.Mul(pinvC, s.constraintA)
		projector.Sub(pa)
	}

	aw, bw := s.stackTasks()
	if len(aw) == 0 {
		return dqParticular, nil
	}

	projected := mat.New(len(aw), s.m)
	projected.Mul(aw, projector)

	residual := vec.New(len(aw))
	aw.MulVec(dqParticular, residual)
	for i := range residual {
		residual[i] = bw[i] - residual[i]
	}

	pinvP := mat.New(s.m, len(aw))
	if err := projected.DampedLeastSquares(s.lambda, pinvP); err != nil {
		return nil, err
	}
	dqNull := vec.New(s.m)
	pinvP.MulVec(residual, dqNull)

	dqProj := vec.New(s.m)
	projector.MulVec(dqNull, dqProj)

	return dqParticular.Add(dqProj), nil
}

// stackTasks concatenates the active soft tasks, each row scaled by
// sqrt(weight), in the fixed kind order so Solve is deterministic.
func (s *Solver) stackTasks() (mat.Matrix, vec.Vector) {
	total := 0
	for _, kind := range taskOrder {
		if t, ok := s.tasks[kind]; ok {
			total += len(t.a)
		}
	}
	if total == 0 {
		return nil, nil
	}

	aw := mat.New(total, s.m)
	bw := vec.New(total)
	r := 0
	for _, kind := range taskOrder {
		t, ok := s.tasks[kind]
		if !ok {
			continue
		}
		sw := math32.Sqrt(t.weight)
		for i := range t.a {
			for c := 0; c < s.m; c++ {
				aw[r][c] = sw * t.a[i][c]
			}
			bw[r] = sw * t.b[i]
			r++
		}
	}
	return aw, bw
}

func cloneMatrix(in mat.Matrix) mat.Matrix {
	out := mat.New(len(in), len(in[0]))
	for i, row := range in {
		copy(out[i], row)
	}
	return out
}
