package types

import "errors"

var (
	// ErrUnknownLink is returned when a linkId does not name a link in
	// the model.
	ErrUnknownLink = errors.New("wbd: unknown link")
	// ErrUnknownJoint is returned when a JointId does not name a joint
	// in the active set or the full tree, depending on the operation.
	ErrUnknownJoint = errors.New("wbd: unknown joint")
	// ErrUnknownId is a generic invalid-argument for any other
	// unrecognised identifier (sensor id, estimate id, actuator id).
	ErrUnknownId = errors.New("wbd: unknown id")
	// ErrDimensionMismatch is returned when a caller-supplied buffer or
	// matrix does not match the expected size. No state is mutated.
	ErrDimensionMismatch = errors.New("wbd: dimension mismatch")
	// ErrIllDimensioned is returned by the recursive least-squares
	// estimator when a fed sample's length does not match its domain
	// size.
	ErrIllDimensioned = errors.New("wbd: ill-dimensioned sample")
	// ErrRearmFailed is returned when commanding a control-mode
	// transition fails to re-arm the underlying driver; the joint
	// retains its previous mode.
	ErrRearmFailed = errors.New("wbd: control mode re-arm failed")
	// ErrWrongUnit is returned when a control reference is rejected for
	// being outside the unit convention of the active control mode.
	ErrWrongUnit = errors.New("wbd: control reference wrong unit")
	// ErrInvalidConfig is returned for configuration errors discovered
	// at init: missing urdf, malformed subtree table, unknown
	// link/joint name referenced by configuration.
	ErrInvalidConfig = errors.New("wbd: invalid configuration")
)
