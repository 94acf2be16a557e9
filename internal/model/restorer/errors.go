package restorer

import "errors"

// Error taxonomy for the space restorer. Callers match with errors.Is; the
// service layer wraps these with fmt.Errorf("...: %w", ...) for context.
var (
	// ErrConfiguration indicates an invalid hyperparameter or an unknown
	// metric, direction or unknown-word function name.
	ErrConfiguration = errors.New("invalid configuration")

	// ErrShapeMismatch indicates parallel sequence arguments of unequal length.
	ErrShapeMismatch = errors.New("shape mismatch")

	// ErrEmptyModel indicates an operation that requires a trained model.
	ErrEmptyModel = errors.New("model not trained")

	// ErrNoGridSearchSelected indicates an optimizer query with no current
	// grid search.
	ErrNoGridSearchSelected = errors.New("no grid search selected")
)
