package restorer

import "fmt"

// Hyperparams are the mutable runtime settings of a trained model.
// Changing them does not require retraining.
type Hyperparams struct {
	// L is the maximum number of characters considered per candidate word
	// during segmentation.
	L int `json:"l"`
	// Lambda balances the probability mass assigned to words not seen in
	// training against the counts of seen words. Larger values favor the
	// unknown-word model.
	Lambda float64 `json:"lambda"`
}

// DefaultHyperparams mirror the defaults of the restore operation.
var DefaultHyperparams = Hyperparams{L: 20, Lambda: 10.0}

// Validate checks that both hyperparameters are positive
func (h Hyperparams) Validate() error {
	if h.L <= 0 {
		return fmt.Errorf("%w: L must be positive, got %d", ErrConfiguration, h.L)
	}
	if h.Lambda <= 0 {
		return fmt.Errorf("%w: lambda must be positive, got %g", ErrConfiguration, h.Lambda)
	}
	return nil
}
