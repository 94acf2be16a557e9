package service

import (
	"fmt"
	"math"
	"strings"

	"restorer-go/internal/model/restorer"
)

// Unknown-word function names accepted at training time
const (
	UnknownExponential = "exponential"
	UnknownGaussian    = "gaussian"
)

// UnknownWordModel assigns a log10 probability to a word that was never seen
// in training, as a function of its length in characters. The form is fixed
// at training time; lambda remains a runtime setting.
type UnknownWordModel interface {
	// LogProb returns the log10 probability of an unseen word of the given
	// length under smoothing weight lambda.
	LogProb(length int, lambda float64) float64

	// Name returns the function name, one of the constants above.
	Name() string
}

// NewUnknownWordModel selects the unknown-word function by name, deriving its
// parameters from the trained frequency model.
func NewUnknownWordModel(name string, m *FrequencyModel) (UnknownWordModel, error) {
	total := float64(m.TotalWords())
	if total < 1 {
		total = 1
	}
	switch strings.ToLower(name) {
	case UnknownExponential, "":
		return &ExponentialUnknown{totalWords: total}, nil
	case UnknownGaussian:
		variance := m.LengthVariance()
		if variance <= 0 {
			variance = 1
		}
		return &GaussianUnknown{totalWords: total, mean: m.LengthMean(), variance: variance}, nil
	}
	return nil, fmt.Errorf("%w: unknown unknown-word function %q", restorer.ErrConfiguration, name)
}

// ExponentialUnknown decays the probability of an unseen word geometrically
// with its length: P = lambda / (N * 10^length). Very long unseen words are
// effectively ruled out.
type ExponentialUnknown struct {
	totalWords float64
}

func (u *ExponentialUnknown) LogProb(length int, lambda float64) float64 {
	return math.Log10(lambda) - math.Log10(u.totalWords) - float64(length)
}

func (u *ExponentialUnknown) Name() string { return UnknownExponential }

// GaussianUnknown follows a normal density over word length, with mean and
// variance taken from the corpus word-length statistics:
// P = (lambda / N) * NormalPDF(length; mean, variance).
type GaussianUnknown struct {
	totalWords float64
	mean       float64
	variance   float64
}

func (u *GaussianUnknown) LogProb(length int, lambda float64) float64 {
	x := float64(length)
	// The density is computed directly in log10 space so extreme lengths
	// underflow gracefully instead of rounding to zero.
	logDensity := -(x-u.mean)*(x-u.mean)/(2*u.variance)*math.Log10E - 0.5*math.Log10(2*math.Pi*u.variance)
	return math.Log10(lambda) - math.Log10(u.totalWords) + logDensity
}

func (u *GaussianUnknown) Name() string { return UnknownGaussian }
