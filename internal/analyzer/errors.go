package analyzer

import (
	"errors"
	"fmt"
)

var (
	// ErrInference marks failures of the external model path
	ErrInference = errors.New("model inference failed")

	// ErrNoClassifier is returned when the model path is requested but no
	// classifier is configured
	ErrNoClassifier = errors.New("no model classifier configured")

	// ErrInternal marks an unexpected failure inside the rule-based path
	ErrInternal = errors.New("internal analyzer error")
)

// InferenceError wraps a failure returned by (or about) a Classifier.
// It matches ErrInference with errors.Is.
type InferenceError struct {
	Err error
}

func (e *InferenceError) Error() string {
	return fmt.Sprintf("%s: %v", ErrInference, e.Err)
}

func (e *InferenceError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrInference) true for every InferenceError
func (e *InferenceError) Is(target error) bool {
	return target == ErrInference
}
