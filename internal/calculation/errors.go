package calculation

// ComputationError reports an unexpected failure inside a numeric stage
type ComputationError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *ComputationError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *ComputationError) Unwrap() error {
	return e.Cause
}
