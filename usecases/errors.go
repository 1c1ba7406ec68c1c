package usecases

import "fmt"

// Error taxonomy shared by every flow. Handlers map these onto HTTP
// statuses; anything else is treated as an unexpected server error.

// ValidationError marks malformed or missing input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// AuthError marks a credential or OTP mismatch. The message is deliberately
// generic so callers cannot tell which check failed.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string { return e.Message }

// NotFoundError marks a referenced entity that is absent or out of the
// requester's tenant scope.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// DeliveryError marks a notifier failure.
type DeliveryError struct {
	Message string
	Err     error
}

func (e *DeliveryError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DeliveryError) Unwrap() error { return e.Err }
