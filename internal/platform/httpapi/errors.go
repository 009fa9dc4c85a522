package httpapi

import (
	"errors"
	"fmt"

	apperrors "crux/internal/platform/errors"
)

// NetworkError covers transport failures, timeouts and cancellation.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// DecodingError means a 2xx response did not match the expected shape.
type DecodingError struct {
	Err error
}

func (e *DecodingError) Error() string {
	return fmt.Sprintf("decoding error: %v", e.Err)
}

func (e *DecodingError) Unwrap() error { return e.Err }

// APIError is a non-2xx response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindNetwork
	KindDecoding
	KindAPI
	KindPayloadTooLarge
)

func (k ErrorKind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindDecoding:
		return "decoding"
	case KindAPI:
		return "api"
	case KindPayloadTooLarge:
		return "payload too large"
	}
	return "unknown"
}

// Kind classifies err into the transport taxonomy.
func Kind(err error) ErrorKind {
	var (
		netErr *NetworkError
		decErr *DecodingError
		apiErr *APIError
	)
	switch {
	case err == nil:
		return KindUnknown
	case errors.Is(err, apperrors.ErrPayloadTooLarge):
		return KindPayloadTooLarge
	case errors.As(err, &apiErr):
		return KindAPI
	case errors.As(err, &decErr):
		return KindDecoding
	case errors.As(err, &netErr):
		return KindNetwork
	}
	return KindUnknown
}
