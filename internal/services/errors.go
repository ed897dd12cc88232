package services

import "errors"

var (
	// ErrInvalidOrder is returned when a submitted form cannot be turned into rows
	ErrInvalidOrder = errors.New("invalid order")
	// ErrCustomerNotFound is returned when no client has the requested id
	ErrCustomerNotFound = errors.New("client not found")
	// ErrIntegrationNotFound is returned when an integration client does not exist or belongs to someone else
	ErrIntegrationNotFound = errors.New("integration not found")
)
