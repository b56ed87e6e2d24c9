package services

import "errors"

var (
	// ErrEmptyInput is returned when an optimisation is requested without orders.
	ErrEmptyInput = errors.New("no orders to optimize")
	// ErrInvalidDriverCount is returned when fewer than one driver is requested.
	ErrInvalidDriverCount = errors.New("driver count must be at least 1")
	// ErrInvalidEdgeWeight is returned for negative, NaN or infinite edge weights.
	ErrInvalidEdgeWeight = errors.New("edge weight must be a finite non-negative number")
)
