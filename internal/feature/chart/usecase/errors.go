package usecase

import "errors"

var (
	// ErrEmptySymbol is returned when a chart is requested without a symbol.
	ErrEmptySymbol = errors.New("symbol is required")

	// ErrUnknownMode is returned for a mode other than mock or live.
	ErrUnknownMode = errors.New("unknown chart mode")

	// ErrPredictionUnavailable wraps failures of the prediction service,
	// and is returned as-is when live mode has no prediction service configured.
	ErrPredictionUnavailable = errors.New("prediction service unavailable")
)
