package errorvalues

import "errors"

var (
	ErrDayLogNotFound      = errors.New("day log doesn't exist")
	ErrSettingsNotFound    = errors.New("reminder settings don't exist")
	ErrChannelInactive     = errors.New("device channel is not activated")
	ErrSendFailed          = errors.New("sending message over device channel failed")
	ErrMalformedPayload    = errors.New("message payload misses required key")
	ErrStaleDayMismatch    = errors.New("increments tagged to a day that is not today")
	ErrInvalidWindow       = errors.New("reminder window start must be before end")
	ErrNoCachedSummary     = errors.New("no cached day summary on companion")
	ErrInvalidPairingToken = errors.New("invalid device pairing token")
)
