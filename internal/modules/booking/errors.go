package booking

import "errors"

var (
	ErrInvalidTransition    = errors.New("action not allowed from current status")
	ErrTransferNotConfirmed = errors.New("transfer must be confirmed")
	ErrProofRequired        = errors.New("transfer proof image is required")
	ErrUnknownAction        = errors.New("unknown action")
)
