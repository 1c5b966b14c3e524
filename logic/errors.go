package logic

import "errors"

// Guard and payment errors surfaced to the HTTP layer. None of these are
// fatal: each maps to a user-visible prompt or notice.
var (
	ErrInsufficientCoins  = errors.New("insufficient coins")
	ErrDailyQuotaExceeded = errors.New("daily reading quota exceeded")
	ErrGuestTrialUsed     = errors.New("guest trial already used")
	ErrTierTooLow         = errors.New("tier too low for this category")
	ErrAuthRequired       = errors.New("sign-in required for this category")
	ErrUnknownCategory    = errors.New("unknown category")
	ErrInvalidTransition  = errors.New("invalid screen transition")
	ErrPaymentFailed      = errors.New("payment confirmation failed")
	ErrUnknownPackage     = errors.New("unknown coin package")
)
