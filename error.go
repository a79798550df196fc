package atmgo

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrInternalServer = errors.New("internal server error")
	// ErrUnavailable is returned when the service sheds load, either from a
	// saturated limit semaphore or an open circuit breaker.
	ErrUnavailable = errors.New("service unavailable")
)

type ErrBadRequest struct {
	Fields map[string]string `json:"fields"`
}

func (e ErrBadRequest) Error() string {
	return fmt.Sprintf("missing/invalid params: %v", e.Fields)
}

type ErrNotFound struct {
	ID int64 `json:"id"`
}

func (e ErrNotFound) Error() string {
	return "account not found"
}

// ErrUnauthorized reports a PIN mismatch. It carries no detail on purpose.
type ErrUnauthorized struct{}

func (e ErrUnauthorized) Error() string {
	return "PIN mismatch"
}

type ErrInvalidAmount struct {
	Amount decimal.Decimal `json:"amount"`
}

func (e ErrInvalidAmount) Error() string {
	return fmt.Sprintf("invalid amount: %s", e.Amount)
}

type ErrLimitExceeded struct {
	Amount decimal.Decimal `json:"amount"`
	Limit  decimal.Decimal `json:"limit"`
}

func (e ErrLimitExceeded) Error() string {
	return fmt.Sprintf("amount %s exceeds operation limit %s", e.Amount, e.Limit)
}

type ErrInsufficientFunds struct {
	Amount  decimal.Decimal `json:"amount"`
	Balance decimal.Decimal `json:"balance"`
}

func (e ErrInsufficientFunds) Error() string {
	return fmt.Sprintf("amount %s exceeds balance %s", e.Amount, e.Balance)
}
