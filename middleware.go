package atmgo

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker/v2"
	"golang.org/x/sync/semaphore"
)

var (
	_ Service = (*validationMiddleware)(nil)
)

type Middleware func(Service) Service

// validationMiddleware rejects malformed requests before they reach the
// engine. Only request-shape checks live here; semantic checks (existence,
// PIN, amount against limit and balance) stay in the engine so their fixed
// evaluation order is preserved.
type validationMiddleware struct {
	next     Service
	validate *validator.Validate
}

func NewValidationMiddleware() Middleware {
	v := validator.New()
	return func(svc Service) Service {
		return &validationMiddleware{
			next:     svc,
			validate: v,
		}
	}
}

func (v *validationMiddleware) CreateAccount(req CreateAccountReq) (snowflake.ID, error) {
	if err := v.validate.Struct(req); err != nil {
		fields := make(map[string]string)
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				fields[fe.Field()] = "failed '" + fe.Tag() + "' check"
			}
		} else {
			fields["request"] = err.Error()
		}
		return 0, ErrBadRequest{Fields: fields}
	}
	if !req.Limit.IsPositive() {
		return 0, ErrBadRequest{Fields: map[string]string{"limit": "must be positive"}}
	}
	if req.Balance.IsNegative() {
		return 0, ErrBadRequest{Fields: map[string]string{"balance": "must not be negative"}}
	}
	return v.next.CreateAccount(req)
}

func (v *validationMiddleware) DeleteAccount(id snowflake.ID) error {
	return v.next.DeleteAccount(id)
}

func (v *validationMiddleware) Apply(req ChargeReq) (*decimal.Decimal, error) {
	if req.Kind != OpDeposit && req.Kind != OpWithdraw {
		return nil, ErrBadRequest{Fields: map[string]string{"operation": "must be deposit or withdraw"}}
	}
	return v.next.Apply(req)
}

func (v *validationMiddleware) Balance(req BalanceReq) (*decimal.Decimal, error) {
	return v.next.Balance(req)
}

func (v *validationMiddleware) Accounts() ([]AccountView, error) {
	return v.next.Accounts()
}

func (v *validationMiddleware) OwnerAccounts(ownerID uuid.UUID) ([]AccountView, error) {
	return v.next.OwnerAccounts(ownerID)
}

func (v *validationMiddleware) Statement(w io.Writer, req StatementReq) error {
	return v.next.Statement(w, req)
}

//
// Rate limiting middlewares
//

// limitMiddleware limits the number of in-flight requests to the service by
// using a weighted semaphore, i.e., x/sync/semaphore.Semaphore with an
// acquisition timeout. Saturation surfaces as ErrUnavailable rather than an
// unbounded wait on the per-account locks behind the engine.
type limitMiddleware struct {
	next    Service
	limits  *ServiceLimits
	timeout time.Duration
}

var (
	_ Service = (*limitMiddleware)(nil)
)

type ServiceLimits struct {
	CreateAccount *semaphore.Weighted
	DeleteAccount *semaphore.Weighted
	Apply         *semaphore.Weighted
	Balance       *semaphore.Weighted
	Statement     *semaphore.Weighted
}

func NewlimitMiddleware(limits *ServiceLimits, timeout time.Duration) Middleware {
	return func(next Service) Service {
		return &limitMiddleware{
			next:    next,
			limits:  limits,
			timeout: timeout,
		}
	}
}

func (l *limitMiddleware) acquire(sem *semaphore.Weighted) error {
	ctx, cancel := context.WithTimeout(context.Background(), l.timeout)
	defer cancel()
	if err := sem.Acquire(ctx, 1); err != nil {
		return ErrUnavailable
	}
	return nil
}

func (l *limitMiddleware) CreateAccount(req CreateAccountReq) (snowflake.ID, error) {
	if err := l.acquire(l.limits.CreateAccount); err != nil {
		return 0, err
	}
	defer l.limits.CreateAccount.Release(1)
	return l.next.CreateAccount(req)
}

func (l *limitMiddleware) DeleteAccount(id snowflake.ID) error {
	if err := l.acquire(l.limits.DeleteAccount); err != nil {
		return err
	}
	defer l.limits.DeleteAccount.Release(1)
	return l.next.DeleteAccount(id)
}

func (l *limitMiddleware) Apply(req ChargeReq) (*decimal.Decimal, error) {
	if err := l.acquire(l.limits.Apply); err != nil {
		return nil, err
	}
	defer l.limits.Apply.Release(1)
	return l.next.Apply(req)
}

func (l *limitMiddleware) Balance(req BalanceReq) (*decimal.Decimal, error) {
	if err := l.acquire(l.limits.Balance); err != nil {
		return nil, err
	}
	defer l.limits.Balance.Release(1)
	return l.next.Balance(req)
}

func (l *limitMiddleware) Accounts() ([]AccountView, error) {
	return l.next.Accounts()
}

func (l *limitMiddleware) OwnerAccounts(ownerID uuid.UUID) ([]AccountView, error) {
	return l.next.OwnerAccounts(ownerID)
}

func (l *limitMiddleware) Statement(w io.Writer, req StatementReq) error {
	if err := l.acquire(l.limits.Statement); err != nil {
		return err
	}
	defer l.limits.Statement.Release(1)
	return l.next.Statement(w, req)
}

type ServiceBreaker struct {
	CreateAccount *gobreaker.TwoStepCircuitBreaker[snowflake.ID]
	DeleteAccount *gobreaker.TwoStepCircuitBreaker[interface{}]
	Apply         *gobreaker.TwoStepCircuitBreaker[*decimal.Decimal]
	Balance       *gobreaker.TwoStepCircuitBreaker[*decimal.Decimal]
	Statement     *gobreaker.TwoStepCircuitBreaker[interface{}]
}

// circuitBreakMiddleware is a middleware that implements the circuit breaker
// pattern. It works in conjunction with limitMiddleware to limit the number
// of in-flight requests to the service when the circuit is not in `closed`
// state. Caller-fault outcomes (NotFound, Unauthorized, amount rejections)
// count as successes so misbehaving clients cannot trip the breaker.
type circuitBreakMiddleware struct {
	next  Service
	brkrs *ServiceBreaker
}

var (
	_ Service = (*circuitBreakMiddleware)(nil)
)

func NewCircuitBreakMiddleware(brkrs *ServiceBreaker) Middleware {
	return func(next Service) Service {
		return &circuitBreakMiddleware{
			next:  next,
			brkrs: brkrs,
		}
	}
}

func (c *circuitBreakMiddleware) CreateAccount(req CreateAccountReq) (snowflake.ID, error) {
	done, err := c.brkrs.CreateAccount.Allow()
	if err != nil {
		return 0, ErrUnavailable
	}
	id, err := c.next.CreateAccount(req)
	done(err == nil || callerFault(err))
	return id, err
}

func (c *circuitBreakMiddleware) DeleteAccount(id snowflake.ID) error {
	done, err := c.brkrs.DeleteAccount.Allow()
	if err != nil {
		return ErrUnavailable
	}
	err = c.next.DeleteAccount(id)
	done(err == nil || callerFault(err))
	return err
}

func (c *circuitBreakMiddleware) Apply(req ChargeReq) (*decimal.Decimal, error) {
	done, err := c.brkrs.Apply.Allow()
	if err != nil {
		return nil, ErrUnavailable
	}
	bal, err := c.next.Apply(req)
	done(err == nil || callerFault(err))
	return bal, err
}

func (c *circuitBreakMiddleware) Balance(req BalanceReq) (*decimal.Decimal, error) {
	done, err := c.brkrs.Balance.Allow()
	if err != nil {
		return nil, ErrUnavailable
	}
	bal, err := c.next.Balance(req)
	done(err == nil || callerFault(err))
	return bal, err
}

func (c *circuitBreakMiddleware) Accounts() ([]AccountView, error) {
	return c.next.Accounts()
}

func (c *circuitBreakMiddleware) OwnerAccounts(ownerID uuid.UUID) ([]AccountView, error) {
	return c.next.OwnerAccounts(ownerID)
}

func (c *circuitBreakMiddleware) Statement(w io.Writer, req StatementReq) error {
	done, err := c.brkrs.Statement.Allow()
	if err != nil {
		return ErrUnavailable
	}
	err = c.next.Statement(w, req)
	done(err == nil || callerFault(err))
	return err
}

func callerFault(err error) bool {
	var (
		nf ErrNotFound
		ua ErrUnauthorized
		ia ErrInvalidAmount
		le ErrLimitExceeded
		in ErrInsufficientFunds
		br ErrBadRequest
	)
	return errors.As(err, &nf) ||
		errors.As(err, &ua) ||
		errors.As(err, &ia) ||
		errors.As(err, &le) ||
		errors.As(err, &in) ||
		errors.As(err, &br)
}
