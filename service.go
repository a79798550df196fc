package atmgo

import (
	"crypto/subtle"
	"io"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

type Service interface {
	CreateAccount(req CreateAccountReq) (snowflake.ID, error)
	DeleteAccount(id snowflake.ID) error
	Balance(req BalanceReq) (*decimal.Decimal, error)
	Apply(req ChargeReq) (*decimal.Decimal, error)
	Accounts() ([]AccountView, error)
	OwnerAccounts(ownerID uuid.UUID) ([]AccountView, error)
	Statement(w io.Writer, req StatementReq) error
}

// denom is the smallest dispensed note; operation amounts must be whole
// multiples of it.
var denom = decimal.NewFromInt(10)

func NewService(repo Repository, log *zerolog.Logger) *serviceImpl {
	return &serviceImpl{
		repo: repo,
		keys: newKeeper(),
		log:  log,
	}
}

type serviceImpl struct {
	repo Repository
	keys *keeper
	log  *zerolog.Logger
}

var (
	_ Service = (*serviceImpl)(nil)
)

func (s *serviceImpl) CreateAccount(req CreateAccountReq) (snowflake.ID, error) {
	return s.repo.CreateAccount(req)
}

// DeleteAccount takes the account's exclusive lock before removing the
// record so deletion cannot race with an in-flight mutation. An operation
// that loses the race observes NotFound inside its own critical section.
func (s *serviceImpl) DeleteAccount(id snowflake.ID) error {
	return s.keys.withLock(id, func() error {
		return s.repo.DeleteAccount(id)
	})
}

// Balance does not take the mutation lock; the store publishes balance
// updates atomically, so the snapshot read is never a mid-mutation value.
func (s *serviceImpl) Balance(req BalanceReq) (*decimal.Decimal, error) {
	acct, err := s.repo.GetAccount(req.AcctID)
	if err != nil {
		return nil, err
	}
	if !pinMatch(acct.PIN, req.PIN) {
		return nil, ErrUnauthorized{}
	}
	bal := acct.Balance
	return &bal, nil
}

// Apply runs one deposit or withdrawal under the account's exclusive lock.
// Checks run in a fixed order and the first violated one decides the
// failure: existence, PIN, amount positivity, per-operation limit,
// banknote denomination, and, for withdrawals, sufficient balance. The
// limit applies to deposits as well. No state changes unless every check
// passes.
func (s *serviceImpl) Apply(req ChargeReq) (*decimal.Decimal, error) {
	var newBal decimal.Decimal
	err := s.keys.withLock(req.AcctID, func() error {
		acct, err := s.repo.GetAccount(req.AcctID)
		if err != nil {
			return err
		}
		if !pinMatch(acct.PIN, req.PIN) {
			return ErrUnauthorized{}
		}
		if !req.Amount.IsPositive() {
			return ErrInvalidAmount{Amount: req.Amount}
		}
		if req.Amount.GreaterThan(acct.Limit) {
			return ErrLimitExceeded{Amount: req.Amount, Limit: acct.Limit}
		}
		if !req.Amount.Mod(denom).IsZero() {
			return ErrInvalidAmount{Amount: req.Amount}
		}
		switch req.Kind {
		case OpDeposit:
			newBal = acct.Balance.Add(req.Amount)
		case OpWithdraw:
			if req.Amount.GreaterThan(acct.Balance) {
				return ErrInsufficientFunds{Amount: req.Amount, Balance: acct.Balance}
			}
			newBal = acct.Balance.Sub(req.Amount)
		default:
			return ErrBadRequest{Fields: map[string]string{"operation": "must be deposit or withdraw"}}
		}
		return s.repo.PublishBalance(req.AcctID, Charge{
			Time:    time.Now(),
			Kind:    req.Kind,
			Amount:  req.Amount,
			Balance: newBal,
		})
	})
	if err != nil {
		s.log.Debug().
			Err(err).
			Str("acct", req.AcctID.String()).
			Str("operation", string(req.Kind)).
			Msg("operation rejected")
		return nil, err
	}
	return &newBal, nil
}

func (s *serviceImpl) Accounts() ([]AccountView, error) {
	return s.repo.ListAccounts(), nil
}

func (s *serviceImpl) OwnerAccounts(ownerID uuid.UUID) ([]AccountView, error) {
	return s.repo.ListOwnerAccounts(ownerID), nil
}

func (s *serviceImpl) Statement(w io.Writer, req StatementReq) error {
	acct, err := s.repo.GetAccount(req.AcctID)
	if err != nil {
		return err
	}
	if !pinMatch(acct.PIN, req.PIN) {
		return ErrUnauthorized{}
	}
	charges, err := s.repo.GetAccountCharges(req.AcctID)
	if err != nil {
		return err
	}
	return renderStatement(w, acct, charges)
}

func pinMatch(stored, supplied string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(supplied)) == 1
}
