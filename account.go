package atmgo

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OpKind names the two balance mutations an account supports.
type OpKind string

const (
	OpDeposit  OpKind = "deposit"
	OpWithdraw OpKind = "withdraw"
)

// Account is the authoritative record held by the store. The ID is assigned
// by the store at creation and never reused; PIN and Limit are fixed for the
// account's lifetime. Balance is only ever changed through the engine's
// mutation path while the account's exclusive lock is held.
type Account struct {
	ID      snowflake.ID
	OwnerID uuid.UUID
	PIN     string `json:"-"`
	Limit   decimal.Decimal
	Balance decimal.Decimal
}

// AccountView is the projection returned by account listings. Balance and
// PIN never leave the store through it.
type AccountView struct {
	ID      snowflake.ID    `json:"id"`
	OwnerID uuid.UUID       `json:"ownerId"`
	Limit   decimal.Decimal `json:"limit"`
}

// Charge is one applied mutation in an account's journal. Balance is the
// account balance immediately after the charge; journal and balance are
// written in the same critical section so they never diverge.
type Charge struct {
	Time    time.Time
	Kind    OpKind
	Amount  decimal.Decimal
	Balance decimal.Decimal
}

type CreateAccountReq struct {
	PIN     string          `json:"pin" validate:"required,len=4,numeric"`
	OwnerID uuid.UUID       `json:"ownerId" validate:"required"`
	Limit   decimal.Decimal `json:"limit"`
	Balance decimal.Decimal `json:"balance"`
}

type ChargeReq struct {
	Kind   OpKind          `json:"operation"`
	Amount decimal.Decimal `json:"value"`
	AcctID snowflake.ID    `json:"-"`
	PIN    string          `json:"-"`
}

type BalanceReq struct {
	AcctID snowflake.ID
	PIN    string
}

type StatementReq struct {
	AcctID snowflake.ID
	PIN    string
}
