package atmgo

import (
	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
)

type Repository interface {
	CreateAccount(req CreateAccountReq) (snowflake.ID, error)
	DeleteAccount(id snowflake.ID) error
	GetAccount(id snowflake.ID) (*Account, error)
	GetAccountCharges(id snowflake.ID) ([]Charge, error)
	ListAccounts() []AccountView
	ListOwnerAccounts(ownerID uuid.UUID) []AccountView
	// PublishBalance atomically installs chg.Balance as the account balance
	// and appends chg to the account's journal. Callers must hold the
	// account's exclusive lock.
	PublishBalance(id snowflake.ID, chg Charge) error
}
