package atmgo

import (
	"sync"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type record struct {
	acct    Account
	charges []Charge
}

// MemStore is the authoritative in-memory account store. A single RWMutex
// guards the maps so that balance publication is atomic with respect to
// readers; serialization of mutations on one account is the engine's job,
// via its per-account locks. Ids are assigned from a snowflake node and are
// never reused.
type MemStore struct {
	node *snowflake.Node
	log  *zerolog.Logger

	mu     sync.RWMutex
	accts  map[snowflake.ID]*record
	order  []snowflake.ID
	owners map[uuid.UUID][]snowflake.ID
}

var (
	_ Repository = (*MemStore)(nil)
)

func NewMemStore(node int64, log *zerolog.Logger) (*MemStore, error) {
	n, err := snowflake.NewNode(node)
	if err != nil {
		return nil, err
	}
	return &MemStore{
		node:   n,
		log:    log,
		accts:  make(map[snowflake.ID]*record),
		owners: make(map[uuid.UUID][]snowflake.ID),
	}, nil
}

func (s *MemStore) CreateAccount(req CreateAccountReq) (snowflake.ID, error) {
	id := s.node.Generate()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accts[id] = &record{
		acct: Account{
			ID:      id,
			OwnerID: req.OwnerID,
			PIN:     req.PIN,
			Limit:   req.Limit,
			Balance: req.Balance,
		},
	}
	s.order = append(s.order, id)
	s.owners[req.OwnerID] = append(s.owners[req.OwnerID], id)
	s.log.Info().
		Str("acct", id.String()).
		Str("owner", req.OwnerID.String()).
		Msg("account created")
	return id, nil
}

func (s *MemStore) DeleteAccount(id snowflake.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.accts[id]
	if !ok {
		return ErrNotFound{ID: id.Int64()}
	}
	delete(s.accts, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	owned := s.owners[rec.acct.OwnerID]
	for i, oid := range owned {
		if oid == id {
			s.owners[rec.acct.OwnerID] = append(owned[:i], owned[i+1:]...)
			break
		}
	}
	s.log.Info().Str("acct", id.String()).Msg("account deleted")
	return nil
}

// GetAccount returns a copy of the record so callers cannot mutate store
// state outside the publication path.
func (s *MemStore) GetAccount(id snowflake.ID) (*Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.accts[id]
	if !ok {
		return nil, ErrNotFound{ID: id.Int64()}
	}
	cp := rec.acct
	return &cp, nil
}

func (s *MemStore) GetAccountCharges(id snowflake.ID) ([]Charge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.accts[id]
	if !ok {
		return nil, ErrNotFound{ID: id.Int64()}
	}
	out := make([]Charge, len(rec.charges))
	copy(out, rec.charges)
	return out, nil
}

// ListAccounts returns all accounts in insertion order.
func (s *MemStore) ListAccounts() []AccountView {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]AccountView, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, viewOf(s.accts[id]))
	}
	return out
}

// ListOwnerAccounts returns an empty, non-nil slice for an unknown owner.
func (s *MemStore) ListOwnerAccounts(ownerID uuid.UUID) []AccountView {
	s.mu.RLock()
	defer s.mu.RUnlock()
	owned := s.owners[ownerID]
	out := make([]AccountView, 0, len(owned))
	for _, id := range owned {
		out = append(out, viewOf(s.accts[id]))
	}
	return out
}

func (s *MemStore) PublishBalance(id snowflake.ID, chg Charge) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.accts[id]
	if !ok {
		return ErrNotFound{ID: id.Int64()}
	}
	rec.acct.Balance = chg.Balance
	rec.charges = append(rec.charges, chg)
	return nil
}

func viewOf(rec *record) AccountView {
	return AccountView{
		ID:      rec.acct.ID,
		OwnerID: rec.acct.OwnerID,
		Limit:   rec.acct.Limit,
	}
}
