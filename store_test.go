package atmgo_test

import (
	"sync"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atmgo/atmgo"
)

func newTestStore(t *testing.T) *atmgo.MemStore {
	t.Helper()
	log := zerolog.Nop()
	store, err := atmgo.NewMemStore(1, &log)
	require.New(t).Nil(err)
	return store
}

func TestMemStoreCreateAccount(t *testing.T) {
	t.Run("assigns a fresh id and round-trips the record", func(tt *testing.T) {
		as := assert.New(tt)
		reqrd := require.New(tt)
		store := newTestStore(tt)

		owner := uuid.New()
		id, err := store.CreateAccount(atmgo.CreateAccountReq{
			PIN:     "1245",
			OwnerID: owner,
			Limit:   decimal.NewFromInt(500),
			Balance: decimal.NewFromInt(50000),
		})
		reqrd.Nil(err)

		acct, err := store.GetAccount(id)
		reqrd.Nil(err)
		as.Equal(id, acct.ID)
		as.Equal(owner, acct.OwnerID)
		as.Equal("1245", acct.PIN)
		as.True(acct.Limit.Equal(decimal.NewFromInt(500)))
		as.True(acct.Balance.Equal(decimal.NewFromInt(50000)))
	})

	t.Run("never hands out the same id twice", func(tt *testing.T) {
		as := assert.New(tt)
		store := newTestStore(tt)

		var (
			mu  sync.Mutex
			ids = make(map[snowflake.ID]struct{})
			wg  sync.WaitGroup
		)
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < 50; j++ {
					id, err := store.CreateAccount(atmgo.CreateAccountReq{
						PIN:     "0000",
						OwnerID: uuid.New(),
						Limit:   decimal.NewFromInt(100),
					})
					if err != nil {
						continue
					}
					mu.Lock()
					ids[id] = struct{}{}
					mu.Unlock()
				}
			}()
		}
		wg.Wait()

		as.Len(ids, 8*50)
		as.Len(store.ListAccounts(), 8*50)
	})
}

func TestMemStoreDeleteAccount(t *testing.T) {
	t.Run("removes the record for good", func(tt *testing.T) {
		as := assert.New(tt)
		reqrd := require.New(tt)
		store := newTestStore(tt)

		owner := uuid.New()
		id, err := store.CreateAccount(atmgo.CreateAccountReq{
			PIN:     "1245",
			OwnerID: owner,
			Limit:   decimal.NewFromInt(500),
		})
		reqrd.Nil(err)

		reqrd.Nil(store.DeleteAccount(id))

		_, err = store.GetAccount(id)
		as.ErrorAs(err, &atmgo.ErrNotFound{})
		as.Empty(store.ListOwnerAccounts(owner))

		err = store.DeleteAccount(id)
		as.ErrorAs(err, &atmgo.ErrNotFound{})
	})

	t.Run("returns NotFound on an id that never existed", func(tt *testing.T) {
		as := assert.New(tt)
		store := newTestStore(tt)
		err := store.DeleteAccount(snowflake.ParseInt64(7241301734201495552))
		as.ErrorAs(err, &atmgo.ErrNotFound{})
	})
}

func TestMemStoreListAccounts(t *testing.T) {
	t.Run("lists every account in insertion order", func(tt *testing.T) {
		as := assert.New(tt)
		reqrd := require.New(tt)
		store := newTestStore(tt)

		var want []snowflake.ID
		for i := 0; i < 5; i++ {
			id, err := store.CreateAccount(atmgo.CreateAccountReq{
				PIN:     "1245",
				OwnerID: uuid.New(),
				Limit:   decimal.NewFromInt(500),
			})
			reqrd.Nil(err)
			want = append(want, id)
		}

		views := store.ListAccounts()
		reqrd.Len(views, 5)
		for i, v := range views {
			as.Equal(want[i], v.ID)
		}
	})
}

func TestMemStoreListOwnerAccounts(t *testing.T) {
	t.Run("filters by owner", func(tt *testing.T) {
		as := assert.New(tt)
		reqrd := require.New(tt)
		store := newTestStore(tt)

		alice, bob := uuid.New(), uuid.New()
		aliceFirst, err := store.CreateAccount(atmgo.CreateAccountReq{
			PIN: "1245", OwnerID: alice, Limit: decimal.NewFromInt(500),
		})
		reqrd.Nil(err)
		_, err = store.CreateAccount(atmgo.CreateAccountReq{
			PIN: "6789", OwnerID: bob, Limit: decimal.NewFromInt(1000),
		})
		reqrd.Nil(err)
		aliceSecond, err := store.CreateAccount(atmgo.CreateAccountReq{
			PIN: "1245", OwnerID: alice, Limit: decimal.NewFromInt(500),
		})
		reqrd.Nil(err)

		views := store.ListOwnerAccounts(alice)
		reqrd.Len(views, 2)
		as.Equal(aliceFirst, views[0].ID)
		as.Equal(aliceSecond, views[1].ID)
	})

	t.Run("returns an empty sequence, not an error, for an unknown owner", func(tt *testing.T) {
		as := assert.New(tt)
		store := newTestStore(tt)
		views := store.ListOwnerAccounts(uuid.New())
		as.NotNil(views)
		as.Empty(views)
	})
}

func TestMemStorePublishBalance(t *testing.T) {
	t.Run("installs the balance and appends the charge", func(tt *testing.T) {
		as := assert.New(tt)
		reqrd := require.New(tt)
		store := newTestStore(tt)

		id, err := store.CreateAccount(atmgo.CreateAccountReq{
			PIN:     "1245",
			OwnerID: uuid.New(),
			Limit:   decimal.NewFromInt(500),
			Balance: decimal.NewFromInt(1000),
		})
		reqrd.Nil(err)

		chg := atmgo.Charge{
			Kind:    atmgo.OpWithdraw,
			Amount:  decimal.NewFromInt(100),
			Balance: decimal.NewFromInt(900),
		}
		reqrd.Nil(store.PublishBalance(id, chg))

		acct, err := store.GetAccount(id)
		reqrd.Nil(err)
		as.True(acct.Balance.Equal(decimal.NewFromInt(900)))

		charges, err := store.GetAccountCharges(id)
		reqrd.Nil(err)
		reqrd.Len(charges, 1)
		as.Equal(atmgo.OpWithdraw, charges[0].Kind)
		as.True(charges[0].Amount.Equal(decimal.NewFromInt(100)))
	})

	t.Run("returns NotFound for an absent account", func(tt *testing.T) {
		as := assert.New(tt)
		store := newTestStore(tt)
		err := store.PublishBalance(snowflake.ParseInt64(7241301734201495552), atmgo.Charge{})
		as.ErrorAs(err, &atmgo.ErrNotFound{})
	})
}
