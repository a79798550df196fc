package atmgo_test

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/sync/semaphore"

	"github.com/atmgo/atmgo"
	"github.com/atmgo/atmgo/mocks"
)

func TestValidationMWCreateAccount(t *testing.T) {
	badReqs := map[string]atmgo.CreateAccountReq{
		"PIN with a letter": {
			PIN:     "12a4",
			OwnerID: uuid.New(),
			Limit:   decimal.NewFromInt(500),
		},
		"PIN too short": {
			PIN:     "124",
			OwnerID: uuid.New(),
			Limit:   decimal.NewFromInt(500),
		},
		"missing owner": {
			PIN:   "1245",
			Limit: decimal.NewFromInt(500),
		},
		"non-positive limit": {
			PIN:     "1245",
			OwnerID: uuid.New(),
			Limit:   decimal.Zero,
		},
		"negative opening balance": {
			PIN:     "1245",
			OwnerID: uuid.New(),
			Limit:   decimal.NewFromInt(500),
			Balance: decimal.NewFromInt(-1),
		},
	}
	for name, req := range badReqs {
		t.Run("rejects "+name, func(tt *testing.T) {
			as := assert.New(tt)
			ctrl := gomock.NewController(tt)
			svc := mocks.NewMockService(ctrl)
			v := atmgo.NewValidationMiddleware()(svc)

			_, err := v.CreateAccount(req)
			as.ErrorAs(err, &atmgo.ErrBadRequest{})
		})
	}

	t.Run("passes a well-formed request through", func(tt *testing.T) {
		as := assert.New(tt)
		reqrd := require.New(tt)
		ctrl := gomock.NewController(tt)
		svc := mocks.NewMockService(ctrl)
		v := atmgo.NewValidationMiddleware()(svc)

		id := snowflake.ParseInt64(1834563581361305763)
		svc.EXPECT().
			CreateAccount(gomock.AssignableToTypeOf(atmgo.CreateAccountReq{})).
			Return(id, nil).
			Times(1)

		got, err := v.CreateAccount(atmgo.CreateAccountReq{
			PIN:     "1245",
			OwnerID: uuid.New(),
			Limit:   decimal.NewFromInt(500),
			Balance: decimal.NewFromInt(50000),
		})
		reqrd.Nil(err)
		as.Equal(id, got)
	})
}

func TestValidationMWApply(t *testing.T) {
	t.Run("rejects an unknown operation kind before the engine", func(tt *testing.T) {
		as := assert.New(tt)
		ctrl := gomock.NewController(tt)
		svc := mocks.NewMockService(ctrl)
		v := atmgo.NewValidationMiddleware()(svc)

		bal, err := v.Apply(atmgo.ChargeReq{
			Kind:   atmgo.OpKind("transfer"),
			Amount: decimal.NewFromInt(100),
			AcctID: snowflake.ParseInt64(1834563581361305763),
			PIN:    "1245",
		})
		as.ErrorAs(err, &atmgo.ErrBadRequest{})
		as.Nil(bal)
	})

	t.Run("passes known kinds through untouched", func(tt *testing.T) {
		as := assert.New(tt)
		reqrd := require.New(tt)
		ctrl := gomock.NewController(tt)
		svc := mocks.NewMockService(ctrl)
		v := atmgo.NewValidationMiddleware()(svc)

		bal := decimal.NewFromInt(900)
		svc.EXPECT().
			Apply(gomock.AssignableToTypeOf(atmgo.ChargeReq{})).
			Return(&bal, nil).
			Times(1)

		got, err := v.Apply(atmgo.ChargeReq{
			Kind:   atmgo.OpDeposit,
			Amount: decimal.NewFromInt(100),
			AcctID: snowflake.ParseInt64(1834563581361305763),
			PIN:    "1245",
		})
		reqrd.Nil(err)
		as.Equal(&bal, got)
	})
}

func TestLimitMW(t *testing.T) {
	t.Run("passes through while capacity remains", func(tt *testing.T) {
		as := assert.New(tt)
		reqrd := require.New(tt)
		ctrl := gomock.NewController(tt)
		svc := mocks.NewMockService(ctrl)
		limits := &atmgo.ServiceLimits{Apply: semaphore.NewWeighted(1)}
		l := atmgo.NewlimitMiddleware(limits, 50*time.Millisecond)(svc)

		bal := decimal.NewFromInt(900)
		svc.EXPECT().
			Apply(gomock.AssignableToTypeOf(atmgo.ChargeReq{})).
			Return(&bal, nil).
			Times(1)

		got, err := l.Apply(atmgo.ChargeReq{Kind: atmgo.OpDeposit, Amount: decimal.NewFromInt(100)})
		reqrd.Nil(err)
		as.Equal(&bal, got)

		// the token must have been released
		reqrd.True(limits.Apply.TryAcquire(1))
		limits.Apply.Release(1)
	})

	t.Run("sheds load once the semaphore is saturated", func(tt *testing.T) {
		as := assert.New(tt)
		reqrd := require.New(tt)
		ctrl := gomock.NewController(tt)
		svc := mocks.NewMockService(ctrl)
		limits := &atmgo.ServiceLimits{Apply: semaphore.NewWeighted(1)}
		l := atmgo.NewlimitMiddleware(limits, 10*time.Millisecond)(svc)

		reqrd.Nil(limits.Apply.Acquire(context.Background(), 1))
		defer limits.Apply.Release(1)

		bal, err := l.Apply(atmgo.ChargeReq{Kind: atmgo.OpDeposit, Amount: decimal.NewFromInt(100)})
		as.ErrorIs(err, atmgo.ErrUnavailable)
		as.Nil(bal)
	})
}

func TestCircuitBreakMW(t *testing.T) {
	trippy := gobreaker.Settings{
		Name: "apply",
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 0
		},
	}

	t.Run("opens after an internal failure", func(tt *testing.T) {
		as := assert.New(tt)
		ctrl := gomock.NewController(tt)
		svc := mocks.NewMockService(ctrl)
		brkrs := &atmgo.ServiceBreaker{
			Apply: gobreaker.NewTwoStepCircuitBreaker[*decimal.Decimal](trippy),
		}
		c := atmgo.NewCircuitBreakMiddleware(brkrs)(svc)

		svc.EXPECT().
			Apply(gomock.AssignableToTypeOf(atmgo.ChargeReq{})).
			Return(nil, atmgo.ErrInternalServer).
			Times(1)

		_, err := c.Apply(atmgo.ChargeReq{Kind: atmgo.OpDeposit, Amount: decimal.NewFromInt(100)})
		as.ErrorIs(err, atmgo.ErrInternalServer)

		// breaker is open now; the service must not be reached again
		_, err = c.Apply(atmgo.ChargeReq{Kind: atmgo.OpDeposit, Amount: decimal.NewFromInt(100)})
		as.ErrorIs(err, atmgo.ErrUnavailable)
	})

	t.Run("caller faults do not trip the breaker", func(tt *testing.T) {
		as := assert.New(tt)
		ctrl := gomock.NewController(tt)
		svc := mocks.NewMockService(ctrl)
		brkrs := &atmgo.ServiceBreaker{
			Apply: gobreaker.NewTwoStepCircuitBreaker[*decimal.Decimal](trippy),
		}
		c := atmgo.NewCircuitBreakMiddleware(brkrs)(svc)

		svc.EXPECT().
			Apply(gomock.AssignableToTypeOf(atmgo.ChargeReq{})).
			Return(nil, atmgo.ErrUnauthorized{}).
			Times(2)

		for i := 0; i < 2; i++ {
			_, err := c.Apply(atmgo.ChargeReq{Kind: atmgo.OpWithdraw, Amount: decimal.NewFromInt(100)})
			as.ErrorAs(err, &atmgo.ErrUnauthorized{})
		}
	})
}
