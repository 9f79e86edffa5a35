// SPDX-License-Identifier: BUSL-1.1
//
// Copyright (C) 2025, Meridian Systems Ltd. All rights reserved.
// Use of this software is governed by the Business Source License included
// in the LICENSE file of this repository and at www.mariadb.com/bsl11.
//
// ANY USE OF THE LICENSED WORK IN VIOLATION OF THIS LICENSE WILL AUTOMATICALLY
// TERMINATE YOUR RIGHTS UNDER THIS LICENSE FOR THE CURRENT AND ALL OTHER
// VERSIONS OF THE LICENSED WORK.
//
// THIS LICENSE DOES NOT GRANT YOU ANY RIGHT IN ANY TRADEMARK OR LOGO OF
// LICENSOR OR ITS AFFILIATES (PROVIDED THAT YOU MAY USE A TRADEMARK OR LOGO OF
// LICENSOR AS EXPRESSLY REQUIRED BY THIS LICENSE).
//
// TO THE EXTENT PERMITTED BY APPLICABLE LAW, THE LICENSED WORK IS PROVIDED ON
// AN "AS IS" BASIS. LICENSOR HEREBY DISCLAIMS ALL WARRANTIES AND CONDITIONS,
// EXPRESS OR IMPLIED, INCLUDING (WITHOUT LIMITATION) WARRANTIES OF
// MERCHANTABILITY, FITNESS FOR A PARTICULAR PURPOSE, NON-INFRINGEMENT, AND
// TITLE.

package keeper_test

import (
	"testing"

	"cosmossdk.io/core/header"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"strata.meridian.xyz/keeper"
	"strata.meridian.xyz/types"
	"strata.meridian.xyz/types/staking"
	"strata.meridian.xyz/utils"
	"strata.meridian.xyz/utils/mocks"
)

// setupStakingTest creates a keeper at height 100 with a funded staker and
// a funded owner for reward pool contributions.
func setupStakingTest(t *testing.T) (*keeper.Keeper, staking.MsgServer, *mocks.BankKeeper, sdk.Context, utils.Account, utils.Account) {
	bank := mocks.BankKeeper{
		Balances: make(map[string]sdk.Coins),
	}

	k, ctx, owner := mocks.StrataKeeper(t, bank)
	server := keeper.NewStakingMsgServer(k)
	bob := utils.TestAccount()

	ctx = ctx.WithHeaderInfo(header.Info{Height: 100})

	fund(&bank, bob, 10*ONE)
	fund(&bank, owner, 100*ONE)

	return k, server, &bank, ctx, owner, bob
}

func TestStakeBasic(t *testing.T) {
	k, server, bank, ctx, _, bob := setupStakingTest(t)

	// ASSERT: The harness wired the expected underlying denomination.
	assert.Equal(t, mocks.Denom, k.GetDenom())

	// ACT: Bob locks 5 for 200 ticks.
	resp, err := server.Stake(ctx, &staking.MsgStake{
		Staker:   bob.Address,
		Amount:   math.NewInt(5 * ONE),
		Duration: 200,
	})

	// ASSERT: The position opens at the current tick.
	require.NoError(t, err)
	assert.Equal(t, int64(100), resp.StartTick)
	assert.Equal(t, math.NewInt(5*ONE), bank.Balances[bob.Address].AmountOf(mocks.Denom))
	assert.Equal(t, math.NewInt(5*ONE), bank.Balances[types.ModuleAddress.String()].AmountOf(mocks.Denom))

	position, found, err := k.GetPosition(ctx, bob.Bytes)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, math.NewInt(5*ONE), position.Amount)
	assert.Equal(t, int64(100), position.StartTick)
	assert.Equal(t, int64(200), position.Duration)

	totalStaked, err := k.GetTotalStaked(ctx)
	require.NoError(t, err)
	assert.Equal(t, math.NewInt(5*ONE), totalStaked)

	stakers, err := k.GetTotalStakers(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), stakers)

	require.NoError(t, k.CheckInvariants(ctx))
}

func TestStakeValidation(t *testing.T) {
	k, server, _, ctx, _, bob := setupStakingTest(t)

	// ACT: Zero amount.
	_, err := server.Stake(ctx, &staking.MsgStake{
		Staker:   bob.Address,
		Amount:   math.ZeroInt(),
		Duration: 200,
	})
	// ASSERT: Rejected.
	require.ErrorIs(t, err, types.ErrInvalidAmount)

	// ARRANGE: Set a stake floor of 1.
	params, err := k.GetParams(ctx)
	require.NoError(t, err)
	params.MinStake = math.NewInt(ONE)
	require.NoError(t, k.SetParams(ctx, params))

	// ACT: Stake exactly the floor.
	_, err = server.Stake(ctx, &staking.MsgStake{
		Staker:   bob.Address,
		Amount:   math.NewInt(ONE),
		Duration: 200,
	})
	// ASSERT: The floor is strict, equality is rejected.
	require.ErrorIs(t, err, types.ErrInvalidAmount)

	// ARRANGE: Require locks of at least 50 ticks.
	params.MinLockDuration = 50
	require.NoError(t, k.SetParams(ctx, params))

	// ACT: Lock for 49 ticks.
	_, err = server.Stake(ctx, &staking.MsgStake{
		Staker:   bob.Address,
		Amount:   math.NewInt(5 * ONE),
		Duration: 49,
	})
	// ASSERT: Rejected.
	require.ErrorIs(t, err, types.ErrInvalidDuration)
}

func TestStakeExclusivity(t *testing.T) {
	_, server, _, ctx, _, bob := setupStakingTest(t)

	// ARRANGE: Bob opens a position.
	_, err := server.Stake(ctx, &staking.MsgStake{
		Staker:   bob.Address,
		Amount:   math.NewInt(2 * ONE),
		Duration: 200,
	})
	require.NoError(t, err)

	// ACT: Bob stakes again without unstaking.
	_, err = server.Stake(ctx, &staking.MsgStake{
		Staker:   bob.Address,
		Amount:   math.NewInt(ONE),
		Duration: 200,
	})

	// ASSERT: One position per account.
	require.ErrorIs(t, err, types.ErrAlreadyStaked)
}

func TestUnstakeAtMaturity(t *testing.T) {
	k, server, bank, ctx, _, bob := setupStakingTest(t)

	// ARRANGE: Bob locks 5 for 200 ticks at height 100.
	_, err := server.Stake(ctx, &staking.MsgStake{
		Staker:   bob.Address,
		Amount:   math.NewInt(5 * ONE),
		Duration: 200,
	})
	require.NoError(t, err)

	// ACT: Unstake exactly at maturity.
	ctx = ctx.WithHeaderInfo(header.Info{Height: 300})
	resp, err := server.Unstake(ctx, &staking.MsgUnstake{Staker: bob.Address})

	// ASSERT: Full principal returns with no penalty.
	require.NoError(t, err)
	assert.Equal(t, math.NewInt(5*ONE), resp.AmountReturned)
	assert.Equal(t, math.ZeroInt(), resp.Penalty)
	assert.Equal(t, math.NewInt(10*ONE), bank.Balances[bob.Address].AmountOf(mocks.Denom))

	_, found, err := k.GetPosition(ctx, bob.Bytes)
	require.NoError(t, err)
	assert.False(t, found)

	stakers, err := k.GetTotalStakers(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), stakers)

	require.NoError(t, k.CheckInvariants(ctx))
}

func TestUnstakeEarlyPaysPenalty(t *testing.T) {
	k, server, bank, ctx, _, bob := setupStakingTest(t)

	// ARRANGE: Bob locks 5 for 200 ticks at height 100.
	_, err := server.Stake(ctx, &staking.MsgStake{
		Staker:   bob.Address,
		Amount:   math.NewInt(5 * ONE),
		Duration: 200,
	})
	require.NoError(t, err)

	// ACT: Unstake one tick before maturity.
	ctx = ctx.WithHeaderInfo(header.Info{Height: 299})
	resp, err := server.Unstake(ctx, &staking.MsgUnstake{Staker: bob.Address})

	// ASSERT: The default 20% penalty applies and funds the reward pool.
	require.NoError(t, err)
	assert.Equal(t, math.NewInt(4*ONE), resp.AmountReturned)
	assert.Equal(t, math.NewInt(1*ONE), resp.Penalty)
	assert.Equal(t, math.NewInt(9*ONE), bank.Balances[bob.Address].AmountOf(mocks.Denom))
	assert.Equal(t, math.NewInt(1*ONE), bank.Balances[types.RewardPoolAddress.String()].AmountOf(mocks.Denom))

	pool, err := k.GetRewardPool(ctx)
	require.NoError(t, err)
	assert.Equal(t, math.NewInt(1*ONE), pool)

	require.NoError(t, k.CheckInvariants(ctx))
}

func TestUnstakeFullPenaltyRejected(t *testing.T) {
	k, server, bank, ctx, _, bob := setupStakingTest(t)

	// ARRANGE: A 100% early-exit penalty.
	params, err := k.GetParams(ctx)
	require.NoError(t, err)
	params.PenaltyRate = math.NewInt(types.PenaltyRateScale)
	require.NoError(t, k.SetParams(ctx, params))

	// ARRANGE: Bob locks 5 for 200 ticks at height 100.
	_, err = server.Stake(ctx, &staking.MsgStake{
		Staker:   bob.Address,
		Amount:   math.NewInt(5 * ONE),
		Duration: 200,
	})
	require.NoError(t, err)

	// ACT: Unstake before maturity, when the penalty consumes everything.
	ctx = ctx.WithHeaderInfo(header.Info{Height: 150})
	_, err = server.Unstake(ctx, &staking.MsgUnstake{Staker: bob.Address})

	// ASSERT: A zero return is rejected and the position stays open.
	require.ErrorIs(t, err, types.ErrInvalidAmount)

	position, found, err := k.GetPosition(ctx, bob.Bytes)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, math.NewInt(5*ONE), position.Amount)

	totalStaked, err := k.GetTotalStaked(ctx)
	require.NoError(t, err)
	assert.Equal(t, math.NewInt(5*ONE), totalStaked)
	assert.Equal(t, math.ZeroInt(), bank.Balances[types.RewardPoolAddress.String()].AmountOf(mocks.Denom))

	// ACT: Unstake again at maturity, where no penalty applies.
	ctx = ctx.WithHeaderInfo(header.Info{Height: 300})
	resp, err := server.Unstake(ctx, &staking.MsgUnstake{Staker: bob.Address})

	// ASSERT: The full principal returns.
	require.NoError(t, err)
	assert.Equal(t, math.NewInt(5*ONE), resp.AmountReturned)
}

func TestUnstakeNotStaked(t *testing.T) {
	_, server, _, ctx, _, bob := setupStakingTest(t)

	// ACT: Unstake with no open position.
	_, err := server.Unstake(ctx, &staking.MsgUnstake{Staker: bob.Address})

	// ASSERT: Rejected.
	require.ErrorIs(t, err, types.ErrNotStaked)
}

func TestUnstakeForfeitsUnclaimedRewards(t *testing.T) {
	k, server, _, ctx, owner, bob := setupStakingTest(t)

	// ARRANGE: A funded pool and a matured position with accrued rewards.
	_, err := server.FundRewardPool(ctx, &staking.MsgFundRewardPool{
		Authority: owner.Address,
		Amount:    math.NewInt(50 * ONE),
	})
	require.NoError(t, err)

	_, err = server.Stake(ctx, &staking.MsgStake{
		Staker:   bob.Address,
		Amount:   math.NewInt(5 * ONE),
		Duration: 200,
	})
	require.NoError(t, err)

	// ACT: Unstake at maturity without claiming.
	ctx = ctx.WithHeaderInfo(header.Info{Height: 300})
	_, err = server.Unstake(ctx, &staking.MsgUnstake{Staker: bob.Address})
	require.NoError(t, err)

	// ASSERT: The settlement record died with the position; the pool keeps
	// the unclaimed accrual.
	pending, err := k.PendingReward(ctx, bob.Bytes)
	require.NoError(t, err)
	assert.Equal(t, math.ZeroInt(), pending)

	pool, err := k.GetRewardPool(ctx)
	require.NoError(t, err)
	assert.Equal(t, math.NewInt(50*ONE), pool)
}

func TestClaimRewardsLinearAccrual(t *testing.T) {
	k, server, bank, ctx, owner, bob := setupStakingTest(t)

	// ARRANGE: A generously funded pool.
	_, err := server.FundRewardPool(ctx, &staking.MsgFundRewardPool{
		Authority: owner.Address,
		Amount:    math.NewInt(100 * ONE),
	})
	require.NoError(t, err)

	// ARRANGE: Bob locks 5 for 200 ticks at height 100.
	_, err = server.Stake(ctx, &staking.MsgStake{
		Staker:   bob.Address,
		Amount:   math.NewInt(5 * ONE),
		Duration: 200,
	})
	require.NoError(t, err)

	// ACT: Claim before maturity.
	ctx = ctx.WithHeaderInfo(header.Info{Height: 299})
	_, err = server.ClaimRewards(ctx, &staking.MsgClaimRewards{Claimer: bob.Address})

	// ASSERT: Nothing accrues before the cliff.
	require.ErrorIs(t, err, types.ErrInvalidAmount)

	// ACT: Claim exactly at maturity. At the default rate of 1% per tick,
	// 200 elapsed ticks on 5 principal pay 10.
	ctx = ctx.WithHeaderInfo(header.Info{Height: 300})
	resp, err := server.ClaimRewards(ctx, &staking.MsgClaimRewards{Claimer: bob.Address})

	// ASSERT: The full accrual pays out of the pool.
	require.NoError(t, err)
	assert.Equal(t, math.NewInt(10*ONE), resp.AmountPaid)
	assert.Equal(t, math.NewInt(15*ONE), bank.Balances[bob.Address].AmountOf(mocks.Denom))

	pool, err := k.GetRewardPool(ctx)
	require.NoError(t, err)
	assert.Equal(t, math.NewInt(90*ONE), pool)

	// ACT: Claim again at the same tick.
	_, err = server.ClaimRewards(ctx, &staking.MsgClaimRewards{Claimer: bob.Address})

	// ASSERT: The accrual was settled, nothing double-counts.
	require.ErrorIs(t, err, types.ErrInvalidAmount)

	// ACT: Claim 50 ticks later. Only the interval since the last claim
	// pays: 5 principal over 50 ticks at 1% is 2.5.
	ctx = ctx.WithHeaderInfo(header.Info{Height: 350})
	resp, err = server.ClaimRewards(ctx, &staking.MsgClaimRewards{Claimer: bob.Address})

	// ASSERT: The payout covers the new interval only.
	require.NoError(t, err)
	assert.Equal(t, math.NewInt(25*ONE/10), resp.AmountPaid)
}

func TestClaimRewardsInsufficientPool(t *testing.T) {
	k, server, bank, ctx, _, bob := setupStakingTest(t)

	// ARRANGE: A matured position against an empty pool.
	_, err := server.Stake(ctx, &staking.MsgStake{
		Staker:   bob.Address,
		Amount:   math.NewInt(5 * ONE),
		Duration: 200,
	})
	require.NoError(t, err)

	// ACT: Claim with nothing in the pool.
	ctx = ctx.WithHeaderInfo(header.Info{Height: 300})
	_, err = server.ClaimRewards(ctx, &staking.MsgClaimRewards{Claimer: bob.Address})

	// ASSERT: The claim fails and the accrual remains claimable.
	require.ErrorIs(t, err, types.ErrInsufficientBalance)
	assert.True(t, bank.Balances[bob.Address].AmountOf(mocks.Denom).Sub(math.NewInt(5*ONE)).IsZero())

	pending, err := k.PendingReward(ctx, bob.Bytes)
	require.NoError(t, err)
	assert.Equal(t, math.NewInt(10*ONE), pending)
}

func TestClaimRewardsNotStaked(t *testing.T) {
	_, server, _, ctx, _, bob := setupStakingTest(t)

	// ACT: Claim with no open position.
	_, err := server.ClaimRewards(ctx, &staking.MsgClaimRewards{Claimer: bob.Address})

	// ASSERT: Rejected.
	require.ErrorIs(t, err, types.ErrNotStaked)
}

func TestFundRewardPoolGating(t *testing.T) {
	k, server, bank, ctx, owner, bob := setupStakingTest(t)

	// ACT: A non-owner funds the pool.
	_, err := server.FundRewardPool(ctx, &staking.MsgFundRewardPool{
		Authority: bob.Address,
		Amount:    math.NewInt(ONE),
	})
	// ASSERT: Rejected.
	require.ErrorIs(t, err, types.ErrUnauthorized)

	// ACT: The owner funds the pool.
	_, err = server.FundRewardPool(ctx, &staking.MsgFundRewardPool{
		Authority: owner.Address,
		Amount:    math.NewInt(30 * ONE),
	})

	// ASSERT: The pool balance and ledger both move.
	require.NoError(t, err)
	assert.Equal(t, math.NewInt(30*ONE), bank.Balances[types.RewardPoolAddress.String()].AmountOf(mocks.Denom))

	pool, err := k.GetRewardPool(ctx)
	require.NoError(t, err)
	assert.Equal(t, math.NewInt(30*ONE), pool)
}

func TestStakingOperationsWhilePaused(t *testing.T) {
	k, server, _, ctx, owner, bob := setupStakingTest(t)

	// ARRANGE: Bob opens a position, then the engine pauses.
	_, err := server.Stake(ctx, &staking.MsgStake{
		Staker:   bob.Address,
		Amount:   math.NewInt(5 * ONE),
		Duration: 200,
	})
	require.NoError(t, err)

	adminServer := keeper.NewMsgServer(k)
	_, err = adminServer.Pause(ctx, &types.MsgPause{Authority: owner.Address})
	require.NoError(t, err)

	// ACT: Attempt to stake, unstake, and claim.
	alice := utils.TestAccount()
	_, err = server.Stake(ctx, &staking.MsgStake{
		Staker:   alice.Address,
		Amount:   math.NewInt(ONE),
		Duration: 200,
	})
	// ASSERT: All three are rejected while paused.
	require.ErrorIs(t, err, types.ErrPaused)

	ctx = ctx.WithHeaderInfo(header.Info{Height: 300})
	_, err = server.Unstake(ctx, &staking.MsgUnstake{Staker: bob.Address})
	require.ErrorIs(t, err, types.ErrPaused)

	_, err = server.ClaimRewards(ctx, &staking.MsgClaimRewards{Claimer: bob.Address})
	require.ErrorIs(t, err, types.ErrPaused)

	// ASSERT: The position is untouched.
	_, found, err := k.GetPosition(ctx, bob.Bytes)
	require.NoError(t, err)
	assert.True(t, found)
}
