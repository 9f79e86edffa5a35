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

package keeper

import (
	"context"
	"strconv"

	"cosmossdk.io/core/event"
	"cosmossdk.io/errors"
	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"strata.meridian.xyz/types"
	"strata.meridian.xyz/types/staking"
)

var _ staking.MsgServer = &stakingMsgServer{}

type stakingMsgServer struct {
	*Keeper
}

func NewStakingMsgServer(keeper *Keeper) staking.MsgServer {
	return &stakingMsgServer{Keeper: keeper}
}

func (m stakingMsgServer) Stake(ctx context.Context, msg *staking.MsgStake) (*staking.MsgStakeResponse, error) {
	if msg == nil {
		return nil, errors.Wrap(types.ErrInvalidRequest, "message cannot be nil")
	}

	paused, err := m.GetPaused(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch pause state")
	}
	if paused {
		return nil, errors.Wrap(types.ErrPaused, "staking is halted")
	}

	addrBz, err := m.address.StringToBytes(msg.Staker)
	if err != nil {
		return nil, errors.Wrapf(types.ErrInvalidRequest, "invalid staker address: %s", msg.Staker)
	}
	staker := sdk.AccAddress(addrBz)

	params, err := m.GetParams(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch params")
	}

	if msg.Amount.IsNil() || !msg.Amount.IsPositive() {
		return nil, errors.Wrap(types.ErrInvalidAmount, "stake amount must be positive")
	}
	if params.MinStake.IsPositive() && !msg.Amount.GT(params.MinStake) {
		return nil, errors.Wrapf(types.ErrInvalidAmount, "stake must exceed the minimum of %s", params.MinStake)
	}
	if msg.Duration < params.MinLockDuration {
		return nil, errors.Wrapf(types.ErrInvalidDuration, "lock of %d ticks is below the minimum of %d", msg.Duration, params.MinLockDuration)
	}

	_, found, err := m.GetPosition(ctx, staker)
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch stake position")
	}
	if found {
		return nil, errors.Wrap(types.ErrAlreadyStaked, "unstake the open position first")
	}

	totalStaked, err := m.GetTotalStaked(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch total staked principal")
	}
	newTotalStaked, err := totalStaked.SafeAdd(msg.Amount)
	if err != nil {
		return nil, errors.Wrap(types.ErrOverflow, "total staked principal")
	}

	coins := sdk.NewCoins(sdk.NewCoin(m.denom, msg.Amount))
	if err := m.bank.SendCoins(ctx, staker, types.ModuleAddress, coins); err != nil {
		return nil, errors.Wrap(types.ErrInsufficientBalance, err.Error())
	}

	tick := m.CurrentTick(ctx)
	position := staking.Position{
		Amount:    msg.Amount,
		StartTick: tick,
		Duration:  msg.Duration,
	}
	if err := m.SetPosition(ctx, staker, position); err != nil {
		return nil, errors.Wrap(err, "unable to persist stake position")
	}
	if err := m.SetTotalStaked(ctx, newTotalStaked); err != nil {
		return nil, errors.Wrap(err, "unable to persist total staked principal")
	}
	if err := m.IncrementTotalStakers(ctx); err != nil {
		return nil, errors.Wrap(err, "unable to increment total stakers")
	}

	if err := m.event.EventManager(ctx).EmitKV(ctx, types.EventTypeStake,
		event.Attribute{Key: types.AttributeKeyAccount, Value: msg.Staker},
		event.Attribute{Key: types.AttributeKeyAmount, Value: msg.Amount.String()},
		event.Attribute{Key: types.AttributeKeyDuration, Value: strconv.FormatInt(msg.Duration, 10)},
		event.Attribute{Key: types.AttributeKeyStartTick, Value: strconv.FormatInt(tick, 10)},
	); err != nil {
		return nil, errors.Wrap(err, "unable to emit stake event")
	}

	return &staking.MsgStakeResponse{StartTick: tick}, nil
}

func (m stakingMsgServer) Unstake(ctx context.Context, msg *staking.MsgUnstake) (*staking.MsgUnstakeResponse, error) {
	if msg == nil {
		return nil, errors.Wrap(types.ErrInvalidRequest, "message cannot be nil")
	}

	paused, err := m.GetPaused(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch pause state")
	}
	if paused {
		return nil, errors.Wrap(types.ErrPaused, "unstaking is halted")
	}

	addrBz, err := m.address.StringToBytes(msg.Staker)
	if err != nil {
		return nil, errors.Wrapf(types.ErrInvalidRequest, "invalid staker address: %s", msg.Staker)
	}
	staker := sdk.AccAddress(addrBz)

	position, found, err := m.GetPosition(ctx, staker)
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch stake position")
	}
	if !found {
		return nil, errors.Wrap(types.ErrNotStaked, "no open position to unstake")
	}

	params, err := m.GetParams(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch params")
	}

	// Early exits pay a flat penalty on principal; the penalty floors, so
	// its dust stays with the staker. Matured positions exit in full.
	penalty := sdkmath.ZeroInt()
	if !position.Matured(m.CurrentTick(ctx)) {
		scaled, err := position.Amount.SafeMul(params.PenaltyRate)
		if err != nil {
			return nil, errors.Wrap(types.ErrOverflow, "penalty")
		}
		penalty = scaled.Quo(sdkmath.NewInt(types.PenaltyRateScale))
	}

	returnAmount := position.Amount.Sub(penalty)
	if returnAmount.IsZero() {
		return nil, errors.Wrap(types.ErrInvalidAmount, "penalty consumes the entire position")
	}

	totalStaked, err := m.GetTotalStaked(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch total staked principal")
	}
	newTotalStaked, err := totalStaked.SafeSub(position.Amount)
	if err != nil {
		return nil, errors.Wrap(types.ErrOverflow, "total staked principal")
	}

	pool, err := m.GetRewardPool(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch reward pool")
	}
	newPool, err := pool.SafeAdd(penalty)
	if err != nil {
		return nil, errors.Wrap(types.ErrOverflow, "reward pool")
	}

	if err := m.DeletePosition(ctx, staker); err != nil {
		return nil, errors.Wrap(err, "unable to remove stake position")
	}
	// Rewards must be claimed while the position is open; the settlement
	// record dies with the position.
	if err := m.DeleteRewardState(ctx, staker); err != nil {
		return nil, errors.Wrap(err, "unable to remove reward state")
	}
	if err := m.SetTotalStaked(ctx, newTotalStaked); err != nil {
		return nil, errors.Wrap(err, "unable to persist total staked principal")
	}
	if err := m.SetRewardPool(ctx, newPool); err != nil {
		return nil, errors.Wrap(err, "unable to persist reward pool")
	}
	if err := m.DecrementTotalStakers(ctx); err != nil {
		return nil, errors.Wrap(err, "unable to decrement total stakers")
	}

	coins := sdk.NewCoins(sdk.NewCoin(m.denom, returnAmount))
	if err := m.bank.SendCoins(ctx, types.ModuleAddress, staker, coins); err != nil {
		return nil, errors.Wrap(err, "unable to return staked principal")
	}
	// Early-exit penalties subsidize future reward payouts.
	if penalty.IsPositive() {
		penaltyCoins := sdk.NewCoins(sdk.NewCoin(m.denom, penalty))
		if err := m.bank.SendCoins(ctx, types.ModuleAddress, types.RewardPoolAddress, penaltyCoins); err != nil {
			return nil, errors.Wrap(err, "unable to route penalty into the reward pool")
		}
	}

	if err := m.event.EventManager(ctx).EmitKV(ctx, types.EventTypeUnstake,
		event.Attribute{Key: types.AttributeKeyAccount, Value: msg.Staker},
		event.Attribute{Key: types.AttributeKeyReturned, Value: returnAmount.String()},
		event.Attribute{Key: types.AttributeKeyPenalty, Value: penalty.String()},
	); err != nil {
		return nil, errors.Wrap(err, "unable to emit unstake event")
	}

	return &staking.MsgUnstakeResponse{
		AmountReturned: returnAmount,
		Penalty:        penalty,
	}, nil
}

func (m stakingMsgServer) ClaimRewards(ctx context.Context, msg *staking.MsgClaimRewards) (*staking.MsgClaimRewardsResponse, error) {
	if msg == nil {
		return nil, errors.Wrap(types.ErrInvalidRequest, "message cannot be nil")
	}

	paused, err := m.GetPaused(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch pause state")
	}
	if paused {
		return nil, errors.Wrap(types.ErrPaused, "claims are halted")
	}

	addrBz, err := m.address.StringToBytes(msg.Claimer)
	if err != nil {
		return nil, errors.Wrapf(types.ErrInvalidRequest, "invalid claimer address: %s", msg.Claimer)
	}
	claimer := sdk.AccAddress(addrBz)

	_, found, err := m.GetPosition(ctx, claimer)
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch stake position")
	}
	if !found {
		return nil, errors.Wrap(types.ErrNotStaked, "no open position to claim against")
	}

	payable, err := m.PendingReward(ctx, claimer)
	if err != nil {
		return nil, errors.Wrap(err, "unable to compute pending reward")
	}
	if !payable.IsPositive() {
		return nil, errors.Wrap(types.ErrInvalidAmount, "nothing has accrued")
	}

	pool, err := m.GetRewardPool(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch reward pool")
	}
	if pool.LT(payable) {
		return nil, errors.Wrapf(types.ErrInsufficientBalance, "reward pool %s cannot cover payout of %s", pool, payable)
	}

	if err := m.SetRewardPool(ctx, pool.Sub(payable)); err != nil {
		return nil, errors.Wrap(err, "unable to persist reward pool")
	}
	if err := m.SetRewardState(ctx, claimer, staking.RewardState{
		Pending:       sdkmath.ZeroInt(),
		LastClaimTick: m.CurrentTick(ctx),
	}); err != nil {
		return nil, errors.Wrap(err, "unable to persist reward state")
	}

	coins := sdk.NewCoins(sdk.NewCoin(m.denom, payable))
	if err := m.bank.SendCoins(ctx, types.RewardPoolAddress, claimer, coins); err != nil {
		return nil, errors.Wrap(err, "unable to pay reward")
	}

	if err := m.event.EventManager(ctx).EmitKV(ctx, types.EventTypeClaimRewards,
		event.Attribute{Key: types.AttributeKeyAccount, Value: msg.Claimer},
		event.Attribute{Key: types.AttributeKeyRewardPaid, Value: payable.String()},
	); err != nil {
		return nil, errors.Wrap(err, "unable to emit claim event")
	}

	return &staking.MsgClaimRewardsResponse{AmountPaid: payable}, nil
}

func (m stakingMsgServer) FundRewardPool(ctx context.Context, msg *staking.MsgFundRewardPool) (*staking.MsgFundRewardPoolResponse, error) {
	if msg == nil {
		return nil, errors.Wrap(types.ErrInvalidRequest, "message cannot be nil")
	}

	owner, err := m.GetOwner(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch owner")
	}
	if msg.Authority != owner {
		return nil, errors.Wrapf(types.ErrUnauthorized, "expected %s, got %s", owner, msg.Authority)
	}

	addrBz, err := m.address.StringToBytes(msg.Authority)
	if err != nil {
		return nil, errors.Wrapf(types.ErrInvalidRequest, "invalid authority address: %s", msg.Authority)
	}
	funder := sdk.AccAddress(addrBz)

	if msg.Amount.IsNil() || !msg.Amount.IsPositive() {
		return nil, errors.Wrap(types.ErrInvalidAmount, "funding amount must be positive")
	}

	pool, err := m.GetRewardPool(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch reward pool")
	}
	newPool, err := pool.SafeAdd(msg.Amount)
	if err != nil {
		return nil, errors.Wrap(types.ErrOverflow, "reward pool")
	}

	coins := sdk.NewCoins(sdk.NewCoin(m.denom, msg.Amount))
	if err := m.bank.SendCoins(ctx, funder, types.RewardPoolAddress, coins); err != nil {
		return nil, errors.Wrap(types.ErrInsufficientBalance, err.Error())
	}

	if err := m.SetRewardPool(ctx, newPool); err != nil {
		return nil, errors.Wrap(err, "unable to persist reward pool")
	}

	if err := m.event.EventManager(ctx).EmitKV(ctx, types.EventTypeRewardPoolFunded,
		event.Attribute{Key: types.AttributeKeyAccount, Value: msg.Authority},
		event.Attribute{Key: types.AttributeKeyAmount, Value: msg.Amount.String()},
	); err != nil {
		return nil, errors.Wrap(err, "unable to emit funding event")
	}

	return &staking.MsgFundRewardPoolResponse{}, nil
}
