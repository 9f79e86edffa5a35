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
	"errors"

	"cosmossdk.io/collections"
	sdkerrors "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"strata.meridian.xyz/types"
	"strata.meridian.xyz/types/staking"
)

// GetPosition fetches an account's open stake position. The boolean flag
// reports whether one exists.
func (k *Keeper) GetPosition(ctx context.Context, address sdk.AccAddress) (staking.Position, bool, error) {
	position, err := k.Positions.Get(ctx, address)
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return staking.Position{}, false, nil
		}
		return staking.Position{}, false, err
	}

	return position, true, nil
}

// SetPosition records an account's stake position. Positions are written
// once by stake and deleted by unstake, never mutated in between.
func (k *Keeper) SetPosition(ctx context.Context, address sdk.AccAddress, position staking.Position) error {
	return k.Positions.Set(ctx, address, position)
}

// DeletePosition removes an account's stake position.
func (k *Keeper) DeletePosition(ctx context.Context, address sdk.AccAddress) error {
	return k.Positions.Remove(ctx, address)
}

// IteratePositions walks every open stake position. Returning true from the
// callback stops the iteration early.
func (k *Keeper) IteratePositions(ctx context.Context, fn func(address sdk.AccAddress, position staking.Position) (bool, error)) error {
	return k.Positions.Walk(ctx, nil, func(key []byte, position staking.Position) (bool, error) {
		return fn(sdk.AccAddress(key), position)
	})
}

// GetRewardState returns an account's reward settlement state, or the lazy
// zero value when the account has never claimed.
func (k *Keeper) GetRewardState(ctx context.Context, address sdk.AccAddress) (staking.RewardState, error) {
	state, err := k.RewardStates.Get(ctx, address)
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return staking.RewardState{Pending: math.ZeroInt()}, nil
		}
		return staking.RewardState{}, err
	}

	return state, nil
}

// SetRewardState persists an account's reward settlement state.
func (k *Keeper) SetRewardState(ctx context.Context, address sdk.AccAddress, state staking.RewardState) error {
	return k.RewardStates.Set(ctx, address, state)
}

// DeleteRewardState removes an account's reward settlement state.
func (k *Keeper) DeleteRewardState(ctx context.Context, address sdk.AccAddress) error {
	err := k.RewardStates.Remove(ctx, address)
	if err != nil && !errors.Is(err, collections.ErrNotFound) {
		return err
	}

	return nil
}

// GetTotalStaked returns the total principal locked in stake positions.
func (k *Keeper) GetTotalStaked(ctx context.Context) (math.Int, error) {
	total, err := k.TotalStaked.Get(ctx)
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return math.ZeroInt(), nil
		}
		return math.ZeroInt(), err
	}

	return total, nil
}

// SetTotalStaked persists the total staked principal.
func (k *Keeper) SetTotalStaked(ctx context.Context, total math.Int) error {
	return k.TotalStaked.Set(ctx, total)
}

// GetRewardPool returns the shared reward pool balance.
func (k *Keeper) GetRewardPool(ctx context.Context) (math.Int, error) {
	pool, err := k.RewardPool.Get(ctx)
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return math.ZeroInt(), nil
		}
		return math.ZeroInt(), err
	}

	return pool, nil
}

// SetRewardPool persists the shared reward pool balance.
func (k *Keeper) SetRewardPool(ctx context.Context, pool math.Int) error {
	return k.RewardPool.Set(ctx, pool)
}

// GetTotalStakers returns the number of accounts with an open position.
func (k *Keeper) GetTotalStakers(ctx context.Context) (uint64, error) {
	total, err := k.TotalStakers.Get(ctx)
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}

	return total, nil
}

// IncrementTotalStakers bumps the staker statistic.
func (k *Keeper) IncrementTotalStakers(ctx context.Context) error {
	total, err := k.GetTotalStakers(ctx)
	if err != nil {
		return err
	}

	return k.TotalStakers.Set(ctx, total+1)
}

// DecrementTotalStakers lowers the staker statistic, saturating at zero.
func (k *Keeper) DecrementTotalStakers(ctx context.Context) error {
	total, err := k.GetTotalStakers(ctx)
	if err != nil {
		return err
	}
	if total == 0 {
		return nil
	}

	return k.TotalStakers.Set(ctx, total-1)
}

// accruedAt evaluates the cliff-then-linear accrual function for a position
// at the given tick: zero before the lock matures, then
// amount * rate * elapsed / 100 over the entire elapsed interval. The
// division floors; reward dust stays in the pool.
func accruedAt(position staking.Position, tick int64, rate math.Int) (math.Int, error) {
	elapsed := tick - position.StartTick
	if elapsed < position.Duration {
		return math.ZeroInt(), nil
	}

	accrued, err := position.Amount.SafeMul(rate)
	if err != nil {
		return math.ZeroInt(), sdkerrors.Wrap(types.ErrOverflow, "reward accrual")
	}
	accrued, err = accrued.SafeMul(math.NewInt(elapsed))
	if err != nil {
		return math.ZeroInt(), sdkerrors.Wrap(types.ErrOverflow, "reward accrual")
	}

	return accrued.Quo(math.NewInt(types.RewardRateScale)), nil
}

// PendingReward computes the amount a claim would pay out at the current
// tick without mutating any state: the stored pending balance plus the
// accrual since the last claim. Positions that claimed before can only have
// done so at or after maturity, so the difference of the two accrual
// evaluations is never negative.
func (k *Keeper) PendingReward(ctx context.Context, address sdk.AccAddress) (math.Int, error) {
	position, found, err := k.GetPosition(ctx, address)
	if err != nil {
		return math.ZeroInt(), err
	}
	if !found {
		return math.ZeroInt(), nil
	}

	state, err := k.GetRewardState(ctx, address)
	if err != nil {
		return math.ZeroInt(), err
	}

	params, err := k.GetParams(ctx)
	if err != nil {
		return math.ZeroInt(), err
	}

	accrued, err := accruedAt(position, k.CurrentTick(ctx), params.RewardRate)
	if err != nil {
		return math.ZeroInt(), err
	}
	settled, err := accruedAt(position, state.LastClaimTick, params.RewardRate)
	if err != nil {
		return math.ZeroInt(), err
	}

	pending := state.Pending
	if pending.IsNil() {
		pending = math.ZeroInt()
	}

	payable, err := pending.SafeAdd(accrued)
	if err != nil {
		return math.ZeroInt(), sdkerrors.Wrap(types.ErrOverflow, "pending reward")
	}
	payable, err = payable.SafeSub(settled)
	if err != nil {
		return math.ZeroInt(), sdkerrors.Wrap(types.ErrOverflow, "pending reward")
	}

	return payable, nil
}
