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
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"strata.meridian.xyz/types"
	"strata.meridian.xyz/types/vault"
)

// GetParams returns the stored operational limits, falling back to the
// defaults when none have been persisted yet.
func (k *Keeper) GetParams(ctx context.Context) (types.Params, error) {
	params, err := k.Params.Get(ctx)
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return types.DefaultParams(), nil
		}
		return types.Params{}, err
	}

	return params, nil
}

// SetParams persists the supplied params to state.
func (k *Keeper) SetParams(ctx context.Context, params types.Params) error {
	if err := params.Validate(); err != nil {
		return err
	}

	return k.Params.Set(ctx, params)
}

// GetPaused returns whether the module is currently paused.
func (k *Keeper) GetPaused(ctx context.Context) (bool, error) {
	paused, err := k.Paused.Get(ctx)
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	return paused, nil
}

// SetPaused updates the pause flag.
func (k *Keeper) SetPaused(ctx context.Context, paused bool) error {
	return k.Paused.Set(ctx, paused)
}

// GetOwner returns the current admin identity. The constructor authority
// applies until an ownership transfer has been persisted.
func (k *Keeper) GetOwner(ctx context.Context) (string, error) {
	owner, err := k.Owner.Get(ctx)
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return k.authority, nil
		}
		return "", err
	}

	return owner, nil
}

// SetOwner persists a new admin identity.
func (k *Keeper) SetOwner(ctx context.Context, owner string) error {
	return k.Owner.Set(ctx, owner)
}

// GetAccountDeposit returns the aggregate principal recorded for an account,
// zero when the account has never deposited.
func (k *Keeper) GetAccountDeposit(ctx context.Context, address sdk.AccAddress) (math.Int, error) {
	deposit, err := k.AccountDeposits.Get(ctx, address)
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return math.ZeroInt(), nil
		}
		return math.ZeroInt(), err
	}

	return deposit, nil
}

// SetAccountDeposit writes an account's aggregate principal, removing the
// entry entirely when it reaches zero.
func (k *Keeper) SetAccountDeposit(ctx context.Context, address sdk.AccAddress, amount math.Int) error {
	if amount.IsZero() {
		err := k.AccountDeposits.Remove(ctx, address)
		if err != nil && !errors.Is(err, collections.ErrNotFound) {
			return err
		}
		return nil
	}

	return k.AccountDeposits.Set(ctx, address, amount)
}

// GetAccountShares returns an account's vault-wide share balance.
func (k *Keeper) GetAccountShares(ctx context.Context, address sdk.AccAddress) (math.Int, error) {
	shares, err := k.AccountShares.Get(ctx, address)
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return math.ZeroInt(), nil
		}
		return math.ZeroInt(), err
	}

	return shares, nil
}

// SetAccountShares writes an account's share balance, removing the entry
// when it reaches zero.
func (k *Keeper) SetAccountShares(ctx context.Context, address sdk.AccAddress, shares math.Int) error {
	if shares.IsZero() {
		err := k.AccountShares.Remove(ctx, address)
		if err != nil && !errors.Is(err, collections.ErrNotFound) {
			return err
		}
		return nil
	}

	return k.AccountShares.Set(ctx, address, shares)
}

// GetStrategyShares returns the shares an account holds against a specific
// strategy.
func (k *Keeper) GetStrategyShares(ctx context.Context, address sdk.AccAddress, strategyId uint64) (math.Int, error) {
	shares, err := k.StrategyShares.Get(ctx, collections.Join([]byte(address), strategyId))
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return math.ZeroInt(), nil
		}
		return math.ZeroInt(), err
	}

	return shares, nil
}

// SetStrategyShares writes an account's per-strategy share balance, removing
// the entry when it reaches zero.
func (k *Keeper) SetStrategyShares(ctx context.Context, address sdk.AccAddress, strategyId uint64, shares math.Int) error {
	key := collections.Join([]byte(address), strategyId)

	if shares.IsZero() {
		err := k.StrategyShares.Remove(ctx, key)
		if err != nil && !errors.Is(err, collections.ErrNotFound) {
			return err
		}
		return nil
	}

	return k.StrategyShares.Set(ctx, key, shares)
}

// GetStrategy fetches a whitelist entry by id. The boolean flag reports
// whether the strategy exists.
func (k *Keeper) GetStrategy(ctx context.Context, id uint64) (vault.Strategy, bool, error) {
	strategy, err := k.Strategies.Get(ctx, id)
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return vault.Strategy{}, false, nil
		}
		return vault.Strategy{}, false, err
	}

	return strategy, true, nil
}

// SetStrategy upserts a whitelist entry.
func (k *Keeper) SetStrategy(ctx context.Context, strategy vault.Strategy) error {
	return k.Strategies.Set(ctx, strategy.Id, strategy)
}

// IterateStrategies walks every whitelist entry in id order. Returning true
// from the callback stops the iteration early.
func (k *Keeper) IterateStrategies(ctx context.Context, fn func(strategy vault.Strategy) (bool, error)) error {
	return k.Strategies.Walk(ctx, nil, func(_ uint64, strategy vault.Strategy) (bool, error) {
		return fn(strategy)
	})
}

// GetAllocation returns the total principal routed to a strategy.
func (k *Keeper) GetAllocation(ctx context.Context, strategyId uint64) (math.Int, error) {
	allocation, err := k.Allocations.Get(ctx, strategyId)
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return math.ZeroInt(), nil
		}
		return math.ZeroInt(), err
	}

	return allocation, nil
}

// SetAllocation writes a strategy's total routed principal.
func (k *Keeper) SetAllocation(ctx context.Context, strategyId uint64, amount math.Int) error {
	if amount.IsZero() {
		err := k.Allocations.Remove(ctx, strategyId)
		if err != nil && !errors.Is(err, collections.ErrNotFound) {
			return err
		}
		return nil
	}

	return k.Allocations.Set(ctx, strategyId, amount)
}

// GetTotalShares returns the vault-wide share supply.
func (k *Keeper) GetTotalShares(ctx context.Context) (math.Int, error) {
	total, err := k.TotalShares.Get(ctx)
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return math.ZeroInt(), nil
		}
		return math.ZeroInt(), err
	}

	return total, nil
}

// SetTotalShares persists the vault-wide share supply.
func (k *Keeper) SetTotalShares(ctx context.Context, total math.Int) error {
	return k.TotalShares.Set(ctx, total)
}

// GetTotalDeposited returns the total principal held by the vault.
func (k *Keeper) GetTotalDeposited(ctx context.Context) (math.Int, error) {
	total, err := k.TotalDeposited.Get(ctx)
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return math.ZeroInt(), nil
		}
		return math.ZeroInt(), err
	}

	return total, nil
}

// SetTotalDeposited persists the total principal held by the vault.
func (k *Keeper) SetTotalDeposited(ctx context.Context, total math.Int) error {
	return k.TotalDeposited.Set(ctx, total)
}

// GetTotalDepositors returns the number of accounts currently holding shares.
func (k *Keeper) GetTotalDepositors(ctx context.Context) (uint64, error) {
	total, err := k.TotalDepositors.Get(ctx)
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}

	return total, nil
}

// IncrementTotalDepositors bumps the depositor statistic.
func (k *Keeper) IncrementTotalDepositors(ctx context.Context) error {
	total, err := k.GetTotalDepositors(ctx)
	if err != nil {
		return err
	}

	return k.TotalDepositors.Set(ctx, total+1)
}

// DecrementTotalDepositors lowers the depositor statistic, saturating at zero.
func (k *Keeper) DecrementTotalDepositors(ctx context.Context) error {
	total, err := k.GetTotalDepositors(ctx)
	if err != nil {
		return err
	}
	if total == 0 {
		return nil
	}

	return k.TotalDepositors.Set(ctx, total-1)
}
