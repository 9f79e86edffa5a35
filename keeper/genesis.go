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
	"fmt"

	"cosmossdk.io/collections"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"strata.meridian.xyz/types"
	"strata.meridian.xyz/types/staking"
	"strata.meridian.xyz/types/vault"
)

// InitGenesis writes an exported state back into the store. It panics on
// malformed input, matching how chain modules treat genesis failures.
func (k *Keeper) InitGenesis(ctx context.Context, genesis types.GenesisState) {
	if err := genesis.Validate(); err != nil {
		panic(fmt.Errorf("invalid genesis state: %w", err))
	}

	if genesis.Owner != "" {
		if err := k.SetOwner(ctx, genesis.Owner); err != nil {
			panic(err)
		}
	}
	if err := k.SetPaused(ctx, genesis.Paused); err != nil {
		panic(err)
	}
	if err := k.SetParams(ctx, genesis.Params); err != nil {
		panic(err)
	}

	for _, entry := range genesis.Deposits {
		addr := k.mustAddress(entry.Address)
		if err := k.SetAccountDeposit(ctx, addr, entry.Amount); err != nil {
			panic(err)
		}
	}
	for _, entry := range genesis.Shares {
		addr := k.mustAddress(entry.Address)
		if err := k.SetAccountShares(ctx, addr, entry.Amount); err != nil {
			panic(err)
		}
	}
	for _, entry := range genesis.StrategyShares {
		addr := k.mustAddress(entry.Address)
		if err := k.SetStrategyShares(ctx, addr, entry.StrategyId, entry.Shares); err != nil {
			panic(err)
		}
	}
	for _, strategy := range genesis.Strategies {
		if err := k.SetStrategy(ctx, strategy); err != nil {
			panic(err)
		}
	}
	for _, entry := range genesis.Allocations {
		if err := k.SetAllocation(ctx, entry.StrategyId, entry.Amount); err != nil {
			panic(err)
		}
	}

	for _, entry := range genesis.Positions {
		addr := k.mustAddress(entry.Address)
		if err := k.SetPosition(ctx, addr, entry.Position); err != nil {
			panic(err)
		}
	}
	for _, entry := range genesis.RewardStates {
		addr := k.mustAddress(entry.Address)
		if err := k.SetRewardState(ctx, addr, entry.State); err != nil {
			panic(err)
		}
	}

	if err := k.SetTotalShares(ctx, orZero(genesis.TotalShares)); err != nil {
		panic(err)
	}
	if err := k.SetTotalDeposited(ctx, orZero(genesis.TotalDeposited)); err != nil {
		panic(err)
	}
	if err := k.TotalDepositors.Set(ctx, genesis.TotalDepositors); err != nil {
		panic(err)
	}
	if err := k.SetTotalStaked(ctx, orZero(genesis.TotalStaked)); err != nil {
		panic(err)
	}
	if err := k.SetRewardPool(ctx, orZero(genesis.RewardPool)); err != nil {
		panic(err)
	}
	if err := k.TotalStakers.Set(ctx, genesis.TotalStakers); err != nil {
		panic(err)
	}
}

// ExportGenesis reads the full module state out of the store.
func (k *Keeper) ExportGenesis(ctx context.Context) *types.GenesisState {
	genesis := types.DefaultGenesisState()

	owner, err := k.Owner.Get(ctx)
	if err == nil {
		genesis.Owner = owner
	}

	paused, err := k.GetPaused(ctx)
	if err != nil {
		panic(err)
	}
	genesis.Paused = paused

	params, err := k.GetParams(ctx)
	if err != nil {
		panic(err)
	}
	genesis.Params = params

	err = k.AccountDeposits.Walk(ctx, nil, func(key []byte, amount math.Int) (bool, error) {
		genesis.Deposits = append(genesis.Deposits, types.AccountAmount{
			Address: sdk.AccAddress(key).String(),
			Amount:  amount,
		})
		return false, nil
	})
	if err != nil {
		panic(err)
	}

	err = k.AccountShares.Walk(ctx, nil, func(key []byte, amount math.Int) (bool, error) {
		genesis.Shares = append(genesis.Shares, types.AccountAmount{
			Address: sdk.AccAddress(key).String(),
			Amount:  amount,
		})
		return false, nil
	})
	if err != nil {
		panic(err)
	}

	err = k.StrategyShares.Walk(ctx, nil, func(key collections.Pair[[]byte, uint64], shares math.Int) (bool, error) {
		genesis.StrategyShares = append(genesis.StrategyShares, types.StrategyShareEntry{
			Address:    sdk.AccAddress(key.K1()).String(),
			StrategyId: key.K2(),
			Shares:     shares,
		})
		return false, nil
	})
	if err != nil {
		panic(err)
	}

	err = k.IterateStrategies(ctx, func(strategy vault.Strategy) (bool, error) {
		genesis.Strategies = append(genesis.Strategies, strategy)
		return false, nil
	})
	if err != nil {
		panic(err)
	}

	err = k.Allocations.Walk(ctx, nil, func(strategyId uint64, amount math.Int) (bool, error) {
		genesis.Allocations = append(genesis.Allocations, types.StrategyAmount{
			StrategyId: strategyId,
			Amount:     amount,
		})
		return false, nil
	})
	if err != nil {
		panic(err)
	}

	err = k.IteratePositions(ctx, func(address sdk.AccAddress, position staking.Position) (bool, error) {
		genesis.Positions = append(genesis.Positions, types.PositionEntry{
			Address:  address.String(),
			Position: position,
		})
		return false, nil
	})
	if err != nil {
		panic(err)
	}

	err = k.RewardStates.Walk(ctx, nil, func(key []byte, state staking.RewardState) (bool, error) {
		genesis.RewardStates = append(genesis.RewardStates, types.RewardStateEntry{
			Address: sdk.AccAddress(key).String(),
			State:   state,
		})
		return false, nil
	})
	if err != nil {
		panic(err)
	}

	totalShares, err := k.GetTotalShares(ctx)
	if err != nil {
		panic(err)
	}
	genesis.TotalShares = totalShares

	totalDeposited, err := k.GetTotalDeposited(ctx)
	if err != nil {
		panic(err)
	}
	genesis.TotalDeposited = totalDeposited

	totalDepositors, err := k.GetTotalDepositors(ctx)
	if err != nil {
		panic(err)
	}
	genesis.TotalDepositors = totalDepositors

	totalStaked, err := k.GetTotalStaked(ctx)
	if err != nil {
		panic(err)
	}
	genesis.TotalStaked = totalStaked

	pool, err := k.GetRewardPool(ctx)
	if err != nil {
		panic(err)
	}
	genesis.RewardPool = pool

	totalStakers, err := k.GetTotalStakers(ctx)
	if err != nil {
		panic(err)
	}
	genesis.TotalStakers = totalStakers

	return genesis
}

func (k *Keeper) mustAddress(address string) sdk.AccAddress {
	bz, err := k.address.StringToBytes(address)
	if err != nil {
		panic(fmt.Errorf("invalid genesis address %s: %w", address, err))
	}

	return bz
}

func orZero(amount math.Int) math.Int {
	if amount.IsNil() {
		return math.ZeroInt()
	}

	return amount
}
