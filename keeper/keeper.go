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

	"cosmossdk.io/collections"
	"cosmossdk.io/core/address"
	"cosmossdk.io/core/event"
	"cosmossdk.io/core/header"
	"cosmossdk.io/core/store"
	"cosmossdk.io/log"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"strata.meridian.xyz/types"
	"strata.meridian.xyz/types/staking"
	"strata.meridian.xyz/types/vault"
)

type Keeper struct {
	denom     string
	authority string

	store store.KVStoreService

	logger  log.Logger
	header  header.Service
	event   event.Service
	address address.Codec
	bank    types.BankKeeper

	Owner  collections.Item[string]
	Paused collections.Item[bool]
	Params collections.Item[types.Params]

	AccountDeposits collections.Map[[]byte, math.Int]
	AccountShares   collections.Map[[]byte, math.Int]
	StrategyShares  collections.Map[collections.Pair[[]byte, uint64], math.Int]
	Strategies      collections.Map[uint64, vault.Strategy]
	Allocations     collections.Map[uint64, math.Int]
	TotalShares     collections.Item[math.Int]
	TotalDeposited  collections.Item[math.Int]
	TotalDepositors collections.Item[uint64]

	Positions    collections.Map[[]byte, staking.Position]
	RewardStates collections.Map[[]byte, staking.RewardState]
	TotalStaked  collections.Item[math.Int]
	RewardPool   collections.Item[math.Int]
	TotalStakers collections.Item[uint64]
}

func NewKeeper(
	denom string,
	authority string,
	store store.KVStoreService,
	logger log.Logger,
	header header.Service,
	event event.Service,
	address address.Codec,
	bank types.BankKeeper,
) *Keeper {
	builder := collections.NewSchemaBuilder(store)

	keeper := &Keeper{
		denom:     denom,
		authority: authority,

		store: store,

		logger:  logger.With("module", types.ModuleName),
		header:  header,
		event:   event,
		address: address,
		bank:    bank,

		Owner:  collections.NewItem(builder, types.OwnerKey, "owner", collections.StringValue),
		Paused: collections.NewItem(builder, types.PausedKey, "paused", collections.BoolValue),
		Params: collections.NewItem(builder, types.ParamsKey, "params", types.JSONValue[types.Params]("params")),

		AccountDeposits: collections.NewMap(builder, types.AccountDepositPrefix, "account_deposits", collections.BytesKey, sdk.IntValue),
		AccountShares:   collections.NewMap(builder, types.AccountSharesPrefix, "account_shares", collections.BytesKey, sdk.IntValue),
		StrategyShares:  collections.NewMap(builder, types.StrategySharesPrefix, "strategy_shares", collections.PairKeyCodec(collections.BytesKey, collections.Uint64Key), sdk.IntValue),
		Strategies:      collections.NewMap(builder, types.StrategyPrefix, "strategies", collections.Uint64Key, types.JSONValue[vault.Strategy]("strategy")),
		Allocations:     collections.NewMap(builder, types.AllocationPrefix, "allocations", collections.Uint64Key, sdk.IntValue),
		TotalShares:     collections.NewItem(builder, types.TotalSharesKey, "total_shares", sdk.IntValue),
		TotalDeposited:  collections.NewItem(builder, types.TotalDepositedKey, "total_deposited", sdk.IntValue),
		TotalDepositors: collections.NewItem(builder, types.TotalDepositorsKey, "total_depositors", collections.Uint64Value),

		Positions:    collections.NewMap(builder, types.StakePositionPrefix, "stake_positions", collections.BytesKey, types.JSONValue[staking.Position]("stake_position")),
		RewardStates: collections.NewMap(builder, types.RewardStatePrefix, "reward_states", collections.BytesKey, types.JSONValue[staking.RewardState]("reward_state")),
		TotalStaked:  collections.NewItem(builder, types.TotalStakedKey, "total_staked", sdk.IntValue),
		RewardPool:   collections.NewItem(builder, types.RewardPoolKey, "reward_pool", sdk.IntValue),
		TotalStakers: collections.NewItem(builder, types.TotalStakersKey, "total_stakers", collections.Uint64Value),
	}

	_, err := builder.Build()
	if err != nil {
		panic(err)
	}

	return keeper
}

// SetBankKeeper overwrites the bank keeper used in this module.
func (k *Keeper) SetBankKeeper(bankKeeper types.BankKeeper) {
	k.bank = bankKeeper
}

// GetDenom is a utility that returns the configured underlying denomination.
func (k *Keeper) GetDenom() string {
	return k.denom
}

// CurrentTick returns the host's monotonic block counter. The module never
// advances it; each handler reads it once so every computation in the same
// atomic unit observes the same tick.
func (k *Keeper) CurrentTick(ctx context.Context) int64 {
	return k.header.GetHeaderInfo(ctx).Height
}
