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

package types

import (
	"cosmossdk.io/math"

	"strata.meridian.xyz/types/staking"
	"strata.meridian.xyz/types/vault"
)

// GenesisState captures the full module state for import and export.
type GenesisState struct {
	Owner  string `json:"owner,omitempty"`
	Paused bool   `json:"paused"`
	Params Params `json:"params"`

	Deposits       []AccountAmount      `json:"deposits"`
	Shares         []AccountAmount      `json:"shares"`
	StrategyShares []StrategyShareEntry `json:"strategy_shares"`
	Strategies     []vault.Strategy     `json:"strategies"`
	Allocations    []StrategyAmount     `json:"allocations"`

	Positions    []PositionEntry    `json:"positions"`
	RewardStates []RewardStateEntry `json:"reward_states"`

	TotalShares     math.Int `json:"total_shares"`
	TotalDeposited  math.Int `json:"total_deposited"`
	TotalDepositors uint64   `json:"total_depositors"`
	TotalStaked     math.Int `json:"total_staked"`
	RewardPool      math.Int `json:"reward_pool"`
	TotalStakers    uint64   `json:"total_stakers"`
}

type AccountAmount struct {
	Address string   `json:"address"`
	Amount  math.Int `json:"amount"`
}

type StrategyShareEntry struct {
	Address    string   `json:"address"`
	StrategyId uint64   `json:"strategy_id"`
	Shares     math.Int `json:"shares"`
}

type StrategyAmount struct {
	StrategyId uint64   `json:"strategy_id"`
	Amount     math.Int `json:"amount"`
}

type PositionEntry struct {
	Address  string           `json:"address"`
	Position staking.Position `json:"position"`
}

type RewardStateEntry struct {
	Address string              `json:"address"`
	State   staking.RewardState `json:"state"`
}

func DefaultGenesisState() *GenesisState {
	return &GenesisState{
		Params:          DefaultParams(),
		TotalShares:     math.ZeroInt(),
		TotalDeposited:  math.ZeroInt(),
		TotalStaked:     math.ZeroInt(),
		RewardPool:      math.ZeroInt(),
		TotalDepositors: 0,
		TotalStakers:    0,
	}
}

func (gs *GenesisState) Validate() error {
	return gs.Params.Validate()
}
