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

import authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"

const ModuleName = "strata"

var (
	// ModuleAddress holds vault principal and open stake positions.
	ModuleAddress = authtypes.NewModuleAddress(ModuleName)
	// RewardPoolAddress holds the shared reward pool, funded by admin
	// top-ups and early-exit penalties.
	RewardPoolAddress = authtypes.NewModuleAddress(ModuleName + "/rewards")
)

var (
	OwnerKey  = []byte("strata/owner")
	PausedKey = []byte("strata/paused")
	ParamsKey = []byte("strata/params")

	AccountDepositPrefix = []byte("strata/account_deposit/")
	AccountSharesPrefix  = []byte("strata/account_shares/")
	StrategySharesPrefix = []byte("strata/strategy_shares/")
	StrategyPrefix       = []byte("strata/strategy/")
	AllocationPrefix     = []byte("strata/allocation/")
	TotalSharesKey       = []byte("strata/total_shares")
	TotalDepositedKey    = []byte("strata/total_deposited")
	TotalDepositorsKey   = []byte("strata/total_depositors")

	StakePositionPrefix = []byte("strata/stake_position/")
	RewardStatePrefix   = []byte("strata/reward_state/")
	TotalStakedKey      = []byte("strata/total_staked")
	RewardPoolKey       = []byte("strata/reward_pool")
	TotalStakersKey     = []byte("strata/total_stakers")
)
