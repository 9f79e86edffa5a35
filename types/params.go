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
	"fmt"

	"cosmossdk.io/math"
)

// PenaltyRateScale is the denominator of Params.PenaltyRate: a rate of
// 10_000 is a 100% penalty.
const PenaltyRateScale = 10_000

// RewardRateScale is the denominator of Params.RewardRate: rewards accrue
// at RewardRate/100 percent of the staked amount per tick once a position
// has matured.
const RewardRateScale = 100

// Params holds every operational limit of the module. Limits live in state
// rather than package-level variables so that they are part of the same
// atomic unit as the ledgers they guard and can be rotated by governance.
type Params struct {
	// MinDeposit is a strict floor: a deposit must exceed it. Zero disables
	// the floor (any positive amount is accepted).
	MinDeposit math.Int `json:"min_deposit"`
	// MaxAccountDeposit caps the aggregate principal a single account may
	// hold across all strategies. Zero means unlimited.
	MaxAccountDeposit math.Int `json:"max_account_deposit"`
	// MinStake is a strict floor on the staked amount. Zero disables it.
	MinStake math.Int `json:"min_stake"`
	// MinLockDuration is the shortest accepted lock, in ticks.
	MinLockDuration int64 `json:"min_lock_duration"`
	// RewardRate is the per-tick reward rate, scaled by RewardRateScale.
	RewardRate math.Int `json:"reward_rate"`
	// PenaltyRate is the early-exit penalty rate, scaled by PenaltyRateScale.
	PenaltyRate math.Int `json:"penalty_rate"`
}

func DefaultParams() Params {
	return Params{
		MinDeposit:        math.ZeroInt(),
		MaxAccountDeposit: math.ZeroInt(),
		MinStake:          math.ZeroInt(),
		MinLockDuration:   1,
		RewardRate:        math.NewInt(1),
		PenaltyRate:       math.NewInt(2_000),
	}
}

func (p Params) Validate() error {
	for name, value := range map[string]math.Int{
		"min_deposit":         p.MinDeposit,
		"max_account_deposit": p.MaxAccountDeposit,
		"min_stake":           p.MinStake,
		"reward_rate":         p.RewardRate,
		"penalty_rate":        p.PenaltyRate,
	} {
		if value.IsNil() {
			return fmt.Errorf("%s cannot be nil", name)
		}
		if value.IsNegative() {
			return fmt.Errorf("%s cannot be negative: %s", name, value)
		}
	}

	if p.MinLockDuration < 0 {
		return fmt.Errorf("min_lock_duration cannot be negative: %d", p.MinLockDuration)
	}
	if p.PenaltyRate.GT(math.NewInt(PenaltyRateScale)) {
		return fmt.Errorf("penalty_rate cannot exceed %d: %s", PenaltyRateScale, p.PenaltyRate)
	}

	return nil
}
