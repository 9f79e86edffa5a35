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

package staking

import "cosmossdk.io/math"

const SubmoduleName = "strata/staking"

// Position is a single time-locked stake. A position is immutable once
// written and is removed by unstaking; an account holds at most one.
type Position struct {
	Amount    math.Int `json:"amount"`
	StartTick int64    `json:"start_tick"`
	Duration  int64    `json:"duration"`
}

// Matured reports whether the position's lock has fully elapsed at tick.
func (p Position) Matured(tick int64) bool {
	return tick-p.StartTick >= p.Duration
}

// RewardState tracks reward settlement for an account's position. It is
// created lazily on the first claim and reset, never deleted, by later
// claims. A LastClaimTick of zero means the position has never claimed.
type RewardState struct {
	Pending       math.Int `json:"pending"`
	LastClaimTick int64    `json:"last_claim_tick"`
}
