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

import (
	"context"

	"cosmossdk.io/math"
)

// MsgServer exposes the staking operations.
type MsgServer interface {
	Stake(ctx context.Context, msg *MsgStake) (*MsgStakeResponse, error)
	Unstake(ctx context.Context, msg *MsgUnstake) (*MsgUnstakeResponse, error)
	ClaimRewards(ctx context.Context, msg *MsgClaimRewards) (*MsgClaimRewardsResponse, error)
	FundRewardPool(ctx context.Context, msg *MsgFundRewardPool) (*MsgFundRewardPoolResponse, error)
}

type MsgStake struct {
	Staker   string
	Amount   math.Int
	Duration int64
}

type MsgStakeResponse struct {
	StartTick int64
}

type MsgUnstake struct {
	Staker string
}

type MsgUnstakeResponse struct {
	AmountReturned math.Int
	Penalty        math.Int
}

type MsgClaimRewards struct {
	Claimer string
}

type MsgClaimRewardsResponse struct {
	AmountPaid math.Int
}

type MsgFundRewardPool struct {
	Authority string
	Amount    math.Int
}

type MsgFundRewardPoolResponse struct{}
