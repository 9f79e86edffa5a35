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

// QueryServer exposes the staking read accessors. All queries are pure.
type QueryServer interface {
	Position(ctx context.Context, req *QueryPosition) (*QueryPositionResponse, error)
	PendingReward(ctx context.Context, req *QueryPendingReward) (*QueryPendingRewardResponse, error)
	Totals(ctx context.Context, req *QueryTotals) (*QueryTotalsResponse, error)
}

type QueryPosition struct {
	Account string
}

type QueryPositionResponse struct {
	Position Position
	Found    bool
}

type QueryPendingReward struct {
	Account string
}

type QueryPendingRewardResponse struct {
	Amount math.Int
}

type QueryTotals struct{}

type QueryTotalsResponse struct {
	TotalStaked  math.Int
	RewardPool   math.Int
	TotalStakers uint64
}
