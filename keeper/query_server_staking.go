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

	"cosmossdk.io/errors"

	"strata.meridian.xyz/types"
	"strata.meridian.xyz/types/staking"
)

var _ staking.QueryServer = &stakingQueryServer{}

type stakingQueryServer struct {
	*Keeper
}

func NewStakingQueryServer(keeper *Keeper) staking.QueryServer {
	return &stakingQueryServer{Keeper: keeper}
}

func (k stakingQueryServer) Position(ctx context.Context, req *staking.QueryPosition) (*staking.QueryPositionResponse, error) {
	if req == nil {
		return nil, errors.Wrap(types.ErrInvalidRequest, "request cannot be nil")
	}

	addrBz, err := k.address.StringToBytes(req.Account)
	if err != nil {
		return nil, errors.Wrapf(types.ErrInvalidRequest, "invalid account address: %s", req.Account)
	}

	position, found, err := k.GetPosition(ctx, addrBz)
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch stake position")
	}

	return &staking.QueryPositionResponse{
		Position: position,
		Found:    found,
	}, nil
}

func (k stakingQueryServer) PendingReward(ctx context.Context, req *staking.QueryPendingReward) (*staking.QueryPendingRewardResponse, error) {
	if req == nil {
		return nil, errors.Wrap(types.ErrInvalidRequest, "request cannot be nil")
	}

	addrBz, err := k.address.StringToBytes(req.Account)
	if err != nil {
		return nil, errors.Wrapf(types.ErrInvalidRequest, "invalid account address: %s", req.Account)
	}

	amount, err := k.Keeper.PendingReward(ctx, addrBz)
	if err != nil {
		return nil, errors.Wrap(err, "unable to compute pending reward")
	}

	return &staking.QueryPendingRewardResponse{Amount: amount}, nil
}

func (k stakingQueryServer) Totals(ctx context.Context, req *staking.QueryTotals) (*staking.QueryTotalsResponse, error) {
	if req == nil {
		return nil, errors.Wrap(types.ErrInvalidRequest, "request cannot be nil")
	}

	totalStaked, err := k.GetTotalStaked(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch total staked principal")
	}
	pool, err := k.GetRewardPool(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch reward pool")
	}
	totalStakers, err := k.GetTotalStakers(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch total stakers")
	}

	return &staking.QueryTotalsResponse{
		TotalStaked:  totalStaked,
		RewardPool:   pool,
		TotalStakers: totalStakers,
	}, nil
}
