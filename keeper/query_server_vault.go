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
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"strata.meridian.xyz/types"
	"strata.meridian.xyz/types/vault"
)

var _ vault.QueryServer = &vaultQueryServer{}

type vaultQueryServer struct {
	*Keeper
}

func NewVaultQueryServer(keeper *Keeper) vault.QueryServer {
	return &vaultQueryServer{Keeper: keeper}
}

func (k vaultQueryServer) Deposit(ctx context.Context, req *vault.QueryDeposit) (*vault.QueryDepositResponse, error) {
	if req == nil {
		return nil, errors.Wrap(types.ErrInvalidRequest, "request cannot be nil")
	}

	addrBz, err := k.address.StringToBytes(req.Account)
	if err != nil {
		return nil, errors.Wrapf(types.ErrInvalidRequest, "invalid account address: %s", req.Account)
	}

	principal, err := k.GetAccountDeposit(ctx, addrBz)
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch account principal")
	}

	return &vault.QueryDepositResponse{Principal: principal}, nil
}

func (k vaultQueryServer) Shares(ctx context.Context, req *vault.QueryShares) (*vault.QuerySharesResponse, error) {
	if req == nil {
		return nil, errors.Wrap(types.ErrInvalidRequest, "request cannot be nil")
	}

	addrBz, err := k.address.StringToBytes(req.Account)
	if err != nil {
		return nil, errors.Wrapf(types.ErrInvalidRequest, "invalid account address: %s", req.Account)
	}

	shares, err := k.GetAccountShares(ctx, addrBz)
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch account shares")
	}

	return &vault.QuerySharesResponse{Shares: shares}, nil
}

func (k vaultQueryServer) StrategyShares(ctx context.Context, req *vault.QueryStrategyShares) (*vault.QueryStrategySharesResponse, error) {
	if req == nil {
		return nil, errors.Wrap(types.ErrInvalidRequest, "request cannot be nil")
	}

	addrBz, err := k.address.StringToBytes(req.Account)
	if err != nil {
		return nil, errors.Wrapf(types.ErrInvalidRequest, "invalid account address: %s", req.Account)
	}

	shares, err := k.GetStrategyShares(ctx, sdk.AccAddress(addrBz), req.StrategyId)
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch strategy shares")
	}

	return &vault.QueryStrategySharesResponse{Shares: shares}, nil
}

func (k vaultQueryServer) Strategy(ctx context.Context, req *vault.QueryStrategy) (*vault.QueryStrategyResponse, error) {
	if req == nil {
		return nil, errors.Wrap(types.ErrInvalidRequest, "request cannot be nil")
	}

	strategy, found, err := k.GetStrategy(ctx, req.Id)
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch strategy")
	}
	if !found {
		return nil, errors.Wrapf(types.ErrStrategyNotWhitelisted, "no strategy with id %d", req.Id)
	}

	return &vault.QueryStrategyResponse{Strategy: strategy}, nil
}

func (k vaultQueryServer) Strategies(ctx context.Context, req *vault.QueryStrategies) (*vault.QueryStrategiesResponse, error) {
	if req == nil {
		return nil, errors.Wrap(types.ErrInvalidRequest, "request cannot be nil")
	}

	var strategies []vault.Strategy
	err := k.IterateStrategies(ctx, func(strategy vault.Strategy) (bool, error) {
		strategies = append(strategies, strategy)
		return false, nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "unable to iterate strategies")
	}

	return &vault.QueryStrategiesResponse{Strategies: strategies}, nil
}

func (k vaultQueryServer) Allocation(ctx context.Context, req *vault.QueryAllocation) (*vault.QueryAllocationResponse, error) {
	if req == nil {
		return nil, errors.Wrap(types.ErrInvalidRequest, "request cannot be nil")
	}

	principal, err := k.GetAllocation(ctx, req.StrategyId)
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch allocation")
	}

	return &vault.QueryAllocationResponse{Principal: principal}, nil
}

func (k vaultQueryServer) Totals(ctx context.Context, req *vault.QueryTotals) (*vault.QueryTotalsResponse, error) {
	if req == nil {
		return nil, errors.Wrap(types.ErrInvalidRequest, "request cannot be nil")
	}

	totalShares, err := k.GetTotalShares(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch total shares")
	}
	totalDeposited, err := k.GetTotalDeposited(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch total deposited")
	}
	totalDepositors, err := k.GetTotalDepositors(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch total depositors")
	}

	sharePrice := math.LegacyZeroDec()
	if totalShares.IsPositive() {
		sharePrice = math.LegacyNewDecFromInt(totalDeposited).QuoInt(totalShares)
	}

	return &vault.QueryTotalsResponse{
		TotalShares:     totalShares,
		TotalDeposited:  totalDeposited,
		TotalDepositors: totalDepositors,
		SharePrice:      sharePrice,
	}, nil
}
