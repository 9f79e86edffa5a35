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

package vault

import (
	"context"

	"cosmossdk.io/math"
)

// QueryServer exposes the vault read accessors. All queries are pure.
type QueryServer interface {
	Deposit(ctx context.Context, req *QueryDeposit) (*QueryDepositResponse, error)
	Shares(ctx context.Context, req *QueryShares) (*QuerySharesResponse, error)
	StrategyShares(ctx context.Context, req *QueryStrategyShares) (*QueryStrategySharesResponse, error)
	Strategy(ctx context.Context, req *QueryStrategy) (*QueryStrategyResponse, error)
	Strategies(ctx context.Context, req *QueryStrategies) (*QueryStrategiesResponse, error)
	Allocation(ctx context.Context, req *QueryAllocation) (*QueryAllocationResponse, error)
	Totals(ctx context.Context, req *QueryTotals) (*QueryTotalsResponse, error)
}

type QueryDeposit struct {
	Account string
}

type QueryDepositResponse struct {
	Principal math.Int
}

type QueryShares struct {
	Account string
}

type QuerySharesResponse struct {
	Shares math.Int
}

type QueryStrategyShares struct {
	Account    string
	StrategyId uint64
}

type QueryStrategySharesResponse struct {
	Shares math.Int
}

type QueryStrategy struct {
	Id uint64
}

type QueryStrategyResponse struct {
	Strategy Strategy
}

type QueryStrategies struct{}

type QueryStrategiesResponse struct {
	Strategies []Strategy
}

type QueryAllocation struct {
	StrategyId uint64
}

type QueryAllocationResponse struct {
	Principal math.Int
}

type QueryTotals struct{}

type QueryTotalsResponse struct {
	TotalShares     math.Int
	TotalDeposited  math.Int
	TotalDepositors uint64
	// SharePrice is total deposited principal over total shares, or zero
	// when no shares exist.
	SharePrice math.LegacyDec
}
