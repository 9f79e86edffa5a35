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

// MsgServer exposes the vault operations.
type MsgServer interface {
	Deposit(ctx context.Context, msg *MsgDeposit) (*MsgDepositResponse, error)
	Withdraw(ctx context.Context, msg *MsgWithdraw) (*MsgWithdrawResponse, error)
	AddStrategy(ctx context.Context, msg *MsgAddStrategy) (*MsgAddStrategyResponse, error)
	DeactivateStrategy(ctx context.Context, msg *MsgDeactivateStrategy) (*MsgDeactivateStrategyResponse, error)
}

type MsgDeposit struct {
	Depositor  string
	Amount     math.Int
	StrategyId uint64
}

type MsgDepositResponse struct {
	SharesMinted math.Int
}

type MsgWithdraw struct {
	Withdrawer string
	Amount     math.Int
	StrategyId uint64
}

type MsgWithdrawResponse struct {
	SharesBurned math.Int
}

type MsgAddStrategy struct {
	Authority string
	Id        uint64
	Name      string
	ApyBps    uint64
	RiskScore uint32
}

type MsgAddStrategyResponse struct{}

type MsgDeactivateStrategy struct {
	Authority string
	Id        uint64
}

type MsgDeactivateStrategyResponse struct{}
