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
	"strconv"

	"cosmossdk.io/core/event"
	"cosmossdk.io/errors"
	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"strata.meridian.xyz/types"
	"strata.meridian.xyz/types/vault"
)

var _ vault.MsgServer = &vaultMsgServer{}

type vaultMsgServer struct {
	*Keeper
}

func NewVaultMsgServer(keeper *Keeper) vault.MsgServer {
	return &vaultMsgServer{Keeper: keeper}
}

func (m vaultMsgServer) Deposit(ctx context.Context, msg *vault.MsgDeposit) (*vault.MsgDepositResponse, error) {
	if msg == nil {
		return nil, errors.Wrap(types.ErrInvalidRequest, "message cannot be nil")
	}

	paused, err := m.GetPaused(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch pause state")
	}
	if paused {
		return nil, errors.Wrap(types.ErrPaused, "deposits are halted")
	}

	addrBz, err := m.address.StringToBytes(msg.Depositor)
	if err != nil {
		return nil, errors.Wrapf(types.ErrInvalidRequest, "invalid depositor address: %s", msg.Depositor)
	}
	depositor := sdk.AccAddress(addrBz)

	params, err := m.GetParams(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch params")
	}

	if msg.Amount.IsNil() || !msg.Amount.IsPositive() {
		return nil, errors.Wrap(types.ErrInvalidAmount, "deposit amount must be positive")
	}
	// The floor is strict: a deposit equal to the minimum is rejected.
	if params.MinDeposit.IsPositive() && !msg.Amount.GT(params.MinDeposit) {
		return nil, errors.Wrapf(types.ErrInvalidAmount, "deposit must exceed the minimum of %s", params.MinDeposit)
	}

	strategy, found, err := m.GetStrategy(ctx, msg.StrategyId)
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch strategy")
	}
	if !found || !strategy.Active {
		return nil, errors.Wrapf(types.ErrStrategyNotWhitelisted, "strategy %d is not active", msg.StrategyId)
	}

	deposit, err := m.GetAccountDeposit(ctx, depositor)
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch account deposit")
	}
	newDeposit, err := deposit.SafeAdd(msg.Amount)
	if err != nil {
		return nil, errors.Wrap(types.ErrOverflow, "account deposit")
	}
	if params.MaxAccountDeposit.IsPositive() && newDeposit.GT(params.MaxAccountDeposit) {
		return nil, errors.Wrapf(types.ErrLimitExceeded, "account deposit would exceed the ceiling of %s", params.MaxAccountDeposit)
	}

	totalShares, err := m.GetTotalShares(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch total share supply")
	}
	totalDeposited, err := m.GetTotalDeposited(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch total deposited principal")
	}

	// Bootstrap mints 1:1. Afterwards minting floors, so rounding loss
	// always favors existing holders over the depositor. The deposited
	// total can only be zero alongside a zero share supply (or residual
	// share dust), both of which take the bootstrap path.
	var minted sdkmath.Int
	if totalShares.IsZero() || totalDeposited.IsZero() {
		minted = msg.Amount
	} else {
		product, err := msg.Amount.SafeMul(totalShares)
		if err != nil {
			return nil, errors.Wrap(types.ErrOverflow, "share minting")
		}
		minted = product.Quo(totalDeposited)
	}

	newTotalShares, err := totalShares.SafeAdd(minted)
	if err != nil {
		return nil, errors.Wrap(types.ErrOverflow, "total share supply")
	}
	newTotalDeposited, err := totalDeposited.SafeAdd(msg.Amount)
	if err != nil {
		return nil, errors.Wrap(types.ErrOverflow, "total deposited principal")
	}

	currentShares, err := m.GetAccountShares(ctx, depositor)
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch account shares")
	}
	newShares, err := currentShares.SafeAdd(minted)
	if err != nil {
		return nil, errors.Wrap(types.ErrOverflow, "account shares")
	}

	strategyShares, err := m.GetStrategyShares(ctx, depositor, msg.StrategyId)
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch strategy shares")
	}
	newStrategyShares, err := strategyShares.SafeAdd(minted)
	if err != nil {
		return nil, errors.Wrap(types.ErrOverflow, "strategy shares")
	}

	allocation, err := m.GetAllocation(ctx, msg.StrategyId)
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch strategy allocation")
	}
	newAllocation, err := allocation.SafeAdd(msg.Amount)
	if err != nil {
		return nil, errors.Wrap(types.ErrOverflow, "strategy allocation")
	}

	// All validation and arithmetic is complete; move the funds before the
	// first ledger write so a failed transfer leaves no partial mutation.
	coins := sdk.NewCoins(sdk.NewCoin(m.denom, msg.Amount))
	if err := m.bank.SendCoins(ctx, depositor, types.ModuleAddress, coins); err != nil {
		return nil, errors.Wrap(types.ErrInsufficientBalance, err.Error())
	}

	if err := m.SetAccountDeposit(ctx, depositor, newDeposit); err != nil {
		return nil, errors.Wrap(err, "unable to persist account deposit")
	}
	if err := m.SetAccountShares(ctx, depositor, newShares); err != nil {
		return nil, errors.Wrap(err, "unable to persist account shares")
	}
	if err := m.SetStrategyShares(ctx, depositor, msg.StrategyId, newStrategyShares); err != nil {
		return nil, errors.Wrap(err, "unable to persist strategy shares")
	}
	if err := m.SetAllocation(ctx, msg.StrategyId, newAllocation); err != nil {
		return nil, errors.Wrap(err, "unable to persist strategy allocation")
	}
	if err := m.SetTotalShares(ctx, newTotalShares); err != nil {
		return nil, errors.Wrap(err, "unable to persist total share supply")
	}
	if err := m.SetTotalDeposited(ctx, newTotalDeposited); err != nil {
		return nil, errors.Wrap(err, "unable to persist total deposited principal")
	}
	if currentShares.IsZero() && newShares.IsPositive() {
		if err := m.IncrementTotalDepositors(ctx); err != nil {
			return nil, errors.Wrap(err, "unable to increment total depositors")
		}
	}

	if err := m.event.EventManager(ctx).EmitKV(ctx, types.EventTypeDeposit,
		event.Attribute{Key: types.AttributeKeyAccount, Value: msg.Depositor},
		event.Attribute{Key: types.AttributeKeyAmount, Value: msg.Amount.String()},
		event.Attribute{Key: types.AttributeKeyStrategy, Value: strconv.FormatUint(msg.StrategyId, 10)},
		event.Attribute{Key: types.AttributeKeyShares, Value: minted.String()},
	); err != nil {
		return nil, errors.Wrap(err, "unable to emit deposit event")
	}

	return &vault.MsgDepositResponse{SharesMinted: minted}, nil
}

func (m vaultMsgServer) Withdraw(ctx context.Context, msg *vault.MsgWithdraw) (*vault.MsgWithdrawResponse, error) {
	if msg == nil {
		return nil, errors.Wrap(types.ErrInvalidRequest, "message cannot be nil")
	}

	paused, err := m.GetPaused(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch pause state")
	}
	if paused {
		return nil, errors.Wrap(types.ErrPaused, "withdrawals are halted")
	}

	addrBz, err := m.address.StringToBytes(msg.Withdrawer)
	if err != nil {
		return nil, errors.Wrapf(types.ErrInvalidRequest, "invalid withdrawer address: %s", msg.Withdrawer)
	}
	withdrawer := sdk.AccAddress(addrBz)

	if msg.Amount.IsNil() || !msg.Amount.IsPositive() {
		return nil, errors.Wrap(types.ErrInvalidAmount, "withdrawal amount must be positive")
	}

	// Deactivated strategies remain withdrawable: shares already minted
	// must stay redeemable. Only unknown strategies are rejected.
	_, found, err := m.GetStrategy(ctx, msg.StrategyId)
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch strategy")
	}
	if !found {
		return nil, errors.Wrapf(types.ErrStrategyNotWhitelisted, "strategy %d does not exist", msg.StrategyId)
	}

	deposit, err := m.GetAccountDeposit(ctx, withdrawer)
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch account deposit")
	}
	if deposit.LT(msg.Amount) {
		return nil, errors.Wrapf(types.ErrInsufficientBalance, "recorded deposit %s is less than %s", deposit, msg.Amount)
	}

	totalShares, err := m.GetTotalShares(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch total share supply")
	}
	totalDeposited, err := m.GetTotalDeposited(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch total deposited principal")
	}

	// A withdrawer necessarily has a prior deposit, so the deposited total
	// is at least the withdrawal amount and the division is well-defined.
	// Burning floors, symmetric to minting.
	product, err := msg.Amount.SafeMul(totalShares)
	if err != nil {
		return nil, errors.Wrap(types.ErrOverflow, "share burning")
	}
	sharesToBurn := product.Quo(totalDeposited)

	strategyShares, err := m.GetStrategyShares(ctx, withdrawer, msg.StrategyId)
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch strategy shares")
	}
	if strategyShares.LT(sharesToBurn) {
		return nil, errors.Wrapf(types.ErrInsufficientBalance, "strategy %d shares %s cannot cover burn of %s", msg.StrategyId, strategyShares, sharesToBurn)
	}

	currentShares, err := m.GetAccountShares(ctx, withdrawer)
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch account shares")
	}
	if currentShares.LT(sharesToBurn) {
		return nil, errors.Wrapf(types.ErrInsufficientBalance, "account shares %s cannot cover burn of %s", currentShares, sharesToBurn)
	}

	allocation, err := m.GetAllocation(ctx, msg.StrategyId)
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch strategy allocation")
	}
	newAllocation, err := allocation.SafeSub(msg.Amount)
	if err != nil || newAllocation.IsNegative() {
		return nil, errors.Wrapf(types.ErrInsufficientBalance, "strategy %d allocation %s cannot cover %s", msg.StrategyId, allocation, msg.Amount)
	}

	newDeposit := deposit.Sub(msg.Amount)
	newShares := currentShares.Sub(sharesToBurn)
	newStrategyShares := strategyShares.Sub(sharesToBurn)
	newTotalShares := totalShares.Sub(sharesToBurn)
	newTotalDeposited := totalDeposited.Sub(msg.Amount)

	if err := m.SetAccountDeposit(ctx, withdrawer, newDeposit); err != nil {
		return nil, errors.Wrap(err, "unable to persist account deposit")
	}
	if err := m.SetAccountShares(ctx, withdrawer, newShares); err != nil {
		return nil, errors.Wrap(err, "unable to persist account shares")
	}
	if err := m.SetStrategyShares(ctx, withdrawer, msg.StrategyId, newStrategyShares); err != nil {
		return nil, errors.Wrap(err, "unable to persist strategy shares")
	}
	if err := m.SetAllocation(ctx, msg.StrategyId, newAllocation); err != nil {
		return nil, errors.Wrap(err, "unable to persist strategy allocation")
	}
	if err := m.SetTotalShares(ctx, newTotalShares); err != nil {
		return nil, errors.Wrap(err, "unable to persist total share supply")
	}
	if err := m.SetTotalDeposited(ctx, newTotalDeposited); err != nil {
		return nil, errors.Wrap(err, "unable to persist total deposited principal")
	}
	if currentShares.IsPositive() && newShares.IsZero() {
		if err := m.DecrementTotalDepositors(ctx); err != nil {
			return nil, errors.Wrap(err, "unable to decrement total depositors")
		}
	}

	coins := sdk.NewCoins(sdk.NewCoin(m.denom, msg.Amount))
	if err := m.bank.SendCoins(ctx, types.ModuleAddress, withdrawer, coins); err != nil {
		return nil, errors.Wrap(err, "unable to transfer withdrawal proceeds")
	}

	if err := m.event.EventManager(ctx).EmitKV(ctx, types.EventTypeWithdraw,
		event.Attribute{Key: types.AttributeKeyAccount, Value: msg.Withdrawer},
		event.Attribute{Key: types.AttributeKeyAmount, Value: msg.Amount.String()},
		event.Attribute{Key: types.AttributeKeyStrategy, Value: strconv.FormatUint(msg.StrategyId, 10)},
		event.Attribute{Key: types.AttributeKeyShares, Value: sharesToBurn.String()},
	); err != nil {
		return nil, errors.Wrap(err, "unable to emit withdrawal event")
	}

	return &vault.MsgWithdrawResponse{SharesBurned: sharesToBurn}, nil
}

func (m vaultMsgServer) AddStrategy(ctx context.Context, msg *vault.MsgAddStrategy) (*vault.MsgAddStrategyResponse, error) {
	if msg == nil {
		return nil, errors.Wrap(types.ErrInvalidRequest, "message cannot be nil")
	}

	owner, err := m.GetOwner(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch owner")
	}
	if msg.Authority != owner {
		return nil, errors.Wrapf(types.ErrUnauthorized, "expected %s, got %s", owner, msg.Authority)
	}

	// Upsert: re-adding an existing strategy reactivates it and refreshes
	// its metadata. Allocations and shares are untouched.
	strategy := vault.Strategy{
		Id:        msg.Id,
		Name:      msg.Name,
		ApyBps:    msg.ApyBps,
		RiskScore: msg.RiskScore,
		Active:    true,
	}
	if err := m.SetStrategy(ctx, strategy); err != nil {
		return nil, errors.Wrap(err, "unable to persist strategy")
	}

	m.logger.Info("strategy whitelisted", "id", msg.Id, "name", msg.Name)

	if err := m.event.EventManager(ctx).EmitKV(ctx, types.EventTypeStrategyAdded,
		event.Attribute{Key: types.AttributeKeyStrategy, Value: strconv.FormatUint(msg.Id, 10)},
	); err != nil {
		return nil, errors.Wrap(err, "unable to emit strategy event")
	}

	return &vault.MsgAddStrategyResponse{}, nil
}

func (m vaultMsgServer) DeactivateStrategy(ctx context.Context, msg *vault.MsgDeactivateStrategy) (*vault.MsgDeactivateStrategyResponse, error) {
	if msg == nil {
		return nil, errors.Wrap(types.ErrInvalidRequest, "message cannot be nil")
	}

	owner, err := m.GetOwner(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch owner")
	}
	if msg.Authority != owner {
		return nil, errors.Wrapf(types.ErrUnauthorized, "expected %s, got %s", owner, msg.Authority)
	}

	strategy, found, err := m.GetStrategy(ctx, msg.Id)
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch strategy")
	}
	if !found {
		return nil, errors.Wrapf(types.ErrStrategyNotWhitelisted, "strategy %d does not exist", msg.Id)
	}

	strategy.Active = false
	if err := m.SetStrategy(ctx, strategy); err != nil {
		return nil, errors.Wrap(err, "unable to persist strategy")
	}

	m.logger.Info("strategy deactivated", "id", msg.Id)

	if err := m.event.EventManager(ctx).EmitKV(ctx, types.EventTypeStrategyDeactivated,
		event.Attribute{Key: types.AttributeKeyStrategy, Value: strconv.FormatUint(msg.Id, 10)},
	); err != nil {
		return nil, errors.Wrap(err, "unable to emit strategy event")
	}

	return &vault.MsgDeactivateStrategyResponse{}, nil
}
