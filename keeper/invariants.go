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
	"fmt"

	"cosmossdk.io/collections"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"strata.meridian.xyz/types/staking"
)

// CheckInvariants verifies the accounting identities the engines maintain.
// It is intended for tests and for operator tooling run against a live
// state; message handlers never call it.
func (k *Keeper) CheckInvariants(ctx context.Context) error {
	if err := k.checkVaultInvariants(ctx); err != nil {
		return err
	}

	return k.checkStakingInvariants(ctx)
}

func (k *Keeper) checkVaultInvariants(ctx context.Context) error {
	totalShares, err := k.GetTotalShares(ctx)
	if err != nil {
		return err
	}
	totalDeposited, err := k.GetTotalDeposited(ctx)
	if err != nil {
		return err
	}

	shareSum := math.ZeroInt()
	err = k.AccountShares.Walk(ctx, nil, func(_ []byte, shares math.Int) (bool, error) {
		shareSum = shareSum.Add(shares)
		return false, nil
	})
	if err != nil {
		return err
	}
	if !shareSum.Equal(totalShares) {
		return fmt.Errorf("account shares sum to %s, total share supply is %s", shareSum, totalShares)
	}

	depositSum := math.ZeroInt()
	err = k.AccountDeposits.Walk(ctx, nil, func(_ []byte, deposit math.Int) (bool, error) {
		depositSum = depositSum.Add(deposit)
		return false, nil
	})
	if err != nil {
		return err
	}
	if !depositSum.Equal(totalDeposited) {
		return fmt.Errorf("account principals sum to %s, total deposited is %s", depositSum, totalDeposited)
	}

	allocationSum := math.ZeroInt()
	err = k.Allocations.Walk(ctx, nil, func(_ uint64, allocation math.Int) (bool, error) {
		allocationSum = allocationSum.Add(allocation)
		return false, nil
	})
	if err != nil {
		return err
	}
	if !allocationSum.Equal(totalDeposited) {
		return fmt.Errorf("strategy allocations sum to %s, total deposited is %s", allocationSum, totalDeposited)
	}

	// What an account splits across strategies can never exceed what it
	// holds against the vault as a whole.
	perOwner := make(map[string]math.Int)
	err = k.StrategyShares.Walk(ctx, nil, func(key collections.Pair[[]byte, uint64], shares math.Int) (bool, error) {
		owner := string(key.K1())
		sum, ok := perOwner[owner]
		if !ok {
			sum = math.ZeroInt()
		}
		perOwner[owner] = sum.Add(shares)
		return false, nil
	})
	if err != nil {
		return err
	}
	for owner, sum := range perOwner {
		held, err := k.GetAccountShares(ctx, sdk.AccAddress(owner))
		if err != nil {
			return err
		}
		if sum.GT(held) {
			return fmt.Errorf("account %s splits %s shares across strategies but holds %s", sdk.AccAddress(owner), sum, held)
		}
	}

	return nil
}

func (k *Keeper) checkStakingInvariants(ctx context.Context) error {
	totalStaked, err := k.GetTotalStaked(ctx)
	if err != nil {
		return err
	}

	positionSum := math.ZeroInt()
	var positions uint64
	err = k.IteratePositions(ctx, func(_ sdk.AccAddress, position staking.Position) (bool, error) {
		positionSum = positionSum.Add(position.Amount)
		positions++
		return false, nil
	})
	if err != nil {
		return err
	}
	if !positionSum.Equal(totalStaked) {
		return fmt.Errorf("open positions sum to %s, total staked is %s", positionSum, totalStaked)
	}

	totalStakers, err := k.GetTotalStakers(ctx)
	if err != nil {
		return err
	}
	if positions != totalStakers {
		return fmt.Errorf("%d open positions but staker count is %d", positions, totalStakers)
	}

	pool, err := k.GetRewardPool(ctx)
	if err != nil {
		return err
	}
	if pool.IsNegative() {
		return fmt.Errorf("reward pool is negative: %s", pool)
	}

	return nil
}
