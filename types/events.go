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

const (
	EventTypeDeposit             = "strata_deposit"
	EventTypeWithdraw            = "strata_withdraw"
	EventTypeStrategyAdded       = "strata_strategy_added"
	EventTypeStrategyDeactivated = "strata_strategy_deactivated"
	EventTypeStake               = "strata_stake"
	EventTypeUnstake             = "strata_unstake"
	EventTypeClaimRewards        = "strata_claim_rewards"
	EventTypeRewardPoolFunded    = "strata_reward_pool_funded"
	EventTypePaused              = "strata_paused"
	EventTypeUnpaused            = "strata_unpaused"
	EventTypeOwnershipTransfer   = "strata_ownership_transferred"
	EventTypeParamsUpdated       = "strata_params_updated"
)

const (
	AttributeKeyAccount       = "account"
	AttributeKeyAmount        = "amount"
	AttributeKeyStrategy      = "strategy"
	AttributeKeyShares        = "shares"
	AttributeKeyDuration      = "duration"
	AttributeKeyStartTick     = "start_tick"
	AttributeKeyPenalty       = "penalty"
	AttributeKeyReturned      = "returned"
	AttributeKeyRewardPaid    = "reward_paid"
	AttributeKeyOwner         = "owner"
	AttributeKeyPreviousOwner = "previous_owner"
)
