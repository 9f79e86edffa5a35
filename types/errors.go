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

import "cosmossdk.io/errors"

var (
	ErrInvalidRequest         = errors.Register(ModuleName, 1, "invalid request")
	ErrUnauthorized           = errors.Register(ModuleName, 2, "signer is not authorized")
	ErrPaused                 = errors.Register(ModuleName, 3, "module is paused")
	ErrInvalidAmount          = errors.Register(ModuleName, 4, "amount is zero or below the minimum")
	ErrInvalidDuration        = errors.Register(ModuleName, 5, "lock duration is below the minimum")
	ErrLimitExceeded          = errors.Register(ModuleName, 6, "account deposit ceiling exceeded")
	ErrStrategyNotWhitelisted = errors.Register(ModuleName, 7, "strategy is not whitelisted")
	ErrNotStaked              = errors.Register(ModuleName, 8, "no open stake position")
	ErrAlreadyStaked          = errors.Register(ModuleName, 9, "an open stake position already exists")
	ErrInsufficientBalance    = errors.Register(ModuleName, 10, "insufficient balance")
	ErrOverflow               = errors.Register(ModuleName, 11, "arithmetic overflow")
)
