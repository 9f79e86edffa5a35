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

import "context"

// MsgServer exposes the module-level admin surface. Every handler is gated
// behind the current owner.
type MsgServer interface {
	Pause(ctx context.Context, msg *MsgPause) (*MsgPauseResponse, error)
	Unpause(ctx context.Context, msg *MsgUnpause) (*MsgUnpauseResponse, error)
	TransferOwnership(ctx context.Context, msg *MsgTransferOwnership) (*MsgTransferOwnershipResponse, error)
	UpdateParams(ctx context.Context, msg *MsgUpdateParams) (*MsgUpdateParamsResponse, error)
}

type MsgPause struct {
	Authority string
}

type MsgPauseResponse struct{}

type MsgUnpause struct {
	Authority string
}

type MsgUnpauseResponse struct{}

type MsgTransferOwnership struct {
	Authority string
	NewOwner  string
}

type MsgTransferOwnershipResponse struct {
	PreviousOwner string
}

type MsgUpdateParams struct {
	Authority string
	Params    Params
}

type MsgUpdateParamsResponse struct{}
