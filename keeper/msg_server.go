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

	"cosmossdk.io/core/event"
	"cosmossdk.io/errors"

	"strata.meridian.xyz/types"
)

var _ types.MsgServer = &msgServer{}

type msgServer struct {
	*Keeper
}

func NewMsgServer(keeper *Keeper) types.MsgServer {
	return &msgServer{Keeper: keeper}
}

func (m msgServer) Pause(ctx context.Context, msg *types.MsgPause) (*types.MsgPauseResponse, error) {
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

	if err := m.SetPaused(ctx, true); err != nil {
		return nil, errors.Wrap(err, "unable to persist pause state")
	}

	m.logger.Info("engine paused", "authority", msg.Authority)

	if err := m.event.EventManager(ctx).EmitKV(ctx, types.EventTypePaused,
		event.Attribute{Key: types.AttributeKeyAccount, Value: msg.Authority},
	); err != nil {
		return nil, errors.Wrap(err, "unable to emit pause event")
	}

	return &types.MsgPauseResponse{}, nil
}

func (m msgServer) Unpause(ctx context.Context, msg *types.MsgUnpause) (*types.MsgUnpauseResponse, error) {
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

	if err := m.SetPaused(ctx, false); err != nil {
		return nil, errors.Wrap(err, "unable to persist pause state")
	}

	m.logger.Info("engine unpaused", "authority", msg.Authority)

	if err := m.event.EventManager(ctx).EmitKV(ctx, types.EventTypeUnpaused,
		event.Attribute{Key: types.AttributeKeyAccount, Value: msg.Authority},
	); err != nil {
		return nil, errors.Wrap(err, "unable to emit unpause event")
	}

	return &types.MsgUnpauseResponse{}, nil
}

func (m msgServer) TransferOwnership(ctx context.Context, msg *types.MsgTransferOwnership) (*types.MsgTransferOwnershipResponse, error) {
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

	if _, err := m.address.StringToBytes(msg.NewOwner); err != nil {
		return nil, errors.Wrapf(types.ErrInvalidRequest, "invalid new owner address: %s", msg.NewOwner)
	}
	if msg.NewOwner == owner {
		return nil, errors.Wrap(types.ErrInvalidRequest, "new owner matches the current owner")
	}

	if err := m.SetOwner(ctx, msg.NewOwner); err != nil {
		return nil, errors.Wrap(err, "unable to persist owner")
	}

	m.logger.Info("ownership transferred", "previous", owner, "owner", msg.NewOwner)

	if err := m.event.EventManager(ctx).EmitKV(ctx, types.EventTypeOwnershipTransfer,
		event.Attribute{Key: types.AttributeKeyPreviousOwner, Value: owner},
		event.Attribute{Key: types.AttributeKeyOwner, Value: msg.NewOwner},
	); err != nil {
		return nil, errors.Wrap(err, "unable to emit ownership event")
	}

	return &types.MsgTransferOwnershipResponse{PreviousOwner: owner}, nil
}

func (m msgServer) UpdateParams(ctx context.Context, msg *types.MsgUpdateParams) (*types.MsgUpdateParamsResponse, error) {
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

	if err := m.SetParams(ctx, msg.Params); err != nil {
		return nil, errors.Wrap(err, "unable to persist params")
	}

	if err := m.event.EventManager(ctx).EmitKV(ctx, types.EventTypeParamsUpdated,
		event.Attribute{Key: types.AttributeKeyAccount, Value: msg.Authority},
	); err != nil {
		return nil, errors.Wrap(err, "unable to emit params event")
	}

	return &types.MsgUpdateParamsResponse{}, nil
}
