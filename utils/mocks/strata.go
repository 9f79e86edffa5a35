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

package mocks

import (
	"context"
	"testing"

	"cosmossdk.io/core/event"
	"cosmossdk.io/core/header"
	"cosmossdk.io/log"
	storetypes "cosmossdk.io/store/types"
	"github.com/cosmos/cosmos-sdk/codec/address"
	"github.com/cosmos/cosmos-sdk/runtime"
	"github.com/cosmos/cosmos-sdk/testutil"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"google.golang.org/protobuf/runtime/protoiface"

	"strata.meridian.xyz/keeper"
	"strata.meridian.xyz/types"
	"strata.meridian.xyz/utils"
)

// Denom is the underlying token every test keeper is configured with.
const Denom = "uusdc"

// StrataKeeper builds a keeper backed by a fresh in-memory store, wired to
// the supplied bank mock. The returned account is the module authority; the
// context starts at height 1 and tests advance the clock with
// ctx.WithHeaderInfo.
func StrataKeeper(t *testing.T, bank types.BankKeeper) (*keeper.Keeper, sdk.Context, utils.Account) {
	t.Helper()

	authority := utils.TestAccount()

	key := storetypes.NewKVStoreKey(types.ModuleName)
	k := keeper.NewKeeper(
		Denom,
		authority.Address,
		runtime.NewKVStoreService(key),
		log.NewNopLogger(),
		HeaderService{},
		EventService{},
		address.NewBech32Codec("cosmos"),
		nil,
	)
	k.SetBankKeeper(bank)

	testCtx := testutil.DefaultContextWithDB(t, key, storetypes.NewTransientStoreKey("transient_strata"))
	ctx := testCtx.Ctx.WithHeaderInfo(header.Info{Height: 1})

	return k, ctx, authority
}

var _ header.Service = HeaderService{}

// HeaderService reads block info off the SDK context, so a test controls
// the clock through ctx.WithHeaderInfo.
type HeaderService struct{}

func (HeaderService) GetHeaderInfo(ctx context.Context) header.Info {
	return sdk.UnwrapSDKContext(ctx).HeaderInfo()
}

var _ event.Service = EventService{}

// EventService discards all events.
type EventService struct{}

func (EventService) EventManager(_ context.Context) event.Manager {
	return EventManager{}
}

type EventManager struct{}

func (EventManager) Emit(_ context.Context, _ protoiface.MessageV1) error { return nil }

func (EventManager) EmitKV(_ context.Context, _ string, _ ...event.Attribute) error { return nil }

func (EventManager) EmitNonConsensus(_ context.Context, _ protoiface.MessageV1) error { return nil }
