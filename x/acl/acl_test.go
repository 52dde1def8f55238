package acl

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/iov-one/accrual"
	"github.com/iov-one/accrual/errors"
	"github.com/iov-one/accrual/gconf"
	"github.com/iov-one/accrual/store"
	"github.com/iov-one/accrual/weavetest"
	"github.com/iov-one/accrual/weavetest/assert"
)

func TestGrantAndRequireRole(t *testing.T) {
	owner := weavetest.NewCondition()
	minter := weavetest.NewCondition()
	other := weavetest.NewCondition()

	db := store.MemStore()
	assert.Nil(t, gconf.Save(db, confPkg, &Configuration{Owner: owner.Address()}))

	var events accrual.EventBuffer
	ctx := accrual.WithEventSink(context.Background(), &events)

	// Nobody holds the role yet.
	err := RequireRole(ctx, db, &weavetest.Auth{Signer: minter}, RoleMintBurn)
	assert.IsErr(t, errors.ErrUnauthorized, err)

	err = Grant(ctx, db, &weavetest.Auth{Signer: other}, RoleMintBurn, minter.Address())
	assert.IsErr(t, errors.ErrUnauthorized, err)

	assert.Nil(t, Grant(ctx, db, &weavetest.Auth{Signer: owner}, RoleMintBurn, minter.Address()))
	assert.Nil(t, RequireRole(ctx, db, &weavetest.Auth{Signer: minter}, RoleMintBurn))
	err = RequireRole(ctx, db, &weavetest.Auth{Signer: other}, RoleMintBurn)
	assert.IsErr(t, errors.ErrUnauthorized, err)

	// Granting again replaces the holder.
	assert.Nil(t, Grant(ctx, db, &weavetest.Auth{Signer: owner}, RoleMintBurn, other.Address()))
	assert.Nil(t, RequireRole(ctx, db, &weavetest.Auth{Signer: other}, RoleMintBurn))
	err = RequireRole(ctx, db, &weavetest.Auth{Signer: minter}, RoleMintBurn)
	assert.IsErr(t, errors.ErrUnauthorized, err)

	holder, err := Holder(db, RoleMintBurn)
	assert.Nil(t, err)
	assert.Equal(t, other.Address(), holder)

	assert.Equal(t, []accrual.Event{
		RoleGranted{Role: RoleMintBurn, Holder: minter.Address()},
		RoleGranted{Role: RoleMintBurn, Holder: other.Address()},
	}, events.Events())
}

func TestRevoke(t *testing.T) {
	owner := weavetest.NewCondition()
	minter := weavetest.NewCondition()

	db := store.MemStore()
	assert.Nil(t, gconf.Save(db, confPkg, &Configuration{Owner: owner.Address()}))
	ctx := context.Background()
	ownerAuth := &weavetest.Auth{Signer: owner}

	assert.Nil(t, Grant(ctx, db, ownerAuth, RoleMintBurn, minter.Address()))

	err := Revoke(ctx, db, &weavetest.Auth{Signer: minter}, RoleMintBurn)
	assert.IsErr(t, errors.ErrUnauthorized, err)

	assert.Nil(t, Revoke(ctx, db, ownerAuth, RoleMintBurn))
	err = RequireRole(ctx, db, &weavetest.Auth{Signer: minter}, RoleMintBurn)
	assert.IsErr(t, errors.ErrUnauthorized, err)

	err = Revoke(ctx, db, ownerAuth, RoleMintBurn)
	assert.IsErr(t, errors.ErrNotFound, err)
}

func TestTransferOwnership(t *testing.T) {
	owner := weavetest.NewCondition()
	successor := weavetest.NewCondition()

	db := store.MemStore()
	assert.Nil(t, gconf.Save(db, confPkg, &Configuration{Owner: owner.Address()}))
	ctx := context.Background()

	err := TransferOwnership(ctx, db, &weavetest.Auth{Signer: successor}, successor.Address())
	assert.IsErr(t, errors.ErrUnauthorized, err)

	assert.Nil(t, TransferOwnership(ctx, db, &weavetest.Auth{Signer: owner}, successor.Address()))
	assert.Nil(t, RequireOwner(ctx, db, &weavetest.Auth{Signer: successor}))
	err = RequireOwner(ctx, db, &weavetest.Auth{Signer: owner})
	assert.IsErr(t, errors.ErrUnauthorized, err)

	err = TransferOwnership(ctx, db, &weavetest.Auth{Signer: successor}, nil)
	assert.FieldError(t, err, "Owner", errors.ErrEmpty)
}

func TestMsgValidate(t *testing.T) {
	cases := map[string]struct {
		msg      accrual.Msg
		wantErrs map[string]*errors.Error
	}{
		"valid grant": {
			msg: &GrantMsg{Role: RoleMintBurn, Holder: weavetest.NewAddress()},
			wantErrs: map[string]*errors.Error{
				"Role":   nil,
				"Holder": nil,
			},
		},
		"grant without holder": {
			msg: &GrantMsg{Role: RoleMintBurn},
			wantErrs: map[string]*errors.Error{
				"Role":   nil,
				"Holder": errors.ErrEmpty,
			},
		},
		"grant of an invalid role name": {
			msg: &GrantMsg{Role: "Mint Burn", Holder: weavetest.NewAddress()},
			wantErrs: map[string]*errors.Error{
				"Role":   errors.ErrInput,
				"Holder": nil,
			},
		},
		"revoke": {
			msg: &RevokeMsg{Role: RoleMintBurn},
			wantErrs: map[string]*errors.Error{
				"Role": nil,
			},
		},
		"configuration patch with a short owner": {
			msg: &UpdateConfigurationMsg{Patch: &Configuration{Owner: []byte("short")}},
			wantErrs: map[string]*errors.Error{
				"Patch": errors.ErrInput,
			},
		},
		"missing configuration patch": {
			msg: &UpdateConfigurationMsg{},
			wantErrs: map[string]*errors.Error{
				"Patch": errors.ErrEmpty,
			},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.msg.Validate()
			for field, want := range tc.wantErrs {
				assert.FieldError(t, err, field, want)
			}
		})
	}
}

func TestHandlers(t *testing.T) {
	owner := weavetest.NewCondition()
	holder := weavetest.NewAddress()
	successor := weavetest.NewAddress()

	db := store.MemStore()
	assert.Nil(t, gconf.Save(db, confPkg, &Configuration{Owner: owner.Address()}))

	r := make(testRouter)
	auth := &weavetest.Auth{Signer: owner}
	RegisterRoutes(r, auth)

	ctx := context.Background()
	deliver := func(msg accrual.Msg) error {
		h, ok := r[msg.Path()]
		if !ok {
			t.Fatalf("no handler for %q", msg.Path())
		}
		_, err := h.Deliver(ctx, db, &weavetest.Tx{Msg: msg})
		return err
	}

	assert.Nil(t, deliver(&GrantMsg{Role: RoleMintBurn, Holder: holder}))
	got, err := Holder(db, RoleMintBurn)
	assert.Nil(t, err)
	assert.Equal(t, holder, got)

	assert.Nil(t, deliver(&RevokeMsg{Role: RoleMintBurn}))
	_, err = Holder(db, RoleMintBurn)
	assert.IsErr(t, errors.ErrNotFound, err)

	assert.Nil(t, deliver(&UpdateConfigurationMsg{Patch: &Configuration{Owner: successor}}))
	current, err := Owner(db)
	assert.Nil(t, err)
	assert.Equal(t, successor, current)

	// The previous owner cannot grant anymore.
	err = deliver(&GrantMsg{Role: RoleMintBurn, Holder: holder})
	assert.IsErr(t, errors.ErrUnauthorized, err)
}

type testRouter map[string]accrual.Handler

func (r testRouter) Handle(m accrual.Msg, h accrual.Handler) {
	r[m.Path()] = h
}

func TestGenesis(t *testing.T) {
	owner := weavetest.NewAddress()
	minter := weavetest.NewAddress()

	conf, err := json.Marshal(map[string]interface{}{
		"acl": Configuration{Owner: owner},
	})
	assert.Nil(t, err)
	roles, err := json.Marshal([]GenesisRole{{Role: RoleMintBurn, Holder: minter}})
	assert.Nil(t, err)

	db := store.MemStore()
	opts := accrual.Options{"conf": conf, "acl": roles}
	assert.Nil(t, Initializer{}.FromGenesis(opts, db))

	got, err := Owner(db)
	assert.Nil(t, err)
	assert.Equal(t, owner, got)

	holder, err := Holder(db, RoleMintBurn)
	assert.Nil(t, err)
	assert.Equal(t, minter, holder)

	dup, err := json.Marshal([]GenesisRole{
		{Role: RoleMintBurn, Holder: minter},
		{Role: RoleMintBurn, Holder: owner},
	})
	assert.Nil(t, err)
	err = Initializer{}.FromGenesis(accrual.Options{"conf": conf, "acl": dup}, store.MemStore())
	assert.IsErr(t, errors.ErrDuplicate, err)
}
