package gconf

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/accrual"
	"github.com/iov-one/accrual/errors"
	"github.com/iov-one/accrual/store"
	"github.com/iov-one/accrual/weavetest"
	"github.com/iov-one/accrual/weavetest/assert"
)

// testConfig is a minimal owned configuration.
type testConfig struct {
	Owner accrual.Address `protobuf:"bytes,1,opt,name=owner,proto3,casttype=github.com/iov-one/accrual.Address" json:"owner,omitempty"`
	Label string          `protobuf:"bytes,2,opt,name=label,proto3" json:"label,omitempty"`
}

func (m *testConfig) Reset()         { *m = testConfig{} }
func (m *testConfig) String() string { return proto.CompactTextString(m) }
func (*testConfig) ProtoMessage()    {}

func (m *testConfig) GetOwner() accrual.Address { return m.Owner }

func (m *testConfig) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Owner", m.Owner.Validate())
	if len(m.Label) > 16 {
		errs = errors.AppendField(errs, "Label", errors.ErrInput)
	}
	return errs
}

type updateMsg struct {
	Patch *testConfig
}

func (updateMsg) Path() string { return "test/update_configuration" }

func (m *updateMsg) Validate() error {
	if m.Patch == nil {
		return errors.ErrEmpty
	}
	return nil
}

func TestSaveLoad(t *testing.T) {
	db := store.MemStore()
	owner := weavetest.NewAddress()

	var empty testConfig
	err := Load(db, "test", &empty)
	assert.IsErr(t, errors.ErrNotFound, err)

	err = Save(db, "test", &testConfig{Owner: owner, Label: "a label that is way too long"})
	assert.FieldError(t, err, "Label", errors.ErrInput)

	assert.Nil(t, Save(db, "test", &testConfig{Owner: owner, Label: "vault"}))

	var got testConfig
	assert.Nil(t, Load(db, "test", &got))
	assert.Equal(t, "vault", got.Label)
	assert.Equal(t, owner, got.Owner)

	raw, err := db.Get([]byte("_c:test"))
	assert.Nil(t, err)
	if len(raw) == 0 {
		t.Fatal("configuration must be stored under the package key")
	}
}

func TestInitConfig(t *testing.T) {
	owner := weavetest.NewAddress()
	rawConf, err := json.Marshal(map[string]interface{}{
		"test": map[string]interface{}{"owner": owner, "label": "genesis"},
	})
	assert.Nil(t, err)

	cases := map[string]struct {
		opts    accrual.Options
		wantErr *errors.Error
	}{
		"configuration present": {
			opts: accrual.Options{"conf": rawConf},
		},
		"no conf section": {
			opts:    accrual.Options{},
			wantErr: errors.ErrNotFound,
		},
		"malformed conf section": {
			opts:    accrual.Options{"conf": []byte(`[1, 2]`)},
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			var conf testConfig
			err := InitConfig(db, tc.opts, "test", &conf)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if tc.wantErr != nil {
				return
			}
			var got testConfig
			assert.Nil(t, Load(db, "test", &got))
			assert.Equal(t, "genesis", got.Label)
		})
	}
}

func TestUpdateConfigurationHandler(t *testing.T) {
	owner := weavetest.NewCondition()
	newOwner := weavetest.NewAddress()

	cases := map[string]struct {
		signer  accrual.Condition
		msg     accrual.Msg
		wantErr *errors.Error
		want    testConfig
	}{
		"owner changes the label": {
			signer: owner,
			msg:    &updateMsg{Patch: &testConfig{Label: "updated"}},
			want:   testConfig{Owner: owner.Address(), Label: "updated"},
		},
		"owner hands over the configuration": {
			signer: owner,
			msg:    &updateMsg{Patch: &testConfig{Owner: newOwner}},
			want:   testConfig{Owner: newOwner, Label: "initial"},
		},
		"stranger is rejected": {
			signer:  weavetest.NewCondition(),
			msg:     &updateMsg{Patch: &testConfig{Label: "updated"}},
			wantErr: errors.ErrUnauthorized,
		},
		"missing patch": {
			signer:  owner,
			msg:     &updateMsg{},
			wantErr: errors.ErrEmpty,
		},
		"invalid result": {
			signer:  owner,
			msg:     &updateMsg{Patch: &testConfig{Label: "a label that is way too long"}},
			wantErr: errors.ErrInput,
		},
		"message without patch field": {
			signer:  owner,
			msg:     &weavetest.Msg{RoutePath: "test/update_configuration"},
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			assert.Nil(t, Save(db, "test", &testConfig{Owner: owner.Address(), Label: "initial"}))

			auth := &weavetest.Auth{Signer: tc.signer}
			h := NewUpdateConfigurationHandler("test", &testConfig{}, auth)
			_, err := h.Deliver(context.Background(), db, &weavetest.Tx{Msg: tc.msg})
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if tc.wantErr != nil {
				return
			}
			var got testConfig
			assert.Nil(t, Load(db, "test", &got))
			assert.Equal(t, tc.want, got)
		})
	}
}
