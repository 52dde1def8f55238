package accrual

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/iov-one/accrual/errors"
	"github.com/iov-one/accrual/weavetest/assert"
)

func TestReadOptions(t *testing.T) {
	type conf struct {
		Rate string `json:"rate"`
	}

	cases := map[string]struct {
		json    string
		wantErr *errors.Error
		exp     conf
	}{
		"happy path": {
			json: `{"ledger": {"rate": "5"}}`,
			exp:  conf{Rate: "5"},
		},
		"missing key is not an error": {
			json: `{"other": {"rate": "5"}}`,
		},
		"wrong body": {
			json:    `{"ledger": "adasda"}`,
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var o Options
			assert.Nil(t, json.Unmarshal([]byte(tc.json), &o))
			var c conf
			err := o.ReadOptions("ledger", &c)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			assert.Equal(t, tc.exp, c)
		})
	}
}

type pingMsg struct {
	Text string
}

func (pingMsg) Path() string { return "test/ping" }

func (m *pingMsg) Validate() error {
	if m.Text == "" {
		return errors.Field("Text", errors.ErrEmpty, "required")
	}
	return nil
}

type pongMsg struct{}

func (pongMsg) Path() string      { return "test/pong" }
func (*pongMsg) Validate() error { return nil }

type msgTx struct {
	msg Msg
	err error
}

func (tx msgTx) GetMsg() (Msg, error) { return tx.msg, tx.err }

func TestLoadMsg(t *testing.T) {
	var msg pingMsg
	assert.Nil(t, LoadMsg(msgTx{msg: &pingMsg{Text: "hi"}}, &msg))
	assert.Equal(t, "hi", msg.Text)

	err := LoadMsg(msgTx{msg: &pingMsg{}}, &msg)
	assert.FieldError(t, err, "Text", errors.ErrEmpty)

	err = LoadMsg(msgTx{msg: &pongMsg{}}, &msg)
	assert.IsErr(t, errors.ErrType, err)

	err = LoadMsg(msgTx{msg: &pingMsg{Text: "hi"}}, msg)
	assert.IsErr(t, errors.ErrType, err)

	err = LoadMsg(msgTx{err: errors.ErrInput}, &msg)
	assert.IsErr(t, errors.ErrInput, err)

	err = LoadMsg(msgTx{}, &msg)
	assert.IsErr(t, errors.ErrMsg, err)
}

func TestGetPath(t *testing.T) {
	assert.Equal(t, "test/ping", GetPath(msgTx{msg: &pingMsg{}}))
	assert.Equal(t, "(missing)", GetPath(msgTx{err: errors.ErrMsg}))
}

type pinged struct{ N int }

func (pinged) EventName() string { return "test/pinged" }

func TestEmit(t *testing.T) {
	// Without a sink, events are dropped.
	Emit(context.Background(), pinged{N: 1})

	var buf EventBuffer
	ctx := WithEventSink(context.Background(), &buf)
	Emit(ctx, pinged{N: 1})
	Emit(ctx, pinged{N: 2})
	assert.Equal(t, []Event{pinged{N: 1}, pinged{N: 2}}, buf.Events())

	buf.Reset()
	assert.Equal(t, 0, len(buf.Events()))
}
