package bridge

import (
	"github.com/iov-one/accrual"
	"github.com/iov-one/accrual/errors"
)

var _ accrual.Msg = (*ApplyChainsMsg)(nil)

// ApplyChainsMsg changes the chain permission list.
type ApplyChainsMsg struct {
	Add    []*ChainPermission `json:"add,omitempty"`
	Remove []uint64           `json:"remove,omitempty"`
}

func (ApplyChainsMsg) Path() string {
	return "bridge/apply_chains"
}

func (m *ApplyChainsMsg) Validate() error {
	if len(m.Add) == 0 && len(m.Remove) == 0 {
		return errors.Wrap(errors.ErrEmpty, "nothing to apply")
	}

	var errs error
	added := make(map[uint64]struct{}, len(m.Add))
	for i, c := range m.Add {
		if c == nil {
			errs = errors.AppendField(errs, "Add", errors.Wrapf(errors.ErrEmpty, "chain #%d", i))
			continue
		}
		if _, ok := added[c.RemoteChainID]; ok {
			errs = errors.AppendField(errs, "Add", errors.Wrapf(errors.ErrDuplicate, "chain %d", c.RemoteChainID))
			continue
		}
		added[c.RemoteChainID] = struct{}{}
		if err := c.Validate(); err != nil {
			errs = errors.AppendField(errs, "Add", errors.Wrapf(err, "chain %d", c.RemoteChainID))
		}
	}

	removed := make(map[uint64]struct{}, len(m.Remove))
	for _, id := range m.Remove {
		if _, ok := removed[id]; ok {
			errs = errors.AppendField(errs, "Remove", errors.Wrapf(errors.ErrDuplicate, "chain %d", id))
			continue
		}
		removed[id] = struct{}{}
		if _, ok := added[id]; ok {
			errs = errors.AppendField(errs, "Remove", errors.Wrapf(errors.ErrInput, "chain %d is both added and removed", id))
		}
	}
	return errs
}
