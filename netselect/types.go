package netselect

import (
	"context"
	"errors"

	"github.com/obsidianwallet/obsidian-netswitch/common"
)

// Store holds the active network identifier. Current is a synchronous read.
// Write is the sole mutation surface and must be all-or-nothing: after a nil
// return the store holds id, after an error the store is exactly as before.
type Store interface {
	Current() common.NetworkIdentifier
	Write(ctx context.Context, id common.NetworkIdentifier) error
}

// Liveness reports the last known reachability of the local endpoint. The
// value may be stale; its owner refreshes it asynchronously.
type Liveness interface {
	Live() bool
}

// OptionView is what the presentation layer gets for one network option.
type OptionView struct {
	Option    common.NetworkOption
	IsChecked bool
	IsEnabled bool
	IsBusy    bool
}

var (
	ErrUnknownNetwork  = errors.New("network not found")
	ErrNetworkDisabled = errors.New("network is not reachable")
)
