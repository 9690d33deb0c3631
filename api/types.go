package api

import (
	"context"
	"sync"

	"github.com/incognitochain/go-incognito-sdk-v2/incclient"

	"github.com/obsidianwallet/obsidian-netswitch/common"
	"github.com/obsidianwallet/obsidian-netswitch/database"
	"github.com/obsidianwallet/obsidian-netswitch/netselect"
	"github.com/obsidianwallet/obsidian-netswitch/walletmanager"
)

type APIService struct {
	address string
	wlm     *walletmanager.WalletManager
	ctrl    NetworkController
	history SwitchHistory

	lock      sync.RWMutex
	incclient *incclient.IncClient
}

// NetworkController is the selection core surface the API consumes.
type NetworkController interface {
	Views() []netselect.OptionView
	Active() common.NetworkIdentifier
	Busy() bool
	RequestSwitch(ctx context.Context, target common.NetworkIdentifier) error
	ConsumeSwitchFailure() bool
}

// SwitchHistory serves the persisted switch trail.
type SwitchHistory interface {
	History(limit int) ([]database.SwitchRecord, error)
}

// NetworkView is the JSON shape of one option in /v1/network/list.
type NetworkView struct {
	Title      string `json:"title"`
	Identifier string `json:"identifier"`
	IsLocal    bool   `json:"isLocal"`
	IsChecked  bool   `json:"isChecked"`
	IsEnabled  bool   `json:"isEnabled"`
	IsBusy     bool   `json:"isBusy"`
}

type SwitchRequest struct {
	Network string `json:"network"`
}

type UpdateAccountRequest struct {
	Account string `json:"account"`
	Name    string `json:"name"`
	Note    string `json:"note"`
}
