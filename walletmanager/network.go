package walletmanager

import (
	"github.com/incognitochain/go-incognito-sdk-v2/incclient"

	"github.com/obsidianwallet/obsidian-netswitch/common"
)

func (wlm *WalletManager) Stop() error {
	return nil
}

func (wlm *WalletManager) Start() error {
	return nil
}

// SwitchNetwork re-points the manager at a confirmed network. Runs only
// after the switch has been committed, so the client passed in is always
// the one serving the persisted network.
func (wlm *WalletManager) SwitchNetwork(network common.NetworkOption, client *incclient.IncClient) error {
	wlm.networkLock.Lock()
	defer wlm.networkLock.Unlock()
	wlm.currentNetwork = network
	wlm.incclient = client
	return nil
}

func (wlm *WalletManager) GetCurrentNetwork() common.NetworkOption {
	wlm.networkLock.RLock()
	defer wlm.networkLock.RUnlock()
	return wlm.currentNetwork
}
