package chain

import (
	"github.com/incognitochain/go-incognito-sdk-v2/incclient"

	"github.com/obsidianwallet/obsidian-netswitch/common"
)

// NetworkUser is a component that holds a chain client and must be
// re-pointed when the active network changes. Users are stopped, switched
// and restarted strictly after a switch has been committed.
type NetworkUser interface {
	Stop() error
	Start() error
	SwitchNetwork(network common.NetworkOption, client *incclient.IncClient) error
}
