package chain

import (
	"context"
	"fmt"

	"github.com/incognitochain/go-incognito-sdk-v2/incclient"

	"github.com/obsidianwallet/obsidian-netswitch/common"
	"github.com/obsidianwallet/obsidian-netswitch/netselect"
)

// Prober builds a liveness probe for option: dial its RPC with a throwaway
// chain client, a successful handshake meaning reachable.
func Prober(option common.NetworkOption) netselect.Probe {
	return func(ctx context.Context) error {
		if len(option.RPCs) == 0 {
			return fmt.Errorf("chain: network %q has no RPC endpoint", option.Identifier)
		}
		_, err := incclient.NewIncClient(option.RPCs[0], incclient.MainNetETHHost, 2, string(option.Identifier))
		return err
	}
}
