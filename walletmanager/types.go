package walletmanager

import (
	"sync"

	"github.com/incognitochain/go-incognito-sdk-v2/incclient"
	"github.com/incognitochain/go-incognito-sdk-v2/wallet"

	"github.com/obsidianwallet/obsidian-netswitch/common"
	"github.com/obsidianwallet/obsidian-netswitch/database"
)

type WalletManager struct {
	networkLock    sync.RWMutex
	currentNetwork common.NetworkOption
	incclient      *incclient.IncClient
	db             *database.Database

	lock     sync.RWMutex
	accounts map[string]*RuntimeAccount
}

type AccountType int

const (
	Masterless AccountType = iota
	WatchOnly
)

type Account struct {
	Name           string
	Note           string
	Type           AccountType
	PrivateKey     string
	PaymentAddress string
	OTAKey         string
	ViewKey        string
	IsEncrypted    bool
	WatchTokens    map[string]struct{}
}

type RuntimeAccount struct {
	lock    sync.RWMutex
	account Account
	wlk     *wallet.KeyWallet
	wlm     *WalletManager
	key     string
}
