package walletmanager

import (
	"encoding/json"
	"errors"

	"github.com/incognitochain/go-incognito-sdk-v2/wallet"

	"github.com/obsidianwallet/obsidian-netswitch/database"
)

func InitWallet(db *database.Database) (*WalletManager, error) {
	wlm := &WalletManager{db: db, accounts: make(map[string]*RuntimeAccount)}
	err := wlm.loadAccounts()
	if err != nil {
		return nil, err
	}
	return wlm, nil
}

// addAccount registers an account in memory and returns its registry key:
// the public key for accounts with a private key, the payment address for
// watch-only accounts.
func (wlm *WalletManager) addAccount(account Account) (string, error) {
	wlm.lock.Lock()
	defer wlm.lock.Unlock()

	if account.WatchTokens == nil {
		account.WatchTokens = make(map[string]struct{})
	}
	accRT := RuntimeAccount{
		account: account,
		wlm:     wlm,
	}

	accKey := ""
	switch account.Type {
	case Masterless:
		wlk, err := wallet.Base58CheckDeserialize(account.PrivateKey)
		if err != nil {
			return accKey, err
		}
		if len(wlk.KeySet.PrivateKey) == 0 {
			return accKey, errors.New("invalid key")
		}
		accRT.wlk = wlk
		accKey, err = wlk.GetPublicKey()
		if err != nil {
			return accKey, errors.New("invalid key")
		}
	case WatchOnly:
		if account.PaymentAddress == "" {
			return accKey, errors.New("watch-only account needs a payment address")
		}
		accKey = account.PaymentAddress
	default:
		return accKey, errors.New("invalid wallet type")
	}

	if _, exist := wlm.accounts[accKey]; exist {
		return accKey, errors.New("account already exists")
	}

	accRT.key = accKey
	wlm.accounts[accKey] = &accRT
	return accKey, nil
}

func (wlm *WalletManager) AddNewAccount(account Account) (string, error) {
	accKey, err := wlm.addAccount(account)
	if err != nil {
		return "", err
	}
	return accKey, wlm.saveAccountToDB(account, accKey)
}

func (wlm *WalletManager) GetAccountInstance(account string) *RuntimeAccount {
	wlm.lock.RLock()
	defer wlm.lock.RUnlock()
	acc, exist := wlm.accounts[account]
	if exist {
		return acc
	}
	return nil
}

func (wlm *WalletManager) DeleteAccount(account string) error {
	wlm.lock.Lock()
	defer wlm.lock.Unlock()
	if _, exist := wlm.accounts[account]; !exist {
		return errors.New("account not found")
	}
	delete(wlm.accounts, account)
	return wlm.deleteAccountFromDB(account)
}

func (wlm *WalletManager) ListAccounts() ([]Account, error) {
	wlm.lock.RLock()
	defer wlm.lock.RUnlock()
	var accounts []Account
	for _, accountRT := range wlm.accounts {
		accounts = append(accounts, accountRT.account)
	}
	return accounts, nil
}

func (wlm *WalletManager) loadAccounts() error {
	action := func(k []byte, v []byte) (bool, error) {
		var acc Account
		err := json.Unmarshal(v, &acc)
		if err != nil {
			return true, err
		}
		_, err = wlm.addAccount(acc)
		if err != nil {
			return true, err
		}
		return false, nil
	}
	return wlm.db.DB.ReadIterator([]byte(dbAccountInfoPrefix), false, action)
}

func (wlm *WalletManager) saveAccountToDB(account Account, accKey string) error {
	accountBytes, err := json.Marshal(account)
	if err != nil {
		return err
	}
	dbObj := database.Object{
		Key:   []byte(accKey),
		Value: accountBytes,
	}
	return wlm.db.DB.Set([]byte(dbAccountInfoPrefix), []database.Object{dbObj})
}

func (wlm *WalletManager) deleteAccountFromDB(accKey string) error {
	return wlm.db.DB.Delete([]byte(dbAccountInfoPrefix), []byte(accKey))
}
