package walletmanager

func (rtacc *RuntimeAccount) Account() Account {
	rtacc.lock.RLock()
	defer rtacc.lock.RUnlock()
	return rtacc.account
}

func (rtacc *RuntimeAccount) AddWatchToken(tokenID string) error {
	rtacc.lock.Lock()
	rtacc.account.WatchTokens[tokenID] = struct{}{}
	account := rtacc.account
	rtacc.lock.Unlock()
	return rtacc.wlm.saveAccountToDB(account, rtacc.key)
}

func (rtacc *RuntimeAccount) RemoveWatchToken(tokenID string) error {
	rtacc.lock.Lock()
	delete(rtacc.account.WatchTokens, tokenID)
	account := rtacc.account
	rtacc.lock.Unlock()
	return rtacc.wlm.saveAccountToDB(account, rtacc.key)
}

func (rtacc *RuntimeAccount) UpdateInfo(name, note string) error {
	rtacc.lock.Lock()
	rtacc.account.Name = name
	rtacc.account.Note = note
	account := rtacc.account
	rtacc.lock.Unlock()
	return rtacc.wlm.saveAccountToDB(account, rtacc.key)
}
