package database

import (
	"encoding/json"
	"time"

	"github.com/dgraph-io/badger/v3"

	"github.com/obsidianwallet/obsidian-netswitch/common"
)

const (
	dbNetworkPrefix   = "network-"
	dbSwitchLogPrefix = "netswitch-"

	currentNetworkKey = "current"
)

// NetworkStore persists the active network identifier and an append-only
// trail of settled switch attempts. Records are keyed by monotonic ULIDs so
// iteration order is attempt order.
type NetworkStore struct {
	db *Database
}

type SwitchRecord struct {
	From      common.NetworkIdentifier
	To        common.NetworkIdentifier
	Succeeded bool
	Error     string `json:",omitempty"`
	At        time.Time
}

func NewNetworkStore(db *Database) *NetworkStore {
	return &NetworkStore{db: db}
}

// LoadCurrent returns the persisted active network, or ok=false when none
// has ever been saved.
func (ns *NetworkStore) LoadCurrent() (common.NetworkIdentifier, bool, error) {
	value, err := ns.db.DB.Get([]byte(dbNetworkPrefix), []byte(currentNetworkKey))
	if err == badger.ErrKeyNotFound {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return common.NetworkIdentifier(value), true, nil
}

func (ns *NetworkStore) SaveCurrent(id common.NetworkIdentifier) error {
	obj := Object{
		Key:   []byte(currentNetworkKey),
		Value: []byte(id),
	}
	return ns.db.DB.Set([]byte(dbNetworkPrefix), []Object{obj})
}

func (ns *NetworkStore) AppendSwitch(rec SwitchRecord) error {
	key, err := ns.db.DB.CreateULID(rec.At)
	if err != nil {
		return err
	}
	value, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	obj := Object{Key: key, Value: value}
	return ns.db.DB.Set([]byte(dbSwitchLogPrefix), []Object{obj})
}

// ListSwitches returns up to limit settled attempts, newest first. A limit
// of zero or less means no limit.
func (ns *NetworkStore) ListSwitches(limit int) ([]SwitchRecord, error) {
	var records []SwitchRecord
	action := func(k []byte, v []byte) (bool, error) {
		var rec SwitchRecord
		if err := json.Unmarshal(v, &rec); err != nil {
			return true, err
		}
		records = append(records, rec)
		return limit > 0 && len(records) >= limit, nil
	}
	err := ns.db.DB.ReadIterator([]byte(dbSwitchLogPrefix), true, action)
	if err != nil {
		return nil, err
	}
	return records, nil
}
