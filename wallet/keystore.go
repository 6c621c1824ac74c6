package wallet

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/syndtr/goleveldb/leveldb"
)

// KeyInfo is used for storing keys in KeyStore
type KeyInfo struct {
	PrivateKey string
}

// KeyStore is used for storing secret keys
type KeyStore interface {
	// List lists all the keys stored in the KeyStore
	List() ([]string, error)
	// Get gets a key out of keystore and returns KeyInfo corresponding to named key
	Get(string) (KeyInfo, error)
	// Put saves a key info under given name
	Put(string, KeyInfo) error
	// Delete removes a key from keystore
	Delete(string) error
}

type DiskKeyStore struct {
	db *leveldb.DB
}

func OpenOrInitKeystore(p string) (*DiskKeyStore, error) {
	_, err := os.Stat(p)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
		if err := os.MkdirAll(p, 0700); err != nil {
			return nil, err
		}
	}

	db, err := leveldb.OpenFile(p, nil)
	if err != nil {
		return nil, err
	}

	return &DiskKeyStore{db}, nil
}

func (dks *DiskKeyStore) List() ([]string, error) {
	var keys []string
	iter := dks.db.NewIterator(nil, nil)
	for iter.Next() {
		addr := string(iter.Key())
		keys = append(keys, addr)
	}
	iter.Release()
	return keys, nil
}

func (dks *DiskKeyStore) Get(name string) (KeyInfo, error) {
	value, err := dks.db.Get([]byte(name), nil)
	if err != nil {
		return KeyInfo{}, fmt.Errorf("reading key '%s': %w", name, err)
	}
	var res KeyInfo
	if err = json.Unmarshal(value, &res); err != nil {
		return KeyInfo{}, err
	}
	return res, nil
}

func (dks *DiskKeyStore) Put(key string, info KeyInfo) error {
	bytes, _ := json.Marshal(info)
	err := dks.db.Put([]byte(key), bytes, nil)
	if err != nil {
		return fmt.Errorf("writing key '%s': %w", key, err)
	}
	return nil
}

func (dks *DiskKeyStore) Delete(key string) error {
	err := dks.db.Delete([]byte(key), nil)
	if err != nil {
		return fmt.Errorf("deleting key '%s': %w", key, err)
	}
	return nil
}

// MemKeyStore keeps keys in memory, for tests.
type MemKeyStore struct {
	keys map[string]KeyInfo
}

func NewMemKeyStore() *MemKeyStore {
	return &MemKeyStore{keys: make(map[string]KeyInfo)}
}

func (mks *MemKeyStore) List() ([]string, error) {
	var keys []string
	for k := range mks.keys {
		keys = append(keys, k)
	}
	return keys, nil
}

func (mks *MemKeyStore) Get(name string) (KeyInfo, error) {
	ki, ok := mks.keys[name]
	if !ok {
		return KeyInfo{}, ErrKeyInfoNotFound
	}
	return ki, nil
}

func (mks *MemKeyStore) Put(key string, info KeyInfo) error {
	mks.keys[key] = info
	return nil
}

func (mks *MemKeyStore) Delete(key string) error {
	delete(mks.keys, key)
	return nil
}
