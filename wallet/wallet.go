package wallet

import (
	"context"
	"fmt"
	"math/big"
	"regexp"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"golang.org/x/xerrors"
)

const (
	WalletRepo  = "keystore"
	KNamePrefix = "wallet-"
)

var (
	ErrKeyInfoNotFound = fmt.Errorf("key info not found")
	ErrKeyExists       = fmt.Errorf("key already exists")
)

var reAddress = regexp.MustCompile("^0x[0-9a-fA-F]{40}$")

// LocalWallet holds the consumer keys this node can spend from. Keys are
// cached in memory and persisted in the keystore under their address.
type LocalWallet struct {
	keys     map[string]*KeyInfo
	keystore KeyStore

	lk sync.Mutex
}

func SetupWallet(keystorePath string) (*LocalWallet, error) {
	kstore, err := OpenOrInitKeystore(keystorePath)
	if err != nil {
		return nil, err
	}
	return NewWallet(kstore)
}

func NewWallet(keystore KeyStore) (*LocalWallet, error) {
	w := &LocalWallet{
		keys:     make(map[string]*KeyInfo),
		keystore: keystore,
	}
	return w, nil
}

// WalletImport stores a private key and returns its derived address.
func (w *LocalWallet) WalletImport(ctx context.Context, ki *KeyInfo) (string, error) {
	if ki == nil || strings.TrimSpace(ki.PrivateKey) == "" {
		return "", xerrors.Errorf("importing empty private key")
	}

	privateKey, err := crypto.HexToECDSA(strings.TrimPrefix(ki.PrivateKey, "0x"))
	if err != nil {
		return "", xerrors.Errorf("parsing private key: %w", err)
	}
	address := crypto.PubkeyToAddress(privateKey.PublicKey).Hex()

	w.lk.Lock()
	defer w.lk.Unlock()

	if _, err := w.keystore.Get(KNamePrefix + address); err == nil {
		return "", ErrKeyExists
	}
	if err := w.keystore.Put(KNamePrefix+address, *ki); err != nil {
		return "", xerrors.Errorf("saving to keystore: %w", err)
	}
	w.keys[address] = ki
	return address, nil
}

func (w *LocalWallet) WalletList(ctx context.Context) ([]string, error) {
	return w.addressList(ctx)
}

func (w *LocalWallet) WalletDelete(ctx context.Context, addr string) error {
	w.lk.Lock()
	defer w.lk.Unlock()

	if err := w.keystore.Delete(KNamePrefix + addr); err != nil {
		return xerrors.Errorf("wallet delete: %w", err)
	}
	delete(w.keys, addr)
	return nil
}

func (w *LocalWallet) findKey(addr string) (*KeyInfo, error) {
	w.lk.Lock()
	defer w.lk.Unlock()

	k, ok := w.keys[addr]
	if ok {
		return k, nil
	}
	if w.keystore == nil {
		return nil, nil
	}

	ki, err := w.keystore.Get(KNamePrefix + addr)
	if err != nil {
		if xerrors.Is(err, ErrKeyInfoNotFound) {
			return nil, nil
		}
		return nil, xerrors.Errorf("getting from keystore: %w", err)
	}
	w.keys[addr] = &ki
	return &ki, nil
}

func (w *LocalWallet) addressList(ctx context.Context) ([]string, error) {
	all, err := w.keystore.List()
	if err != nil {
		return nil, xerrors.Errorf("listing keystore: %w", err)
	}

	addressList := make([]string, 0, len(all))
	for _, a := range all {
		if strings.HasPrefix(a, KNamePrefix) {
			addr := strings.TrimPrefix(a, KNamePrefix)
			addressList = append(addressList, addr)
		}
	}
	return addressList, nil
}

// EthSender settles payments with a native transfer on the configured chain.
type EthSender struct {
	rpcUrl string
	wallet *LocalWallet
}

func NewEthSender(rpcUrl string, wallet *LocalWallet) *EthSender {
	return &EthSender{
		rpcUrl: rpcUrl,
		wallet: wallet,
	}
}

// Send transfers amount (in the chain's native unit) from a locally held
// wallet to the provider address and returns the transaction hash. Any
// network or chain failure surfaces as an error; the caller decides the
// recovery policy.
func (s *EthSender) Send(ctx context.Context, from, to string, amount float64) (string, error) {
	if !reAddress.MatchString(to) {
		return "", xerrors.Errorf("invalid recipient address: %s", to)
	}

	ki, err := s.wallet.findKey(from)
	if err != nil {
		return "", err
	}
	if ki == nil {
		return "", xerrors.Errorf("the address: %s, private %w,", from, ErrKeyInfoNotFound)
	}

	client, err := ethclient.Dial(s.rpcUrl)
	if err != nil {
		return "", err
	}
	defer client.Close()

	sendAmount, err := convertToWei(amount)
	if err != nil {
		return "", err
	}

	txHash, err := sendTransaction(ctx, client, ki.PrivateKey, to, sendAmount)
	if err != nil {
		return "", err
	}
	return txHash, nil
}

func sendTransaction(ctx context.Context, client *ethclient.Client, privateKeyHex, to string, amount *big.Int) (string, error) {
	privateKey, err := crypto.HexToECDSA(strings.TrimPrefix(privateKeyHex, "0x"))
	if err != nil {
		return "", xerrors.Errorf("parsing private key: %w", err)
	}
	fromAddress := crypto.PubkeyToAddress(privateKey.PublicKey)

	nonce, err := client.PendingNonceAt(ctx, fromAddress)
	if err != nil {
		return "", err
	}
	gasPrice, err := client.SuggestGasPrice(ctx)
	if err != nil {
		return "", err
	}
	chainID, err := client.NetworkID(ctx)
	if err != nil {
		return "", err
	}

	tx := types.NewTransaction(nonce, common.HexToAddress(to), amount, 21000, gasPrice, nil)
	signedTx, err := types.SignTx(tx, types.NewEIP155Signer(chainID), privateKey)
	if err != nil {
		return "", err
	}
	if err = client.SendTransaction(ctx, signedTx); err != nil {
		return "", err
	}
	return signedTx.Hash().Hex(), nil
}

func convertToWei(ethValue float64) (*big.Int, error) {
	ethFloat := new(big.Float).SetFloat64(ethValue)
	weiConversion := new(big.Float).SetFloat64(1e18)
	weiFloat := new(big.Float).Mul(ethFloat, weiConversion)
	weiInt, acc := new(big.Int).SetString(weiFloat.Text('f', 0), 10)
	if !acc {
		return nil, fmt.Errorf("conversion to Wei failed")
	}
	return weiInt, nil
}
