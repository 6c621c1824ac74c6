package wallet

import (
	"context"
	"strings"
	"testing"
)

// throwaway key, never funded
const testPrivateKey = "fad9c8855b740a0b7ed4c221dbad0f33a83a49cad6b3fe8d5817ac83d38b6a19"

func TestWalletImportAndList(t *testing.T) {
	w, err := NewWallet(NewMemKeyStore())
	if err != nil {
		t.Fatal(err)
	}

	addr, err := w.WalletImport(context.Background(), &KeyInfo{PrivateKey: testPrivateKey})
	if err != nil {
		t.Fatal(err)
	}
	if !reAddress.MatchString(addr) {
		t.Errorf("derived address %q is not a valid address", addr)
	}

	if _, err = w.WalletImport(context.Background(), &KeyInfo{PrivateKey: testPrivateKey}); err != ErrKeyExists {
		t.Errorf("importing the same key twice: got %v, want ErrKeyExists", err)
	}

	addrs, err := w.WalletList(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(addrs) != 1 || addrs[0] != addr {
		t.Errorf("WalletList = %v, want [%s]", addrs, addr)
	}

	ki, err := w.findKey(addr)
	if err != nil {
		t.Fatal(err)
	}
	if ki == nil || ki.PrivateKey != testPrivateKey {
		t.Error("findKey did not return the imported key")
	}
}

func TestWalletImportEmptyKey(t *testing.T) {
	w, _ := NewWallet(NewMemKeyStore())
	if _, err := w.WalletImport(context.Background(), &KeyInfo{}); err == nil {
		t.Error("importing an empty key must fail")
	}
}

func TestWalletDelete(t *testing.T) {
	w, _ := NewWallet(NewMemKeyStore())
	addr, err := w.WalletImport(context.Background(), &KeyInfo{PrivateKey: testPrivateKey})
	if err != nil {
		t.Fatal(err)
	}

	if err = w.WalletDelete(context.Background(), addr); err != nil {
		t.Fatal(err)
	}
	addrs, _ := w.WalletList(context.Background())
	if len(addrs) != 0 {
		t.Errorf("WalletList after delete = %v, want empty", addrs)
	}
}

func TestConvertToWei(t *testing.T) {
	cases := []struct {
		eth  float64
		want string
	}{
		{1, "1000000000000000000"},
		{0.0294, "29400000000000000"},
		{0, "0"},
	}
	for _, tc := range cases {
		wei, err := convertToWei(tc.eth)
		if err != nil {
			t.Fatal(err)
		}
		if wei.String() != tc.want {
			t.Errorf("convertToWei(%v) = %s, want %s", tc.eth, wei, tc.want)
		}
	}
}

func TestSimulatedSenderReceipts(t *testing.T) {
	sender := NewSimulatedSender()

	first, err := sender.Send(context.Background(), "0xfrom", "0xto", 0.0294)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(first, "0x") || len(first) != 66 {
		t.Errorf("receipt %q is not a 32-byte hex hash", first)
	}

	second, err := sender.Send(context.Background(), "0xfrom", "0xto", 0.0294)
	if err != nil {
		t.Fatal(err)
	}
	if first == second {
		t.Error("simulated receipts must not repeat")
	}
}

func TestEthSenderRejectsBadRecipient(t *testing.T) {
	w, _ := NewWallet(NewMemKeyStore())
	sender := NewEthSender("http://localhost:8545", w)

	if _, err := sender.Send(context.Background(), "0xfrom", "not-an-address", 1); err == nil {
		t.Error("expected an error for a malformed recipient address")
	}
}
