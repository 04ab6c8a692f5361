// Command privacycashd is a manual verification aid, not a served
// network service (transport remains a non-goal): it derives two
// addresses, deposits, sends, receives, and withdraws, printing the
// resulting balances and tree root. Grounded on the teacher's
// cmd/auctiond structural idiom (flag parsing, config load, logger
// construction), replacing its auction-server loop with this single
// end-to-end pass.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

	"github.com/privacycash/protocol/internal/circuits/b2c"
	"github.com/privacycash/protocol/internal/circuits/c2b"
	"github.com/privacycash/protocol/internal/circuits/c2p"
	"github.com/privacycash/protocol/internal/circuits/p2c"
	"github.com/privacycash/protocol/internal/config"
	"github.com/privacycash/protocol/internal/contract"
	"github.com/privacycash/protocol/internal/jubjub"
	"github.com/privacycash/protocol/internal/log"
	"github.com/privacycash/protocol/internal/paramio"
)

func main() {
	configPath := flag.String("config", "privacycashd.json", "path to the JSON configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	logger, err := log.New(cfg.LogLevel, cfg.LogFile, cfg.AuditLogPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Close()

	params := paramio.NewResolver(cfg.ParamDir, logger)
	ledger := contract.New(cfg.TreeDepth, params, logger)

	if err := run(ledger, params, logger); err != nil {
		logger.Fatal("smoke test failed: %v", err)
	}
}

func randField() fr.Element {
	var e fr.Element
	if _, err := e.SetRandom(); err != nil {
		panic(err)
	}
	return e
}

func run(ledger *contract.Contract, params *paramio.Resolver, logger *log.Logger) error {
	skA := randField()
	skB := randField()
	addrA := jubjub.AddrFromSKField(skA)
	addrB := jubjub.AddrFromSKField(skB)

	// 1. Deposit 100 into A's coin pool (B2C).
	depositVa := fr.NewElement(100)
	depositPriv := b2c.Private{Rcm: randField(), R: randField(), AddrSK: skA}
	depositPub, depositAssignment := b2c.Build(depositPriv, depositVa, addrA)
	depositProof, err := params.Prove("b2c", new(b2c.Circuit), depositAssignment)
	if err != nil {
		return fmt.Errorf("deposit prove: %w", err)
	}
	if err := ledger.Deposit(depositPub, depositProof); err != nil {
		return fmt.Errorf("deposit apply: %w", err)
	}
	logger.Info("deposited %s to A's coin pool, coin=%s", depositVa.String(), depositPub.Coin.String())

	// Capture the deposit coin's authentication path now, before any
	// further coin is appended: the frontier-based tree only exposes the
	// path of the most recently inserted leaf.
	depositPath, err := ledger.PathForLastCoin()
	if err != nil {
		return fmt.Errorf("deposit path: %w", err)
	}

	// 2. Immediately withdraw A's deposit coin back to cleartext (C2B),
	// while its path is still current.
	withdrawPriv := c2b.Private{Rcm: depositPriv.Rcm, AddrSK: skA, Path: depositPath}
	withdrawPub, withdrawAssignment, err := c2b.Build(withdrawPriv, depositVa, depositVa)
	if err != nil {
		return fmt.Errorf("withdraw build: %w", err)
	}
	withdrawProof, err := params.Prove("c2b", new(c2b.Circuit), withdrawAssignment)
	if err != nil {
		return fmt.Errorf("withdraw prove: %w", err)
	}
	if err := ledger.Withdraw(addrA, withdrawPub, withdrawProof); err != nil {
		return fmt.Errorf("withdraw apply: %w", err)
	}
	logger.Info("withdrew %s back to A's public balance", depositVa.String())

	// 3. Deposit a second coin into A's pool. The send below does not use
	// it: P2C draws on A's public balance, which the withdraw credited.
	depositPriv2 := b2c.Private{Rcm: randField(), R: randField(), AddrSK: skA}
	depositPub2, depositAssignment2 := b2c.Build(depositPriv2, depositVa, addrA)
	depositProof2, err := params.Prove("b2c", new(b2c.Circuit), depositAssignment2)
	if err != nil {
		return fmt.Errorf("second deposit prove: %w", err)
	}
	if err := ledger.Deposit(depositPub2, depositProof2); err != nil {
		return fmt.Errorf("second deposit apply: %w", err)
	}

	// 4. Send 40 from A to B (P2C). Rh must stay zero: A's balance was
	// credited by the withdraw above with a zero blinding factor, and Hb
	// has to open to that exact commitment for the contract's ownership
	// check to pass.
	sendVa := fr.NewElement(40)
	sendPriv := p2c.Private{Rh: fr.Element{}, Rcm: randField(), Ba: depositVa, Va: sendVa, R: randField(), AddrSK: skA}
	sendPub, sendAssignment := p2c.Build(sendPriv, addrB, 1)
	sendProof, err := params.Prove("p2c", new(p2c.Circuit), sendAssignment)
	if err != nil {
		return fmt.Errorf("send prove: %w", err)
	}
	if err := ledger.Send(addrA, sendPub, sendProof); err != nil {
		return fmt.Errorf("send apply: %w", err)
	}
	logger.Info("sent %s from A to B, coin=%s", sendVa.String(), sendPub.Coin.String())

	sendPath, err := ledger.PathForLastCoin()
	if err != nil {
		return fmt.Errorf("send path: %w", err)
	}

	// 5. B immediately receives the sent coin (C2P), re-blinding it into
	// a fresh public-balance delta.
	receivePriv := c2p.Private{Rcm: sendPriv.Rcm, RcmNew: randField(), Va: sendVa, AddrSK: skB, Path: sendPath}
	receivePub, receiveAssignment, err := c2p.Build(receivePriv)
	if err != nil {
		return fmt.Errorf("receive build: %w", err)
	}
	receiveProof, err := params.Prove("c2p", new(c2p.Circuit), receiveAssignment)
	if err != nil {
		return fmt.Errorf("receive prove: %w", err)
	}
	if err := ledger.Receive(addrB, receivePub, receiveProof); err != nil {
		return fmt.Errorf("receive apply: %w", err)
	}
	logger.Info("B received %s", sendVa.String())

	fmt.Printf("tree root: %s\n", ledger.Root().String())
	fmt.Printf("balance(A) commitment x: %s\n", ledger.Balance(addrA).X.String())
	fmt.Printf("balance(B) commitment x: %s\n", ledger.Balance(addrB).X.String())
	return nil
}
