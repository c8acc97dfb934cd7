// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package wallet 多身份签名器, 按地址选择身份对机密计算请求签名
package wallet

import (
	"bytes"
	"context"
	"errors"
	"runtime"
	"sort"
	"sync"

	"github.com/33cn/ccr/common/log"
	"github.com/33cn/ccr/types"
	"github.com/ethereum/go-ethereum/common"
	pkgerr "github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

var walletlog = log.New("module", "wallet")

var (
	// ErrUnknownSigner no identity is registered for the address
	ErrUnknownSigner = errors.New("ErrUnknownSigner")
	// ErrSignerMismatch the produced signature does not recover to the identity address
	ErrSignerMismatch = errors.New("ErrSignerMismatch")
	// ErrNoDefaultSigner Sign called before any default identity was set
	ErrNoDefaultSigner = errors.New("ErrNoDefaultSigner")
	// ErrNilRequest 请求为空
	ErrNilRequest = errors.New("ErrNilRequest")
)

// Wallet signer over a set of identities keyed by address.
// The table is only locked for lookups and updates, signing runs outside the lock.
type Wallet struct {
	mtx         sync.RWMutex
	identities  map[common.Address]Identity
	defaultAddr *common.Address
	batchLimit  int
}

// New def becomes the default identity when not nil
func New(def Identity, others ...Identity) *Wallet {
	wallet := &Wallet{
		identities: make(map[common.Address]Identity),
		batchLimit: runtime.NumCPU(),
	}
	if def != nil {
		wallet.Register(def)
		addr := def.Address()
		wallet.defaultAddr = &addr
	}
	for _, id := range others {
		wallet.Register(id)
	}
	return wallet
}

// Register adds or replaces the identity for its address
func (wallet *Wallet) Register(id Identity) {
	if id == nil {
		return
	}
	addr := id.Address()
	wallet.mtx.Lock()
	defer wallet.mtx.Unlock()
	wallet.identities[addr] = id
	walletlog.Debug("Register", "addr", addr)
}

// SetDefault 设置默认签名地址
func (wallet *Wallet) SetDefault(addr common.Address) error {
	wallet.mtx.Lock()
	defer wallet.mtx.Unlock()
	if _, ok := wallet.identities[addr]; !ok {
		return pkgerr.Wrap(ErrUnknownSigner, addr.Hex())
	}
	wallet.defaultAddr = &addr
	return nil
}

// DefaultSigner 默认签名地址
func (wallet *Wallet) DefaultSigner() (common.Address, bool) {
	wallet.mtx.RLock()
	defer wallet.mtx.RUnlock()
	if wallet.defaultAddr == nil {
		return common.Address{}, false
	}
	return *wallet.defaultAddr, true
}

// SetBatchLimit bounds the concurrent signatures of SignBatch, n <= 0 means no bound
func (wallet *Wallet) SetBatchLimit(n int) {
	wallet.mtx.Lock()
	defer wallet.mtx.Unlock()
	wallet.batchLimit = n
}

// IsSignerFor 是否持有该地址的身份
func (wallet *Wallet) IsSignerFor(addr common.Address) bool {
	wallet.mtx.RLock()
	defer wallet.mtx.RUnlock()
	_, ok := wallet.identities[addr]
	return ok
}

// Identities registered addresses in byte order
func (wallet *Wallet) Identities() []common.Address {
	wallet.mtx.RLock()
	addrs := make([]common.Address, 0, len(wallet.identities))
	for addr := range wallet.identities {
		addrs = append(addrs, addr)
	}
	wallet.mtx.RUnlock()
	sort.Slice(addrs, func(i, j int) bool {
		return bytes.Compare(addrs[i][:], addrs[j][:]) < 0
	})
	return addrs
}

func (wallet *Wallet) lookup(addr common.Address) (Identity, bool) {
	wallet.mtx.RLock()
	defer wallet.mtx.RUnlock()
	id, ok := wallet.identities[addr]
	return id, ok
}

// Sign signs with the default identity
func (wallet *Wallet) Sign(ctx context.Context, req *types.ConfidentialComputeRequest) (*types.SignedConfidentialComputeRequest, error) {
	addr, ok := wallet.DefaultSigner()
	if !ok {
		return nil, ErrNoDefaultSigner
	}
	return wallet.SignAs(ctx, addr, req)
}

// SignAs signs a copy of req with the identity registered for addr.
// req itself is never modified, on any error nothing is produced.
func (wallet *Wallet) SignAs(ctx context.Context, addr common.Address, req *types.ConfidentialComputeRequest) (*types.SignedConfidentialComputeRequest, error) {
	if req == nil {
		return nil, ErrNilRequest
	}
	id, ok := wallet.lookup(addr)
	if !ok {
		return nil, pkgerr.Wrap(ErrUnknownSigner, addr.Hex())
	}
	cpy := req.Copy()
	digest, err := cpy.Digest()
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw, err := id.SignHash(ctx, digest)
	if err != nil {
		walletlog.Error("SignAs", "addr", addr, "err", err)
		return nil, err
	}
	sig, err := types.SignatureFromBytes(raw)
	if err != nil {
		walletlog.Error("SignAs", "addr", addr, "err", err)
		return nil, err
	}
	recovered, err := sig.RecoverAddress(digest)
	if err != nil {
		return nil, err
	}
	if recovered != addr {
		walletlog.Error("SignAs", "addr", addr, "recovered", recovered)
		return nil, pkgerr.Wrapf(ErrSignerMismatch, "want %s got %s", addr.Hex(), recovered.Hex())
	}
	walletlog.Debug("SignAs", "addr", addr, "digest", digest)
	return types.NewSignedRequest(cpy, sig, &addr)
}

// SignBatch signs every request with the default identity, the first failure cancels the rest.
// Results keep the order of reqs.
func (wallet *Wallet) SignBatch(ctx context.Context, reqs []*types.ConfidentialComputeRequest) ([]*types.SignedConfidentialComputeRequest, error) {
	addr, ok := wallet.DefaultSigner()
	if !ok {
		return nil, ErrNoDefaultSigner
	}
	wallet.mtx.RLock()
	limit := wallet.batchLimit
	wallet.mtx.RUnlock()

	signed := make([]*types.SignedConfidentialComputeRequest, len(reqs))
	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, req := range reqs {
		i, req := i, req
		g.Go(func() error {
			s, err := wallet.SignAs(gctx, addr, req)
			if err != nil {
				return pkgerr.Wrapf(err, "request %d", i)
			}
			signed[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return signed, nil
}
