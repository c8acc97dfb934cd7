// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	crand "crypto/rand"
	"io"
	"sync"
)

var gRandInfo = newRandInfo()

// MixEntropy 混入额外的随机源，可以多次调用
func MixEntropy(seedBytes []byte) {
	gRandInfo.mixEntropy(seedBytes)
}

// CRandBytes os 随机数与混入的种子共同生成
func CRandBytes(numBytes int) []byte {
	b := make([]byte, numBytes)
	if _, err := io.ReadFull(gRandInfo, b); err != nil {
		panic("Panic on a Crisis" + err.Error())
	}
	return b
}

// randInfo aes-ctr keystream keyed by the mixed seed, xored over crypto/rand
type randInfo struct {
	mtx    sync.Mutex
	seed   [32]byte
	reader io.Reader
}

func newRandInfo() *randInfo {
	ri := &randInfo{}
	ri.mixEntropy(osRandBytes(32))
	return ri
}

func osRandBytes(n int) []byte {
	b := make([]byte, n)
	if _, err := crand.Read(b); err != nil {
		panic("Panic on a Crisis" + err.Error())
	}
	return b
}

func (ri *randInfo) mixEntropy(seedBytes []byte) {
	ri.mtx.Lock()
	defer ri.mtx.Unlock()
	hash := Keccak256(ri.seed[:], seedBytes)
	copy(ri.seed[:], hash)
	block, err := aes.NewCipher(ri.seed[:])
	if err != nil {
		panic("Error creating AES256 cipher: " + err.Error())
	}
	stream := cipher.NewCTR(block, osRandBytes(aes.BlockSize))
	ri.reader = &cipher.StreamReader{S: stream, R: crand.Reader}
}

func (ri *randInfo) Read(b []byte) (int, error) {
	ri.mtx.Lock()
	defer ri.mtx.Unlock()
	return ri.reader.Read(b)
}
