// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package init 初始化系统加密包
package init

import (
	//初始化
	_ "github.com/33cn/ccr/system/crypto/secp256k1"
	_ "github.com/33cn/ccr/system/crypto/secp256k1eth"
)
