// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

// Config 配置
type Config struct {
	Title   string         `json:"title,omitempty"`
	Log     *Log           `json:"log,omitempty"`
	Signer  *SignerConfig  `json:"signer,omitempty"`
	Request *RequestConfig `json:"request,omitempty"`
}

// Log 日志配置
type Log struct {
	// 日志级别，支持debug(dbug)/info/warn/error(eror)/crit
	Loglevel        string `json:"loglevel,omitempty"`
	LogConsoleLevel string `json:"logConsoleLevel,omitempty"`
	// 日志文件名，可带目录，所有生成的日志文件都放到此目录下
	LogFile string `json:"logFile,omitempty"`
	// 单个日志文件的最大值（单位：兆）
	MaxFileSize uint32 `json:"maxFileSize,omitempty"`
	// 最多保存的历史日志文件个数
	MaxBackups uint32 `json:"maxBackups,omitempty"`
	// 最多保存的历史日志消息（单位：天）
	MaxAge uint32 `json:"maxAge,omitempty"`
	// 日志文件名是否使用本地时间（否则使用UTC时间）
	LocalTime bool `json:"localTime,omitempty"`
	// 历史日志文件是否压缩（压缩格式为gz）
	Compress bool `json:"compress,omitempty"`
	// 是否打印调用源文件和行号
	CallerFile bool `json:"callerFile,omitempty"`
	// 是否打印调用方法
	CallerFunction bool `json:"callerFunction,omitempty"`
}

// SignerConfig 签名身份配置
type SignerConfig struct {
	// 签名驱动名称，默认 secp256k1eth
	Driver string `json:"driver,omitempty"`
	// 十六进制私钥
	Keys []string `json:"keys,omitempty"`
	// 默认签名地址，为空时取第一个身份
	Default string `json:"default,omitempty"`
	// geth keystore 目录
	KeystoreDir string `json:"keystoreDir,omitempty"`
	// keystore 账户地址
	Accounts   []string `json:"accounts,omitempty"`
	Passphrase string   `json:"passphrase,omitempty"`
	// 远程签名失败的重试次数，0 表示不重试
	Retries uint64 `json:"retries,omitempty"`
}

// RequestConfig 请求字段，数值可以是十进制或者 0x 开头的十六进制，空字符串表示未设置
type RequestConfig struct {
	Nonce              string `json:"nonce,omitempty"`
	Gas                string `json:"gas,omitempty"`
	GasPrice           string `json:"gasPrice,omitempty"`
	ChainID            string `json:"chainID,omitempty"`
	To                 string `json:"to,omitempty"`
	Value              string `json:"value,omitempty"`
	Input              string `json:"input,omitempty"`
	KettleAddress      string `json:"kettleAddress,omitempty"`
	ConfidentialInputs string `json:"confidentialInputs,omitempty"`
}
