// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	_ "github.com/33cn/ccr/system/crypto/init"
	"github.com/33cn/ccr/types"
	"github.com/ethereum/go-ethereum/common/hexutil"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testEncoded = "0x43f903a9f9016322843b9aca00830f424094780675d71ebe3d3ef05fae379063071147dd3aee80b8c4236eb5a70000000000000000000000000000000000000000000000000000000000000002000000000000000000000000000000000000000000000000000000000000006000000000000000000000000000000000000000000000000000000000000000a00000000000000000000000000000000000000000000000000000000000000001000000000000000000000000780675d71ebe3d3ef05fae379063071147dd3aee0000000000000000000000000000000000000000000000000000000000000000947d83e42b214b75bf1f3e57adc3415da573d97bffa089ee438ca379ac86b0478517d43a6a9e078cf51543acac0facd68aff313e2ff18306793280a01567c31c4bebcd1061edbaf22dd73fd40ff30f9a3ba4525037f23b2dc61e3473a02dce69262794a499d525c5d58edde33e06a5847b4d321d396b743700a2fd71a8b90240000000000000000000000000000000000000000000000000000000000000002000000000000000000000000000000000000000000000000000000000000001ea7b22747873223a5b7b2274797065223a22307830222c226e6f6e6365223a22307830222c22746f223a22307863613135656439393030366236623130363038653236313631373361313561343766383933613661222c22676173223a22307835323038222c226761735072696365223a22307864222c226d61785072696f72697479466565506572476173223a6e756c6c2c226d6178466565506572476173223a6e756c6c2c2276616c7565223a223078336538222c22696e707574223a223078222c2276223a2230786366323838222c2272223a22307863313764616536383866396262393632376563636439626636393133626661346539643232383139353134626539323066343435653263666165343366323965222c2273223a22307835633337646235386263376161336465306535656638613432353261366632653464313462613639666338323631636333623630633962643236613634626265222c2268617368223a22307862643263653662653964333461366132393934373239346662656137643461343834646663363565643963383931396533626539366131353634363630656265227d5d2c2270657263656e74223a31302c224d617463684964223a5b302c302c302c302c302c302c302c302c302c302c302c302c302c302c302c305d7d00000000000000000000000000000000000000000000"

func run(t *testing.T, cmd *cobra.Command, args ...string) (string, string) {
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute())
	return out.String(), errOut.String()
}

func TestSignCmd(t *testing.T) {
	out, errOut := run(t, SignCmd(), "-c", "testdata/ccr.toml")
	require.Empty(t, errOut)

	var res SignedResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, testEncoded, hexutil.Encode(res.Envelope))
	key, err := ethcrypto.HexToECDSA("1111111111111111111111111111111111111111111111111111111111111111")
	require.NoError(t, err)
	assert.Equal(t, ethcrypto.PubkeyToAddress(key.PublicKey), res.From)

	signed, err := types.DecodeRequest(res.Envelope)
	require.NoError(t, err)
	sender, err := signed.Sender()
	require.NoError(t, err)
	assert.Equal(t, res.From, sender)
	digest, err := signed.Digest()
	require.NoError(t, err)
	assert.Equal(t, res.Digest, digest)

	_, errOut = run(t, SignCmd(), "-c", "testdata/ccr.toml", "-a", "0x7d83e42b214b75bf1f3e57adc3415da573d97bff")
	assert.Contains(t, errOut, "ErrUnknownSigner")

	_, errOut = run(t, SignCmd(), "-c", "testdata/missing.toml")
	assert.NotEmpty(t, errOut)
}

func TestDigestCmd(t *testing.T) {
	out, errOut := run(t, DigestCmd(), "-c", "testdata/ccr.toml")
	require.Empty(t, errOut)

	signed, err := types.DecodeRequest(hexutil.MustDecode(testEncoded))
	require.NoError(t, err)
	digest, err := signed.Digest()
	require.NoError(t, err)
	assert.Equal(t, digest.Hex(), strings.TrimSpace(out))
}

func TestDecodeCmd(t *testing.T) {
	out, errOut := run(t, DecodeCmd(), "-d", testEncoded)
	require.Empty(t, errOut)
	var res DecodedResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	require.NotNil(t, res.Sender)
	require.NotNil(t, res.Record.Nonce)
	assert.Equal(t, hexutil.Uint64(0x22), *res.Record.Nonce)
	assert.NotEmpty(t, res.ConfidentialInputs)

	signed, err := types.DecodeRequest(hexutil.MustDecode(testEncoded))
	require.NoError(t, err)
	record, err := signed.EncodeRecord()
	require.NoError(t, err)
	out, errOut = run(t, DecodeCmd(), "-d", hexutil.Encode(record)[2:])
	require.Empty(t, errOut)
	var recordRes DecodedResult
	require.NoError(t, json.Unmarshal([]byte(out), &recordRes))
	assert.Equal(t, res.Sender, recordRes.Sender)
	assert.Equal(t, res.Digest, recordRes.Digest)
	assert.Empty(t, recordRes.ConfidentialInputs)

	_, errOut = run(t, DecodeCmd(), "-d", "0x44c0")
	assert.Contains(t, errOut, "unsupported transaction type")
}

func TestResponseCmd(t *testing.T) {
	out, errOut := run(t, ResponseCmd(), "-f", "testdata/response.json")
	require.Empty(t, errOut)
	assert.Contains(t, out, "0x0000000000000000000000000000000000000000000000000000000001ccb310")
	assert.Contains(t, out, "0x03493869959c866713c33669ca118e774a30a0e5")
}

func TestGenKeyCmd(t *testing.T) {
	for _, driver := range []string{"secp256k1", "secp256k1eth"} {
		out, errOut := run(t, GenKeyCmd(), "-t", driver)
		require.Empty(t, errOut)
		var res map[string]string
		require.NoError(t, json.Unmarshal([]byte(out), &res))
		assert.Equal(t, driver, res["driver"])
		assert.Len(t, res["privKey"], 66)
	}
	_, errOut := run(t, GenKeyCmd(), "-t", "none")
	assert.Contains(t, errOut, "unknown driver")
}
