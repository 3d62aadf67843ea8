package probe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// referenceSymbols is the exact set the Bitmessage client resolves, in
// manifest order. The embedded manifest must never drift from it.
var referenceSymbols = []string{
	// ssl
	"SSL_new", "SSL_free", "SSL_accept", "SSL_connect",
	"SSL_read", "SSL_write", "SSL_shutdown",
	// crypto
	"RAND_bytes", "BN_new", "BN_free", "BN_bn2bin", "BN_bin2bn",
	"EC_KEY_new_by_curve_name", "EC_KEY_free", "EC_KEY_generate_key",
	"EVP_aes_256_cfb128", "EVP_aes_128_cfb128",
	"EVP_CIPHER_CTX_new", "EVP_CIPHER_CTX_free",
	"EVP_CipherInit_ex", "EVP_CipherUpdate", "EVP_CipherFinal_ex",
	// ecc
	"EC_GROUP_new_by_curve_name", "EC_POINT_new", "EC_POINT_free",
	"ECDSA_sign", "ECDSA_verify", "ECDH_compute_key",
	// digest
	"EVP_sha256", "EVP_sha512", "EVP_sha1", "HMAC",
	// key
	"EC_KEY_get0_private_key", "EC_KEY_get0_public_key",
	"EC_KEY_set_private_key", "EC_KEY_set_public_key",
}

var referenceCandidates = []string{
	"/home/libressl-2.5.0/build/ssl/libssl.so",
	"/home/libressl-2.5.0/build/crypto/libcrypto.so",
	"/usr/lib/libssl.so",
	"/usr/lib/libcrypto.so",
	"/usr/local/lib/libssl.so",
	"/usr/local/lib/libcrypto.so",
	"/usr/lib/libssl.so.26.0",
	"/usr/lib/libcrypto.so.26.0",
	"/usr/lib/libssl.so.25.0",
	"/usr/lib/libcrypto.so.25.0",
}

func TestLoadManifest_ReferenceSymbols(t *testing.T) {
	m, err := LoadManifest()
	require.NoError(t, err)

	assert.Equal(t, referenceSymbols, m.Symbols.Flatten())
}

func TestLoadManifest_CandidatesInScanOrder(t *testing.T) {
	m, err := LoadManifest()
	require.NoError(t, err)

	assert.Equal(t, referenceCandidates, m.Candidates)
}

func TestSymbolGroups_FlattenOrder(t *testing.T) {
	g := SymbolGroups{
		SSL:    []string{"a"},
		Crypto: []string{"b", "c"},
		ECC:    []string{"d"},
		Digest: []string{"e"},
		Key:    []string{"f"},
	}
	assert.Equal(t, []string{"a", "b", "c", "d", "e", "f"}, g.Flatten())
}

func TestParseManifest_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"invalid yaml", ":\n  - ["},
		{"no symbols", "candidates: [/usr/lib/libssl.so]"},
		{"no candidates", "symbols:\n  ssl: [SSL_new]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseManifest([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}
