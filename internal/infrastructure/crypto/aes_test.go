package crypto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"

func TestAESCipher_RoundTrip(t *testing.T) {
	c, err := NewAESCipher(testKey)
	require.NoError(t, err)

	sealed, err := c.Encrypt("msg91-auth-key")
	require.NoError(t, err)
	assert.NotContains(t, sealed, "msg91")

	plain, err := c.Decrypt(sealed)
	require.NoError(t, err)
	assert.Equal(t, "msg91-auth-key", plain)

	again, err := c.Encrypt("msg91-auth-key")
	require.NoError(t, err)
	assert.NotEqual(t, sealed, again, "nonce must differ per call")
}

func TestNewAESCipher_RejectsBadKeys(t *testing.T) {
	_, err := NewAESCipher("zz")
	assert.Error(t, err)

	_, err = NewAESCipher("0011")
	assert.ErrorContains(t, err, "32 bytes")
}

func TestAESCipher_DecryptErrors(t *testing.T) {
	c, err := NewAESCipher(testKey)
	require.NoError(t, err)

	_, err = c.Decrypt("not-hex")
	assert.Error(t, err)

	_, err = c.Decrypt("abcd")
	assert.ErrorIs(t, err, ErrCiphertextTooShort)

	sealed, err := c.Encrypt("secret")
	require.NoError(t, err)
	tampered := sealed[:len(sealed)-2] + strings.Repeat("0", 2)
	if tampered == sealed {
		tampered = sealed[:len(sealed)-2] + "11"
	}
	_, err = c.Decrypt(tampered)
	assert.Error(t, err)
}
