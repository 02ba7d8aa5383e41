package encrypter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kb-integration/pkg/encrypter"
)

func TestEncryptDecrypt(t *testing.T) {
	enc, err := encrypter.New("local-dev-key")
	require.NoError(t, err)

	sealed, err := enc.Encrypt("ghp_example")
	require.NoError(t, err)
	assert.NotContains(t, sealed, "ghp_example")

	plain, err := enc.Decrypt(sealed)
	require.NoError(t, err)
	assert.Equal(t, "ghp_example", plain)
}

func TestEncrypt_UsesFreshNonce(t *testing.T) {
	enc, _ := encrypter.New("local-dev-key")

	a, _ := enc.Encrypt("same")
	b, _ := enc.Encrypt("same")
	assert.NotEqual(t, a, b)
}

func TestDecrypt_Rejects(t *testing.T) {
	enc, _ := encrypter.New("key-a")
	other, _ := encrypter.New("key-b")

	sealed, _ := enc.Encrypt("secret")

	_, err := other.Decrypt(sealed)
	assert.ErrorIs(t, err, encrypter.ErrMalformedCipher)

	_, err = enc.Decrypt("%%not-base64%%")
	assert.ErrorIs(t, err, encrypter.ErrMalformedCipher)

	_, err = enc.Decrypt("c2hvcnQ=")
	assert.ErrorIs(t, err, encrypter.ErrMalformedCipher)
}

func TestNew_RequiresKey(t *testing.T) {
	_, err := encrypter.New("")
	assert.ErrorIs(t, err, encrypter.ErrMissingKey)
}
