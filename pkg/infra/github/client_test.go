package github_test

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"testing"

	"github.com/m-mizutani/gt"

	githubinfra "github.com/collie-dev/collie/pkg/infra/github"
)

func testPrivateKey(t *testing.T) []byte {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	gt.NoError(t, err)
	return pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	})
}

func TestNewClient(t *testing.T) {
	t.Run("valid private key", func(t *testing.T) {
		client, err := githubinfra.NewClient(1234, 5678, testPrivateKey(t))
		gt.NoError(t, err)
		gt.NotNil(t, client)
	})

	t.Run("invalid private key", func(t *testing.T) {
		_, err := githubinfra.NewClient(1234, 5678, []byte("not a pem key"))
		gt.Error(t, err)
	})
}
