package credentials

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"strings"
	"sync"
	"testing"
)

var (
	pemOnce sync.Once
	pemKey  string
)

// testPEM returns a PKCS#8 RSA private key with real newlines.
func testPEM(t *testing.T) string {
	t.Helper()
	pemOnce.Do(func() {
		key, err := rsa.GenerateKey(rand.Reader, 2048)
		if err != nil {
			panic(err)
		}
		der, err := x509.MarshalPKCS8PrivateKey(key)
		if err != nil {
			panic(err)
		}
		pemKey = string(pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der}))
	})
	return pemKey
}

// escapedPEM returns testPEM with every newline replaced by the two
// characters backslash and n, the way keys arrive from TOML literals or env.
func escapedPEM(t *testing.T) string {
	t.Helper()
	return strings.ReplaceAll(testPEM(t), "\n", `\n`)
}

func flatSecrets(t *testing.T) map[string]any {
	t.Helper()
	return map[string]any{
		"type":           "service_account",
		"project_id":     "interviews",
		"private_key_id": "kid-1",
		"private_key":    escapedPEM(t),
		"client_email":   "recorder@interviews.iam.gserviceaccount.com",
		"client_id":      "1234567890",
		"spreadsheet":    "https://docs.google.com/spreadsheets/d/1AbC_d-9/edit#gid=0",
	}
}
