// Package integration provides end-to-end HTTP tests against a real
// PostgreSQL or MySQL database, exercising the full admin/wallet surface
// through net/http/httptest.
package integration

import (
	"bytes"
	"context"
	"crypto"
	"crypto/hmac"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"database/sql"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"encoding/pem"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"regexp"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/allisson/signvault/internal/app"
	"github.com/allisson/signvault/internal/config"
	"github.com/allisson/signvault/internal/testutil"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"),
	)
}

// integrationTestContext holds the wiring shared by every scenario test.
type integrationTestContext struct {
	container *app.Container
	db        *sql.DB
	server    *httptest.Server
}

func setupIntegrationTest(t *testing.T, driver string) *integrationTestContext {
	t.Helper()

	var db *sql.DB
	if driver == "mysql" {
		db = testutil.SetupMySQLDB(t)
	} else {
		db = testutil.SetupPostgresDB(t)
	}

	masterKeyPath := writeMasterKeyFile(t)

	cfg := &config.Config{
		LogLevel:      "error",
		Port:          0,
		MetricsPort:   0,
		MasterKeyPath: masterKeyPath,
		DBDriver:      driver,
		Database: config.DatabaseConfig{
			User:     "testuser",
			Password: "testpassword",
			DBName:   "testdb",
			Host:     "localhost",
			Port:     testDBPort(driver),
		},
	}

	container := app.NewContainer(cfg)
	t.Cleanup(func() {
		_ = container.Shutdown(context.Background())
		testutil.TeardownDB(t, db)
	})

	httpSrv, err := container.HTTPServer()
	require.NoError(t, err, "failed to build http server")

	testServer := httptest.NewServer(httpSrv.GetHandler())
	t.Cleanup(testServer.Close)

	return &integrationTestContext{container: container, db: db, server: testServer}
}

func testDBPort(driver string) int {
	if driver == "mysql" {
		return 3307
	}
	return 5433
}

// writeMasterKeyFile writes a freshly generated AES-256 master key to a
// temp file in the same URL-safe-no-pad base64 form the create-master-key
// command emits.
func writeMasterKeyFile(t *testing.T) string {
	t.Helper()

	raw := make([]byte, 32)
	_, err := rand.Read(raw)
	require.NoError(t, err)
	key := base64.RawURLEncoding.EncodeToString(raw)

	f, err := os.CreateTemp(t.TempDir(), "master-key-*")
	require.NoError(t, err)
	_, err = f.WriteString(key)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	return f.Name()
}

type createClientResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Credentials struct {
		ApiKey string `json:"api_key"`
		Secret string `json:"secret"`
	} `json:"credentials"`
}

func createClient(t *testing.T, baseURL, name string) createClientResponse {
	t.Helper()

	body, err := json.Marshal(map[string]string{"name": name})
	require.NoError(t, err)

	resp, err := http.Post(baseURL+"/admin/client", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var out createClientResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// signedRequest builds an HTTP request against the wallet plane with valid
// x-api-key/x-timestamp/x-signature headers for the given method/path/body.
func signedRequest(t *testing.T, baseURL, apiKey, secret, method, path, body string) *http.Request {
	t.Helper()

	timestamp := strconv.FormatInt(time.Now().Unix(), 10)
	message := timestamp + method + path + body

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(message))
	signature := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	var reader io.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	}

	req, err := http.NewRequest(method, baseURL+path, reader)
	require.NoError(t, err)
	req.Header.Set("x-api-key", apiKey)
	req.Header.Set("x-timestamp", timestamp)
	req.Header.Set("x-signature", signature)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	return req
}

var maskedApiKeyPattern = regexp.MustCompile(`^[0-9a-f]{3}\*\*\*$`)

// TestIntegration_S1_CreateThenLookup covers: creating a client returns its
// plaintext secret once; looking it up afterward by name returns only the
// masked api key.
func TestIntegration_S1_CreateThenLookup(t *testing.T) {
	for _, driver := range []string{"postgres", "mysql"} {
		t.Run(driver, func(t *testing.T) {
			ctx := setupIntegrationTest(t, driver)

			created := createClient(t, ctx.server.URL, "acme")
			require.NotEmpty(t, created.Credentials.Secret)

			resp, err := http.Get(ctx.server.URL + "/admin/client?name=acme")
			require.NoError(t, err)
			defer resp.Body.Close()
			require.Equal(t, http.StatusOK, resp.StatusCode)

			var out createClientResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
			require.Equal(t, "acme", out.Name)
			require.Empty(t, out.Credentials.Secret)
			require.Regexp(t, maskedApiKeyPattern, out.Credentials.ApiKey)
		})
	}
}

// TestIntegration_S2_HMACHappyPath covers a correctly signed wallet request
// succeeding.
func TestIntegration_S2_HMACHappyPath(t *testing.T) {
	for _, driver := range []string{"postgres", "mysql"} {
		t.Run(driver, func(t *testing.T) {
			ctx := setupIntegrationTest(t, driver)

			client := createClient(t, ctx.server.URL, "acme")

			req := signedRequest(t, ctx.server.URL, client.Credentials.ApiKey, client.Credentials.Secret,
				http.MethodPost, "/wallet/register", "")

			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			defer resp.Body.Close()
			require.Equal(t, http.StatusCreated, resp.StatusCode)
		})
	}
}

// TestIntegration_S3_HMACBadSignature covers a tampered signature being
// rejected with 401.
func TestIntegration_S3_HMACBadSignature(t *testing.T) {
	for _, driver := range []string{"postgres", "mysql"} {
		t.Run(driver, func(t *testing.T) {
			ctx := setupIntegrationTest(t, driver)

			client := createClient(t, ctx.server.URL, "acme")

			req := signedRequest(t, ctx.server.URL, client.Credentials.ApiKey, client.Credentials.Secret,
				http.MethodPost, "/wallet/register", "")

			badSig := req.Header.Get("x-signature")
			decoded, err := base64.StdEncoding.DecodeString(badSig)
			require.NoError(t, err)
			decoded[0] ^= 0x01
			req.Header.Set("x-signature", base64.StdEncoding.EncodeToString(decoded))

			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			defer resp.Body.Close()
			require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		})
	}
}

// TestIntegration_S4_MissingHeader covers a request missing x-api-key
// being rejected with 401.
func TestIntegration_S4_MissingHeader(t *testing.T) {
	for _, driver := range []string{"postgres", "mysql"} {
		t.Run(driver, func(t *testing.T) {
			ctx := setupIntegrationTest(t, driver)

			client := createClient(t, ctx.server.URL, "acme")

			req := signedRequest(t, ctx.server.URL, client.Credentials.ApiKey, client.Credentials.Secret,
				http.MethodPost, "/wallet/register", "")
			req.Header.Del("x-api-key")

			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			defer resp.Body.Close()
			require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		})
	}
}

// TestIntegration_S5_SignRoundTrip covers registering a signing identity
// and using it to produce a signature that verifies under the returned
// public key.
func TestIntegration_S5_SignRoundTrip(t *testing.T) {
	for _, driver := range []string{"postgres", "mysql"} {
		t.Run(driver, func(t *testing.T) {
			ctx := setupIntegrationTest(t, driver)

			client := createClient(t, ctx.server.URL, "acme")

			registerReq := signedRequest(t, ctx.server.URL, client.Credentials.ApiKey, client.Credentials.Secret,
				http.MethodPost, "/wallet/register", "")
			registerResp, err := http.DefaultClient.Do(registerReq)
			require.NoError(t, err)
			defer registerResp.Body.Close()
			require.Equal(t, http.StatusCreated, registerResp.StatusCode)

			var registered struct {
				UserID string `json:"user_id"`
				PubKey string `json:"pub_key"`
			}
			require.NoError(t, json.NewDecoder(registerResp.Body).Decode(&registered))

			signPath := fmt.Sprintf("/wallet/%s/sign", registered.UserID)
			signBody := `{"message":"hello"}`
			signReq := signedRequest(t, ctx.server.URL, client.Credentials.ApiKey, client.Credentials.Secret,
				http.MethodPost, signPath, signBody)
			signResp, err := http.DefaultClient.Do(signReq)
			require.NoError(t, err)
			defer signResp.Body.Close()
			require.Equal(t, http.StatusOK, signResp.StatusCode)

			var signed struct {
				Message   string `json:"message"`
				Signature string `json:"signature"`
			}
			require.NoError(t, json.NewDecoder(signResp.Body).Decode(&signed))
			require.Equal(t, "hello", signed.Message)

			block, _ := pem.Decode([]byte(registered.PubKey))
			require.NotNil(t, block, "pub_key must be a PEM block")
			pubKeyAny, err := x509.ParsePKIXPublicKey(block.Bytes)
			require.NoError(t, err)
			pubKey, ok := pubKeyAny.(*rsa.PublicKey)
			require.True(t, ok, "pub_key must be an RSA public key")

			sigBytes, err := hex.DecodeString(signed.Signature)
			require.NoError(t, err)

			digest := sha256.Sum256([]byte(signed.Message))
			err = rsa.VerifyPKCS1v15(pubKey, crypto.SHA256, digest[:], sigBytes)
			require.NoError(t, err, "signature must verify under PKCS#1-v1.5-SHA256")
		})
	}
}

// TestIntegration_S6_EnvelopeTamper covers a corrupted encrypted_secret
// column causing the next authenticated request for that client to fail
// with 500 (AEAD tag failure), never silently falling back to a 401.
func TestIntegration_S6_EnvelopeTamper(t *testing.T) {
	for _, driver := range []string{"postgres", "mysql"} {
		t.Run(driver, func(t *testing.T) {
			ctx := setupIntegrationTest(t, driver)

			client := createClient(t, ctx.server.URL, "acme")
			tamperEncryptedSecret(t, ctx.db, driver, client.Credentials.ApiKey)

			req := signedRequest(t, ctx.server.URL, client.Credentials.ApiKey, client.Credentials.Secret,
				http.MethodPost, "/wallet/register", "")

			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			defer resp.Body.Close()
			require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		})
	}
}

// tamperEncryptedSecret flips the last byte of the stored encrypted_secret
// column so the next decryption attempt fails its AEAD tag check.
func tamperEncryptedSecret(t *testing.T, db *sql.DB, driver, apiKey string) {
	t.Helper()

	selectQuery := "SELECT encrypted_secret FROM credentials WHERE api_key = $1"
	updateQuery := "UPDATE credentials SET encrypted_secret = $1 WHERE api_key = $2"
	if driver == "mysql" {
		selectQuery = "SELECT encrypted_secret FROM credentials WHERE api_key = ?"
		updateQuery = "UPDATE credentials SET encrypted_secret = ? WHERE api_key = ?"
	}

	var encryptedSecret string
	require.NoError(t, db.QueryRow(selectQuery, apiKey).Scan(&encryptedSecret))
	require.NotEmpty(t, encryptedSecret)

	tampered := []byte(encryptedSecret)
	tampered[len(tampered)-1] ^= 0x01

	_, err := db.Exec(updateQuery, string(tampered), apiKey)
	require.NoError(t, err)
}
