package authentication

// keystring.go keeps the CLI session in the OS keyring.
import (
	"encoding/json"
	"errors"
	"time"

	"github.com/zalando/go-keyring"
)

const (
	serviceName = "musify-cli"
	tokenKey    = "auth_tokens"
)

// ErrNotSignedIn is returned when no usable session is stored.
var ErrNotSignedIn = errors.New("not signed in, run `musifyCLI auth sign-in` first")

type StoredCredentials struct {
	AccessToken string `json:"access_token"`
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
	Role        string `json:"role"`
	ExpiresAt   int64  `json:"expires_at"`
}

// Expired reports whether the access token is past its expiry at now.
func (c *StoredCredentials) Expired(now time.Time) bool {
	return c.ExpiresAt > 0 && now.Unix() >= c.ExpiresAt
}

func StoreTokens(creds *StoredCredentials) error {
	data, err := json.Marshal(creds)
	if err != nil {
		return err
	}
	return keyring.Set(serviceName, tokenKey, string(data))
}

func GetTokens() (*StoredCredentials, error) {
	value, err := keyring.Get(serviceName, tokenKey)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil, ErrNotSignedIn
		}
		return nil, err
	}

	var creds StoredCredentials
	if err := json.Unmarshal([]byte(value), &creds); err != nil {
		return nil, err
	}
	return &creds, nil
}

// ActiveToken returns the stored access token if it has not expired.
func ActiveToken() (string, error) {
	creds, err := GetTokens()
	if err != nil {
		return "", err
	}
	if creds.AccessToken == "" || creds.Expired(time.Now()) {
		return "", ErrNotSignedIn
	}
	return creds.AccessToken, nil
}

func DeleteTokens() error {
	err := keyring.Delete(serviceName, tokenKey)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	return err
}
