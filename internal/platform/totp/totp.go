// Package totp wraps time-based one-time password generation and
// verification for the two-factor login flow. Codes are 6 digits over
// 30-second steps using the standard HMAC-SHA1 derivation.
package totp

import (
	"crypto/rand"
	"encoding/base32"
	"fmt"
	"net/url"

	"github.com/pquerna/otp/totp"
)

// secretBytes is the entropy of a generated secret: 20 bytes encode to a
// 32-character base32 string, the usual authenticator-app secret length.
const secretBytes = 20

var b32 = base32.StdEncoding.WithPadding(base32.NoPadding)

// GenerateSecret returns a new cryptographically random base32 secret
// suitable for seeding a TOTP generator.
func GenerateSecret() (string, error) {
	return randomBase32(secretBytes)
}

// RandomToken returns a random base32 string with the same entropy class as
// a TOTP secret. Used for password-reset tokens and login challenges.
func RandomToken() (string, error) {
	return randomBase32(secretBytes)
}

func randomBase32(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return b32.EncodeToString(buf), nil
}

// ProvisioningURI builds the otpauth:// enrollment URI for the given secret.
// Rendering it as a QR image is the caller's concern.
func ProvisioningURI(secret, account, issuer string) string {
	v := url.Values{}
	v.Set("secret", secret)
	v.Set("issuer", issuer)
	v.Set("algorithm", "SHA1")
	v.Set("digits", "6")
	v.Set("period", "30")

	u := url.URL{
		Scheme:   "otpauth",
		Host:     "totp",
		Path:     "/" + issuer + ":" + account,
		RawQuery: v.Encode(),
	}
	return u.String()
}

// Verify reports whether code is valid for secret at the current time.
// Adjacent time steps are accepted (one step of skew either side, so a code
// stays valid for up to 90 seconds) to tolerate client clock drift.
func Verify(secret, code string) bool {
	return totp.Validate(code, secret)
}
