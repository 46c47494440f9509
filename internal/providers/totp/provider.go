// Package totp computes the TOTP codes of login secrets.
//
// A secret is either a bare base32 key, using the RFC 6238 defaults
// (SHA1, 6 digits, 30 second period), or an otpauth://totp/ URI whose
// algorithm, digits and period parameters override them.
package totp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pquerna/otp"
	otptotp "github.com/pquerna/otp/totp"
)

// ErrInvalidSecret is returned for secrets that are neither base32 keys nor
// otpauth TOTP URIs.
var ErrInvalidSecret = errors.New("invalid totp secret")

const (
	defaultPeriod = 30
	uriScheme     = "otpauth://"
)

// Key is a parsed TOTP secret.
type Key struct {
	Secret string
	Opts   otptotp.ValidateOpts
}

// Provider computes TOTP codes.
type Provider struct {
	now func() time.Time
}

// NewProvider creates a provider using the wall clock.
func NewProvider() *Provider {
	return &Provider{now: time.Now}
}

// GetCode returns the current code of secret.
func (p *Provider) GetCode(ctx context.Context, secret string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	key, err := Parse(secret)
	if err != nil {
		return "", err
	}
	code, err := otptotp.GenerateCodeCustom(key.Secret, p.now(), key.Opts)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidSecret, err)
	}
	return code, nil
}

// Remaining returns the number of seconds the current code of secret stays
// valid.
func (p *Provider) Remaining(secret string) (int, error) {
	key, err := Parse(secret)
	if err != nil {
		return 0, err
	}
	period := int64(key.Opts.Period)
	return int(period - p.now().Unix()%period), nil
}

// Parse reads a base32 key or an otpauth URI.
func Parse(secret string) (Key, error) {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return Key{}, ErrInvalidSecret
	}

	if !strings.HasPrefix(strings.ToLower(secret), uriScheme) {
		return Key{
			Secret: normalize(secret),
			Opts: otptotp.ValidateOpts{
				Period:    defaultPeriod,
				Digits:    otp.DigitsSix,
				Algorithm: otp.AlgorithmSHA1,
			},
		}, nil
	}

	k, err := otp.NewKeyFromURL(secret)
	if err != nil {
		return Key{}, fmt.Errorf("%w: %v", ErrInvalidSecret, err)
	}
	if k.Type() != "totp" || k.Secret() == "" {
		return Key{}, fmt.Errorf("%w: not a totp uri", ErrInvalidSecret)
	}
	digits := k.Digits()
	if digits < 1 || digits > 10 {
		digits = otp.DigitsSix
	}
	period := k.Period()
	if period == 0 {
		period = defaultPeriod
	}
	return Key{
		Secret: normalize(k.Secret()),
		Opts: otptotp.ValidateOpts{
			Period:    uint(period),
			Digits:    digits,
			Algorithm: k.Algorithm(),
		},
	}, nil
}

// normalize drops the separators people paste keys with.
func normalize(secret string) string {
	return strings.ToUpper(strings.NewReplacer(" ", "", "-", "", "=", "").Replace(secret))
}
