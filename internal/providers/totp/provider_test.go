package totp

import (
	"context"
	"testing"
	"time"

	"github.com/pquerna/otp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RFC 6238 test keys.
const (
	sha1Key   = "GEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQ"
	sha256Key = "GEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQGEZA"
)

func at(unix int64) *Provider {
	return &Provider{now: func() time.Time { return time.Unix(unix, 0) }}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name   string
		secret string
		unix   int64
		want   string
	}{
		{"bare key", sha1Key, 59, "287082"},
		{"lowercase with spaces", "gezd gnbv gy3t qojq gezd gnbv gy3t qojq", 59, "287082"},
		{"later step", sha1Key, 1111111109, "081804"},
		{"uri eight digits", "otpauth://totp/Example:alice?secret=" + sha1Key + "&digits=8", 59, "94287082"},
		{"uri sha256", "otpauth://totp/Example:alice?secret=" + sha256Key + "&algorithm=SHA256&digits=8", 59, "46119246"},
		{"uri period", "otpauth://totp/Example:alice?secret=" + sha1Key + "&period=60", 59, "755224"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, err := at(tt.unix).GetCode(context.Background(), tt.secret)
			require.NoError(t, err)
			assert.Equal(t, tt.want, code)
		})
	}
}

func TestGetCodeInvalid(t *testing.T) {
	for _, secret := range []string{"", "   ", "not base32 !", "otpauth://hotp/x?secret=" + sha1Key + "&counter=1", "otpauth://totp/x"} {
		_, err := at(59).GetCode(context.Background(), secret)
		assert.ErrorIs(t, err, ErrInvalidSecret, secret)
	}
}

func TestGetCodeCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := at(59).GetCode(ctx, sha1Key)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParse(t *testing.T) {
	key, err := Parse("otpauth://totp/Example:alice?secret=" + sha1Key + "&algorithm=SHA512&digits=7&period=45")
	require.NoError(t, err)
	assert.Equal(t, sha1Key, key.Secret)
	assert.Equal(t, uint(45), key.Opts.Period)
	assert.Equal(t, otp.Digits(7), key.Opts.Digits)
	assert.Equal(t, otp.AlgorithmSHA512, key.Opts.Algorithm)
}

func TestRemaining(t *testing.T) {
	left, err := at(59).Remaining(sha1Key)
	require.NoError(t, err)
	assert.Equal(t, 1, left)

	left, err = at(60).Remaining("otpauth://totp/x?secret=" + sha1Key + "&period=45")
	require.NoError(t, err)
	assert.Equal(t, 30, left)
}
