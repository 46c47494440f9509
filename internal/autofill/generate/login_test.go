package generate

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/cozy/keys-autofill/internal/types"
)

func loginCipher(login *types.Login) *types.Cipher {
	return &types.Cipher{ID: "c1", Record: login}
}

func TestLoginScenarioA(t *testing.T) {
	p := page(
		visible(&types.Field{HTMLID: "user_email", Form: "form1"}),
		visible(&types.Field{HTMLID: "pwd", Type: "password", Form: "form1"}),
	)
	cipher := loginCipher(&types.Login{Username: "alice@example.com", Password: "s3cret"})
	req := NewRequest(p, cipher, types.FillOptions{TabURL: p.URL})

	script := NewLogin(Deps{}).Generate(context.Background(), req)
	require.NotNil(t, script)

	assert.Equal(t, []types.Action{
		{Kind: types.ActionClick, OpID: "__0"},
		{Kind: types.ActionFocus, OpID: "__0"},
		{Kind: types.ActionFill, OpID: "__0", Value: "alice@example.com"},
		{Kind: types.ActionClick, OpID: "__1"},
		{Kind: types.ActionFocus, OpID: "__1"},
		{Kind: types.ActionFill, OpID: "__1", Value: "s3cret"},
		{Kind: types.ActionFocus, OpID: "__1"},
	}, script.Script)
	assert.False(t, script.UntrustedIframe)
}

func TestLoginScenarioC(t *testing.T) {
	p := page(visible(&types.Field{HTMLID: "email"}))
	cipher := loginCipher(&types.Login{Username: "alice@example.com", Password: "s3cret"})

	t.Run("username only", func(t *testing.T) {
		req := NewRequest(p, cipher, types.FillOptions{TabURL: p.URL})
		script := NewLogin(Deps{}).Generate(context.Background(), req)

		assert.Equal(t, []types.Action{{Kind: types.ActionFill, OpID: "__0", Value: "alice@example.com"}}, script.Fills())
	})

	t.Run("skip username only fill", func(t *testing.T) {
		req := NewRequest(p, cipher, types.FillOptions{TabURL: p.URL, SkipUsernameOnlyFill: true})
		script := NewLogin(Deps{}).Generate(context.Background(), req)

		assert.Empty(t, script.Fills())
	})
}

func TestLoginScenarioD(t *testing.T) {
	p := page(
		visible(&types.Field{HTMLID: "username", Form: "form1", Disabled: true}),
		visible(&types.Field{HTMLID: "pwd", Type: "password", Form: "form1", Disabled: true}),
	)
	req := NewRequest(p, loginCipher(&types.Login{Username: "alice", Password: "pw"}), types.FillOptions{})

	script := NewLogin(Deps{}).Generate(context.Background(), req)
	assert.Empty(t, script.Fills())
}

func TestLoginSearchFieldNeverUsername(t *testing.T) {
	p := page(
		visible(&types.Field{HTMLName: "search-box", Placeholder: "email", Form: "form1"}),
		visible(&types.Field{HTMLID: "pwd", Type: "password", Form: "form1"}),
	)
	req := NewRequest(p, loginCipher(&types.Login{Username: "alice", Password: "pw"}), types.FillOptions{})

	script := NewLogin(Deps{}).Generate(context.Background(), req)
	assert.Equal(t, map[string]string{"__1": "pw"}, fills(script))
}

func TestLoginWithoutForm(t *testing.T) {
	p := page(
		visible(&types.Field{HTMLID: "login"}),
		visible(&types.Field{HTMLID: "pwd", Type: "password"}),
		visible(&types.Field{HTMLID: "pwd2", Type: "password"}),
	)
	req := NewRequest(p, loginCipher(&types.Login{Username: "alice", Password: "pw"}), types.FillOptions{})

	script := NewLogin(Deps{}).Generate(context.Background(), req)
	assert.Equal(t, map[string]string{"__0": "alice", "__1": "pw"}, fills(script))
}

func TestLoginOnlyEmptyFields(t *testing.T) {
	p := page(
		visible(&types.Field{HTMLID: "username", Form: "form1", Value: "bob"}),
		visible(&types.Field{HTMLID: "pwd", Type: "password", Form: "form1"}),
	)
	req := NewRequest(p, loginCipher(&types.Login{Username: "alice", Password: "pw"}), types.FillOptions{
		OnlyEmptyFields:   true,
		OnlyVisibleFields: true,
	})

	script := NewLogin(Deps{}).Generate(context.Background(), req)
	assert.Equal(t, map[string]string{"__1": "pw"}, fills(script))
}

func TestLoginNewPassword(t *testing.T) {
	p := page(
		visible(&types.Field{HTMLID: "username", Form: "form1"}),
		visible(&types.Field{HTMLID: "pwd", Type: "password", Form: "form1", AutoCompleteType: "new-password"}),
	)
	cipher := loginCipher(&types.Login{Username: "alice", Password: "pw"})

	req := NewRequest(p, cipher, types.FillOptions{})
	assert.NotContains(t, fills(NewLogin(Deps{}).Generate(context.Background(), req)), "__1")

	req = NewRequest(p, cipher, types.FillOptions{FillNewPassword: true})
	assert.Equal(t, "pw", fills(NewLogin(Deps{}).Generate(context.Background(), req))["__1"])
}

func TestLoginTotp(t *testing.T) {
	p := page(visible(&types.Field{HTMLName: "totpcode"}))
	cipher := loginCipher(&types.Login{Username: "alice", Totp: "JBSWY3DPEHPK3PXP"})

	t.Run("fills the current code", func(t *testing.T) {
		totp := new(mockTotp)
		totp.On("GetCode", mock.Anything, "JBSWY3DPEHPK3PXP").Return("123456", nil).Once()

		req := NewRequest(p, cipher, types.FillOptions{AllowTotpAutofill: true})
		script := NewLogin(Deps{Totp: totp}).Generate(context.Background(), req)

		assert.Equal(t, map[string]string{"__0": "123456"}, fills(script))
		totp.AssertExpectations(t)
	})

	t.Run("not allowed", func(t *testing.T) {
		totp := new(mockTotp)
		req := NewRequest(p, cipher, types.FillOptions{})
		script := NewLogin(Deps{Totp: totp}).Generate(context.Background(), req)

		assert.Empty(t, script.Fills())
		totp.AssertNotCalled(t, "GetCode", mock.Anything, mock.Anything)
	})

	t.Run("provider error is logged", func(t *testing.T) {
		core, logs := observer.New(zapcore.WarnLevel)
		totp := new(mockTotp)
		totp.On("GetCode", mock.Anything, mock.Anything).Return("", errors.New("bad secret"))

		req := NewRequest(p, cipher, types.FillOptions{AllowTotpAutofill: true})
		script := NewLogin(Deps{Log: zap.New(core), Totp: totp}).Generate(context.Background(), req)

		assert.Empty(t, script.Fills())
		require.Equal(t, 1, logs.Len())
		assert.Equal(t, "c1", logs.All()[0].ContextMap()["cipher"])
	})
}

func TestLoginSavedURLsAndIframe(t *testing.T) {
	never := types.UriMatchNever
	login := &types.Login{
		Username: "alice",
		Password: "pw",
		URIs: []types.LoginURI{
			{URI: "https://accounts.example.com"},
			{URI: "https://old.example.net", Match: &never},
		},
	}
	p := page(
		visible(&types.Field{HTMLID: "username", Form: "form1"}),
		visible(&types.Field{HTMLID: "pwd", Type: "password", Form: "form1"}),
	)
	p.URL = "https://evil.test/frame"

	req := NewRequest(p, loginCipher(login), types.FillOptions{TabURL: "https://example.com"})
	script := NewLogin(Deps{}).Generate(context.Background(), req)

	assert.Equal(t, []string{"https://accounts.example.com"}, script.SavedURLs)
	assert.True(t, script.UntrustedIframe)
}

func TestLoginIgnoresOtherRecords(t *testing.T) {
	req := NewRequest(page(), &types.Cipher{Record: &types.Card{}}, types.FillOptions{})
	assert.Nil(t, NewLogin(Deps{}).Generate(context.Background(), req))
}

func TestLoginNothingToFill(t *testing.T) {
	req := NewRequest(page(), loginCipher(&types.Login{Username: "alice", Password: "pw"}), types.FillOptions{})

	script := NewLogin(Deps{}).Generate(context.Background(), req)
	require.NotNil(t, script)
	assert.True(t, script.Empty())
}
