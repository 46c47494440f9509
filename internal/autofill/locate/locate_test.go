package locate

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cozy/keys-autofill/internal/types"
)

func page(fields ...*types.Field) *types.PageDetails {
	for i, f := range fields {
		f.ElementNumber = i
		if f.OpID == "" {
			f.OpID = fmt.Sprintf("__%d", i)
		}
		if f.TagName == "" {
			f.TagName = "input"
		}
	}
	return &types.PageDetails{
		Forms:  map[string]types.Form{"form1": {OpID: "form1"}},
		Fields: fields,
	}
}

func visible(f *types.Field) *types.Field {
	f.Viewable = true
	return f
}

func TestLoadPasswordFields(t *testing.T) {
	strict := Tier{}
	relaxed := Tier{CanBeHidden: true, CanBeReadOnly: true}

	t.Run("scenario A", func(t *testing.T) {
		p := page(
			visible(&types.Field{HTMLID: "user_email", Type: "text", Form: "form1"}),
			visible(&types.Field{HTMLID: "pwd", Type: "password", Form: "form1"}),
		)
		got := LoadPasswordFields(p, strict, false)
		require.Len(t, got, 1)
		assert.Equal(t, "pwd", got[0].HTMLID)
	})

	t.Run("text input named like a password", func(t *testing.T) {
		p := page(
			visible(&types.Field{HTMLName: "user_password", Type: "text"}),
			visible(&types.Field{HTMLName: "password_hint", Type: "text"}),
		)
		got := LoadPasswordFields(p, strict, false)
		require.Len(t, got, 1)
		assert.Equal(t, "user_password", got[0].HTMLName)
	})

	t.Run("hidden and readonly need the relaxed tier", func(t *testing.T) {
		p := page(
			&types.Field{HTMLID: "hidden", Type: "password"},
			visible(&types.Field{HTMLID: "ro", Type: "password", Readonly: true}),
		)
		assert.Empty(t, LoadPasswordFields(p, strict, false))
		assert.Len(t, LoadPasswordFields(p, relaxed, false), 2)
		assert.Len(t, LoadPasswordFieldsTiered(p, Tiers(false, false), false), 2)
		assert.Empty(t, LoadPasswordFieldsTiered(p, Tiers(true, false), false))
	})

	t.Run("disabled never qualifies", func(t *testing.T) {
		p := page(visible(&types.Field{Type: "password", Disabled: true}))
		assert.Empty(t, LoadPasswordFields(p, relaxed, true))
	})

	t.Run("must be empty", func(t *testing.T) {
		p := page(
			visible(&types.Field{HTMLID: "a", Type: "password", Value: "x"}),
			visible(&types.Field{HTMLID: "b", Type: "password", Value: "  "}),
		)
		got := LoadPasswordFields(p, Tier{MustBeEmpty: true}, false)
		require.Len(t, got, 1)
		assert.Equal(t, "b", got[0].HTMLID)
	})

	t.Run("new password needs opt in", func(t *testing.T) {
		p := page(visible(&types.Field{Type: "password", AutoCompleteType: "new-password"}))
		assert.Empty(t, LoadPasswordFields(p, strict, false))
		assert.Len(t, LoadPasswordFields(p, strict, true), 1)
	})

	t.Run("excluded and disqualified", func(t *testing.T) {
		p := page(
			visible(&types.Field{HTMLName: "search-box", Type: "password"}),
			visible(&types.Field{HTMLID: "captcha_password", Type: "password"}),
			visible(&types.Field{TagName: "span", Type: "password"}),
			visible(&types.Field{HTMLName: "password", Type: "hidden"}),
		)
		assert.Empty(t, LoadPasswordFields(p, relaxed, true))
	})
}

func TestFindUsernameField(t *testing.T) {
	l := NewLocator(nil)

	t.Run("closest preceding candidate by default", func(t *testing.T) {
		p := page(
			visible(&types.Field{HTMLID: "first", Type: "text", Form: "form1"}),
			visible(&types.Field{HTMLID: "user_email", Type: "email", Form: "form1"}),
			visible(&types.Field{HTMLID: "pwd", Type: "password", Form: "form1"}),
		)
		got := l.FindUsernameField(p, p.Fields[2], Tier{}, false)
		require.NotNil(t, got)
		assert.Equal(t, "user_email", got.HTMLID)
	})

	t.Run("exact match stops the scan", func(t *testing.T) {
		p := page(
			visible(&types.Field{HTMLID: "username", Type: "text", Form: "form1"}),
			visible(&types.Field{HTMLID: "my-login-box", Type: "text", Form: "form1"}),
			visible(&types.Field{HTMLID: "pwd", Type: "password", Form: "form1"}),
		)
		got := l.FindUsernameField(p, p.Fields[2], Tier{}, false)
		require.NotNil(t, got)
		assert.Equal(t, "username", got.HTMLID)
	})

	t.Run("other form ignored unless withoutForm", func(t *testing.T) {
		p := page(
			visible(&types.Field{HTMLID: "user", Type: "text", Form: "other"}),
			visible(&types.Field{HTMLID: "pwd", Type: "password", Form: "form1"}),
		)
		assert.Nil(t, l.FindUsernameField(p, p.Fields[1], Tier{}, false))
		assert.NotNil(t, l.FindUsernameField(p, p.Fields[1], Tier{}, true))
	})

	t.Run("fields after the password are never returned", func(t *testing.T) {
		p := page(
			visible(&types.Field{HTMLID: "pwd", Type: "password", Form: "form1"}),
			visible(&types.Field{HTMLID: "username", Type: "text", Form: "form1"}),
		)
		assert.Nil(t, l.FindUsernameField(p, p.Fields[0], Tier{}, false))
	})

	t.Run("disabled, search and hidden", func(t *testing.T) {
		p := page(
			visible(&types.Field{HTMLID: "email", Type: "email", Form: "form1", Disabled: true}),
			visible(&types.Field{HTMLName: "search-box", Type: "text", Form: "form1"}),
			&types.Field{HTMLID: "login", Type: "text", Form: "form1"},
			visible(&types.Field{HTMLID: "pwd", Type: "password", Form: "form1"}),
		)
		assert.Nil(t, l.FindUsernameField(p, p.Fields[3], Tier{}, false))
		got := l.FirstUsernameField(p, p.Fields[3], Tiers(false, false), false)
		require.NotNil(t, got)
		assert.Equal(t, "login", got.HTMLID)
	})
}

func TestFindUsernameFieldNeverAtOrAfterPassword(t *testing.T) {
	l := NewLocator(nil)
	rng := rand.New(rand.NewSource(7))
	kinds := []string{"text", "email", "tel", "password", "checkbox", "number"}
	ids := []string{"username", "email", "user", "login", "q", "name", ""}

	for run := 0; run < 200; run++ {
		n := 2 + rng.Intn(8)
		fields := make([]*types.Field, n)
		for i := range fields {
			fields[i] = &types.Field{
				Type:     kinds[rng.Intn(len(kinds))],
				HTMLID:   ids[rng.Intn(len(ids))],
				Viewable: rng.Intn(4) > 0,
				Readonly: rng.Intn(5) == 0,
				Form:     "form1",
			}
		}
		p := page(fields...)
		for _, pw := range LoadPasswordFieldsTiered(p, Tiers(false, false), true) {
			for _, tier := range Tiers(false, false) {
				if u := l.FindUsernameField(p, pw, tier, rng.Intn(2) == 0); u != nil {
					assert.Less(t, u.ElementNumber, pw.ElementNumber)
				}
				if totp := l.FindTotpField(p, pw, tier, false); totp != nil {
					assert.Less(t, totp.ElementNumber, pw.ElementNumber)
				}
			}
		}
	}
}

func TestFindTotpField(t *testing.T) {
	l := NewLocator(nil)
	p := page(
		visible(&types.Field{HTMLID: "user", Type: "email", Form: "form1"}),
		visible(&types.Field{HTMLID: "code", Type: "number", AutoCompleteType: "one-time-code", Form: "form1"}),
		visible(&types.Field{HTMLID: "extra", Type: "text", Form: "form1"}),
		visible(&types.Field{HTMLID: "pwd", Type: "password", Form: "form1"}),
	)
	got := l.FindTotpField(p, p.Fields[3], Tier{}, false)
	require.NotNil(t, got)
	assert.Equal(t, "code", got.HTMLID)
}

func TestFuzzyFields(t *testing.T) {
	p := page(
		visible(&types.Field{HTMLName: "login_email", Type: "email"}),
		visible(&types.Field{HTMLName: "search-email", Type: "email"}),
		visible(&types.Field{HTMLName: "email", Type: "email", Disabled: true}),
		&types.Field{HTMLName: "email", Type: "email"},
		visible(&types.Field{Placeholder: "Enter your 2FA code", Type: "text"}),
		visible(&types.Field{HTMLName: "otp", Type: "number", AutoCompleteType: "one-time-code"}),
	)

	usernames := FuzzyUsernameFields(p)
	require.Len(t, usernames, 1)
	assert.Equal(t, "login_email", usernames[0].HTMLName)

	totps := FuzzyTotpFields(p)
	require.Len(t, totps, 2)
	assert.Equal(t, "Enter your 2FA code", totps[0].Placeholder)
}
