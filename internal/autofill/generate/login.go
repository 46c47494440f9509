package generate

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/cozy/keys-autofill/internal/autofill/locate"
	"github.com/cozy/keys-autofill/internal/types"
)

// Login fills usernames, one-time codes and passwords.
type Login struct {
	deps Deps
}

// NewLogin creates the login generator.
func NewLogin(deps Deps) *Login {
	return &Login{deps: deps.WithDefaults()}
}

func (g *Login) Generate(ctx context.Context, req *Request) *types.FillScript {
	login := req.Cipher.Login()
	if login == nil {
		return nil
	}
	opts := req.Options
	page := req.Page

	req.Script.SavedURLs = SavedURLs(login)
	req.Script.UntrustedIframe = UntrustedIframe(page.URL, login, opts)

	tiers := locate.Tiers(opts.OnlyVisibleFields, opts.OnlyEmptyFields)
	passwordFields := locate.LoadPasswordFieldsTiered(page, tiers, opts.FillNewPassword)
	wantTotp := opts.AllowTotpAutofill && login.Totp != ""

	var usernames, totps, passwords []*types.Field
	anchor := func(pw *types.Field, withoutForm bool) {
		if login.Username != "" {
			if u := g.deps.Locator.FirstUsernameField(page, pw, tiers, withoutForm); u != nil {
				usernames = append(usernames, u)
			}
		}
		if wantTotp {
			if t := g.deps.Locator.FirstTotpField(page, pw, tiers, withoutForm); t != nil {
				totps = append(totps, t)
			}
		}
	}

	for _, formKey := range sortedFormKeys(page) {
		for _, pw := range passwordFields {
			if pw.Form != formKey {
				continue
			}
			passwords = append(passwords, pw)
			anchor(pw, false)
		}
	}

	switch {
	case len(passwordFields) > 0 && len(passwords) == 0:
		// No form groups a password field: use the first one and whatever
		// precedes it.
		pw := passwordFields[0]
		passwords = append(passwords, pw)
		if pw.ElementNumber > 0 {
			anchor(pw, true)
		}
	case len(passwordFields) == 0:
		if !opts.SkipUsernameOnlyFill {
			usernames = locate.FuzzyUsernameFields(page)
		}
		if opts.AllowTotpAutofill {
			totps = locate.FuzzyTotpFields(page)
		}
	}

	for _, u := range usernames {
		FillField(req, u, login.Username)
	}
	if len(totps) > 0 && login.Totp != "" {
		g.fillTotp(ctx, req, login, totps)
	}
	for _, p := range passwords {
		FillField(req, p, login.Password)
	}

	SetFillScriptForFocus(req)
	return req.Script
}

func (g *Login) fillTotp(ctx context.Context, req *Request, login *types.Login, fields []*types.Field) {
	if g.deps.Totp == nil {
		return
	}
	var code string
	for _, f := range fields {
		if req.Filled.Has(f.OpID) {
			continue
		}
		if code == "" {
			c, err := g.deps.Totp.GetCode(ctx, login.Totp)
			if err != nil {
				g.deps.Log.Warn("Failed to compute TOTP code", zap.String("cipher", req.Cipher.ID), zap.Error(err))
				return
			}
			code = c
		}
		FillField(req, f, code)
	}
}

func sortedFormKeys(page *types.PageDetails) []string {
	keys := make([]string, 0, len(page.Forms))
	for k := range page.Forms {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
