package scraper

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/text/encoding/charmap"

	"github.com/cozy/keys-autofill/internal/types"
)

const loginHTML = `<!DOCTYPE html>
<html>
<head><title> Sign in </title><style>.x{}</style></head>
<body>
<form id="login" action="/session" method="POST">
  <label for="email">Email <b>address</b></label>
  <input id="email" name="user[email]" type="email" autocomplete="Username" placeholder="you@example.com">
  <label>Password <input id="pwd" name="password" type="password" maxlength="64"></label>
  <input type="hidden" name="csrf" value="abc">
  <input type="checkbox" name="remember"> Remember me
  <button type="submit">Go</button>
</form>
<input id="search" type="search" style="display: none">
<div hidden><input id="ghost" type="text"></div>
</body>
</html>`

func collect(t *testing.T, page string) *types.PageDetails {
	t.Helper()
	details, err := NewCollector().Collect([]byte(page), "https://example.com/login")
	require.NoError(t, err)
	return details
}

func TestCollectLoginPage(t *testing.T) {
	details := collect(t, loginHTML)

	assert.Equal(t, "Sign in", details.Title)
	assert.Equal(t, "https://example.com/login", details.URL)
	assert.Equal(t, details.URL, details.DocumentURL)
	_, err := uuid.Parse(details.DocumentUUID)
	assert.NoError(t, err)

	require.Len(t, details.Forms, 1)
	form := details.Forms["__form__0"]
	assert.Equal(t, "login", form.HTMLID)
	assert.Equal(t, "/session", form.HTMLAction)
	assert.Equal(t, "post", form.HTMLMethod)

	require.Len(t, details.Fields, 5)
	for i, f := range details.Fields {
		assert.Equal(t, i, f.ElementNumber)
	}

	email := details.Fields[0]
	assert.Equal(t, "__0", email.OpID)
	assert.Equal(t, "input", email.TagName)
	assert.Equal(t, "email", email.Type)
	assert.Equal(t, "user[email]", email.HTMLName)
	assert.Equal(t, "username", email.AutoCompleteType)
	assert.Equal(t, "Email address", email.LabelTag)
	assert.Equal(t, "__form__0", email.Form)
	assert.True(t, email.Viewable)
	assert.Equal(t, DefaultMaxLength, email.MaxLength)

	pwd := details.Fields[1]
	assert.Equal(t, "password", pwd.Type)
	assert.Equal(t, "Password", pwd.LabelTag)
	assert.Equal(t, 64, pwd.MaxLength)

	remember := details.Fields[2]
	assert.Equal(t, "checkbox", remember.Type)
	assert.Equal(t, "Remember me", remember.LabelRight)

	search := details.Fields[3]
	assert.Equal(t, "search", search.HTMLID)
	assert.Empty(t, search.Form)
	assert.False(t, search.Viewable)

	assert.False(t, details.Fields[4].Viewable)
}

func TestCollectLabels(t *testing.T) {
	page := `<html><body><form>
<table>
  <tr><td>Card number</td><td>Expiry</td></tr>
  <tr><td><input id="cc"></td><td><input id="exp"></td></tr>
</table>
<div><span>First name</span><input id="first"><em>as on passport</em></div>
<input id="last" aria-label="Family name" data-label="last">
</form></body></html>`

	details := collect(t, page)
	require.Len(t, details.Fields, 4)

	assert.Equal(t, "Card number", details.Fields[0].LabelTop)
	assert.Equal(t, "Expiry", details.Fields[1].LabelTop)

	first := details.Fields[2]
	assert.Equal(t, "First name", first.LabelLeft)
	assert.Equal(t, "as on passport", first.LabelRight)
	assert.Empty(t, first.LabelTop)

	last := details.Fields[3]
	assert.Equal(t, "Family name", last.LabelAria)
	assert.Equal(t, "last", last.LabelData)
}

func TestCollectSelectAndState(t *testing.T) {
	page := `<form id="f"></form>
<select id="state" form="f">
  <option value="">--</option>
  <option value="CA" selected>California</option>
  <option>Oregon</option>
</select>
<fieldset disabled><input id="locked"></fieldset>
<input id="ro" readonly>
<textarea id="notes">hello</textarea>
<span data-bwautofill id="pin">  1 2 </span>
<input id="skip" data-bwignore>`

	details := collect(t, page)
	require.Len(t, details.Fields, 5)

	state := details.Fields[0]
	assert.Equal(t, "select-one", state.Type)
	assert.Equal(t, "__form__0", state.Form)
	assert.Equal(t, "CA", state.Value)
	assert.Equal(t, [][]string{{"", "--"}, {"CA", "California"}, {"Oregon", "Oregon"}}, state.SelectInfo.Options)

	assert.True(t, details.Fields[1].Disabled)
	assert.True(t, details.Fields[2].Readonly)

	notes := details.Fields[3]
	assert.Equal(t, "textarea", notes.Type)
	assert.Equal(t, "hello", notes.Value)

	span := details.Fields[4]
	assert.True(t, span.IsSpan())
	assert.Equal(t, "1 2", span.Value)
}

func TestCollectCharset(t *testing.T) {
	encoded, err := charmap.ISO8859_15.NewEncoder().String(
		`<html><head><meta charset="iso-8859-15"></head><body><label for="v">Ville é à è ç</label><input id="v"></body></html>`)
	require.NoError(t, err)

	details, err := NewCollector().Collect([]byte(encoded), "https://example.fr")
	require.NoError(t, err)
	require.Len(t, details.Fields, 1)
	assert.Equal(t, "Ville é à è ç", details.Fields[0].LabelTag)
}

func TestDetectCharset(t *testing.T) {
	assert.Equal(t, "utf-8", DetectCharset([]byte("<p>héllo</p>")))
	assert.Equal(t, "iso-8859-15", DetectCharset([]byte("<meta charset=\"iso-8859-15\"><p>\xe9t\xe9</p>")))
}

func TestCollectErrors(t *testing.T) {
	_, err := NewCollector().Collect(nil, "https://example.com")
	assert.Error(t, err)

	_, err = NewCollector().Collect(make([]byte, MaxHTMLSize+1), "https://example.com")
	assert.Error(t, err)
}

func TestCollectLogs(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	c := NewCollector().WithLogger(zap.New(core))
	c.now = func() time.Time { return time.UnixMilli(1700000000000) }

	details, err := c.Collect([]byte(loginHTML), "https://example.com/login")
	require.NoError(t, err)
	assert.EqualValues(t, 1700000000000, details.CollectedTimestamp)

	entries := logs.FilterMessage("Page details collected").All()
	require.Len(t, entries, 1)
	assert.EqualValues(t, 5, entries[0].ContextMap()["fields"])
}
