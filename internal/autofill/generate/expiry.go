package generate

import (
	"strconv"
	"strings"

	"github.com/cozy/keys-autofill/internal/autofill/keywords"
	"github.com/cozy/keys-autofill/internal/autofill/match"
	"github.com/cozy/keys-autofill/internal/types"
)

// formatExpMonth adapts the card month to the field. Selects of 12 or 13
// options are indexed by month; a 13th option is a leading placeholder
// unless the first option has a value and the last one does not. Inputs
// hinting "mm" or limited to two characters get a zero-padded month.
func formatExpMonth(f *types.Field, month string) string {
	if f.HasOptions() {
		opts := f.SelectInfo.Options
		n, err := strconv.Atoi(strings.TrimSpace(month))
		if err != nil {
			return month
		}
		index := -1
		switch len(opts) {
		case 12:
			index = n - 1
		case 13:
			if f.SelectInfo.Value(0) != "" && f.SelectInfo.Value(12) == "" {
				index = n - 1
			} else {
				index = n
			}
		}
		if index >= 0 && index < len(opts) && len(opts[index]) > 1 {
			return opts[index][1]
		}
		return month
	}

	if (match.FieldAttrsContain(f, "mm") || f.MaxLength == 2) && len(month) == 1 {
		return "0" + month
	}
	return month
}

// formatExpYear adapts the card year to the field. Select options are
// matched on value or text, on a two-digit text equal to the year's
// suffix, or on the text following ": ". Inputs hinting "yyyy" (or four
// characters) get a four-digit year, inputs hinting "yy" (or two
// characters) a two-digit one.
func formatExpYear(f *types.Field, year string) string {
	if f.HasOptions() {
		for _, o := range f.SelectInfo.Options {
			if len(o) < 2 {
				if len(o) == 1 && o[0] == year {
					return year
				}
				continue
			}
			value, text := o[0], o[1]
			if value == year || text == year {
				return text
			}
			if len(text) == 2 && len(year) == 4 && text == year[2:] {
				return text
			}
			if i := strings.Index(text, ":"); i > -1 && len(text) > i+1 {
				val := strings.TrimPrefix(text[i+1:], " ")
				if strings.TrimSpace(val) != "" && val == year {
					return text
				}
			}
		}
		return year
	}

	switch {
	case match.FieldAttrsContain(f, "yyyy") || f.MaxLength == 4:
		if len(year) == 2 {
			return "20" + year
		}
	case match.FieldAttrsContain(f, "yy") || f.MaxLength == 2:
		if len(year) == 4 {
			return year[2:]
		}
	}
	return year
}

// formatExp builds a combined expiry value. The field's attributes are
// searched for a month/year pattern, per locale, in the order
// M/YYYY M/YY YYYY/M YY/M, then with "-", then without separator. In
// htmlID and htmlName "-" and "_" separate words, so a pattern found there
// with "-" is written with "/". The default is YYYY-MM.
func formatExp(f *types.Field, month, year string) string {
	fullMonth := month
	if len(fullMonth) < 2 {
		fullMonth = "0" + fullMonth
	}
	fullMonth = fullMonth[len(fullMonth)-2:]

	fullYear := year
	partYear := ""
	switch len(year) {
	case 2:
		partYear = year
		fullYear = "20" + year
	case 4:
		partYear = year[2:]
	}

	// layout returns the expiry parts in field order when contains finds
	// a pattern of locale i joined by sep.
	layout := func(contains func(*types.Field, string) bool, i int, sep string) (string, string, bool) {
		mm := keywords.MonthAbbr[i]
		long := keywords.YearAbbrLong[i]
		short := keywords.YearAbbrShort[i]
		switch {
		case contains(f, mm+sep+long):
			return fullMonth, fullYear, true
		case partYear != "" && contains(f, mm+sep+short):
			return fullMonth, partYear, true
		case contains(f, long+sep+mm):
			return fullYear, fullMonth, true
		case partYear != "" && contains(f, short+sep+mm):
			return partYear, fullMonth, true
		}
		return "", "", false
	}

	for i := range keywords.MonthAbbr {
		for _, sep := range []string{"/", "-", ""} {
			if first, second, ok := layout(match.FieldLabelsContain, i, sep); ok {
				return first + sep + second
			}
			if first, second, ok := layout(match.FieldIdentifiersContain, i, sep); ok {
				if sep == "-" {
					return first + "/" + second
				}
				return first + sep + second
			}
		}
	}
	return fullYear + "-" + fullMonth
}
