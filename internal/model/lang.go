package model

import (
	"fmt"

	"golang.org/x/text/language"
)

// Lang is a language code accepted by the x-rpc-language header.
type Lang string

// Languages accepted by HoYoLAB.
const (
	LangZhCN Lang = "zh-cn"
	LangZhTW Lang = "zh-tw"
	LangDeDE Lang = "de-de"
	LangEnUS Lang = "en-us"
	LangEsES Lang = "es-es"
	LangFrFR Lang = "fr-fr"
	LangIDID Lang = "id-id"
	LangItIT Lang = "it-it"
	LangJaJP Lang = "ja-jp"
	LangKoKR Lang = "ko-kr"
	LangPtPT Lang = "pt-pt"
	LangRuRU Lang = "ru-ru"
	LangThTH Lang = "th-th"
	LangViVN Lang = "vi-vn"
	LangTrTR Lang = "tr-tr"
)

// supportedLangs is ordered so that the first entry is the matcher fallback.
var supportedLangs = []Lang{
	LangEnUS, LangZhCN, LangZhTW, LangDeDE, LangEsES, LangFrFR, LangIDID, LangItIT,
	LangJaJP, LangKoKR, LangPtPT, LangRuRU, LangThTH, LangViVN, LangTrTR,
}

var langMatcher = func() language.Matcher {
	tags := make([]language.Tag, 0, len(supportedLangs))
	for _, l := range supportedLangs {
		tags = append(tags, language.MustParse(string(l)))
	}
	return language.NewMatcher(tags)
}()

// SupportedLangs returns every language the APIs accept.
func SupportedLangs() []Lang {
	out := make([]Lang, len(supportedLangs))
	copy(out, supportedLangs)
	return out
}

// ParseLang maps a BCP 47 tag such as "ja", "en-GB" or "zh-Hant" onto the
// closest supported language.
func ParseLang(s string) (Lang, error) {
	tag, err := language.Parse(s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedLang, s)
	}
	_, idx, conf := langMatcher.Match(tag)
	if conf == language.No {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedLang, s)
	}
	return supportedLangs[idx], nil
}
