package locale

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeLanguage(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{input: "zh", want: LanguageChinese},
		{input: "zh-CN", want: LanguageChinese},
		{input: "ZH_hans", want: LanguageChinese},
		{input: "en", want: LanguageEnglish},
		{input: "en-US", want: LanguageEnglish},
		{input: "fr", want: ""},
		{input: "", want: ""},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, NormalizeLanguage(tc.input), "NormalizeLanguage(%q)", tc.input)
	}
}

func TestLanguageFromAcceptLanguage(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{input: "zh-CN,zh;q=0.9", want: LanguageChinese},
		{input: "en-US,en;q=0.9", want: LanguageEnglish},
		{input: "en-GB", want: LanguageEnglish},
		{input: "fr-FR,fr;q=0.9", want: ""},
		{input: "", want: ""},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, LanguageFromAcceptLanguage(tc.input), "LanguageFromAcceptLanguage(%q)", tc.input)
	}
}

func TestPreferenceForLanguage(t *testing.T) {
	pref := PreferenceForLanguage("zh")
	assert.Equal(t, LanguageChinese, pref.Language)
	assert.Equal(t, "zh_CN", pref.Locale)
	assert.Equal(t, "zh-CN", pref.HTMLLang)

	fallback := PreferenceForLanguage("")
	assert.Equal(t, LanguageEnglish, fallback.Language)
	assert.Equal(t, "en", fallback.HTMLLang)
}

func TestPick(t *testing.T) {
	assert.Equal(t, "english", Pick("en", "english", "chinese"))
	assert.Equal(t, "chinese", Pick("zh", "english", "chinese"))
	assert.Equal(t, "english", Pick("fr", "english", "chinese"))
	assert.Equal(t, "english", Pick("zh", "english", ""))
}
