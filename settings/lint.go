package settings

import (
	"fmt"
	"strings"

	"github.com/abadojack/whatlanggo"
	"golang.org/x/text/language"
)

// minLintText is the shortest text the language detector is given; below
// that its guesses are noise.
const minLintText = 40

// LintLanguage compares the language of the participant-facing texts with
// language_code. It only produces warnings: a mismatch is legitimate when
// the experiment is deliberately multilingual.
func LintLanguage(doc Document) []string {
	tag, err := language.Parse(doc.LanguageCode)
	if err != nil {
		return nil
	}
	base, _ := tag.Base()

	var texts []string
	for _, t := range doc.SessionConfigs {
		texts = append(texts, t.DisplayName)
	}
	for _, r := range doc.Rooms {
		texts = append(texts, r.DisplayName)
	}
	texts = append(texts, doc.DemoPageIntroHTML)
	text := strings.TrimSpace(strings.Join(texts, ". "))
	if len([]rune(text)) < minLintText {
		return nil
	}

	info := whatlanggo.Detect(text)
	if !info.IsReliable() {
		return nil
	}
	detected := info.Lang.Iso6391()
	if detected == "" || detected == base.String() {
		return nil
	}
	return []string{fmt.Sprintf(
		"display texts look like %q (%s) but language_code is %q",
		detected, info.Lang.String(), doc.LanguageCode,
	)}
}
