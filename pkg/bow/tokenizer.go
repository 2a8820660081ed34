package bow

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/jdkato/prose/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Tokenizer names accepted by TokenizerByName.
const (
	TokenizerAlnum = "alnum"
	TokenizerProse = "prose"
)

// Tokenizer splits a text into case-normalized terms.
type Tokenizer interface {
	Name() string
	Tokenize(text string) []string
}

// TokenizerByName returns the tokenizer registered under name.
func TokenizerByName(name string) (Tokenizer, error) {
	switch name {
	case "", TokenizerAlnum:
		return AlnumTokenizer{}, nil
	case TokenizerProse:
		return ProseTokenizer{}, nil
	default:
		return nil, fmt.Errorf("unknown tokenizer %q", name)
	}
}

// AlnumTokenizer lowercases NFKC-normalized text and splits it on every rune
// that is neither a letter nor a digit.
type AlnumTokenizer struct{}

func (AlnumTokenizer) Name() string { return TokenizerAlnum }

func (AlnumTokenizer) Tokenize(text string) []string {
	// Casers keep state, so each call gets its own.
	text = cases.Lower(language.Und).String(norm.NFKC.String(text))
	return strings.FieldsFunc(text, isSeparator)
}

func isSeparator(r rune) bool {
	return !isWordRune(r)
}

// ProseTokenizer uses the prose word tokenizer, which splits contractions
// and abbreviations the way English text expects ("don't" -> "do", "n't").
// Tokens are normalized like AlnumTokenizer but not split again, and tokens
// without a letter or digit are dropped.
type ProseTokenizer struct{}

func (ProseTokenizer) Name() string { return TokenizerProse }

func (ProseTokenizer) Tokenize(text string) []string {
	doc, err := prose.NewDocument(text,
		prose.WithTagging(false),
		prose.WithSegmentation(false),
		prose.WithExtraction(false),
	)
	if err != nil {
		return AlnumTokenizer{}.Tokenize(text)
	}

	caser := cases.Lower(language.Und)
	var terms []string
	for _, tok := range doc.Tokens() {
		term := caser.String(norm.NFKC.String(strings.TrimSpace(tok.Text)))
		if strings.IndexFunc(term, isWordRune) < 0 {
			continue
		}
		terms = append(terms, term)
	}
	return terms
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r)
}
