package language

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// ErrUnsupported is returned when a language request cannot be parsed.
var ErrUnsupported = errors.New("unsupported language")

// bibliographic holds ISO 639-2/B codes, which BCP 47 parsing rejects.
var bibliographic = map[string]string{
	"alb": "sq", "arm": "hy", "baq": "eu", "bur": "my", "chi": "zh",
	"cze": "cs", "dut": "nl", "fre": "fr", "geo": "ka", "ger": "de",
	"gre": "el", "ice": "is", "mac": "mk", "may": "ms", "per": "fa",
	"rum": "ro", "slo": "sk", "wel": "cy",
}

// englishNames indexes lowercase English language names ("german") by base code.
var englishNames = sync.OnceValue(func() map[string]string {
	namer := display.English.Languages()
	names := make(map[string]string)
	for _, tag := range display.Supported.Tags() {
		base, _ := tag.Base()
		if name := namer.Name(base); name != "" {
			names[strings.ToLower(name)] = base.String()
		}
	}
	return names
})

// Canonicalize converts a requested subtitle language to the tag handed to
// yt-dlp. English names and ISO 639-2 codes collapse to their two-letter
// form; anything else must parse as BCP 47 and comes back in canonical
// casing ("pt_br" becomes "pt-BR").
func Canonicalize(code string) (string, error) {
	raw := strings.TrimSpace(code)
	if raw == "" {
		return "", fmt.Errorf("%w: empty", ErrUnsupported)
	}
	key := strings.ToLower(raw)
	if base, ok := bibliographic[key]; ok {
		return base, nil
	}
	if base, ok := englishNames()[key]; ok {
		return base, nil
	}
	tag, err := language.Parse(strings.ReplaceAll(raw, "_", "-"))
	if err != nil || tag == language.Und {
		return "", fmt.Errorf("%w: %q", ErrUnsupported, raw)
	}
	return tag.String(), nil
}

// DisplayName renders code in English ("pt-BR" is "Brazilian Portuguese").
// Blank input is "Unknown"; input that does not parse is echoed uppercased.
func DisplayName(code string) string {
	raw := strings.TrimSpace(code)
	if raw == "" {
		return "Unknown"
	}
	canonical, err := Canonicalize(raw)
	if err != nil {
		return strings.ToUpper(raw)
	}
	if name := display.English.Tags().Name(language.Make(canonical)); name != "" {
		return name
	}
	return canonical
}
