package performer

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/width"
)

var (
	codeShapes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^\d{0,4}[a-z]{1,10}[-_ ]\d{2,8}[a-z]?$`),
		regexp.MustCompile(`(?i)^[a-z]{2,10}\d{2,8}$`),
		regexp.MustCompile(`(?i)^fc2[-_ ]?(ppv[-_ ]?)?\d{5,8}$`),
	}
	placeholderRun = regexp.MustCompile(`^[-.・ー_―…~\s]+$`)
	dateLike       = []*regexp.Regexp{
		regexp.MustCompile(`^\d{4}\s*[年/.\-]`),
		regexp.MustCompile(`\d{1,2}\s*月\s*\d{1,2}\s*日`),
		regexp.MustCompile(`^\d{1,2}/\d{1,2}(/\d{2,4})?$`),
	}
	unitToken   = regexp.MustCompile(`(?i)\d[\d,.]*\s*(枚|分|秒|時間|本|円|gb|mb|kb|min|mins|minutes|歳|才|cm|kg|件|作品|タイトル|話)`)
	pricePrefix = regexp.MustCompile(`^[¥$]\s*\d`)
	htmlTag     = regexp.MustCompile(`<[a-zA-Z/!][^>]*>`)
	urlScheme   = regexp.MustCompile(`(?i)(https?://|www\.)`)
)

// arrows show up when a crawler decodes a Shift_JIS page with the wrong charset
const arrowRunes = "→←↑↓⇒⇐⇔↔"

// denyList holds lower-cased, width-folded terms that are never a performer name
var denyList = toSet(
	// storefront and platform brands
	"fanza", "dmm", "dmm.r18", "mgs", "mgs動画", "mgstage", "duga", "sokmil", "ソクミル",
	"fc2", "fc2ppv", "fc2-ppv", "heyzo", "カリビアンコム", "caribbeancom", "一本道", "1pondo",
	"天然むすめ", "10musume", "パコパコママ", "pacopacomama", "東京熱", "tokyo hot", "tokyo-hot",
	"japanska", "b10f", "hey動画", "heydouga", "prestige", "プレステージ",
	// placeholders
	"unknown", "n/a", "na", "none", "null", "nil", "undefined", "tbd", "tba",
	"不明", "なし", "無し", "未定", "非公開", "その他", "他", "ほか", "他多数", "etc",
	// role words
	"performer", "performers", "actress", "actresses", "actor", "actors", "cast", "model", "models",
	"amateur", "amateurs", "出演者", "出演", "女優", "av女優", "男優", "素人", "素人娘", "一般人",
	"モデル", "名無し", "匿名", "投稿者", "various", "others",
	// genre and tag words
	"巨乳", "美乳", "美少女", "人妻", "熟女", "ol", "中出し", "ギャル", "痴女", "痴漢", "制服",
	"女子校生", "単体作品", "企画", "ハイビジョン", "4k", "hd", "vr", "独占配信", "配信専用",
	"ナンパ", "総集編", "ベスト・総集編", "サンプル動画", "新人", "デビュー作品", "無修正",
)

func toSet(terms ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(terms))
	for _, t := range terms {
		set[t] = struct{}{}
	}
	return set
}

// IsValid reports whether name is plausibly a performer name. Ambiguous input is rejected.
func IsValid(name string) bool {
	s := strings.TrimFunc(name, unicode.IsSpace)
	if s == "" {
		return false
	}
	if utf8.RuneCountInString(s) < 2 {
		return false
	}

	folded := width.Fold.String(s)
	if isNumeric(folded) {
		return false
	}
	for _, re := range codeShapes {
		if re.MatchString(folded) {
			return false
		}
	}
	if _, denied := denyList[strings.ToLower(folded)]; denied {
		return false
	}
	if placeholderRun.MatchString(folded) {
		return false
	}
	for _, re := range dateLike {
		if re.MatchString(folded) {
			return false
		}
	}
	if unitToken.MatchString(folded) || pricePrefix.MatchString(folded) {
		return false
	}
	if htmlTag.MatchString(folded) || urlScheme.MatchString(folded) {
		return false
	}

	first, _ := utf8.DecodeRuneInString(s)
	if strings.ContainsRune(arrowRunes, first) {
		return false
	}
	if strings.ContainsRune(s, utf8.RuneError) {
		return false
	}

	return true
}

// IsValidForProduct is IsValid plus a check that the name is not the product's own code,
// which happens when a crawler reads the code cell into the performer list.
func IsValidForProduct(name, productCode string) bool {
	if !IsValid(name) {
		return false
	}

	code := compact(productCode)
	if code == "" {
		return true
	}
	return compact(name) != code
}

// isNumeric reports whether s has at least one digit and nothing but digits and separators
func isNumeric(s string) bool {
	digits := 0
	for _, r := range s {
		switch {
		case unicode.IsDigit(r):
			digits++
		case r == ',' || r == '.' || r == '-' || r == ' ' || r == '/':
		default:
			return false
		}
	}
	return digits > 0
}

// compact lower-cases and width-folds s and drops everything but letters and digits
func compact(s string) string {
	folded := strings.ToLower(width.Fold.String(strings.TrimSpace(s)))
	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
