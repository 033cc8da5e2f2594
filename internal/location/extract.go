package location

import (
	"strings"
	"unicode"
)

// weatherPrefixes Các cụm từ khóa thời tiết ở đầu câu, xếp dài trước ngắn
var weatherPrefixes = []string{
	"dự báo thời tiết",
	"du bao thoi tiet",
	"thời tiết",
	"thoi tiet",
	"weather",
}

// locationPrepositions Giới từ đứng trước địa danh
var locationPrepositions = []string{
	"ở",
	"tại",
	"in",
	"at",
}

// timeSuffixes Các cụm chỉ thời gian ở cuối câu
var timeSuffixes = []string{
	"hôm nay",
	"hom nay",
	"ngày mai",
	"ngay mai",
	"bây giờ",
	"bay gio",
	"lúc này",
	"luc nay",
	"hiện tại",
	"hien tai",
	"today",
	"tomorrow",
	"now",
}

// ExtractLocation Tách ứng viên địa danh từ câu hỏi thời tiết.
// Bỏ cụm từ khóa thời tiết ở đầu, giới từ, dấu câu và các từ chỉ thời gian ở
// cuối; giữ nguyên chính tả phần còn lại. Không còn gì thì trả về chuỗi rỗng.
func ExtractLocation(raw string) string {
	s := strings.TrimSpace(raw)

	for _, prefix := range weatherPrefixes {
		if rest, ok := trimPrefixFold(s, prefix); ok {
			s = rest
			break
		}
	}

	s = trimEdgePunct(s)
	for _, prep := range locationPrepositions {
		if rest, ok := trimPrefixFold(s, prep+" "); ok {
			s = rest
			break
		}
	}

	// Lặp vì có thể có nhiều cụm thời gian nối nhau ("bây giờ hôm nay?")
	for {
		trimmed := trimEdgePunct(s)
		for _, suffix := range timeSuffixes {
			if rest, ok := trimSuffixFold(trimmed, suffix); ok {
				trimmed = trimEdgePunct(rest)
			}
		}
		if trimmed == s {
			break
		}
		s = trimmed
	}

	return strings.Join(strings.Fields(s), " ")
}

// trimPrefixFold Bỏ tiền tố không phân biệt hoa thường, trả về (phần còn lại, có khớp)
func trimPrefixFold(s, prefix string) (string, bool) {
	r := []rune(s)
	p := []rune(prefix)
	if len(r) < len(p) {
		return s, false
	}
	for i := range p {
		if unicode.ToLower(r[i]) != unicode.ToLower(p[i]) {
			return s, false
		}
	}
	return strings.TrimSpace(string(r[len(p):])), true
}

// trimSuffixFold Bỏ hậu tố không phân biệt hoa thường, trả về (phần còn lại, có khớp)
func trimSuffixFold(s, suffix string) (string, bool) {
	r := []rune(s)
	p := []rune(suffix)
	if len(r) < len(p) {
		return s, false
	}
	off := len(r) - len(p)
	for i := range p {
		if unicode.ToLower(r[off+i]) != unicode.ToLower(p[i]) {
			return s, false
		}
	}
	return strings.TrimSpace(string(r[:off])), true
}

// trimEdgePunct Bỏ dấu câu và khoảng trắng ở hai đầu chuỗi
func trimEdgePunct(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsPunct(r)
	})
}
