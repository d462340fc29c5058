package requests

import "strings"

const upperhex = "0123456789ABCDEF"

// uriReserved are the characters encodeURI leaves alone besides letters and digits
const uriReserved = ";,/?:@&=+$-_.!~*'()#"

// EncodeURI escapes s the way ECMAScript's encodeURI does: letters, digits and
// the reserved/mark characters pass through, every other byte of the UTF-8
// encoding becomes %XX.
func EncodeURI(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if keepURIByte(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&15])
	}
	return b.String()
}

func keepURIByte(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte(uriReserved, c) >= 0
}
