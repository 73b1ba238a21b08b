package gxweb

import "strings"

// ExtractCookie returns the value of the named cookie from a raw Set-Cookie
// header. The value is kept verbatim, including any surrounding double
// quotes: GXWeb expects the quoted session_id echoed back unchanged, which
// is why the stdlib cookie parser (it strips quotes) cannot be used here.
//
// A missing header or missing name is reported as ok=false, never an error.
func ExtractCookie(header, name string) (string, bool) {
	for _, pair := range strings.Split(header, ";") {
		pair = strings.TrimSpace(pair)
		key, value, found := strings.Cut(pair, "=")
		if !found {
			continue
		}
		if key == name {
			return value, true
		}
	}
	return "", false
}
