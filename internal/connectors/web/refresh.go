package web

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
)

// FindMetaRefresh returns the URL of the first
// <meta http-equiv="refresh" content="N;url=TARGET"> tag in body, or ""
// when there is none. Tag and attribute names match case-insensitively.
func FindMetaRefresh(body []byte) string {
	z := html.NewTokenizer(bytes.NewReader(body))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return ""
		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			if string(name) != "meta" || !hasAttr {
				continue
			}

			var equiv, content string
			for {
				key, val, more := z.TagAttr()
				switch string(key) {
				case "http-equiv":
					equiv = string(val)
				case "content":
					content = string(val)
				}
				if !more {
					break
				}
			}

			if strings.EqualFold(strings.TrimSpace(equiv), "refresh") {
				if target := parseRefreshContent(content); target != "" {
					return target
				}
			}
		}
	}
}

// parseRefreshContent extracts TARGET from "N; url=TARGET".
// The url= label and quotes around TARGET are optional.
func parseRefreshContent(content string) string {
	i := strings.IndexAny(content, ";,")
	if i < 0 {
		return ""
	}
	rest := strings.TrimSpace(content[i+1:])

	if len(rest) >= 3 && strings.EqualFold(rest[:3], "url") {
		after := strings.TrimSpace(rest[3:])
		if strings.HasPrefix(after, "=") {
			rest = strings.TrimSpace(after[1:])
		}
	}

	if len(rest) >= 2 && (rest[0] == '\'' || rest[0] == '"') {
		if end := strings.IndexByte(rest[1:], rest[0]); end >= 0 {
			rest = rest[1 : end+1]
		} else {
			rest = rest[1:]
		}
	}

	return strings.TrimSpace(rest)
}
