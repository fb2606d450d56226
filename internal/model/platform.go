package model

import "strings"

// SocialDomains is the fixed list of recognized platform domains.
// Reports list platforms in document order and fall back to this order.
var SocialDomains = []string{
	"facebook.com",
	"fb.com",
	"instagram.com",
	"twitter.com",
	"x.com",
	"linkedin.com",
	"tiktok.com",
	"youtube.com",
	"yt.be",
	"vimeo.com",
}

// MatchSocialDomains returns every platform domain contained in host.
//
// Matching is a plain substring test, so lookalike hosts such as
// "notfacebook.com" or "facebook.com.evil.tld" also match. A single host can
// match several domains (e.g. "x.com" is a substring of many hosts).
func MatchSocialDomains(host string) []string {
	host = strings.ToLower(host)

	var matched []string
	for _, domain := range SocialDomains {
		if strings.Contains(host, domain) {
			matched = append(matched, domain)
		}
	}
	return matched
}
