package crawl

import (
	"strings"

	"golang.org/x/net/publicsuffix"
)

// sameSite reports whether a discovered link's host is similar enough to
// the seed's host to crawl. A host qualifies when it contains or is
// contained by the seed host, or when both share a registrable domain.
// The registrable-domain clause deliberately widens plain mutual
// containment so sibling subdomains crawl together ("www.cnn.com" and
// "edition.cnn.com" are the same site).
func sameSite(seedHost, linkHost string) bool {
	if linkHost == "" {
		return false
	}
	seedHost = strings.ToLower(seedHost)
	linkHost = strings.ToLower(linkHost)
	if strings.Contains(linkHost, seedHost) || strings.Contains(seedHost, linkHost) {
		return true
	}
	sr, err1 := publicsuffix.EffectiveTLDPlusOne(seedHost)
	lr, err2 := publicsuffix.EffectiveTLDPlusOne(linkHost)
	if err1 != nil || err2 != nil {
		return false
	}
	return sr == lr
}
