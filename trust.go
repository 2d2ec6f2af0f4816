package tickerlens

import "strings"

// TrustLevel classifies a document's originating host.
type TrustLevel int

// Trust levels in ascending preference order. Excluded hosts never appear
// in query results; preferred hosts rank ahead of equally-relevant neutral
// hosts.
const (
	TrustExcluded TrustLevel = iota
	TrustNeutral
	TrustPreferred
)

// String returns a human-readable trust level.
func (t TrustLevel) String() string {
	switch t {
	case TrustExcluded:
		return "excluded"
	case TrustPreferred:
		return "preferred"
	default:
		return "neutral"
	}
}

// DomainPolicy maintains the preferred-domain and blacklisted-domain sets
// used for trust-based ranking. A host matches an entry when it equals the
// entry or is a subdomain of it, so "news.bloomberg.com" matches a
// "bloomberg.com" entry but "sports.yahoo.com" does not match
// "finance.yahoo.com".
type DomainPolicy struct {
	Preferred []string
	Blacklist []string
}

// DefaultDomainPolicy returns the maintained source-trust policy for
// financial news.
func DefaultDomainPolicy() *DomainPolicy {
	return &DomainPolicy{
		Preferred: []string{
			"finance.yahoo.com",
			"bloomberg.com",
			"morningstar.com",
			"seekingalpha.com",
			"nasdaq.com",
		},
		Blacklist: []string{
			"investors.com",
			"marketwatch.com",
			"reuters.com",
			"motleyfool.com",
		},
	}
}

// Classify returns the trust level for a host. The blacklist wins over the
// preferred set when both match.
func (p *DomainPolicy) Classify(host string) TrustLevel {
	if p == nil {
		return TrustNeutral
	}
	for _, d := range p.Blacklist {
		if hostMatches(host, d) {
			return TrustExcluded
		}
	}
	for _, d := range p.Preferred {
		if hostMatches(host, d) {
			return TrustPreferred
		}
	}
	return TrustNeutral
}

// hostMatches reports whether host equals domain or is a subdomain of it.
// The www prefix is ignored on both sides.
func hostMatches(host, domain string) bool {
	host = strings.ToLower(strings.TrimPrefix(host, "www."))
	domain = strings.ToLower(strings.TrimPrefix(domain, "www."))
	return host == domain || strings.HasSuffix(host, "."+domain)
}
