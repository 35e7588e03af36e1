// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package score

import (
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// TrustedDomains is the curated healthcare allowlist: host suffixes whose
// content earns the full domain prior in clinical mode. Matching is against
// the registrable domain, case-normalized.
var TrustedDomains = []string{
	"nih.gov", "ncbi.nlm.nih.gov", "pubmed.ncbi.nlm.nih.gov", "cdc.gov", "who.int",
	"nejm.org", "jamanetwork.com", "thelancet.com", "bmj.com", "nature.com",
	"fda.gov", "ema.europa.eu", "clinicaltrials.gov", "cochranelibrary.com",
}

// LowQualityDomains is the scholar-mode denylist: host suffixes excluded
// from broad searches.
var LowQualityDomains = []string{
	"pinterest.com", "quora.com", "reddit.com", "facebook.com",
	"medium.com", "blogspot.com", "tumblr.com",
}

// registryHosts are clinical-trial registries; a result hosted on one is
// classified Trial/Registry regardless of its title.
var registryHosts = []string{
	"clinicaltrials.gov", "clinicaltrialsregister.eu", "isrctn.com", "anzctr.org.au",
}

// RegistrableDomain returns the eTLD+1 (domain plus public suffix, ignoring
// subdomains) of rawURL's host, lowercased. When the URL or the public
// suffix lookup cannot be resolved it falls back to the bare host, and to ""
// for unparsable input.
func RegistrableDomain(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	host := strings.ToLower(u.Hostname())
	if host == "" {
		return ""
	}
	etld1, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return host
	}
	return etld1
}

// hostMatches reports whether the URL's host or registrable domain ends with
// any of the given suffixes.
func hostMatches(rawURL string, suffixes []string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	host := strings.ToLower(u.Hostname())
	dom := RegistrableDomain(rawURL)
	for _, s := range suffixes {
		if strings.HasSuffix(host, s) || strings.HasSuffix(dom, s) {
			return true
		}
	}
	return false
}

// IsTrusted reports whether the document's source is on the healthcare
// allowlist.
func IsTrusted(rawURL string) bool {
	return hostMatches(rawURL, TrustedDomains)
}
