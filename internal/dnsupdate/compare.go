/*
Copyright 2025 firestoned.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package dnsupdate

import (
	"fmt"
	"sort"

	"github.com/miekg/dns"
)

// recordSetsEqual applies the per-type comparator of spec.md §4.10: IP equality for
// A/AAAA, canonical-name equality for CNAME/NS, lexicographic tuple equality for
// MX/SRV/CAA, and multiset equality for TXT.
func recordSetsEqual(rrtype uint16, current, expected []dns.RR) bool {
	if len(current) != len(expected) {
		return false
	}

	switch rrtype {
	case dns.TypeA, dns.TypeAAAA, dns.TypeCNAME, dns.TypeNS:
		return sortedKeysEqual(current, expected, singleValueKey)
	case dns.TypeMX, dns.TypeSRV, dns.TypeCAA:
		return sortedKeysEqual(current, expected, tupleKey)
	case dns.TypeTXT:
		return multisetEqual(current, expected)
	default:
		return sortedKeysEqual(current, expected, tupleKey)
	}
}

func singleValueKey(rr dns.RR) string {
	switch r := rr.(type) {
	case *dns.A:
		return r.A.String()
	case *dns.AAAA:
		return r.AAAA.String()
	case *dns.CNAME:
		return dns.Fqdn(r.Target)
	case *dns.NS:
		return dns.Fqdn(r.Ns)
	default:
		return rr.String()
	}
}

func tupleKey(rr dns.RR) string {
	switch r := rr.(type) {
	case *dns.MX:
		return fmt.Sprintf("%d|%s", r.Preference, dns.Fqdn(r.Mx))
	case *dns.SRV:
		return fmt.Sprintf("%d|%d|%d|%s", r.Priority, r.Weight, r.Port, dns.Fqdn(r.Target))
	case *dns.CAA:
		return fmt.Sprintf("%d|%s|%s", r.Flag, r.Tag, r.Value)
	default:
		return rr.String()
	}
}

func sortedKeysEqual(current, expected []dns.RR, key func(dns.RR) string) bool {
	a := keysOf(current, key)
	b := keysOf(expected, key)
	sort.Strings(a)
	sort.Strings(b)
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func keysOf(rrs []dns.RR, key func(dns.RR) string) []string {
	keys := make([]string, len(rrs))
	for i, rr := range rrs {
		keys[i] = key(rr)
	}
	return keys
}

// multisetEqual compares TXT record sets as multisets of their character-string lists,
// ignoring the order of records but not the split of text within one record.
func multisetEqual(current, expected []dns.RR) bool {
	count := func(rrs []dns.RR) map[string]int {
		m := make(map[string]int, len(rrs))
		for _, rr := range rrs {
			txt, ok := rr.(*dns.TXT)
			if !ok {
				continue
			}
			key := fmt.Sprintf("%q", txt.Txt)
			m[key]++
		}
		return m
	}
	a, b := count(current), count(expected)
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if b[k] != v {
			return false
		}
	}
	return true
}
