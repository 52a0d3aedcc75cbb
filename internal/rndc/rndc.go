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

// Package rndc generates, encodes, and parses RNDC/TSIG keys (the keys used both to
// authenticate the bindcar sidecar's rndc channel and to sign RFC-2136 dynamic updates),
// and builds the miekg/dns TSIG parameters needed to sign a message.
package rndc

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/miekg/dns"

	bindyv1beta1 "github.com/firestoned/bindy/api/v1beta1"
)

// Key is the in-memory form of an RNDC/TSIG key (spec.md §3 "RndcKey").
type Key struct {
	Name      string
	Algorithm bindyv1beta1.RndcAlgorithm
	Secret    string // base64-encoded
}

// keySize is 32 bytes (256 bits), sized for HMAC-SHA256, the default algorithm.
const keySize = 32

// Generate produces a new random key using the default algorithm. The caller fills in Name.
func Generate() (*Key, error) {
	buf := make([]byte, keySize)
	if _, err := rand.Read(buf); err != nil {
		return nil, fmt.Errorf("generating RNDC key material: %w", err)
	}
	return &Key{
		Algorithm: bindyv1beta1.DefaultRndcAlgorithm,
		Secret:    base64.StdEncoding.EncodeToString(buf),
	}, nil
}

// EncodeSecret renders a Key into the four-field Kubernetes Secret data map the operator
// writes for generated keys (spec.md §4.7).
func EncodeSecret(key *Key) map[string]string {
	keyFile := fmt.Sprintf("key \"%s\" {\n    algorithm %s;\n    secret \"%s\";\n};\n",
		key.Name, key.Algorithm, key.Secret)
	return map[string]string{
		"key-name":  key.Name,
		"algorithm": string(key.Algorithm),
		"secret":    key.Secret,
		"rndc.key":  keyFile,
	}
}

// ParseSecret reconstructs a Key from Kubernetes Secret data. It first tries the
// operator-generated four-field form, then falls back to parsing the "rndc.key" BIND9
// key-file text (external/user-managed Secrets, spec.md §4.7).
func ParseSecret(data map[string][]byte) (*Key, error) {
	if name, algo, secret, ok := fourFieldForm(data); ok {
		alg, err := normalizeAlgorithm(algo)
		if err != nil {
			return nil, err
		}
		return &Key{Name: name, Algorithm: alg, Secret: secret}, nil
	}

	keyFile, ok := data["rndc.key"]
	if !ok {
		return nil, fmt.Errorf("secret must contain either (key-name, algorithm, secret) or rndc.key")
	}
	return parseKeyFile(string(keyFile))
}

func fourFieldForm(data map[string][]byte) (name, algo, secret string, ok bool) {
	nameB, hasName := data["key-name"]
	algoB, hasAlgo := data["algorithm"]
	secretB, hasSecret := data["secret"]
	if !hasName || !hasAlgo || !hasSecret {
		return "", "", "", false
	}
	return string(nameB), string(algoB), string(secretB), true
}

func parseKeyFile(content string) (*Key, error) {
	var name, algorithm, secret string
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case name == "" && strings.Contains(trimmed, "key") && strings.Count(trimmed, "\"") >= 2:
			name = firstQuoted(trimmed)
		case algorithm == "" && strings.Contains(trimmed, "algorithm"):
			fields := strings.Fields(trimmed)
			for i, f := range fields {
				if f == "algorithm" && i+1 < len(fields) {
					algorithm = strings.TrimSuffix(fields[i+1], ";")
				}
			}
		case secret == "" && strings.Contains(trimmed, "secret"):
			secret = firstQuoted(trimmed)
		}
	}
	if name == "" {
		return nil, fmt.Errorf("rndc.key: failed to parse key name")
	}
	if algorithm == "" {
		return nil, fmt.Errorf("rndc.key: failed to parse algorithm")
	}
	if secret == "" {
		return nil, fmt.Errorf("rndc.key: failed to parse secret")
	}
	alg, err := normalizeAlgorithm(algorithm)
	if err != nil {
		return nil, err
	}
	return &Key{Name: name, Algorithm: alg, Secret: secret}, nil
}

func firstQuoted(line string) string {
	parts := strings.SplitN(line, "\"", 3)
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}

func normalizeAlgorithm(s string) (bindyv1beta1.RndcAlgorithm, error) {
	switch bindyv1beta1.RndcAlgorithm(s) {
	case bindyv1beta1.HmacMd5, bindyv1beta1.HmacSha1, bindyv1beta1.HmacSha224,
		bindyv1beta1.HmacSha256, bindyv1beta1.HmacSha384, bindyv1beta1.HmacSha512:
		return bindyv1beta1.RndcAlgorithm(s), nil
	default:
		return "", fmt.Errorf("unsupported RNDC algorithm %q", s)
	}
}

// miekgAlgorithm maps the kebab-case hmac- prefixed algorithm name onto the wire-format
// algorithm name miekg/dns expects in Msg.SetTsig.
var miekgAlgorithm = map[bindyv1beta1.RndcAlgorithm]string{
	bindyv1beta1.HmacMd5:    dns.HmacMD5,
	bindyv1beta1.HmacSha1:   dns.HmacSHA1,
	bindyv1beta1.HmacSha224: dns.HmacSHA224,
	bindyv1beta1.HmacSha256: dns.HmacSHA256,
	bindyv1beta1.HmacSha384: dns.HmacSHA384,
	bindyv1beta1.HmacSha512: dns.HmacSHA512,
}

// DefaultFudgeSeconds is the TSIG fudge window used for every signed message (spec.md §6).
const DefaultFudgeSeconds = 300

// TsigSigner carries everything needed to TSIG-sign and verify an RFC-2136 message with
// miekg/dns: the fully-qualified key name, the wire-format algorithm, the base64 secret, and
// the fudge window.
type TsigSigner struct {
	KeyName   string
	Algorithm string
	Secret    string
	Fudge     uint16
}

// BuildTsigSigner validates key and constructs the TsigSigner miekg/dns needs to sign a
// message (spec.md §4.7). fudgeSeconds of 0 selects DefaultFudgeSeconds.
func BuildTsigSigner(key *Key, fudgeSeconds uint16) (*TsigSigner, error) {
	if key.Name == "" {
		return nil, fmt.Errorf("TSIG key has an empty name")
	}
	algo, ok := miekgAlgorithm[key.Algorithm]
	if !ok {
		return nil, fmt.Errorf("unsupported TSIG algorithm %q", key.Algorithm)
	}
	if _, err := base64.StdEncoding.DecodeString(key.Secret); err != nil {
		return nil, fmt.Errorf("TSIG key secret is not valid base64: %w", err)
	}
	fudge := fudgeSeconds
	if fudge == 0 {
		fudge = DefaultFudgeSeconds
	}
	return &TsigSigner{
		KeyName:   dns.Fqdn(key.Name),
		Algorithm: algo,
		Secret:    key.Secret,
		Fudge:     fudge,
	}, nil
}

// Apply attaches this signer's TSIG parameters to an outgoing message.
func (s *TsigSigner) Apply(m *dns.Msg) {
	m.SetTsig(s.KeyName, s.Algorithm, s.Fudge, time.Now().Unix())
}

// SecretMap returns the map dns.Client.TsigSecret / dns.Client.TsigProvider expects, keyed by
// the fully-qualified key name.
func (s *TsigSigner) SecretMap() map[string]string {
	return map[string]string{s.KeyName: s.Secret}
}
