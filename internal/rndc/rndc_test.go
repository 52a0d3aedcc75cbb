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

package rndc

import (
	"testing"

	bindyv1beta1 "github.com/firestoned/bindy/api/v1beta1"
)

func TestGenerate(t *testing.T) {
	key, err := Generate()
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if key.Algorithm != bindyv1beta1.HmacSha256 {
		t.Errorf("Algorithm = %v, want hmac-sha256", key.Algorithm)
	}
	if key.Secret == "" {
		t.Errorf("Secret is empty")
	}
}

func TestEncodeParseRoundTrip(t *testing.T) {
	want := &Key{Name: "my-key", Algorithm: bindyv1beta1.HmacSha256, Secret: "c2VjcmV0LWJ5dGVzLWhlcmUh"}
	encoded := EncodeSecret(want)

	data := map[string][]byte{
		"key-name":  []byte(encoded["key-name"]),
		"algorithm": []byte(encoded["algorithm"]),
		"secret":    []byte(encoded["secret"]),
		"rndc.key":  []byte(encoded["rndc.key"]),
	}
	got, err := ParseSecret(data)
	if err != nil {
		t.Fatalf("ParseSecret() error: %v", err)
	}
	if *got != *want {
		t.Errorf("round trip mismatch: got %+v, want %+v", got, want)
	}
}

func TestParseSecretFromKeyFileOnly(t *testing.T) {
	data := map[string][]byte{
		"rndc.key": []byte("key \"external-key\" {\n    algorithm hmac-sha512;\n    secret \"YWJjZGVmZ2g=\";\n};\n"),
	}
	got, err := ParseSecret(data)
	if err != nil {
		t.Fatalf("ParseSecret() error: %v", err)
	}
	if got.Name != "external-key" || got.Algorithm != bindyv1beta1.HmacSha512 || got.Secret != "YWJjZGVmZ2g=" {
		t.Errorf("parsed key mismatch: %+v", got)
	}
}

func TestParseSecretRejectsUnknownAlgorithm(t *testing.T) {
	data := map[string][]byte{
		"key-name":  []byte("k"),
		"algorithm": []byte("hmac-sha999"),
		"secret":    []byte("c2VjcmV0"),
	}
	if _, err := ParseSecret(data); err == nil {
		t.Errorf("expected error for unsupported algorithm")
	}
}

func TestParseSecretMissingFields(t *testing.T) {
	if _, err := ParseSecret(map[string][]byte{}); err == nil {
		t.Errorf("expected error for empty secret data")
	}
}

func TestBuildTsigSigner(t *testing.T) {
	key := &Key{Name: "my-key", Algorithm: bindyv1beta1.HmacSha256, Secret: "c2VjcmV0LWJ5dGVzLWhlcmUh"}
	signer, err := BuildTsigSigner(key, 0)
	if err != nil {
		t.Fatalf("BuildTsigSigner() error: %v", err)
	}
	if signer.Fudge != DefaultFudgeSeconds {
		t.Errorf("Fudge = %d, want %d", signer.Fudge, DefaultFudgeSeconds)
	}
	if signer.KeyName != "my-key." {
		t.Errorf("KeyName = %q, want %q", signer.KeyName, "my-key.")
	}
}

func TestBuildTsigSignerRejectsBadSecret(t *testing.T) {
	key := &Key{Name: "my-key", Algorithm: bindyv1beta1.HmacSha256, Secret: "not-base64!!"}
	if _, err := BuildTsigSigner(key, 0); err == nil {
		t.Errorf("expected error for invalid base64 secret")
	}
}
