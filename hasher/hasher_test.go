package hasher

import (
	"os"
	"testing"

	"veracity/logger"
)

func TestComputeHashes(t *testing.T) {
	logger.Init("info")
	tmp, err := os.CreateTemp("", "hash-test")
	if err != nil {
		t.Fatalf("temp file: %v", err)
	}
	defer os.Remove(tmp.Name())
	tmp.WriteString("hello world")
	tmp.Close()

	hashes := ComputeHashes(tmp.Name(), []string{"md5", "sha1", "sha256", "xxh64", "unknown"})
	if hashes["md5"] != "5eb63bbbe01eeed093cb22bb8f5acdc3" {
		t.Errorf("md5 mismatch: %s", hashes["md5"])
	}
	if hashes["sha1"] != "2aae6c35c94fcfb415dbe95f408b9ce91ee846ed" {
		t.Errorf("sha1 mismatch: %s", hashes["sha1"])
	}
	if hashes["sha256"] != "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9" {
		t.Errorf("sha256 mismatch: %s", hashes["sha256"])
	}
	if hashes["xxh64"] == "" {
		t.Error("expected xxh64 digest")
	}
	if _, ok := hashes["unknown"]; ok {
		t.Errorf("unexpected hash for unknown algorithm")
	}
}

func TestComputeHashesStable(t *testing.T) {
	logger.Init("error")
	tmp, err := os.CreateTemp("", "hash-stable")
	if err != nil {
		t.Fatalf("temp file: %v", err)
	}
	defer os.Remove(tmp.Name())
	tmp.WriteString("some fixed content")
	tmp.Close()

	first := ComputeHashes(tmp.Name(), []string{"sha256", "blake3"})
	second := ComputeHashes(tmp.Name(), []string{"sha256", "blake3"})
	for _, algo := range []string{"sha256", "blake3"} {
		if first[algo] == "" || first[algo] != second[algo] {
			t.Errorf("%s digest not stable: %q vs %q", algo, first[algo], second[algo])
		}
	}
}

func TestComputeHashesDiffer(t *testing.T) {
	logger.Init("error")
	a, _ := os.CreateTemp("", "hash-a")
	defer os.Remove(a.Name())
	a.WriteString("content A")
	a.Close()
	b, _ := os.CreateTemp("", "hash-b")
	defer os.Remove(b.Name())
	b.WriteString("content B")
	b.Close()

	ha := ComputeHashes(a.Name(), []string{"sha256"})
	hb := ComputeHashes(b.Name(), []string{"sha256"})
	if ha["sha256"] == hb["sha256"] {
		t.Error("different content produced identical digests")
	}
}

func TestComputeHashesMissingFile(t *testing.T) {
	logger.Init("error")
	hashes := ComputeHashes("/nonexistent/file", []string{"md5"})
	if len(hashes) != 0 {
		t.Errorf("expected no digests, got %v", hashes)
	}
}
