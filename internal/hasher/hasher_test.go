package hasher

import (
	"bytes"
	"crypto/sha256"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestFingerprintSmallFile(t *testing.T) {
	dir := t.TempDir()
	data := bytes.Repeat([]byte{'x'}, 100)
	p := writeFile(t, dir, "a.bin", data)

	got, err := Fingerprint(p)
	if err != nil {
		t.Fatal(err)
	}

	want := sha256.Sum256(data)
	if !bytes.Equal(got[:], want[:]) {
		t.Errorf("fingerprint mismatch for small file")
	}
}

func TestFingerprintRoundTrip(t *testing.T) {
	dir := t.TempDir()
	data := bytes.Repeat([]byte{'y'}, 500)
	p1 := writeFile(t, dir, "a.bin", data)
	p2 := writeFile(t, dir, "b.bin", data)

	fp1, err := Fingerprint(p1)
	if err != nil {
		t.Fatal(err)
	}
	fp2, err := Fingerprint(p2)
	if err != nil {
		t.Fatal(err)
	}
	if fp1 != fp2 {
		t.Error("identical content produced different fingerprints")
	}
}

func TestFingerprintLargeFileHeadTail(t *testing.T) {
	dir := t.TempDir()
	size := 2*ChunkSize + 1024
	data := make([]byte, size)
	for i := range data {
		data[i] = byte(i % 251)
	}
	p := writeFile(t, dir, "big.bin", data)

	got, err := Fingerprint(p)
	if err != nil {
		t.Fatal(err)
	}

	h := sha256.New()
	h.Write(data[:ChunkSize])
	h.Write(data[size-ChunkSize:])
	want := h.Sum(nil)

	if !bytes.Equal(got[:], want) {
		t.Error("large-file fingerprint does not match head+tail concatenation")
	}
}

func TestFingerprintMissingFile(t *testing.T) {
	if _, err := Fingerprint(filepath.Join(t.TempDir(), "missing.bin")); err == nil {
		t.Error("expected error for missing file")
	}
}
