package driver

import (
	"crypto/sha256"
	"encoding/binary"

	"portast/internal/options"
	"portast/internal/version"
)

// Digest is a SHA-256 content hash.
type Digest [sha256.Size]byte

func digestOf(data []byte) Digest {
	return Digest(sha256.Sum256(data))
}

// combineDigest: H(content || part1 || part2 ...). Порядок частей значим.
func combineDigest(content Digest, parts ...Digest) Digest {
	h := sha256.New()
	_, _ = h.Write(content[:])
	for _, d := range parts {
		_, _ = h.Write(d[:])
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// optionsDigest hashes everything besides the snapshot that changes the
// encoded output: the allowlist, the output format and the tree schema.
func optionsDigest(opts options.Options, format Format) Digest {
	h := sha256.New()
	var hdr [4]byte
	binary.LittleEndian.PutUint16(hdr[:2], uint16(version.TreeSchema))
	hdr[2] = byte(format)
	_, _ = h.Write(hdr[:])
	for _, p := range opts.InlineMacroCalls {
		_, _ = h.Write([]byte(p.String()))
		_, _ = h.Write([]byte{0})
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// snapshotKey is the cache key of one export run.
func snapshotKey(data []byte, opts options.Options, format Format) Digest {
	return combineDigest(digestOf(data), optionsDigest(opts, format))
}
