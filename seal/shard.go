package seal

import (
	"encoding/base32"
	"strings"
)

// shardEncoding is upper-case RFC 4648 base32 (A-Z, 2-7) without
// padding: no 0/1/8/9 and no visually colliding letters.
var shardEncoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// shard encodes raw bytes as a compact, dash-grouped base32 shard.
//
// The character stream is split per groups and joined with dashes,
// stopping once input characters are exhausted: trailing empty groups
// are omitted, and group sizes beyond the input length are not emitted.
// Pure: same bytes and groups always yield the same shard.
func shard(raw []byte, groups ...int) string {
	s := shardEncoding.EncodeToString(raw)
	var out []string
	i := 0
	for _, g := range groups {
		end := i + g
		if end > len(s) {
			end = len(s)
		}
		if chunk := s[i:end]; chunk != "" {
			out = append(out, chunk)
		}
		i += g
		if i >= len(s) {
			break
		}
	}
	return strings.Join(out, "-")
}
