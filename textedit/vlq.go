package textedit

import (
	"fmt"
	"strings"
)

const base64Chars = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

// encodeVLQ writes n as a base64 variable-length quantity, the encoding used
// by source map v3 mappings: the low bit of the first digit is the sign, and
// the high bit of each digit marks a continuation.
func encodeVLQ(sb *strings.Builder, n int) {
	u := uint(n) << 1
	if n < 0 {
		u = uint(-n)<<1 | 1
	}
	for {
		digit := u & 0x1f
		u >>= 5
		if u > 0 {
			digit |= 0x20
		}
		sb.WriteByte(base64Chars[digit])
		if u == 0 {
			break
		}
	}
}

// decodeVLQ reads one VLQ value from s, returning the value and the number
// of characters consumed.
func decodeVLQ(s string) (int, int, error) {
	var u uint
	shift := uint(0)
	for i := 0; i < len(s); i++ {
		idx := strings.IndexByte(base64Chars, s[i])
		if idx < 0 {
			return 0, 0, fmt.Errorf("textedit: invalid VLQ character %q", s[i])
		}
		u |= uint(idx&0x1f) << shift
		if idx&0x20 == 0 {
			n := int(u >> 1)
			if u&1 != 0 {
				n = -n
			}
			return n, i + 1, nil
		}
		shift += 5
	}
	return 0, 0, fmt.Errorf("textedit: truncated VLQ %q", s)
}

// decodeMappings parses a mappings string back into absolute segments.
// Only four-field segments with a single source are produced by this
// package, so names offsets are not decoded.
func decodeMappings(mappings string) ([][]segment, error) {
	var lines [][]segment
	prevSrcLine, prevSrcCol := 0, 0
	for _, rawLine := range strings.Split(mappings, ";") {
		var segs []segment
		prevGenCol := 0
		if rawLine != "" {
			for _, rawSeg := range strings.Split(rawLine, ",") {
				fields := make([]int, 0, 4)
				rest := rawSeg
				for rest != "" {
					n, used, err := decodeVLQ(rest)
					if err != nil {
						return nil, err
					}
					fields = append(fields, n)
					rest = rest[used:]
				}
				if len(fields) != 4 {
					return nil, fmt.Errorf("textedit: unexpected segment %q with %d fields", rawSeg, len(fields))
				}
				prevGenCol += fields[0]
				prevSrcLine += fields[2]
				prevSrcCol += fields[3]
				segs = append(segs, segment{genCol: prevGenCol, srcLine: prevSrcLine, srcCol: prevSrcCol})
			}
		}
		lines = append(lines, segs)
	}
	return lines, nil
}
