package tcpserver

// Telnet protocol bytes (RFC 854).
const (
	telnetSE   = 240
	telnetSB   = 250
	telnetWILL = 251
	telnetDONT = 254
	telnetIAC  = 255
)

const (
	stData = iota
	stIAC
	stVerb
	stSub
	stSubIAC
)

// telnetFilter strips IAC command and subnegotiation sequences from an
// inbound byte stream. State survives across calls, so sequences split
// over TCP segment boundaries are still removed.
type telnetFilter struct {
	st int
}

// strip filters p in place and returns the retained data bytes.
func (f *telnetFilter) strip(p []byte) []byte {
	out := p[:0]
	for _, b := range p {
		switch f.st {
		case stData:
			if b == telnetIAC {
				f.st = stIAC
			} else {
				out = append(out, b)
			}
		case stIAC:
			switch {
			case b == telnetIAC:
				// Escaped 0xFF data byte.
				out = append(out, b)
				f.st = stData
			case b >= telnetWILL && b <= telnetDONT:
				f.st = stVerb
			case b == telnetSB:
				f.st = stSub
			default:
				f.st = stData
			}
		case stVerb:
			f.st = stData
		case stSub:
			if b == telnetIAC {
				f.st = stSubIAC
			}
		case stSubIAC:
			if b == telnetIAC {
				// Escaped 0xFF inside the subnegotiation.
				f.st = stSub
			} else {
				f.st = stData
			}
		}
	}
	return out
}
