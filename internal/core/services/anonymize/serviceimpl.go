package anonymize

import (
	"net"
	"regexp"
	"strings"
)

var (
	emailRe = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
	ipv4Re  = regexp.MustCompile(`\b(?:\d{1,3}\.){3}\d{1,3}\b`)
	ipv6Re  = regexp.MustCompile(`\b(?:[0-9A-Fa-f]{1,4}:){2,7}[0-9A-Fa-f]{0,4}\b`)
	// dotted separators are left to the IP patterns
	phoneRe = regexp.MustCompile(`\+?\d[\d\s()\-]{7,}\d`)
)

type anonymizeService struct{}

var _ IAnonymizeService = &anonymizeService{}

func NewAnonymizeService() IAnonymizeService {
	return &anonymizeService{}
}

// Email keeps the first character of the local part and the full domain.
func (a *anonymizeService) Email(email string) string {
	at := strings.LastIndex(email, "@")
	if at <= 0 {
		return email
	}
	local, domain := email[:at], email[at:]
	return local[:1] + strings.Repeat("*", len(local)-1) + domain
}

// IP zeroes the host bits: the last octet of an IPv4 address, the interface
// identifier (low 64 bits) of an IPv6 address.
func (a *anonymizeService) IP(address string) string {
	ip := net.ParseIP(address)
	if ip == nil {
		return address
	}
	if v4 := ip.To4(); v4 != nil {
		return v4.Mask(net.CIDRMask(24, 32)).String()
	}
	return ip.Mask(net.CIDRMask(64, 128)).String()
}

// Phone masks every digit except the trailing two, leaving separators alone.
func (a *anonymizeService) Phone(phone string) string {
	digits := 0
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	if digits <= 2 {
		return phone
	}
	keepFrom := digits - 2
	seen := 0
	out := []rune(phone)
	for i, r := range out {
		if r >= '0' && r <= '9' {
			if seen < keepFrom {
				out[i] = '*'
			}
			seen++
		}
	}
	return string(out)
}

// Text sweeps free text, anonymizing every email, IP and phone number it
// finds.
func (a *anonymizeService) Text(text string) string {
	text = emailRe.ReplaceAllStringFunc(text, a.Email)
	text = ipv6Re.ReplaceAllStringFunc(text, a.IP)
	text = ipv4Re.ReplaceAllStringFunc(text, a.IP)
	text = phoneRe.ReplaceAllStringFunc(text, a.Phone)
	return text
}
