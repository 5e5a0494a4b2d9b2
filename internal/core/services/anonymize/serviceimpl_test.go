package anonymize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnonymizeEmail(t *testing.T) {
	svc := NewAnonymizeService()

	t.Run("keeps first char and domain", func(t *testing.T) {
		assert.Equal(t, "j*******@example.com", svc.Email("john.doe@example.com"))
	})

	t.Run("single char local part", func(t *testing.T) {
		assert.Equal(t, "a@example.com", svc.Email("a@example.com"))
	})

	t.Run("not an email passes through", func(t *testing.T) {
		assert.Equal(t, "not-an-email", svc.Email("not-an-email"))
	})
}

func TestAnonymizeIP(t *testing.T) {
	svc := NewAnonymizeService()

	t.Run("ipv4 zeroes last octet", func(t *testing.T) {
		assert.Equal(t, "192.168.1.0", svc.IP("192.168.1.55"))
	})

	t.Run("ipv6 zeroes interface identifier", func(t *testing.T) {
		assert.Equal(t, "2001:db8:1:2::", svc.IP("2001:db8:1:2:3:4:5:6"))
	})

	t.Run("garbage passes through", func(t *testing.T) {
		assert.Equal(t, "999.999.1", svc.IP("999.999.1"))
	})
}

func TestAnonymizePhone(t *testing.T) {
	svc := NewAnonymizeService()

	t.Run("masks all but last two digits", func(t *testing.T) {
		assert.Equal(t, "(***) ***-**67", svc.Phone("(555) 123-4567"))
	})

	t.Run("short values untouched", func(t *testing.T) {
		assert.Equal(t, "42", svc.Phone("42"))
	})
}

func TestAnonymizeText(t *testing.T) {
	svc := NewAnonymizeService()

	in := "contact bob@corp.io from 10.0.0.42 or call 555-123-4567"
	out := svc.Text(in)

	assert.Equal(t, "contact b**@corp.io from 10.0.0.0 or call ***-***-**67", out)
}
