package anonymize

// IAnonymizeService scrubs personally identifying values. Each routine keeps
// just enough shape for the value to stay recognizable in logs and exports.
type IAnonymizeService interface {
	Email(email string) string
	IP(address string) string
	Phone(phone string) string
	Text(text string) string
}
