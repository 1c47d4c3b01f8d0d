package keys

const (
	maskPlaceholder = "****"
	maskVisible     = 4
)

// Mask returns a display-safe form of secret. Secrets of 8 characters or
// fewer are replaced entirely; longer ones keep their first and last four
// characters around a fixed "****", so the output length does not depend on
// the secret's length.
func Mask(secret string) string {
	runes := []rune(secret)
	if len(runes) <= 2*maskVisible {
		return maskPlaceholder
	}
	return string(runes[:maskVisible]) + maskPlaceholder + string(runes[len(runes)-maskVisible:])
}
