package service

// maxPasswordBytes is the longest input bcrypt hashes. Longer passwords are
// truncated rather than rejected, for both hashing and comparison.
const maxPasswordBytes = 72

func passwordBytes(password string) []byte {
	b := []byte(password)
	if len(b) > maxPasswordBytes {
		b = b[:maxPasswordBytes]
	}
	return b
}
