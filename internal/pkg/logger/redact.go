package logger

// RedactName masks a person's name for safe logging.
// "Maria Souza" → "Ma***"
// Short names (≤2 runes) are fully masked: "Al" → "***"
func RedactName(name string) string {
	runes := []rune(name)
	if len(runes) > 2 {
		return string(runes[:2]) + "***"
	}
	return "***"
}
