package command

import "strings"

var (
	dataEscaper = strings.NewReplacer(
		"%", "%25",
		"\r", "%0D",
		"\n", "%0A",
	)
	propertyEscaper = strings.NewReplacer(
		"%", "%25",
		"\r", "%0D",
		"\n", "%0A",
		":", "%3A",
		",", "%2C",
	)
	dataUnescaper = strings.NewReplacer(
		"%0D", "\r",
		"%0A", "\n",
		"%25", "%",
	)
	propertyUnescaper = strings.NewReplacer(
		"%0D", "\r",
		"%0A", "\n",
		"%3A", ":",
		"%2C", ",",
		"%25", "%",
	)
)

// EscapeData escapes text used as the payload of a command.
//
// strings.Replacer works in a single pass over the input, so a "%" introduced by
// replacing "\n" is never escaped again.
func EscapeData(s string) string {
	return dataEscaper.Replace(s)
}

// EscapeProperty escapes text used as a property value. It applies EscapeData and also
// escapes ":" and ",".
func EscapeProperty(s string) string {
	return propertyEscaper.Replace(s)
}

// UnescapeData reverses EscapeData.
func UnescapeData(s string) string {
	return dataUnescaper.Replace(s)
}

// UnescapeProperty reverses EscapeProperty.
func UnescapeProperty(s string) string {
	return propertyUnescaper.Replace(s)
}
