// Package classify inspects brief or PRD text for platform/category signals.
// The checks are literal case-insensitive substring tests with a fixed
// precedence: native iOS before native Android, cross-platform only when no
// native signal fired, and the first matching category wins. This mirrors the
// heuristic's documented tie-break policy rather than any scored ranking.
package classify

import "strings"

// Category is the detected project domain.
type Category string

const (
	IOS           Category = "ios"
	Android       Category = "android"
	CrossPlatform Category = "cross_platform"
	Ecommerce     Category = "ecommerce"
	Web           Category = "web"
	AIChatbot     Category = "ai_chatbot"
	Generic       Category = "generic"
)

var (
	iosSignals     = []string{"ios", "iphone", "ipad", "xcode", "swift"}
	androidSignals = []string{"android", "kotlin", "android studio"}
	crossSignals   = []string{"react native", "flutter", "cross-platform"}
)

func containsAny(text string, signals []string) bool {
	for _, s := range signals {
		if strings.Contains(text, s) {
			return true
		}
	}
	return false
}

// HasIOSSignal reports whether any native-iOS keyword appears in text
// (lower-cased substring test).
func HasIOSSignal(text string) bool {
	return containsAny(strings.ToLower(text), iosSignals)
}

// HasAndroidSignal reports whether any native-Android keyword appears in text.
func HasAndroidSignal(text string) bool {
	return containsAny(strings.ToLower(text), androidSignals)
}

// Detect classifies a description (optionally joined with the project name for
// the native checks). Known quirk: any native keyword anywhere in the text
// suppresses the cross-platform category, even when the keyword is incidental
// ("native-feeling UX"). That precedence is intentional and kept as-is.
func Detect(name, description string) Category {
	desc := strings.ToLower(description)
	nameLower := strings.ToLower(name)

	// Native platforms dominate everything else; iOS suppresses Android.
	if containsAny(desc, iosSignals) || containsAny(nameLower, iosSignals) {
		return IOS
	}
	if containsAny(desc, androidSignals) || containsAny(nameLower, androidSignals) {
		return Android
	}
	if containsAny(desc, crossSignals) {
		return CrossPlatform
	}
	if strings.Contains(desc, "e-commerce") || strings.Contains(desc, "ecommerce") || strings.Contains(desc, "shopping") {
		return Ecommerce
	}
	if strings.Contains(desc, "mobile") || strings.Contains(desc, "app") {
		return CrossPlatform
	}
	if strings.Contains(desc, "web") || strings.Contains(desc, "website") {
		return Web
	}
	if strings.Contains(desc, "ai") || strings.Contains(desc, "chatbot") {
		return AIChatbot
	}
	return Generic
}
