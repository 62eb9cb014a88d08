package handlers

import "strings"

// maskEmail оставляет два первых символа ящика и домен.
func maskEmail(email string) string {
	local, domain, ok := strings.Cut(email, "@")
	if !ok || local == "" {
		return "***"
	}
	if r := []rune(local); len(r) > 2 {
		local = string(r[:2])
	}
	return local + "***@" + domain
}

// maskPhone оставляет две последние цифры.
func maskPhone(phone string) string {
	r := []rune(phone)
	if len(r) <= 4 {
		return "***"
	}
	return strings.Repeat("*", len(r)-2) + string(r[len(r)-2:])
}
