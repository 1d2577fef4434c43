package domain

import "strings"

// AllowList holds the "promo" accounts that may see and edit tasks flagged as
// shared. Emails are compared case-insensitively.
type AllowList struct {
	emails map[string]struct{}
}

func NewAllowList(emails []string) AllowList {
	set := make(map[string]struct{}, len(emails))
	for _, email := range emails {
		email = strings.ToLower(strings.TrimSpace(email))
		if email == "" {
			continue
		}
		set[email] = struct{}{}
	}
	return AllowList{emails: set}
}

func (a AllowList) Contains(email string) bool {
	if email == "" {
		return false
	}
	_, ok := a.emails[strings.ToLower(strings.TrimSpace(email))]
	return ok
}

func (a AllowList) Len() int {
	return len(a.emails)
}
