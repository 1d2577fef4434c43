package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strconv"
	"strings"
	"time"

	"devflow/internal/core/domain"
	"devflow/internal/core/ports"
)

// TelegramVerifier checks the signature of a Telegram login widget payload:
// hash == hex(HMAC_SHA256(data_check_string, SHA256(bot_token))), where the
// data check string is the sorted "key=value" lines of every received field
// except hash.
type TelegramVerifier struct {
	enabled   bool
	secretKey []byte
	maxAge    time.Duration
	now       func() time.Time
}

var _ ports.TelegramVerifier = (*TelegramVerifier)(nil)

func NewTelegramVerifier(botToken string, maxAge time.Duration) *TelegramVerifier {
	sum := sha256.Sum256([]byte(botToken))
	return &TelegramVerifier{
		enabled:   botToken != "",
		secretKey: sum[:],
		maxAge:    maxAge,
		now:       time.Now,
	}
}

func (v *TelegramVerifier) Verify(login domain.TelegramLogin) error {
	if !v.enabled {
		return domain.ErrTelegramDisabled
	}
	if login.ID == 0 || login.AuthDate == 0 || login.Hash == "" {
		return domain.ErrInvalidTelegramLogin
	}

	expected := v.Sign(login)
	if !hmac.Equal([]byte(expected), []byte(strings.ToLower(login.Hash))) {
		return domain.ErrInvalidTelegramLogin
	}

	if v.maxAge > 0 && v.now().Sub(time.Unix(login.AuthDate, 0)) > v.maxAge {
		return domain.ErrInvalidTelegramLogin
	}
	return nil
}

// Sign computes the hash Telegram would attach to login.
func (v *TelegramVerifier) Sign(login domain.TelegramLogin) string {
	mac := hmac.New(sha256.New, v.secretKey)
	mac.Write([]byte(dataCheckString(login)))
	return hex.EncodeToString(mac.Sum(nil))
}

func dataCheckString(login domain.TelegramLogin) string {
	fields := map[string]string{
		"id":        strconv.FormatInt(login.ID, 10),
		"auth_date": strconv.FormatInt(login.AuthDate, 10),
	}
	optional := map[string]string{
		"first_name": login.FirstName,
		"last_name":  login.LastName,
		"username":   login.Username,
		"photo_url":  login.PhotoURL,
	}
	for key, value := range optional {
		if value != "" {
			fields[key] = value
		}
	}

	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, key := range keys {
		lines = append(lines, key+"="+fields[key])
	}
	return strings.Join(lines, "\n")
}
