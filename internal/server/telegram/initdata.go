package telegram

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Ошибки валидации initData
var (
	// ErrInitDataMalformed indicates that initData cannot be parsed
	ErrInitDataMalformed = errors.New("malformed init data")

	// ErrInitDataSignature indicates that the hash does not match
	ErrInitDataSignature = errors.New("init data signature mismatch")

	// ErrInitDataExpired indicates that auth_date is too old
	ErrInitDataExpired = errors.New("init data expired")
)

// secretKeySeed константа из протокола Telegram Web Apps:
// секретный ключ это HMAC-SHA256(key="WebAppData", message=botToken)
const secretKeySeed = "WebAppData"

// InitDataUser данные пользователя из поля user в initData
type InitDataUser struct {
	Username     string `json:"username"`
	FirstName    string `json:"first_name"`
	LanguageCode string `json:"language_code"`
	ID           int64  `json:"id"`
}

// InitData проверенное содержимое Telegram initData
type InitData struct {
	AuthDate time.Time
	QueryID  string
	User     InitDataUser
}

// ValidateInitData проверяет подпись и свежесть initData из Mini App.
// Алгоритм из документации Telegram Web Apps: hash сравнивается с
// HMAC-SHA256 от data-check-string (отсортированные пары key=value,
// соединенные \n, без самого hash) на ключе HMAC("WebAppData", botToken).
func ValidateInitData(initData, botToken string, maxAge time.Duration) (*InitData, error) {
	values, err := url.ParseQuery(initData)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInitDataMalformed, err)
	}

	gotHash := values.Get("hash")
	if gotHash == "" {
		return nil, fmt.Errorf("%w: hash is missing", ErrInitDataMalformed)
	}
	values.Del("hash")

	// data-check-string: key=value, отсортированные по ключу
	pairs := make([]string, 0, len(values))
	for key := range values {
		pairs = append(pairs, key+"="+values.Get(key))
	}
	sort.Strings(pairs)
	dataCheckString := strings.Join(pairs, "\n")

	secretKey := hmacSHA256([]byte(secretKeySeed), []byte(botToken))
	wantHash := hex.EncodeToString(hmacSHA256(secretKey, []byte(dataCheckString)))

	if !hmac.Equal([]byte(wantHash), []byte(gotHash)) {
		return nil, ErrInitDataSignature
	}

	// Подпись сошлась, дальше разбираем проверенные поля
	authDateRaw, err := strconv.ParseInt(values.Get("auth_date"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: bad auth_date: %v", ErrInitDataMalformed, err)
	}
	authDate := time.Unix(authDateRaw, 0)

	if maxAge > 0 && time.Since(authDate) > maxAge {
		return nil, ErrInitDataExpired
	}

	var user InitDataUser
	if rawUser := values.Get("user"); rawUser != "" {
		if err := json.Unmarshal([]byte(rawUser), &user); err != nil {
			return nil, fmt.Errorf("%w: bad user field: %v", ErrInitDataMalformed, err)
		}
	}
	if user.ID == 0 {
		return nil, fmt.Errorf("%w: user id is missing", ErrInitDataMalformed)
	}

	return &InitData{
		AuthDate: authDate,
		QueryID:  values.Get("query_id"),
		User:     user,
	}, nil
}

func hmacSHA256(key, message []byte) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write(message)
	return mac.Sum(nil)
}

// SignInitData подписывает пары initData токеном бота.
// Используется в тестах и локальной отладке, клиент Telegram делает
// это на своей стороне.
func SignInitData(values url.Values, botToken string) string {
	pairs := make([]string, 0, len(values))
	for key := range values {
		if key == "hash" {
			continue
		}
		pairs = append(pairs, key+"="+values.Get(key))
	}
	sort.Strings(pairs)

	secretKey := hmacSHA256([]byte(secretKeySeed), []byte(botToken))
	return hex.EncodeToString(hmacSHA256(secretKey, []byte(strings.Join(pairs, "\n"))))
}
