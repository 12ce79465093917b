// Package loctoken упаковывает точку на карте (широта, долгота, радиус, подпись)
// в короткий токен, безопасный для использования в сегменте URL-пути, и обратно.
//
// Формат токена:
//
//	[5 символов широты][5 символов долготы][1 символ радиуса][подпись]
//
// Первые 11 символов всегда из алфавита URL-safe base64. Подпись кодируется
// либо плотно (base64url без паддинга от UTF-8 байтов), либо как
// percent-encoding с префиксом "!".
package loctoken

import (
	"encoding/base64"
	"errors"
	"fmt"
	"math"
	"net/url"
	"strings"
	"unicode/utf8"
)

const (
	latWidth    = 5
	lonWidth    = 5
	radiusWidth = 1

	// PrefixLength - длина координатного префикса токена
	PrefixLength = latWidth + lonWidth + radiusWidth

	// MinRadius и MaxRadius - допустимый диапазон радиуса (один символ алфавита)
	MinRadius = 1
	MaxRadius = 64

	escapedMarker = '!'
	scale         = 1_000_000
)

var (
	// ErrCoordinatesOutOfRange - широта/долгота вне [-90, 90] / [-180, 180] или не конечны
	ErrCoordinatesOutOfRange = errors.New("loctoken: coordinates out of range")

	// ErrRadiusOutOfRange - радиус вне [MinRadius, MaxRadius]
	ErrRadiusOutOfRange = errors.New("loctoken: radius out of range")

	// ErrInvalidEscapedName - переданная подпись не является корректным percent-encoding
	ErrInvalidEscapedName = errors.New("loctoken: invalid escaped name")
)

// InvalidTokenError возвращается Decode для любого некорректного токена
type InvalidTokenError struct {
	Reason string
}

func (e *InvalidTokenError) Error() string {
	return "invalid location token: " + e.Reason
}

func invalidToken(format string, args ...interface{}) *InvalidTokenError {
	return &InvalidTokenError{Reason: fmt.Sprintf(format, args...)}
}

// NameEncoding - способ кодирования подписи в токене
type NameEncoding int

const (
	// Dense - base64url без паддинга от UTF-8 байтов подписи
	Dense NameEncoding = iota
	// Escaped - percent-encoding с префиксом "!"
	Escaped
)

func (e NameEncoding) String() string {
	switch e {
	case Dense:
		return "dense"
	case Escaped:
		return "escaped"
	default:
		return fmt.Sprintf("NameEncoding(%d)", int(e))
	}
}

// Location - результат декодирования токена
type Location struct {
	Latitude  float64
	Longitude float64
	Radius    int
	Name      string
	Encoding  NameEncoding
}

// Encode кодирует точку и подпись в токен (подпись в плотной форме).
// Значения вне допустимого диапазона отклоняются, а не обрезаются.
func Encode(lat, lon float64, radius int, name string) (string, error) {
	prefix, err := encodePrefix(lat, lon, radius)
	if err != nil {
		return "", err
	}
	return prefix + base64.RawURLEncoding.EncodeToString([]byte(name)), nil
}

// EncodeEscaped кодирует точку с подписью, которую вызывающий уже привёл к
// percent-encoding (например, url.PathEscape). Подпись не кодируется повторно.
func EncodeEscaped(lat, lon float64, radius int, escapedName string) (string, error) {
	prefix, err := encodePrefix(lat, lon, radius)
	if err != nil {
		return "", err
	}
	if strings.ContainsAny(escapedName, "/?#") {
		return "", ErrInvalidEscapedName
	}
	if _, err := unescapeName(escapedName); err != nil {
		return "", ErrInvalidEscapedName
	}
	return prefix + string(escapedMarker) + escapedName, nil
}

// Decode разбирает токен. Любая ошибка возвращается как *InvalidTokenError.
func Decode(token string) (Location, error) {
	if len(token) < PrefixLength {
		return Location{}, invalidToken("token too short: %d characters, need at least %d", len(token), PrefixLength)
	}

	prefix, nameData := token[:PrefixLength], token[PrefixLength:]

	latInt, err := decodeInt(prefix[:latWidth])
	if err != nil {
		return Location{}, err
	}
	lonInt, err := decodeInt(prefix[latWidth : latWidth+lonWidth])
	if err != nil {
		return Location{}, err
	}
	radInt, err := decodeInt(prefix[latWidth+lonWidth:])
	if err != nil {
		return Location{}, err
	}
	if latInt > 180*scale || lonInt > 360*scale {
		return Location{}, invalidToken("coordinates out of range")
	}

	loc := Location{
		Latitude:  round6(float64(latInt-90*scale) / scale),
		Longitude: round6(float64(lonInt-180*scale) / scale),
		Radius:    int(radInt) + 1,
	}

	if len(nameData) > 0 && nameData[0] == escapedMarker {
		name, err := unescapeName(nameData[1:])
		if err != nil {
			return Location{}, invalidToken("malformed escaped name: %v", err)
		}
		loc.Name = name
		loc.Encoding = Escaped
		return loc, nil
	}

	name, err := decodeDenseName(nameData)
	if err != nil {
		return Location{}, err
	}
	loc.Name = name
	loc.Encoding = Dense
	return loc, nil
}

func encodePrefix(lat, lon float64, radius int) (string, error) {
	if !isFinite(lat) || !isFinite(lon) || lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return "", ErrCoordinatesOutOfRange
	}
	if radius < MinRadius || radius > MaxRadius {
		return "", ErrRadiusOutOfRange
	}

	latInt := int64(math.Round((lat + 90) * scale))
	lonInt := int64(math.Round((lon + 180) * scale))
	radInt := int64(radius - 1)

	// диапазоны выше гарантируют, что значения помещаются в свою ширину
	if latInt > maxValue(latWidth) || lonInt > maxValue(lonWidth) || radInt > maxValue(radiusWidth) {
		return "", ErrCoordinatesOutOfRange
	}

	return encodeInt(latInt, latWidth) + encodeInt(lonInt, lonWidth) + encodeInt(radInt, radiusWidth), nil
}

func decodeDenseName(data string) (string, error) {
	if !inAlphabet(data) {
		return "", invalidToken("malformed name: character outside base64url alphabet")
	}

	std := strings.NewReplacer("-", "+", "_", "/").Replace(data)
	if rem := len(std) % 4; rem != 0 {
		std += strings.Repeat("=", 4-rem)
	}

	raw, err := base64.StdEncoding.Strict().DecodeString(std)
	if err != nil {
		return "", invalidToken("malformed name: %v", err)
	}
	if !utf8.Valid(raw) {
		return "", invalidToken("malformed name: invalid UTF-8")
	}
	return string(raw), nil
}

func unescapeName(escaped string) (string, error) {
	name, err := url.PathUnescape(escaped)
	if err != nil {
		return "", err
	}
	if !utf8.ValidString(name) {
		return "", errors.New("invalid UTF-8")
	}
	return name, nil
}

func round6(v float64) float64 {
	return math.Round(v*scale) / scale
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
