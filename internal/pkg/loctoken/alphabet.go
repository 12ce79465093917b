package loctoken

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"

const base = int64(len(alphabet))

// alphabetIndex - обратная таблица: байт -> значение 0..63, -1 для символов вне алфавита
var alphabetIndex = func() [256]int8 {
	var idx [256]int8
	for i := range idx {
		idx[i] = -1
	}
	for i := 0; i < len(alphabet); i++ {
		idx[alphabet[i]] = int8(i)
	}
	return idx
}()

// encodeInt записывает n в base-64, старший разряд первым, дополняя до width символов
func encodeInt(n int64, width int) string {
	buf := make([]byte, width)
	for i := width - 1; i >= 0; i-- {
		buf[i] = alphabet[n%base]
		n /= base
	}
	return string(buf)
}

// decodeInt разбирает строку фиксированной ширины обратно в число
func decodeInt(s string) (int64, error) {
	var n int64
	for i := 0; i < len(s); i++ {
		v := alphabetIndex[s[i]]
		if v < 0 {
			return 0, invalidToken("invalid character %q at position %d", s[i], i)
		}
		n = n*base + int64(v)
	}
	return n, nil
}

// maxValue возвращает наибольшее число, помещающееся в width символов
func maxValue(width int) int64 {
	m := int64(1)
	for i := 0; i < width; i++ {
		m *= base
	}
	return m - 1
}

// inAlphabet проверяет, что все символы строки входят в алфавит
func inAlphabet(s string) bool {
	for i := 0; i < len(s); i++ {
		if alphabetIndex[s[i]] < 0 {
			return false
		}
	}
	return true
}
