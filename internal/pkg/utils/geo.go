package utils

import "math"

const earthRadiusKm = 6371.0

// SphericalDistanceKm вычисляет расстояние между двумя точками в километрах
// по сферической теореме косинусов
func SphericalDistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	lat1Rad := lat1 * math.Pi / 180.0
	lat2Rad := lat2 * math.Pi / 180.0
	dLon := (lon2 - lon1) * math.Pi / 180.0

	cosAngle := math.Sin(lat1Rad)*math.Sin(lat2Rad) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*math.Cos(dLon)

	// погрешность округления может вывести аргумент за [-1, 1]
	cosAngle = math.Max(-1, math.Min(1, cosAngle))

	return earthRadiusKm * math.Acos(cosAngle)
}

// ValidateCoordinates проверяет валидность координат
func ValidateCoordinates(lat, lon float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lon) {
		return false
	}
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// ClampRadius приводит радиус поиска к диапазону [min, max]
func ClampRadius(radiusKm, min, max float64) float64 {
	if math.IsNaN(radiusKm) || radiusKm < min {
		return min
	}
	if radiusKm > max {
		return max
	}
	return radiusKm
}

// RoundCoordinate округляет координату до 6 знаков после запятой
func RoundCoordinate(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}
