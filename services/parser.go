package services

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"demand-forecaster/config"
	"demand-forecaster/models"
	"demand-forecaster/utils"
)

const kmhPerMph = 1.609344

var (
	numberRegex   = regexp.MustCompile(`-?\d+(?:\.\d+)?`)
	windRegex     = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(km/h|mph)`)
	humidityRegex = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*%$`)
	rainRegex     = regexp.MustCompile(`^\d+(?:\.\d+)?$`)
)

// ParseTemperature converts a temperature cell to Celsius. The cell must
// carry a °F or °C marker.
func ParseTemperature(text string) (float64, error) {
	var fahrenheit bool
	switch {
	case strings.Contains(text, "°F"):
		fahrenheit = true
	case strings.Contains(text, "°C"):
	default:
		return 0, &models.ParseError{Field: "temperature", Text: text, Err: fmt.Errorf("no unit marker")}
	}

	num := numberRegex.FindString(text)
	if num == "" {
		return 0, &models.ParseError{Field: "temperature", Text: text}
	}
	v, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, &models.ParseError{Field: "temperature", Text: text, Err: err}
	}

	if fahrenheit {
		return (v - 32) * 5 / 9, nil
	}
	return v, nil
}

// ParseWind converts a wind cell to km/h. Cells without a km/h or mph
// reading are 0 under WindDefaultZero and a parse error under WindReject.
func ParseWind(text string, policy config.WindPolicy) (float64, error) {
	m := windRegex.FindStringSubmatch(text)
	if len(m) < 3 {
		if policy == config.WindReject {
			return 0, &models.ParseError{Field: "wind_speed", Text: text}
		}
		return 0, nil
	}

	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, &models.ParseError{Field: "wind_speed", Text: text, Err: err}
	}
	if m[2] == "mph" {
		v = utils.Round(v*kmhPerMph, 2)
	}
	return v, nil
}

// ParseHumidity extracts the percentage from a cell like "48%"
func ParseHumidity(text string) (int, error) {
	m := humidityRegex.FindStringSubmatch(strings.TrimSpace(text))
	if len(m) < 2 {
		return 0, &models.ParseError{Field: "humidity", Text: text}
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, &models.ParseError{Field: "humidity", Text: text, Err: err}
	}
	return int(v), nil
}

// ParseRainfall reads "0.3 mm (rain)". Anything else, including the "-" the
// page shows for dry hours, is 0.
func ParseRainfall(text string) float64 {
	cleaned := strings.TrimSpace(strings.Replace(text, "mm (rain)", "", 1))
	if !rainRegex.MatchString(cleaned) {
		return 0
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return v
}

// CleanCondition trims whitespace and trailing periods from the condition text
func CleanCondition(text string) string {
	return strings.TrimRight(strings.TrimSpace(text), ".")
}
