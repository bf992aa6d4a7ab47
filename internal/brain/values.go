package brain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var numberRe = regexp.MustCompile(`\d+(\.\d+)?`)

// AnalyzeValue classifies a numeric reading mentioned alongside a vital
// category against fixed clinical thresholds. Only the first number found
// in the text is considered. Temperature is interpreted as Fahrenheit.
func AnalyzeValue(text string) (string, bool) {
	t := strings.ToLower(text)

	if containsAny(t, "heart rate", "bpm", "pulse") {
		if v, ok := firstNumber(t); ok {
			n := int(v)
			switch {
			case n > 100:
				return fmt.Sprintf("A heart rate of %d is considered high (tachycardia) if you are resting. Consult a doctor if strictly resting.", n), true
			case n < 60:
				return fmt.Sprintf("A heart rate of %d is low (bradycardia), which is common for athletes but consult a doctor if you feel dizzy.", n), true
			default:
				return fmt.Sprintf("A heart rate of %d is within the normal resting range.", n), true
			}
		}
	}

	if containsAny(t, "temp", "fever") {
		if v, ok := firstNumber(t); ok {
			switch {
			case v > 103:
				return fmt.Sprintf("A temperature of %s°F is a high fever. Seek medical attention.", trimNumber(v)), true
			case v > 100.4:
				return fmt.Sprintf("A temperature of %s°F indicates a fever. Monitor closely.", trimNumber(v)), true
			case v < 95:
				return fmt.Sprintf("A temperature of %s°F is very low (hypothermia). Warm up immediately.", trimNumber(v)), true
			default:
				return fmt.Sprintf("A temperature of %s°F is normal.", trimNumber(v)), true
			}
		}
	}

	if containsAny(t, "spo2", "oxygen") {
		if v, ok := firstNumber(t); ok {
			n := int(v)
			switch {
			case n < 90:
				return fmt.Sprintf("An SpO2 level of %d%% is concerningly low. Please seek medical attention immediately.", n), true
			case n < 95:
				return fmt.Sprintf("An SpO2 level of %d%% is slightly below normal ranges. Monitor closely.", n), true
			default:
				return fmt.Sprintf("%d%% is a healthy blood oxygen level.", n), true
			}
		}
	}

	return "", false
}

func firstNumber(t string) (float64, bool) {
	m := numberRe.FindString(t)
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// trimNumber drops a trailing ".0" so whole readings speak naturally.
func trimNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
