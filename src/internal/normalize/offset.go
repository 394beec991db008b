// FILE: logmerge/src/internal/normalize/offset.go
package normalize

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

var offsetPattern = regexp.MustCompile(`^([+-]?)(\d{1,2}):(\d{2})$`)

// ParseOffset converts "[+-]hh:mm" into milliseconds. The sign applies to
// both fields, so "-05:30" is minus five and a half hours. An empty string
// is a zero offset.
func ParseOffset(s string) (int64, error) {
	if s == "" || s == "0" {
		return 0, nil
	}

	m := offsetPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("%q is not a valid timezone offset (expected [+-]hh:mm)", s)
	}

	hours, _ := strconv.Atoi(m[2])
	minutes, _ := strconv.Atoi(m[3])
	if minutes > 59 {
		return 0, fmt.Errorf("%q is not a valid timezone offset: minutes out of range", s)
	}

	d := time.Duration(hours)*time.Hour + time.Duration(minutes)*time.Minute
	if m[1] == "-" {
		d = -d
	}
	return d.Milliseconds(), nil
}

// FormatOffset renders milliseconds back as "+hh:mm"
func FormatOffset(ms int64) string {
	sign := "+"
	if ms < 0 {
		sign = "-"
		ms = -ms
	}
	minutes := ms / int64(time.Minute/time.Millisecond)
	return fmt.Sprintf("%s%02d:%02d", sign, minutes/60, minutes%60)
}
