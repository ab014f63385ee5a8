package listing

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// ErrBadDate 날짜 문자열 해석 실패
var ErrBadDate = errors.New("unparseable date")

// SplitPeriod splits "a ~ b" into its trimmed ends.
// Without a separator the whole value is returned as end.
func SplitPeriod(period string) (start, end string) {
	before, after, found := strings.Cut(period, "~")
	if !found {
		return "", strings.TrimSpace(period)
	}
	return strings.TrimSpace(before), strings.TrimSpace(after)
}

// ParseDate reads "yy.mm.dd" / "yyyy.mm.dd" ('-' and '/' also accepted).
// Trailing annotations like "(월)" or "[추가접수]" are ignored.
// The result is midnight UTC; only the calendar day is meaningful.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, "(["); i >= 0 {
		s = strings.TrimSpace(s[:i])
	}

	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == '.' || r == '-' || r == '/'
	})
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("%w: %q", ErrBadDate, s)
	}

	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %q", ErrBadDate, s)
		}
		nums[i] = n
	}

	year, month, day := nums[0], nums[1], nums[2]
	if year < 100 {
		year += 2000
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, fmt.Errorf("%w: %q", ErrBadDate, s)
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Month() != time.Month(month) || t.Day() != day {
		// 23.02.31 처럼 달력에 없는 날짜
		return time.Time{}, fmt.Errorf("%w: %q", ErrBadDate, s)
	}
	return t, nil
}

// DDay 마감까지 남은 일수 "D-<n>" (n = 올림한 일수, 지난 마감은 음수 그대로).
// 마감일을 해석할 수 없으면 원본 마감 문자열을 돌려준다.
func DDay(period string, now time.Time) string {
	_, end := SplitPeriod(period)
	d, err := ParseDate(end)
	if err != nil {
		return end
	}

	closing := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, now.Location())
	days := math.Ceil(closing.Sub(now).Hours() / 24)
	return fmt.Sprintf("D-%d", int(days))
}
