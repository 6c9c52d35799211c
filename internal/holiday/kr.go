// Package holiday provides a preloaded national holiday lookup.
package holiday

import (
	"fmt"
	"sort"
	"strings"
)

type Holiday struct {
	Date string `json:"date"` // YYYY-MM-DD
	Name string `json:"name"`
}

// Calendar answers whether a calendar date is a national holiday.
type Calendar struct {
	names map[string]string
}

// Korea returns the Korean national holiday calendar for 2024-2027.
// Lunar holidays and substitute days cannot be derived from the Gregorian
// date alone, so they ship as per-year entries like any reference dataset.
func Korea() *Calendar {
	return &Calendar{names: krHolidays}
}

func (c *Calendar) Name(date string) (string, bool) {
	name, ok := c.names[date]
	return name, ok
}

func (c *Calendar) IsHoliday(date string) bool {
	_, ok := c.names[date]
	return ok
}

// ForMonth lists the month's holidays in date order.
func (c *Calendar) ForMonth(year, month int) []Holiday {
	prefix := fmt.Sprintf("%04d-%02d-", year, month)
	var out []Holiday
	for date, name := range c.names {
		if strings.HasPrefix(date, prefix) {
			out = append(out, Holiday{Date: date, Name: name})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

var krHolidays = map[string]string{
	// 2024
	"2024-01-01": "신정",
	"2024-02-09": "설날 연휴",
	"2024-02-10": "설날",
	"2024-02-11": "설날 연휴",
	"2024-02-12": "대체공휴일(설날)",
	"2024-03-01": "삼일절",
	"2024-04-10": "국회의원 선거일",
	"2024-05-05": "어린이날",
	"2024-05-06": "대체공휴일(어린이날)",
	"2024-05-15": "부처님오신날",
	"2024-06-06": "현충일",
	"2024-08-15": "광복절",
	"2024-09-16": "추석 연휴",
	"2024-09-17": "추석",
	"2024-09-18": "추석 연휴",
	"2024-10-01": "국군의 날",
	"2024-10-03": "개천절",
	"2024-10-09": "한글날",
	"2024-12-25": "기독탄신일",
	// 2025
	"2025-01-01": "신정",
	"2025-01-27": "임시공휴일",
	"2025-01-28": "설날 연휴",
	"2025-01-29": "설날",
	"2025-01-30": "설날 연휴",
	"2025-03-01": "삼일절",
	"2025-03-03": "대체공휴일(삼일절)",
	"2025-05-05": "어린이날",
	"2025-05-06": "대체공휴일(부처님오신날)",
	"2025-06-03": "대통령 선거일",
	"2025-06-06": "현충일",
	"2025-08-15": "광복절",
	"2025-10-03": "개천절",
	"2025-10-05": "추석 연휴",
	"2025-10-06": "추석",
	"2025-10-07": "추석 연휴",
	"2025-10-08": "대체공휴일(추석)",
	"2025-10-09": "한글날",
	"2025-12-25": "기독탄신일",
	// 2026
	"2026-01-01": "신정",
	"2026-02-16": "설날 연휴",
	"2026-02-17": "설날",
	"2026-02-18": "설날 연휴",
	"2026-03-01": "삼일절",
	"2026-03-02": "대체공휴일(삼일절)",
	"2026-05-05": "어린이날",
	"2026-05-24": "부처님오신날",
	"2026-05-25": "대체공휴일(부처님오신날)",
	"2026-06-03": "전국동시지방선거",
	"2026-06-06": "현충일",
	"2026-08-15": "광복절",
	"2026-08-17": "대체공휴일(광복절)",
	"2026-09-24": "추석 연휴",
	"2026-09-25": "추석",
	"2026-09-26": "추석 연휴",
	"2026-10-03": "개천절",
	"2026-10-05": "대체공휴일(개천절)",
	"2026-10-09": "한글날",
	"2026-12-25": "기독탄신일",
	// 2027
	"2027-01-01": "신정",
	"2027-02-06": "설날 연휴",
	"2027-02-07": "설날",
	"2027-02-08": "설날 연휴",
	"2027-02-09": "대체공휴일(설날)",
	"2027-03-01": "삼일절",
	"2027-05-05": "어린이날",
	"2027-05-13": "부처님오신날",
	"2027-06-06": "현충일",
	"2027-08-15": "광복절",
	"2027-08-16": "대체공휴일(광복절)",
	"2027-09-14": "추석 연휴",
	"2027-09-15": "추석",
	"2027-09-16": "추석 연휴",
	"2027-10-03": "개천절",
	"2027-10-04": "대체공휴일(개천절)",
	"2027-10-09": "한글날",
	"2027-10-11": "대체공휴일(한글날)",
	"2027-12-25": "기독탄신일",
	"2027-12-27": "대체공휴일(기독탄신일)",
}
