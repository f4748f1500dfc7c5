package scraper

import (
	"fmt"
	"strconv"
)

// rankingsResponse is the upstream JSON rankings payload: positional rows
// plus the unfiltered total.
type rankingsResponse struct {
	Rows        [][]any `json:"rows"`
	TotalLength int     `json:"total_length"`
}

// RankingEntry is one ranked lift, mapped from the upstream's fixed
// 24-position row array.
type RankingEntry struct {
	Index         int    `json:"index"`
	Rank          int    `json:"rank"`
	FullName      string `json:"full_name"`
	Username      string `json:"username"`
	Instagram     string `json:"instagram"`
	Color         string `json:"color"`
	LifterCountry string `json:"lifter_country"`
	LifterState   string `json:"lifter_state"`
	Federation    string `json:"federation"`
	Date          string `json:"date"`
	MeetCountry   string `json:"meet_country"`
	MeetState     string `json:"meet_state"`
	MeetCode      string `json:"meet_code"`
	Sex           string `json:"sex"`
	Equipment     string `json:"equipment"`
	Age           string `json:"age"`
	Division      string `json:"division"`
	Bodyweight    string `json:"bodyweight"`
	WeightClass   string `json:"weight_class"`
	Squat         string `json:"squat"`
	Bench         string `json:"bench"`
	Deadlift      string `json:"deadlift"`
	Total         string `json:"total"`
	Dots          string `json:"dots"`
}

type RankingsPage struct {
	Entries    []RankingEntry `json:"rankings"`
	Pagination Pagination     `json:"pagination"`
}

const rankingRowWidth = 24

func entryFromRow(row []any) (RankingEntry, error) {
	if len(row) < rankingRowWidth {
		return RankingEntry{}, fmt.Errorf("ranking row has %d fields, want %d", len(row), rankingRowWidth)
	}
	return RankingEntry{
		Index:         asInt(row[0]),
		Rank:          asInt(row[1]),
		FullName:      asString(row[2]),
		Username:      asString(row[3]),
		Instagram:     asString(row[4]),
		Color:         asString(row[5]),
		LifterCountry: asString(row[6]),
		LifterState:   asString(row[7]),
		Federation:    asString(row[8]),
		Date:          asString(row[9]),
		MeetCountry:   asString(row[10]),
		MeetState:     asString(row[11]),
		MeetCode:      asString(row[12]),
		Sex:           asString(row[13]),
		Equipment:     asString(row[14]),
		Age:           asString(row[15]),
		Division:      asString(row[16]),
		Bodyweight:    asString(row[17]),
		WeightClass:   asString(row[18]),
		Squat:         asString(row[19]),
		Bench:         asString(row[20]),
		Deadlift:      asString(row[21]),
		Total:         asString(row[22]),
		Dots:          asString(row[23]),
	}, nil
}

func asString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", t)
	}
}

func asInt(v any) int {
	switch t := v.(type) {
	case float64:
		return int(t)
	case string:
		n, _ := strconv.Atoi(t)
		return n
	default:
		return 0
	}
}
