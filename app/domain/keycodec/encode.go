package keycodec

import "fmt"

// Encode helpers used by route handlers when populating the cache. They
// must stay the exact inverse of Decode.

func StatusKey() string { return "status" }

func FederationsListKey() string { return "federations-list" }

func RecordsKey(filter string) string {
	if filter == "" {
		return "records"
	}
	return "records/" + filter
}

func RankingsKey(filter string, page int, perPage int) string {
	if filter == "" {
		return fmt.Sprintf("rankings-%d-%d", page, perPage)
	}
	return fmt.Sprintf("rankings/%s-%d-%d", filter, page, perPage)
}

func FederationKey(name string, year string) string {
	if year == "" {
		return "federation-" + name
	}
	return fmt.Sprintf("federation-%s-%s", name, year)
}

func MeetKey(code string) string { return "meet-" + code }

func UserKey(username string) string { return "user-" + username }
