package query

import (
	"fmt"
	"strconv"
)

// Cache keys identify a resource kind plus its resolved parameters. Families
// share a prefix so a single mutation can mark every page of a listing stale;
// selector and search keys deliberately sit outside the family prefixes and
// survive mutations until their own staleness window expires.
const (
	personsFamily     = "persons:"
	professionsFamily = "professions:"

	statsKey          = "dashboard-stats"
	professionsAllKey = "professions-all"
)

func personsKey(skip, limit int) string {
	return fmt.Sprintf("%s%d:%d", personsFamily, skip, limit)
}

func personKey(id int64) string {
	return "person:" + strconv.FormatInt(id, 10)
}

func personSearchKey(q string) string {
	return "persons-search:" + q
}

func professionsKey(page, size int) string {
	return fmt.Sprintf("%s%d:%d", professionsFamily, page, size)
}

func professionKey(id int64) string {
	return "profession:" + strconv.FormatInt(id, 10)
}

func professionSearchKey(q string) string {
	return "professions-search:" + q
}
