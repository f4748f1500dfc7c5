package keycodec

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeExactKeys(t *testing.T) {
	cases := []struct {
		key  string
		kind Kind
		path string
	}{
		{"status", KindStatus, "/status"},
		{"federations-list", KindFederationsList, "/mlist"},
		{"records", KindRecords, "/records"},
	}
	for _, tc := range cases {
		desc, err := Decode(tc.key)
		require.NoError(t, err, tc.key)
		assert.Equal(t, tc.kind, desc.Kind)
		assert.Equal(t, tc.path, desc.Path)
		assert.Equal(t, FetchHTML, desc.Mode)
	}
}

func TestDecodeRecordsFilter(t *testing.T) {
	desc, err := Decode("records/raw/men")
	require.NoError(t, err)
	assert.Equal(t, KindRecords, desc.Kind)
	assert.Equal(t, "raw/men", desc.Filter)
	assert.Equal(t, "/records/raw/men", desc.Path)
}

func TestDecodeRankingsRoundTrip(t *testing.T) {
	for _, page := range []int{1, 2, 3, 17} {
		for _, perPage := range []int{1, 50, 100} {
			key := RankingsKey("", page, perPage)
			desc, err := Decode(key)
			require.NoError(t, err, key)
			assert.Equal(t, KindRankings, desc.Kind)
			assert.Equal(t, FetchJSON, desc.Mode)
			assert.Equal(t, page, desc.Page)
			assert.Equal(t, perPage, desc.PerPage)
			assert.Equal(t, key, RankingsKey(desc.Filter, desc.Page, desc.PerPage))

			start := (page - 1) * perPage
			assert.Contains(t, desc.Path, fmt.Sprintf("start=%d&end=%d", start, start+perPage))
		}
	}
}

func TestDecodeRankingsFiltered(t *testing.T) {
	desc, err := Decode("rankings/raw/men-1-100")
	require.NoError(t, err)
	assert.Equal(t, "raw/men", desc.Filter)
	assert.Equal(t, 1, desc.Page)
	assert.Equal(t, 100, desc.PerPage)
	assert.Equal(t, "/rankings/raw/men?start=0&end=100&lang=en&units=lbs", desc.Path)

	// filter segments may themselves contain hyphens
	desc, err = Decode("rankings/single-ply/women-2-50")
	require.NoError(t, err)
	assert.Equal(t, "single-ply/women", desc.Filter)
	assert.Equal(t, 2, desc.Page)
	assert.Equal(t, 50, desc.PerPage)
}

func TestDecodeRankingsInvalid(t *testing.T) {
	for _, key := range []string{"rankings-abc-def", "rankings-3", "rankings--1-100", "rankings/raw-abc-def"} {
		_, err := Decode(key)
		assert.ErrorIs(t, err, ErrInvalidKey, key)
	}
}

func TestDecodeFederationYearHeuristic(t *testing.T) {
	desc, err := Decode("federation-uspa-2024")
	require.NoError(t, err)
	assert.Equal(t, "uspa", desc.Federation)
	assert.Equal(t, "2024", desc.Year)
	assert.Equal(t, "/mlist/uspa/2024", desc.Path)

	// a trailing numeric run that is not exactly 4 digits is part of the name
	desc, err = Decode("federation-uspa-123")
	require.NoError(t, err)
	assert.Equal(t, "uspa-123", desc.Federation)
	assert.Empty(t, desc.Year)
	assert.Equal(t, "/mlist/uspa-123", desc.Path)

	desc, err = Decode("federation-365strong")
	require.NoError(t, err)
	assert.Equal(t, "365strong", desc.Federation)
	assert.Empty(t, desc.Year)

	desc, err = Decode("federation-wrpf-usa-2023")
	require.NoError(t, err)
	assert.Equal(t, "wrpf-usa", desc.Federation)
	assert.Equal(t, "2023", desc.Year)
}

func TestDecodeMeetAndUser(t *testing.T) {
	desc, err := Decode("meet-wrpf-ru/2301")
	require.NoError(t, err)
	assert.Equal(t, KindMeet, desc.Kind)
	assert.Equal(t, "wrpf-ru/2301", desc.MeetCode)
	assert.Equal(t, "/m/wrpf-ru/2301", desc.Path)

	desc, err = Decode("user-john-doe")
	require.NoError(t, err)
	assert.Equal(t, KindUser, desc.Kind)
	assert.Equal(t, "john-doe", desc.Username)
	assert.Equal(t, "/u/john-doe", desc.Path)
}

func TestDecodeInternalAndUnknown(t *testing.T) {
	for _, key := range []string{InternalHostnameKey, InternalGlobalStatusKey} {
		_, err := Decode(key)
		assert.ErrorIs(t, err, ErrInternalKey, key)
	}

	_, err := Decode("unknown-key-type")
	assert.ErrorIs(t, err, ErrUnknownKey)
}

func TestEncodeDecodeIdentity(t *testing.T) {
	keys := []string{
		StatusKey(),
		FederationsListKey(),
		RecordsKey(""),
		RecordsKey("raw/men"),
		RankingsKey("", 3, 100),
		RankingsKey("raw/men", 1, 100),
		FederationKey("uspa", "2024"),
		FederationKey("365strong", ""),
		MeetKey("wrpf-ru/2301"),
		UserKey("john-doe"),
	}
	for _, key := range keys {
		_, err := Decode(key)
		assert.NoError(t, err, key)
	}
}
