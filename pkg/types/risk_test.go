package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRiskyUserCSV(t *testing.T) {
	updated := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	user := RiskyUser{
		ID:                      "user-1",
		IsDeleted:               false,
		IsProcessing:            true,
		RiskLevel:               "high",
		RiskState:               "atRisk",
		RiskDetail:              "none",
		RiskLastUpdatedDateTime: updated,
		UserDisplayName:         "Alice Example",
		UserPrincipalName:       "alice@contoso.com",
	}

	header := user.CSVHeader()
	row := user.CSVRow()

	require.Len(t, row, len(header), "row and header must stay aligned")
	assert.Equal(t, "user-1", row[0])
	assert.Equal(t, "alice@contoso.com", row[2])
	assert.Equal(t, "high", row[3])
	assert.Equal(t, "2026-02-01T12:00:00Z", row[6])
	assert.Equal(t, "false", row[7])
	assert.Equal(t, "true", row[8])
}

func TestRiskDetectionFlatten(t *testing.T) {
	detection := RiskDetection{
		ID:                "det-1",
		RiskEventType:     "unfamiliarFeatures",
		RiskLevel:         "medium",
		IPAddress:         "198.51.100.4",
		UserPrincipalName: "bob@contoso.com",
		AdditionalInfo:    `[{"Key":"riskReasons","Value":"[\"UnfamiliarASN\"]"}]`,
		Location: &SignInLocation{
			City:            "Reykjavik",
			State:           "Capital Region",
			CountryOrRegion: "IS",
		},
	}

	flat := detection.Flatten()

	t.Run("explodes location into scalar fields", func(t *testing.T) {
		assert.Equal(t, "Reykjavik", flat.LocationCity)
		assert.Equal(t, "Capital Region", flat.LocationState)
		assert.Equal(t, "IS", flat.LocationCountryOrRegion)
	})

	t.Run("keeps scalar fields unchanged", func(t *testing.T) {
		assert.Equal(t, "det-1", flat.ID)
		assert.Equal(t, "unfamiliarFeatures", flat.RiskEventType)
		assert.Equal(t, "bob@contoso.com", flat.UserPrincipalName)
		assert.Equal(t, detection.AdditionalInfo, flat.AdditionalInfo)
	})

	t.Run("nil location flattens to empty fields", func(t *testing.T) {
		flat := RiskDetection{ID: "det-2"}.Flatten()
		assert.Empty(t, flat.LocationCity)
		assert.Empty(t, flat.LocationCountryOrRegion)
	})
}

func TestRiskDetectionCSV(t *testing.T) {
	detection := RiskDetection{
		ID:               "det-1",
		ActivityDateTime: time.Date(2026, 1, 15, 8, 30, 0, 0, time.UTC),
		Location:         &SignInLocation{City: "Oslo"},
	}

	flat := detection.Flatten()
	header := flat.CSVHeader()
	row := flat.CSVRow()

	require.Len(t, row, len(header), "row and header must stay aligned")
	assert.Equal(t, "det-1", row[0])
	assert.Equal(t, "2026-01-15T08:30:00Z", row[12])
	assert.Equal(t, "Oslo", row[19])
}

func TestFormatTimeZero(t *testing.T) {
	assert.Equal(t, "", formatTime(time.Time{}))
}
