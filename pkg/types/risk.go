package types

import (
	"strconv"
	"time"
)

// RiskyUser is a microsoft.graph.riskyUser record. The wire shape is already
// flat, so the same struct serves decode and export.
type RiskyUser struct {
	ID                      string    `json:"id"`
	IsDeleted               bool      `json:"isDeleted"`
	IsProcessing            bool      `json:"isProcessing"`
	RiskLevel               string    `json:"riskLevel"`
	RiskState               string    `json:"riskState"`
	RiskDetail              string    `json:"riskDetail"`
	RiskLastUpdatedDateTime time.Time `json:"riskLastUpdatedDateTime"`
	UserDisplayName         string    `json:"userDisplayName"`
	UserPrincipalName       string    `json:"userPrincipalName"`
}

func (RiskyUser) CSVHeader() []string {
	return []string{
		"Id",
		"UserDisplayName",
		"UserPrincipalName",
		"RiskLevel",
		"RiskState",
		"RiskDetail",
		"RiskLastUpdatedDateTime",
		"IsDeleted",
		"IsProcessing",
	}
}

func (u RiskyUser) CSVRow() []string {
	return []string{
		u.ID,
		u.UserDisplayName,
		u.UserPrincipalName,
		u.RiskLevel,
		u.RiskState,
		u.RiskDetail,
		formatTime(u.RiskLastUpdatedDateTime),
		strconv.FormatBool(u.IsDeleted),
		strconv.FormatBool(u.IsProcessing),
	}
}

// SignInLocation is the nested location object on a risk detection.
type SignInLocation struct {
	City            string `json:"city"`
	State           string `json:"state"`
	CountryOrRegion string `json:"countryOrRegion"`
}

// RiskDetection is the wire shape of a microsoft.graph.riskDetection.
type RiskDetection struct {
	ID                  string          `json:"id"`
	RequestID           string          `json:"requestId"`
	CorrelationID       string          `json:"correlationId"`
	RiskEventType       string          `json:"riskEventType"`
	RiskState           string          `json:"riskState"`
	RiskLevel           string          `json:"riskLevel"`
	RiskDetail          string          `json:"riskDetail"`
	Source              string          `json:"source"`
	DetectionTimingType string          `json:"detectionTimingType"`
	Activity            string          `json:"activity"`
	TokenIssuerType     string          `json:"tokenIssuerType"`
	IPAddress           string          `json:"ipAddress"`
	ActivityDateTime    time.Time       `json:"activityDateTime"`
	DetectedDateTime    time.Time       `json:"detectedDateTime"`
	LastUpdatedDateTime time.Time       `json:"lastUpdatedDateTime"`
	UserID              string          `json:"userId"`
	UserDisplayName     string          `json:"userDisplayName"`
	UserPrincipalName   string          `json:"userPrincipalName"`
	AdditionalInfo      string          `json:"additionalInfo"`
	Location            *SignInLocation `json:"location"`
}

// FlatRiskDetection explodes the location object into scalar fields.
type FlatRiskDetection struct {
	ID                      string
	RequestID               string
	CorrelationID           string
	RiskEventType           string
	RiskState               string
	RiskLevel               string
	RiskDetail              string
	Source                  string
	DetectionTimingType     string
	Activity                string
	TokenIssuerType         string
	IPAddress               string
	ActivityDateTime        time.Time
	DetectedDateTime        time.Time
	LastUpdatedDateTime     time.Time
	UserID                  string
	UserDisplayName         string
	UserPrincipalName       string
	AdditionalInfo          string
	LocationCity            string
	LocationState           string
	LocationCountryOrRegion string
}

func (d RiskDetection) Flatten() FlatRiskDetection {
	flat := FlatRiskDetection{
		ID:                  d.ID,
		RequestID:           d.RequestID,
		CorrelationID:       d.CorrelationID,
		RiskEventType:       d.RiskEventType,
		RiskState:           d.RiskState,
		RiskLevel:           d.RiskLevel,
		RiskDetail:          d.RiskDetail,
		Source:              d.Source,
		DetectionTimingType: d.DetectionTimingType,
		Activity:            d.Activity,
		TokenIssuerType:     d.TokenIssuerType,
		IPAddress:           d.IPAddress,
		ActivityDateTime:    d.ActivityDateTime,
		DetectedDateTime:    d.DetectedDateTime,
		LastUpdatedDateTime: d.LastUpdatedDateTime,
		UserID:              d.UserID,
		UserDisplayName:     d.UserDisplayName,
		UserPrincipalName:   d.UserPrincipalName,
		AdditionalInfo:      d.AdditionalInfo,
	}
	if d.Location != nil {
		flat.LocationCity = d.Location.City
		flat.LocationState = d.Location.State
		flat.LocationCountryOrRegion = d.Location.CountryOrRegion
	}
	return flat
}

func (FlatRiskDetection) CSVHeader() []string {
	return []string{
		"Id",
		"RequestId",
		"CorrelationId",
		"RiskEventType",
		"RiskState",
		"RiskLevel",
		"RiskDetail",
		"Source",
		"DetectionTimingType",
		"Activity",
		"TokenIssuerType",
		"IpAddress",
		"ActivityDateTime",
		"DetectedDateTime",
		"LastUpdatedDateTime",
		"UserId",
		"UserDisplayName",
		"UserPrincipalName",
		"AdditionalInfo",
		"LocationCity",
		"LocationState",
		"LocationCountryOrRegion",
	}
}

func (d FlatRiskDetection) CSVRow() []string {
	return []string{
		d.ID,
		d.RequestID,
		d.CorrelationID,
		d.RiskEventType,
		d.RiskState,
		d.RiskLevel,
		d.RiskDetail,
		d.Source,
		d.DetectionTimingType,
		d.Activity,
		d.TokenIssuerType,
		d.IPAddress,
		formatTime(d.ActivityDateTime),
		formatTime(d.DetectedDateTime),
		formatTime(d.LastUpdatedDateTime),
		d.UserID,
		d.UserDisplayName,
		d.UserPrincipalName,
		d.AdditionalInfo,
		d.LocationCity,
		d.LocationState,
		d.LocationCountryOrRegion,
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
