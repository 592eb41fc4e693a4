package types

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// JobStatus is the lifecycle state of an audit log query job.
type JobStatus string

const (
	JobStatusNotStarted JobStatus = "notStarted"
	JobStatusRunning    JobStatus = "running"
	JobStatusSucceeded  JobStatus = "succeeded"
	JobStatusFailed     JobStatus = "failed"
	JobStatusCancelled  JobStatus = "cancelled"
)

// Terminal reports whether the status can no longer change.
func (s JobStatus) Terminal() bool {
	switch s {
	case JobStatusSucceeded, JobStatusFailed, JobStatusCancelled:
		return true
	}
	return false
}

// AuditQueryRequest describes an audit log search. It is built once from
// caller input and not mutated afterwards.
type AuditQueryRequest struct {
	SearchName         string
	Start              time.Time
	End                time.Time
	Keyword            string
	Service            string
	RecordTypes        []string
	Operations         []string
	UserPrincipalNames []string
	IPAddresses        []string
	ObjectIDs          []string
}

// DefaultLookback is how far back a search reaches when the caller gives no
// start time.
const DefaultLookback = 90 * 24 * time.Hour

// NewAuditQueryRequest returns a request covering the last 90 days up to now.
func NewAuditQueryRequest(searchName string) AuditQueryRequest {
	now := time.Now().UTC()
	return AuditQueryRequest{
		SearchName: searchName,
		Start:      now.Add(-DefaultLookback),
		End:        now,
	}
}

// Validate checks the request before it is sent anywhere.
func (r AuditQueryRequest) Validate() error {
	if strings.TrimSpace(r.SearchName) == "" {
		return fmt.Errorf("search name is required")
	}
	if r.Start.After(r.End) {
		return fmt.Errorf("start time %s is after end time %s",
			r.Start.Format(time.RFC3339), r.End.Format(time.RFC3339))
	}
	return nil
}

// AuditQueryJob is the remote job created for an AuditQueryRequest.
type AuditQueryJob struct {
	ID      string
	Status  JobStatus
	Request AuditQueryRequest
}

// AuditRecord is the wire shape of a microsoft.graph.security.auditLogRecord.
type AuditRecord struct {
	ID                  string         `json:"id"`
	CreatedDateTime     time.Time      `json:"createdDateTime"`
	AuditLogRecordType  string         `json:"auditLogRecordType"`
	Operation           string         `json:"operation"`
	OrganizationID      string         `json:"organizationId"`
	UserType            string         `json:"userType"`
	UserID              string         `json:"userId"`
	Service             string         `json:"service"`
	ObjectID            string         `json:"objectId"`
	UserPrincipalName   string         `json:"userPrincipalName"`
	ClientIP            string         `json:"clientIp"`
	AdministrativeUnits []string       `json:"administrativeUnits"`
	AuditData           map[string]any `json:"auditData"`
}

// FlatAuditRecord is the export shape: the typed envelope plus auditData
// exploded into dot-prefixed scalar keys.
type FlatAuditRecord struct {
	ID                  string            `json:"id"`
	CreatedDateTime     time.Time         `json:"createdDateTime"`
	AuditLogRecordType  string            `json:"auditLogRecordType"`
	Operation           string            `json:"operation"`
	OrganizationID      string            `json:"organizationId"`
	UserType            string            `json:"userType"`
	UserID              string            `json:"userId"`
	Service             string            `json:"service"`
	ObjectID            string            `json:"objectId"`
	UserPrincipalName   string            `json:"userPrincipalName"`
	ClientIP            string            `json:"clientIp"`
	AdministrativeUnits string            `json:"administrativeUnits,omitempty"`
	AuditData           map[string]string `json:"auditData,omitempty"`
}

// Flatten converts the record into its export shape. Nested auditData
// objects become dot-joined keys, arrays of scalars join with "; ".
func (r AuditRecord) Flatten() FlatAuditRecord {
	flat := FlatAuditRecord{
		ID:                  r.ID,
		CreatedDateTime:     r.CreatedDateTime,
		AuditLogRecordType:  r.AuditLogRecordType,
		Operation:           r.Operation,
		OrganizationID:      r.OrganizationID,
		UserType:            r.UserType,
		UserID:              r.UserID,
		Service:             r.Service,
		ObjectID:            r.ObjectID,
		UserPrincipalName:   r.UserPrincipalName,
		ClientIP:            r.ClientIP,
		AdministrativeUnits: strings.Join(r.AdministrativeUnits, "; "),
	}

	if len(r.AuditData) > 0 {
		flat.AuditData = make(map[string]string, len(r.AuditData))
		for _, key := range sortedKeys(r.AuditData) {
			flattenValue(key, r.AuditData[key], flat.AuditData)
		}
	}

	return flat
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func flattenValue(key string, value any, out map[string]string) {
	switch v := value.(type) {
	case nil:
		out[key] = ""
	case map[string]any:
		for _, k := range sortedKeys(v) {
			flattenValue(key+"."+k, v[k], out)
		}
	case []any:
		out[key] = joinArray(v)
	default:
		out[key] = scalarString(v)
	}
}

func joinArray(values []any) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		switch v.(type) {
		case map[string]any, []any:
			// Non-scalar elements keep their JSON form so nothing is lost.
			b, err := json.Marshal(v)
			if err != nil {
				parts = append(parts, fmt.Sprintf("%v", v))
				continue
			}
			parts = append(parts, string(b))
		default:
			parts = append(parts, scalarString(v))
		}
	}
	return strings.Join(parts, "; ")
}

func scalarString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case bool:
		return strconv.FormatBool(s)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case json.Number:
		return s.String()
	default:
		return fmt.Sprintf("%v", s)
	}
}
