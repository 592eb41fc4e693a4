package options

import "github.com/vela-sec/vela/pkg/types"

var OutputOpt = types.Option{
	Name:        "output",
	Short:       "o",
	Description: "output directory",
	Type:        types.String,
	Value:       "vela-output",
}

var SearchNameOpt = types.Option{
	Name:        "name",
	Short:       "n",
	Description: "display name for the audit log search",
	Required:    true,
	Type:        types.String,
}

var StartTimeOpt = types.Option{
	Name:        "start",
	Description: "start of the search window (RFC3339, default 90 days ago)",
	Type:        types.String,
}

var EndTimeOpt = types.Option{
	Name:        "end",
	Description: "end of the search window (RFC3339, default now)",
	Type:        types.String,
}

var KeywordOpt = types.Option{
	Name:        "keyword",
	Description: "free-text keyword filter",
	Type:        types.String,
}

var ServiceOpt = types.Option{
	Name:        "service",
	Description: "service filter (e.g. Exchange, SharePoint)",
	Type:        types.String,
}

var RecordTypesOpt = types.Option{
	Name:        "record-types",
	Description: "comma-separated audit record type filters",
	Type:        types.String,
}

var OperationsOpt = types.Option{
	Name:        "operations",
	Description: "comma-separated operation filters",
	Type:        types.String,
}

var UserFilterOpt = types.Option{
	Name:        "users",
	Description: "comma-separated user principal names",
	Type:        types.String,
}

var IPAddressesOpt = types.Option{
	Name:        "ip-addresses",
	Description: "comma-separated IP address filters",
	Type:        types.String,
}

var ObjectIDsOpt = types.Option{
	Name:        "object-ids",
	Description: "comma-separated object ID filters",
	Type:        types.String,
}

var PollIntervalOpt = types.Option{
	Name:        "poll-interval",
	Description: "seconds between job status checks",
	Type:        types.Int,
	Value:       "5",
}

var MaxWaitOpt = types.Option{
	Name:        "max-wait",
	Description: "minutes to wait for the query before giving up",
	Type:        types.Int,
	Value:       "30",
}

var JQOpt = types.Option{
	Name:        "jq",
	Description: "jq program applied to each record before it is written",
	Type:        types.String,
}

var RiskyUserIDsOpt = types.Option{
	Name:        "users",
	Description: "comma-separated risky user IDs to look up individually",
	Type:        types.String,
}
