package options

import (
	"errors"
	"strconv"
	"strings"

	"github.com/vela-sec/vela/pkg/types"
)

func GetOptionByName(name string, options []*types.Option) *types.Option {
	for _, option := range options {
		if option.Name == name {
			return option
		}
	}
	return nil
}

// ValidateOption ensures the provided option is in the list of options and valid.
// It checks if the option is required and has a valid format.
// If any validation fails, it returns an error.
func ValidateOption(opt types.Option, options []*types.Option) error {
	for _, option := range options {
		if option.Name != opt.Name {
			continue
		}

		// Not required and empty
		if !opt.Required && option.Value == "" {
			return nil
		}

		// Required and empty
		if opt.Required && option.Value == "" {
			return errors.New(option.Name + " is required")
		}

		if opt.ValueFormat != nil && !opt.ValueFormat.MatchString(option.Value) {
			return errors.New(option.Name + " is an invalid format")
		}

		if opt.ValueList != nil {
			for _, value := range opt.ValueList {
				if strings.EqualFold(value, option.Value) {
					return nil
				}
			}
			return errors.New(option.Name + " is not a valid option. Valid options are: " + strings.Join(opt.ValueList, ", "))
		}

		// Check if the option value is of the correct type when non-string
		switch opt.Type {
		case types.Bool:
			_, err := strconv.ParseBool(option.Value)
			return err
		case types.Int:
			_, err := strconv.Atoi(option.Value)
			return err
		}
	}

	return nil
}

func ValidateOptions(opts []*types.Option) error {
	for _, opt := range opts {
		if err := ValidateOption(*opt, opts); err != nil {
			return err
		}
	}
	return nil
}

// SplitList turns a comma-separated option value into trimmed entries.
func SplitList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
