package utils

import (
	"encoding/json"
	"fmt"

	"github.com/itchyny/gojq"
)

// JQFilter is a compiled jq program applied to exported records.
type JQFilter struct {
	code *gojq.Code
}

// NewJQFilter parses and compiles a jq program.
func NewJQFilter(program string) (*JQFilter, error) {
	query, err := gojq.Parse(program)
	if err != nil {
		return nil, fmt.Errorf("invalid jq program: %w", err)
	}
	code, err := gojq.Compile(query)
	if err != nil {
		return nil, fmt.Errorf("failed to compile jq program: %w", err)
	}
	return &JQFilter{code: code}, nil
}

// Apply runs the program against a single record. The record round-trips
// through JSON so jq sees plain maps and slices. A nil or false result
// means the record is dropped; anything else replaces it.
func (f *JQFilter) Apply(record any) (any, bool, error) {
	raw, err := json.Marshal(record)
	if err != nil {
		return nil, false, err
	}
	var input any
	if err := json.Unmarshal(raw, &input); err != nil {
		return nil, false, err
	}

	iter := f.code.Run(input)
	v, ok := iter.Next()
	if !ok {
		return nil, false, nil
	}
	if err, isErr := v.(error); isErr {
		if halt, isHalt := err.(*gojq.HaltError); isHalt && halt.Value() == nil {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("jq evaluation failed: %w", err)
	}
	if v == nil || v == false {
		return nil, false, nil
	}
	return v, true, nil
}
