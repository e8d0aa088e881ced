package sparse

import (
	"fmt"

	"github.com/sugawarayuuta/sonnet"
)

// Marshal encodes a as JSON.
func Marshal(a Array) ([]byte, error) {
	if a.Items == nil {
		a.Items = []Triple{}
	}
	return sonnet.Marshal(a)
}

// Unmarshal decodes and validates a JSON-encoded Array.
func Unmarshal(data []byte) (Array, error) {
	var a Array
	if err := sonnet.Unmarshal(data, &a); err != nil {
		return Array{}, fmt.Errorf("sparse: decode: %w", err)
	}
	if err := a.Validate(); err != nil {
		return Array{}, err
	}
	return a, nil
}
