package tiler

import (
	"fmt"
	"io"

	"github.com/pelletier/go-toml/v2"
)

// Decodes TOML options on top of DefaultOptions, then validates them. Unknown keys are rejected.
func DecodeOptions(r io.Reader) (*TilerOptions, error) {
	opts := DefaultOptions()

	decoder := toml.NewDecoder(r)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(opts); err != nil {
		return nil, fmt.Errorf("decoding tiler options: %w", err)
	}

	opts.Algorithm = ParseAlgorithm(string(opts.Algorithm))
	opts.RefineMode = ParseRefineMode(string(opts.RefineMode))

	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return opts, nil
}
