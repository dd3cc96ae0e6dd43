package config

import (
	"github.com/go-viper/mapstructure/v2"
)

// DecodeOptions decodes an options map into out, a pointer to a struct with
// mapstructure tags. Comma-separated strings decode into slices, so a list
// option may be written either way in YAML, env vars or --option flags.
// Keys without a matching field are ignored.
func DecodeOptions(opts map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToSliceHookFunc(","),
			mapstructure.StringToTimeDurationHookFunc(),
		),
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return dec.Decode(opts)
}
