package profile

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

const candidatesKey = "candidates"

// LoadJob reads a job profile from a YAML, JSON or TOML file.
func LoadJob(path string) (JobProfile, error) {
	v, err := read(path)
	if err != nil {
		return JobProfile{}, err
	}

	var job JobProfile
	if err := v.Unmarshal(&job); err != nil {
		return JobProfile{}, fmt.Errorf("decode job profile %q: %w", path, err)
	}

	return job, nil
}

// LoadCandidates reads candidate profiles from a file. The file holds either a
// single profile or a list under the "candidates" key.
func LoadCandidates(path string) ([]CandidateProfile, error) {
	v, err := read(path)
	if err != nil {
		return nil, err
	}

	if v.IsSet(candidatesKey) {
		var candidates []CandidateProfile
		if err := v.UnmarshalKey(candidatesKey, &candidates); err != nil {
			return nil, fmt.Errorf("decode candidates %q: %w", path, err)
		}
		return candidates, nil
	}

	var candidate CandidateProfile
	if err := v.Unmarshal(&candidate); err != nil {
		return nil, fmt.Errorf("decode candidate profile %q: %w", path, err)
	}

	return []CandidateProfile{candidate}, nil
}

func read(path string) (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read profile file %q: %w", path, err)
	}

	return v, nil
}

// Decode converts loosely typed generator output into a profile struct.
// Numbers and booleans are accepted where strings are expected.
func Decode(input any, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}

	return decoder.Decode(input)
}
