package rcswitch

import (
	"io/ioutil"
	"os"

	"github.com/ghodss/yaml"
	"github.com/pkg/errors"
)

// ReadConfig loads a YAML configuration on top of DefaultConfig and validates it.
func ReadConfig(path string) (Config, error) {
	config := DefaultConfig()

	dat, err := ioutil.ReadFile(path)
	if err != nil {
		return config, errors.Wrapf(err, "could not read configuration file %s", path)
	}

	if err = yaml.Unmarshal(dat, &config); err != nil {
		return config, errors.Wrapf(err, "could not parse configuration file %s", path)
	}

	return config, config.Validate()
}

// SaveConfig writes config as YAML.
func SaveConfig(path string, config Config) error {
	dat, err := yaml.Marshal(config)
	if err != nil {
		return err
	}

	return ioutil.WriteFile(path, dat, os.FileMode(int(0660)))
}
