package core

import (
	"fmt"
	"strings"
)

type IndirectionConfig struct {
	Enabled bool `koanf:"enabled" mapstructure:"enabled"`
}

type Config struct {
	ServiceName string            `koanf:"service_name" mapstructure:"service_name"`
	Namespace   string            `koanf:"namespace" mapstructure:"namespace"`
	Indirection IndirectionConfig `koanf:"indirection" mapstructure:"indirection"`
}

func DefaultConfig() Config {
	return Config{
		ServiceName: "objects",
		Namespace:   DefaultNamespace,
		Indirection: IndirectionConfig{Enabled: true},
	}
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.ServiceName) == "" {
		return fmt.Errorf("core: service_name is required")
	}
	namespace := strings.TrimSpace(c.Namespace)
	if namespace == "" {
		return fmt.Errorf("core: namespace is required")
	}
	if strings.ContainsAny(namespace, ". ") {
		return fmt.Errorf("core: namespace %q must not contain dots or spaces", c.Namespace)
	}
	return nil
}
