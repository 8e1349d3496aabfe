package config

import (
	"os"
	"reflect"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type Manager struct {
	store  Store
	Config Config
}

// NewManager starts from the store's defaults and lays the stored file
// over them. A missing or unreadable file leaves the defaults in place.
func NewManager(store Store) *Manager {
	configuration := store.ReadDefaults()

	userConfig, err := store.Read()
	if err == nil {
		configuration = replaceByConfigFile(configuration, userConfig)
	}

	return &Manager{store: store, Config: configuration}
}

// WithEnvironment applies NAME_FIELD environment variables, e.g.
// CONSCIENCE_SEED or CONSCIENCE_LOBES=after,bind.
func (c *Manager) WithEnvironment() *Manager {
	c.Config = replaceByEnvironment(c.Config)
	return c
}

func (c *Manager) EnvPrefix() string {
	return strings.ToUpper(c.Config.Name) + "_"
}

func (c *Manager) Save() error {
	return c.store.Write(c.Config)
}

// ShowConfig serializes the current configuration to a YAML string.
func (c *Manager) ShowConfig() (string, error) {
	data, err := yaml.Marshal(c.Config)
	if err != nil {
		return "", err
	}

	return string(data), nil
}

func replaceByConfigFile(defaultConfig, userConfig Config) Config {
	t := reflect.TypeOf(defaultConfig)
	vDefault := reflect.ValueOf(&defaultConfig).Elem()
	vUser := reflect.ValueOf(userConfig)

	for i := 0; i < t.NumField(); i++ {
		defaultField := vDefault.Field(i)
		userField := vUser.Field(i)

		switch defaultField.Kind() {
		case reflect.String:
			if userStr := userField.String(); userStr != "" {
				defaultField.SetString(userStr)
			}
		case reflect.Int, reflect.Int64:
			if userInt := userField.Int(); userInt != 0 {
				defaultField.SetInt(userInt)
			}
		case reflect.Bool:
			defaultField.SetBool(userField.Bool())
		case reflect.Slice, reflect.Map:
			if userField.Len() > 0 {
				defaultField.Set(userField)
			}
		}
	}

	return defaultConfig
}

func replaceByEnvironment(configuration Config) Config {
	t := reflect.TypeOf(configuration)
	v := reflect.ValueOf(&configuration).Elem()

	prefix := strings.ToUpper(configuration.Name) + "_"
	for i := 0; i < t.NumField(); i++ {
		tag := t.Field(i).Tag.Get("yaml")
		if tag == "name" {
			continue
		}

		value := os.Getenv(prefix + strings.ToUpper(tag))
		if value == "" {
			continue
		}

		field := v.Field(i)
		switch field.Kind() {
		case reflect.String:
			field.SetString(value)
		case reflect.Int, reflect.Int64:
			intValue, _ := strconv.ParseInt(value, 10, 64)
			field.SetInt(intValue)
		case reflect.Bool:
			boolValue, _ := strconv.ParseBool(value)
			field.SetBool(boolValue)
		case reflect.Slice:
			field.Set(reflect.ValueOf(splitList(value)))
		case reflect.Map:
			field.Set(reflect.ValueOf(splitPairs(value)))
		}
	}

	return configuration
}

func splitList(value string) []string {
	var result []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}

func splitPairs(value string) map[string]string {
	result := make(map[string]string)
	for _, part := range splitList(value) {
		key, val, _ := strings.Cut(part, "=")
		result[strings.TrimSpace(key)] = strings.TrimSpace(val)
	}
	return result
}
