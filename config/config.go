package config

type Config struct {
	Name string `yaml:"name"`

	// Seed for the scenario's random source, 0 picks one per scenario
	Seed int64 `yaml:"seed"`

	// FailFast stops a time advance at the first failing callback
	FailFast bool `yaml:"fail_fast"`

	// Isolated gives every scenario its own toolkit method table
	Isolated bool `yaml:"isolated"`

	TranscriptMaxBytes int    `yaml:"transcript_max_bytes"`
	LogLevel           string `yaml:"log_level"`

	// Lobes names the built-in lobes enabled for every scenario
	Lobes []string `yaml:"lobes"`

	// DialogAnswer is what yes/no dialogs answer during a scenario
	DialogAnswer bool `yaml:"dialog_answer"`

	// Overrides are assigned to the program under test by name
	Overrides map[string]string `yaml:"overrides"`
}
