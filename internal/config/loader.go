package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/wireview/wireview/internal/log"
)

// Load reads the configuration file at path, layering WIREVIEW_* env
// variables on top. An empty path yields defaults plus env only.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("capture.device", "")
	v.SetDefault("capture.backend", "pcap")
	v.SetDefault("capture.snap_len", 65535)
	v.SetDefault("capture.promiscuous", true)
	v.SetDefault("capture.timeout_ms", 100)
	v.SetDefault("ui.tick_rate", 22)
	v.SetDefault("ui.max_packets", 10000)
	v.SetDefault("ui.reset_on_switch", true)

	v.SetEnvPrefix("WIREVIEW")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	if path != "" {
		dir := filepath.Dir(path)
		filename := filepath.Base(path)
		fileExt := filepath.Ext(filename)

		v.SetConfigName(strings.TrimSuffix(filename, fileExt))
		v.SetConfigType(strings.TrimPrefix(fileExt, "."))
		v.AddConfigPath(dir)

		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Logger == nil {
		cfg.Logger = log.DefaultConfig()
	}
}
