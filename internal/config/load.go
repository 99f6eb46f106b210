package config

import (
	"fmt"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to upper-cased keys, with dots replaced by
// underscores: CLOCK3D_WIDTH, CLOCK3D_TIMELAPSE_STEP.
const EnvPrefix = "CLOCK3D"

// scalarKeys are bound explicitly so Unmarshal sees environment overrides even
// when no config file mentions the key.
var scalarKeys = []string{
	"width", "height", "supersample", "fps", "layout", "background",
	"location", "smooth_seconds", "texture_dir", "output_dir",
	"camera.fov", "camera.near", "camera.far",
	"timelapse.start", "timelapse.step", "timelapse.frames", "timelapse.workers", "timelapse.frame_ms",
	"log.level", "log.file", "log.max_size_mb", "log.max_backups",
}

func newViperInstance() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, k := range scalarKeys {
		_ = v.BindEnv(k)
	}
	return v
}

func decoderOption() viper.DecoderConfigOption {
	return viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
		),
	)
}

// Load reads path (JSON or YAML by extension) and environment overrides. An
// empty path reads the environment only. The result is not yet resolved; call
// Resolve and then Validate.
func Load(path string) (Config, error) {
	v := newViperInstance()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, decoderOption()); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}
