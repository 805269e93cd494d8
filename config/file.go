// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// FileOptions is the on-disk/env shape loaded by Load. It mirrors Options'
// public fields minus Logger, which has no serializable representation.
// Carries both mapstructure tags (for viper.Unmarshal) and yaml tags (for
// DefaultFileYAML, which embedders can use to scaffold a starting config
// file without hand-writing the key names).
type FileOptions struct {
	Name            string   `mapstructure:"name" yaml:"name"`
	BufferCapacity  int      `mapstructure:"buffer_capacity" yaml:"buffer_capacity"`
	PongIntervalMS  int      `mapstructure:"pong_interval_ms" yaml:"pong_interval_ms"`
	PingIntervalMS  int      `mapstructure:"ping_interval_ms" yaml:"ping_interval_ms"`
	TagRegistration bool     `mapstructure:"tag_registration" yaml:"tag_registration"`
	RegisteredTags  []uint16 `mapstructure:"registered_tags" yaml:"registered_tags,flow"`
	StartID         int16    `mapstructure:"start_id" yaml:"start_id"`
}

// DefaultFileYAML renders Default() in the FileOptions shape, for
// embedders that want a starting config file rather than hand-writing one
// from scratch.
func DefaultFileYAML() ([]byte, error) {
	d := Default()
	f := FileOptions{
		Name:            d.Name,
		BufferCapacity:  d.BufferCapacity,
		PongIntervalMS:  int(d.PongInterval / time.Millisecond),
		PingIntervalMS:  int(d.PingInterval / time.Millisecond),
		TagRegistration: d.TagRegistration,
		RegisteredTags:  d.RegisteredTags,
		StartID:         d.StartID,
	}
	return yaml.Marshal(f)
}

// Load reads path (YAML/JSON/TOML, detected by extension) plus any
// NETMSG_*-prefixed environment overrides, and returns the corresponding
// Options. Grounded on nabbar-golib/viper's New+ReadInConfig+Unmarshal
// pattern, trimmed to what this module needs.
func Load(path string) (Options, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix("NETMSG")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return Options{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var f FileOptions
	if err := v.Unmarshal(&f); err != nil {
		return Options{}, fmt.Errorf("config: unmarshal %s: %w", path, err)
	}

	return Options{
		Name:            f.Name,
		BufferCapacity:  f.BufferCapacity,
		PongInterval:    time.Duration(f.PongIntervalMS) * time.Millisecond,
		PingInterval:    time.Duration(f.PingIntervalMS) * time.Millisecond,
		TagRegistration: f.TagRegistration,
		RegisteredTags:  f.RegisteredTags,
		StartID:         f.StartID,
	}, nil
}
