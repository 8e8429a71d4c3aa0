// Copyright 2025 Florian Zenker (flo@znkr.io)
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config provides shared configuration mechanisms for packages this module.
//
// This package is an implementation detail, the configuration surface for users is provided via
// diffable.Option.
package config

import "log/slog"

// Config collects all configurable parameters in this module.
type Config struct {
	// Logger receives diagnostics, e.g. warnings about identifiers that are relocated while
	// building a snapshot. If nil, slog.Default() is used at the time the options are resolved.
	Logger *slog.Logger

	// If set, a data source asks its view to animate the changes of an apply.
	Animated bool
}

// Default is the default configuration.
var Default = Config{
	Logger:   nil,
	Animated: true,
}

// Flag describes a single config entry. This is used to detect if configurations are being set
// that are not supported by a function.
type Flag int

const (
	Logger Flag = 1 << iota
	Animated
)

// Option is the mechanism used to expose the configuration to users.
type Option func(*Config) Flag

// FromOptions creates a configuration from a set of options.
func FromOptions(opts []Option, allowed Flag) Config {
	cfg := Default
	for _, opt := range opts {
		flag := opt(&cfg)
		if flag & ^allowed != 0 {
			panic("Option " + printFlag(flag) + " not allowed here")
		}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return cfg
}

func printFlag(flag Flag) string {
	switch flag {
	case Logger:
		return "diffable.WithLogger"
	case Animated:
		return "datasource.Animated"
	default:
		panic("never reached")
	}
}
