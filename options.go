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

package diffable

import (
	"log/slog"

	"znkr.io/diffable/internal/config"
)

// Option configures the behavior of functions in this module.
type Option = config.Option

// WithLogger sets the logger that receives diagnostics. The default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config.Config) config.Flag {
		cfg.Logger = logger
		return config.Logger
	}
}
