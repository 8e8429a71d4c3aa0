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

package config_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/google/go-cmp/cmp"
	"znkr.io/diffable"
	"znkr.io/diffable/datasource"
	"znkr.io/diffable/internal/config"
)

func TestFromOptions(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(new(bytes.Buffer), nil))

	tests := []struct {
		name string
		opts []config.Option
		want config.Config
	}{
		{
			name: "default",
			opts: nil,
			want: config.Config{
				Logger:   slog.Default(),
				Animated: config.Default.Animated,
			},
		},
		{
			name: "logger",
			opts: []config.Option{
				diffable.WithLogger(logger),
			},
			want: config.Config{
				Logger:   logger,
				Animated: config.Default.Animated,
			},
		},
		{
			name: "not-animated",
			opts: []config.Option{
				datasource.Animated(false),
			},
			want: config.Config{
				Logger:   slog.Default(),
				Animated: false,
			},
		},
		{
			name: "override",
			opts: []config.Option{
				datasource.Animated(false),
				diffable.WithLogger(logger),
				datasource.Animated(true),
			},
			want: config.Config{
				Logger:   logger,
				Animated: true,
			},
		},
		{
			name: "nil-logger",
			opts: []config.Option{
				diffable.WithLogger(nil),
			},
			want: config.Config{
				Logger:   slog.Default(),
				Animated: config.Default.Animated,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := config.FromOptions(tt.opts, config.Logger|config.Animated)
			if got.Logger != tt.want.Logger {
				t.Errorf("FromOptions(...).Logger = %p, want %p", got.Logger, tt.want.Logger)
			}
			if diff := cmp.Diff(tt.want.Animated, got.Animated); diff != "" {
				t.Errorf("FromOptions(...).Animated is different [-want,+got]:\n%s", diff)
			}
		})
	}
}

func TestFromOptionsNotAllowed(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("FromOptions did not panic")
		}
		if diff := cmp.Diff("Option datasource.Animated not allowed here", r); diff != "" {
			t.Errorf("panic message is different [-want,+got]:\n%s", diff)
		}
	}()
	config.FromOptions([]config.Option{datasource.Animated(false)}, config.Logger)
}
