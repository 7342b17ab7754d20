// Copyright 2025 The Rivaas Authors
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

package main

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-yaml"
	"github.com/hashicorp/consul/api"
)

// consulKV is the subset of the Consul KV API used to load configuration.
type consulKV interface {
	Get(key string, q *api.QueryOptions) (*api.KVPair, *api.QueryMeta, error)
}

// newConsulKV connects to Consul. CONSUL_HTTP_ADDR and CONSUL_HTTP_TOKEN in
// environ take precedence over the process environment.
func newConsulKV(environ []string) (consulKV, error) {
	cfg := api.DefaultConfig()
	for _, kv := range environ {
		k, v, _ := strings.Cut(kv, "=")
		switch k {
		case api.HTTPAddrEnvName:
			cfg.Address = v
		case api.HTTPTokenEnvName:
			cfg.Token = v
		}
	}

	client, err := api.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create consul client: %w", err)
	}

	return client.KV(), nil
}

// loadConsul reads the document stored under key. The format follows the
// key's extension: .toml is TOML, anything else YAML (which covers JSON).
// A missing key yields an empty map.
func loadConsul(ctx context.Context, kv consulKV, key string) (map[string]any, error) {
	pair, _, err := kv.Get(key, (&api.QueryOptions{}).WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to get consul key %s: %w", key, err)
	}

	out := map[string]any{}
	if pair == nil {
		return out, nil
	}

	if strings.EqualFold(path.Ext(key), ".toml") {
		err = toml.Unmarshal(pair.Value, &out)
	} else {
		err = yaml.Unmarshal(pair.Value, &out)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode consul key %s: %w", key, err)
	}

	return out, nil
}
