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

//go:build integration

package main

import (
	"context"
	"testing"

	"github.com/hashicorp/consul/api"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/log"
	"github.com/testcontainers/testcontainers-go/modules/consul"
)

// ConsulConfigSuite loads versiond configuration from a real Consul agent.
type ConsulConfigSuite struct {
	suite.Suite
	container *consul.ConsulContainer
	endpoint  string
	client    *api.Client
}

func (s *ConsulConfigSuite) SetupSuite() {
	ctx := context.Background()

	container, err := consul.Run(ctx, "hashicorp/consul:1.15", testcontainers.WithLogger(log.TestLogger(s.T())))
	s.Require().NoError(err)
	s.container = container

	s.endpoint, err = container.ApiEndpoint(ctx)
	s.Require().NoError(err)

	cfg := api.DefaultConfig()
	cfg.Address = s.endpoint
	s.client, err = api.NewClient(cfg)
	s.Require().NoError(err)
}

func (s *ConsulConfigSuite) TearDownSuite() {
	if s.container != nil {
		s.Require().NoError(s.container.Terminate(context.Background()))
	}
}

func (s *ConsulConfigSuite) put(key, value string) {
	_, err := s.client.KV().Put(&api.KVPair{Key: key, Value: []byte(value)}, nil)
	s.Require().NoError(err)
}

func (s *ConsulConfigSuite) environ(key string) []string {
	return []string{"CONSUL_HTTP_ADDR=" + s.endpoint, "VERSIOND_CONSUL_KEY=" + key}
}

func (s *ConsulConfigSuite) TestYAMLDocument() {
	s.put("versiond/yaml", `
versioning:
  header: Api-Version
  supported: "1.0, 2.0+"
routes:
  - path: /legacy
    supported: "1.0"
`)

	cfg, err := loadConfig(context.Background(), nil, s.environ("versiond/yaml"))
	s.Require().NoError(err)
	s.Equal("Api-Version", cfg.Versioning.Header)
	s.Equal("1.0, 2.0+", cfg.Versioning.Supported)
	s.Len(cfg.Routes, 1)
}

func (s *ConsulConfigSuite) TestTOMLDocument() {
	s.put("versiond/config.toml", "service_name = \"orders\"\n")

	cfg, err := loadConfig(context.Background(), []string{"--consul-key", "versiond/config.toml"}, s.environ(""))
	s.Require().NoError(err)
	s.Equal("orders", cfg.ServiceName)
}

func (s *ConsulConfigSuite) TestMissingKeyKeepsDefaults() {
	cfg, err := loadConfig(context.Background(), nil, s.environ("versiond/absent"))
	s.Require().NoError(err)
	s.Equal("X-API-Version", cfg.Versioning.Header)
}

func (s *ConsulConfigSuite) TestInvalidDocument() {
	s.put("versiond/invalid", "log_level: loud\n")

	_, err := loadConfig(context.Background(), nil, s.environ("versiond/invalid"))
	s.Require().Error(err)
	s.Contains(err.Error(), "LogLevel")
}

func TestConsulConfigSuite(t *testing.T) {
	suite.Run(t, new(ConsulConfigSuite))
}
