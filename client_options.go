// Copyright (C) 2015-Present Pivotal Software, Inc. All rights reserved.

// This program and the accompanying materials are made available under
// the terms of the under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at

// http://www.apache.org/licenses/LICENSE-2.0

// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package brokerclient

import (
	"code.cloudfoundry.org/lager/v3"
)

type Option func(*Client)

// WithHTTPClient replaces the transport the client sends requests through.
// Timeouts are the transport's responsibility; the client adds no timer of
// its own.
func WithHTTPClient(doer HTTPDoer) Option {
	return func(c *Client) {
		c.httpClient = doer
	}
}

// WithLogger replaces the logger operations open their sessions on.
func WithLogger(logger lager.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithCorrelationIDProvider replaces the generator used when the caller's
// context carries no correlation ID.
func WithCorrelationIDProvider(provider CorrelationIDProvider) Option {
	return func(c *Client) {
		c.correlationID = provider
	}
}

func WithOptions(opts ...Option) Option {
	return func(c *Client) {
		for _, o := range opts {
			o(c)
		}
	}
}
