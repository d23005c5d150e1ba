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

// Package brokerclient implements the HTTP client a platform controller uses
// to talk to a service broker: catalog fetch, provision, bind, unbind and
// deprovision. Every outcome is classified into one of the error kinds in
// the apierrors package; the client makes a single attempt per call and
// never retries.
package brokerclient

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"code.cloudfoundry.org/lager/v3"
	"github.com/pborman/uuid"
	"github.com/pkg/errors"

	"github.com/pivotal-cf/brokerclient/middlewares"
	"github.com/pivotal-cf/brokerclient/utils"
)

//go:generate go run github.com/maxbrunsfeld/counterfeiter/v6 -generate

const (
	// Brokers authenticate the platform by a fixed basic-auth username; the
	// configured token is the password.
	brokerAPIUsername = "cc"

	correlationIDHeader = "X-VCAP-Request-ID"
	contentTypeHeader   = "Content-Type"
	jsonContentType     = "application/json"
)

//counterfeiter:generate -o fakes/fake_http_doer.go . HTTPDoer

// HTTPDoer is the transport requests are sent through. *http.Client
// satisfies it.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// CorrelationIDProvider supplies the tracing identifier attached to an
// outbound request when the caller's context does not carry one.
type CorrelationIDProvider func() string

// Client talks to a single service broker. It holds no mutable state beyond
// its configuration and is safe for concurrent use.
type Client struct {
	baseURL       *url.URL
	authToken     string
	httpClient    HTTPDoer
	logger        lager.Logger
	correlationID CorrelationIDProvider
}

// New builds a client for the broker at brokerURL, authenticating with the
// given token. It fails only on a malformed URL; reachability is not
// checked.
func New(brokerURL, authToken string, opts ...Option) (*Client, error) {
	base, err := url.Parse(brokerURL)
	if err != nil {
		return nil, errors.Wrap(err, "parsing broker URL")
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, errors.Errorf("broker URL %q must include a scheme and host", brokerURL)
	}

	client := &Client{
		baseURL:       base,
		authToken:     authToken,
		httpClient:    http.DefaultClient,
		logger:        lager.NewLogger("service-broker-client"),
		correlationID: uuid.New,
	}
	WithOptions(opts...)(client)

	return client, nil
}

// endpoint returns the credential-free URL for path. This is the URL that
// appears in errors and logs.
func (c *Client) endpoint(path string) string {
	u := *c.baseURL
	u.User = nil
	u.Path = joinPath(u.Path, path)
	return u.String()
}

// requestURL returns the URL requests are sent to, with the basic
// credentials embedded as userinfo.
func (c *Client) requestURL(path string) string {
	u := *c.baseURL
	u.User = url.UserPassword(brokerAPIUsername, c.authToken)
	u.Path = joinPath(u.Path, path)
	return u.String()
}

func joinPath(base, path string) string {
	return strings.TrimSuffix(base, "/") + path
}

// currentCorrelationID prefers the ID placed in the context by inbound
// middleware over the injected provider.
func (c *Client) currentCorrelationID(ctx context.Context) string {
	if id, ok := middlewares.CorrelationIDFromContext(ctx); ok {
		return id
	}
	return c.correlationID()
}

func (c *Client) session(ctx context.Context, task string, data lager.Data) lager.Logger {
	return c.logger.Session(task, data, utils.DataForContext(ctx, middlewares.CorrelationIDKey))
}
