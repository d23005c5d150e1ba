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
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"

	"code.cloudfoundry.org/lager/v3"
	"github.com/pkg/errors"

	"github.com/pivotal-cf/brokerclient/apierrors"
	"github.com/pivotal-cf/brokerclient/domain"
)

// brokerResponse is what survives of an HTTP exchange once the connection is
// done with: status, reason phrase and the raw body.
type brokerResponse struct {
	statusCode int
	reason     string
	body       []byte
}

// send builds the outbound request, attaches correlation ID and content type
// headers, and performs a single attempt. Transport failures come back
// already classified.
func (c *Client) send(ctx context.Context, logger lager.Logger, method, path string, body interface{}) (*brokerResponse, error) {
	endpoint := c.endpoint(path)

	var bodyReader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, errors.Wrap(err, "encoding request body")
		}
		bodyReader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.requestURL(path), bodyReader)
	if err != nil {
		return nil, errors.Wrap(err, "building broker request")
	}
	req.Header.Set(correlationIDHeader, c.currentCorrelationID(ctx))
	if body != nil {
		req.Header.Set(contentTypeHeader, jsonContentType)
	}

	logger.Debug("request", lager.Data{"method": method, "url": endpoint})

	resp, err := c.httpClient.Do(req)
	if err != nil {
		classified := classifyTransportError(endpoint, err)
		logger.Error("broker-request-failed", classified)
		return nil, classified
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		// The broker answered but dropped the connection mid body.
		classified := apierrors.NewAPITimeout(endpoint, err)
		logger.Error("broker-request-failed", classified)
		return nil, classified
	}

	return &brokerResponse{
		statusCode: resp.StatusCode,
		reason:     reasonPhrase(resp),
		body:       raw,
	}, nil
}

// classifyTransportError sorts failures where no response was received.
// Failures during connection establishment mean the broker was never
// reached; everything after that which times out or disconnects counts as a
// broker timeout.
func classifyTransportError(endpoint string, err error) error {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return apierrors.NewAPIUnreachable(endpoint, err)
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return apierrors.NewAPIUnreachable(endpoint, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return apierrors.NewAPITimeout(endpoint, err)
	}
	if errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, io.EOF) ||
		errors.Is(err, io.ErrUnexpectedEOF) {
		return apierrors.NewAPITimeout(endpoint, err)
	}

	return apierrors.NewAPIUnreachable(endpoint, err)
}

// classifyStatus applies the status checks in order: provision conflicts
// first, then authentication, then anything outside the operation's success
// range.
func (c *Client) classifyStatus(logger lager.Logger, endpoint string, resp *brokerResponse, success func(int) bool, provisioning bool) error {
	var classified error

	switch {
	case provisioning && resp.statusCode == http.StatusConflict:
		classified = apierrors.NewConflict(endpoint, parseErrorBody(resp.body))
	case resp.statusCode == http.StatusUnauthorized:
		classified = apierrors.NewAuthenticationFailed(endpoint)
	case !success(resp.statusCode):
		classified = apierrors.NewBadResponse(endpoint, resp.statusCode, resp.reason, parseErrorBody(resp.body))
	default:
		return nil
	}

	logger.Error("broker-response-error", classified, lager.Data{"status": resp.statusCode})
	return classified
}

// decodeObject decodes a success-range body, which must be a JSON object.
func (c *Client) decodeObject(logger lager.Logger, endpoint string, resp *brokerResponse) (domain.JSONObject, error) {
	var doc map[string]interface{}
	if err := json.Unmarshal(resp.body, &doc); err != nil || doc == nil {
		if err == nil {
			err = errors.New("body is not a JSON object")
		}
		classified := apierrors.NewResponseMalformed(endpoint, err)
		logger.Error("response-malformed", classified)
		return nil, classified
	}

	return domain.JSONObject(doc), nil
}

// parseErrorBody decodes the upstream error payload. Unparseable bodies are
// reported as absent.
func parseErrorBody(raw []byte) interface{} {
	var payload interface{}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil
	}
	return payload
}

func reasonPhrase(resp *http.Response) string {
	if reason := strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)+" "); reason != resp.Status {
		return reason
	}
	return http.StatusText(resp.StatusCode)
}

func is2xx(status int) bool {
	return status >= http.StatusOK && status < http.StatusMultipleChoices
}

func isNoContent(status int) bool {
	return status == http.StatusNoContent
}
