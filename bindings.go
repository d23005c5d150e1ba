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
	"context"
	"net/http"

	"code.cloudfoundry.org/lager/v3"

	"github.com/pivotal-cf/brokerclient/domain"
)

func serviceBindingPath(bindingID string) string {
	return "/v2/service_bindings/" + bindingID
}

// Bind asks the broker to bind an application to a service instance. The
// decoded response document is returned as is; brokers answer with a
// credentials object inside it.
func (c *Client) Bind(ctx context.Context, bindingID, instanceID string) (domain.JSONObject, error) {
	path := serviceBindingPath(bindingID)
	logger := c.session(ctx, "bind", lager.Data{
		"binding-id":  bindingID,
		"instance-id": instanceID,
	})
	endpoint := c.endpoint(path)

	body := domain.BindRequest{ServiceInstanceID: instanceID}

	resp, err := c.send(ctx, logger, http.MethodPut, path, body)
	if err != nil {
		return nil, err
	}
	if err := c.classifyStatus(logger, endpoint, resp, is2xx, false); err != nil {
		return nil, err
	}

	return c.decodeObject(logger, endpoint, resp)
}

// Unbind asks the broker to remove a binding. The broker answers 204 with no
// body; any other status is an error.
func (c *Client) Unbind(ctx context.Context, bindingID string) error {
	path := serviceBindingPath(bindingID)
	logger := c.session(ctx, "unbind", lager.Data{
		"binding-id": bindingID,
	})
	endpoint := c.endpoint(path)

	resp, err := c.send(ctx, logger, http.MethodDelete, path, nil)
	if err != nil {
		return err
	}
	return c.classifyStatus(logger, endpoint, resp, isNoContent, false)
}
