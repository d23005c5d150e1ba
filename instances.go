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

func serviceInstancePath(instanceID string) string {
	return "/v2/service_instances/" + instanceID
}

// Provision asks the broker to create a service instance for the given plan.
// A 409 from the broker means the instance already exists and surfaces as a
// ConflictError. The decoded response document is returned as is; brokers
// usually include a dashboard_url field, but its presence is not enforced.
func (c *Client) Provision(ctx context.Context, instanceID, planID, orgGUID, spaceGUID string) (domain.JSONObject, error) {
	path := serviceInstancePath(instanceID)
	logger := c.session(ctx, "provision", lager.Data{
		"instance-id": instanceID,
		"plan-id":     planID,
	})
	endpoint := c.endpoint(path)

	body := domain.ProvisionRequest{
		PlanID:           planID,
		OrganizationGUID: orgGUID,
		SpaceGUID:        spaceGUID,
	}

	resp, err := c.send(ctx, logger, http.MethodPut, path, body)
	if err != nil {
		return nil, err
	}
	if err := c.classifyStatus(logger, endpoint, resp, is2xx, true); err != nil {
		return nil, err
	}

	return c.decodeObject(logger, endpoint, resp)
}

// Deprovision asks the broker to delete a service instance. The broker
// answers 204 with no body; any other status is an error.
func (c *Client) Deprovision(ctx context.Context, instanceID string) error {
	path := serviceInstancePath(instanceID)
	logger := c.session(ctx, "deprovision", lager.Data{
		"instance-id": instanceID,
	})
	endpoint := c.endpoint(path)

	resp, err := c.send(ctx, logger, http.MethodDelete, path, nil)
	if err != nil {
		return err
	}
	return c.classifyStatus(logger, endpoint, resp, isNoContent, false)
}
