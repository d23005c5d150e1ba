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

	"github.com/pivotal-cf/brokerclient/apierrors"
	"github.com/pivotal-cf/brokerclient/domain"
)

const catalogPath = "/v2/catalog"

// Catalog fetches the broker's service catalog and returns the decoded
// document unmodified. The document is shape-checked: it must carry a
// services list, and every service a plans list.
func (c *Client) Catalog(ctx context.Context) (domain.JSONObject, error) {
	logger := c.session(ctx, "catalog", nil)
	endpoint := c.endpoint(catalogPath)

	resp, err := c.send(ctx, logger, http.MethodGet, catalogPath, nil)
	if err != nil {
		return nil, err
	}
	if err := c.classifyStatus(logger, endpoint, resp, is2xx, false); err != nil {
		return nil, err
	}

	doc, err := c.decodeObject(logger, endpoint, resp)
	if err != nil {
		return nil, err
	}
	if err := domain.ValidateCatalog(doc); err != nil {
		classified := apierrors.NewResponseMalformed(endpoint, err)
		logger.Error("response-malformed", classified)
		return nil, classified
	}

	return doc, nil
}
