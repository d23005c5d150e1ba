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

package domain

import (
	"encoding/json"

	"github.com/pkg/errors"
)

type CatalogResponse struct {
	Services []Service `json:"services"`
}

type Service struct {
	ID            string                 `json:"id"`
	Name          string                 `json:"name"`
	Description   string                 `json:"description"`
	Bindable      bool                   `json:"bindable"`
	Tags          []string               `json:"tags,omitempty"`
	PlanUpdatable bool                   `json:"plan_updateable"`
	Plans         []ServicePlan          `json:"plans"`
	Metadata      map[string]interface{} `json:"metadata,omitempty"`
}

type ServicePlan struct {
	ID          string                 `json:"id"`
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Free        *bool                  `json:"free,omitempty"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}

// ValidateCatalog shape-checks a decoded catalog document: a services list
// must be present, and every service must carry a plans list. Field contents
// are not validated beyond that.
func ValidateCatalog(doc JSONObject) error {
	services, ok := doc.ListField("services")
	if !ok {
		return errors.New("catalog has no services list")
	}

	for i, entry := range services {
		service, ok := entry.(map[string]interface{})
		if !ok {
			return errors.Errorf("catalog service at index %d is not an object", i)
		}
		if _, ok := JSONObject(service).ListField("plans"); !ok {
			return errors.Errorf("catalog service at index %d has no plans list", i)
		}
	}

	return nil
}

// DecodeCatalog converts a shape-checked catalog document into typed catalog
// structs for callers that do not want to walk the document themselves.
func DecodeCatalog(doc JSONObject) (CatalogResponse, error) {
	var catalog CatalogResponse

	raw, err := json.Marshal(doc)
	if err != nil {
		return catalog, errors.Wrap(err, "re-encoding catalog document")
	}
	if err := json.Unmarshal(raw, &catalog); err != nil {
		return catalog, errors.Wrap(err, "decoding catalog document")
	}

	return catalog, nil
}
