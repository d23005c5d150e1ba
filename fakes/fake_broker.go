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

package fakes

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/mux"

	"github.com/pivotal-cf/brokerclient/auth"
)

// ReceivedRequest captures what the fake broker saw for one call.
type ReceivedRequest struct {
	Method        string
	Path          string
	CorrelationID string
	ContentType   string
	Body          map[string]interface{}
}

// StubbedResponse overrides what the fake broker answers for one operation.
type StubbedResponse struct {
	StatusCode int
	Body       string
}

// FakeBroker is an in-memory service broker handler. It verifies the basic
// credentials the client embeds, records every request it receives, keeps
// provision and binding bookkeeping, and can be stubbed per operation to
// answer arbitrary statuses and bodies.
type FakeBroker struct {
	mutex sync.Mutex

	stubs    map[string]StubbedResponse
	requests []ReceivedRequest

	ProvisionedInstanceIDs   []string
	DeprovisionedInstanceIDs []string
	BoundBindingIDs          []string
	UnboundBindingIDs        []string

	handler http.Handler
}

func NewFakeBroker(username, password string) *FakeBroker {
	broker := &FakeBroker{
		stubs: map[string]StubbedResponse{},
	}

	router := mux.NewRouter()
	router.HandleFunc("/v2/catalog", broker.catalog).Methods(http.MethodGet)
	router.HandleFunc("/v2/service_instances/{instance_id}", broker.provision).Methods(http.MethodPut)
	router.HandleFunc("/v2/service_instances/{instance_id}", broker.deprovision).Methods(http.MethodDelete)
	router.HandleFunc("/v2/service_bindings/{binding_id}", broker.bind).Methods(http.MethodPut)
	router.HandleFunc("/v2/service_bindings/{binding_id}", broker.unbind).Methods(http.MethodDelete)

	broker.handler = auth.NewWrapper(username, password).Wrap(router)
	return broker
}

func (broker *FakeBroker) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	broker.handler.ServeHTTP(w, req)
}

// StubResponse makes the named operation ("catalog", "provision", "bind",
// "unbind", "deprovision") answer with the given status and raw body,
// instead of the default behavior.
func (broker *FakeBroker) StubResponse(operation string, statusCode int, body string) {
	broker.mutex.Lock()
	defer broker.mutex.Unlock()
	broker.stubs[operation] = StubbedResponse{StatusCode: statusCode, Body: body}
}

// Requests returns a copy of everything the broker has received so far.
func (broker *FakeBroker) Requests() []ReceivedRequest {
	broker.mutex.Lock()
	defer broker.mutex.Unlock()
	return append([]ReceivedRequest(nil), broker.requests...)
}

// LastRequest returns the most recent request, or a zero value when none was
// received.
func (broker *FakeBroker) LastRequest() ReceivedRequest {
	broker.mutex.Lock()
	defer broker.mutex.Unlock()
	if len(broker.requests) == 0 {
		return ReceivedRequest{}
	}
	return broker.requests[len(broker.requests)-1]
}

func (broker *FakeBroker) catalog(w http.ResponseWriter, req *http.Request) {
	broker.record(req)

	if broker.answerStubbed("catalog", w) {
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"services": []interface{}{
			map[string]interface{}{
				"id":          "0A789746-596F-4CEA-BFAC-A0795DA056E3",
				"name":        "p-cassandra",
				"description": "Cassandra service for application development and testing",
				"bindable":    true,
				"plans": []interface{}{
					map[string]interface{}{
						"id":          "ABE176EE-F69F-4A96-80CE-142595CC24E3",
						"name":        "default",
						"description": "The default Cassandra plan",
					},
				},
			},
		},
	})
}

func (broker *FakeBroker) provision(w http.ResponseWriter, req *http.Request) {
	broker.record(req)
	instanceID := mux.Vars(req)["instance_id"]

	if broker.answerStubbed("provision", w) {
		return
	}

	broker.mutex.Lock()
	for _, id := range broker.ProvisionedInstanceIDs {
		if id == instanceID {
			broker.mutex.Unlock()
			writeJSON(w, http.StatusConflict, map[string]interface{}{})
			return
		}
	}
	broker.ProvisionedInstanceIDs = append(broker.ProvisionedInstanceIDs, instanceID)
	broker.mutex.Unlock()

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"dashboard_url": "http://dashboard.example.com/" + instanceID,
	})
}

func (broker *FakeBroker) deprovision(w http.ResponseWriter, req *http.Request) {
	broker.record(req)
	instanceID := mux.Vars(req)["instance_id"]

	if broker.answerStubbed("deprovision", w) {
		return
	}

	broker.mutex.Lock()
	broker.DeprovisionedInstanceIDs = append(broker.DeprovisionedInstanceIDs, instanceID)
	broker.mutex.Unlock()

	w.WriteHeader(http.StatusNoContent)
}

func (broker *FakeBroker) bind(w http.ResponseWriter, req *http.Request) {
	broker.record(req)
	bindingID := mux.Vars(req)["binding_id"]

	if broker.answerStubbed("bind", w) {
		return
	}

	broker.mutex.Lock()
	broker.BoundBindingIDs = append(broker.BoundBindingIDs, bindingID)
	broker.mutex.Unlock()

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"credentials": map[string]interface{}{
			"username": "broker-user",
			"password": "broker-password",
		},
	})
}

func (broker *FakeBroker) unbind(w http.ResponseWriter, req *http.Request) {
	broker.record(req)
	bindingID := mux.Vars(req)["binding_id"]

	if broker.answerStubbed("unbind", w) {
		return
	}

	broker.mutex.Lock()
	broker.UnboundBindingIDs = append(broker.UnboundBindingIDs, bindingID)
	broker.mutex.Unlock()

	w.WriteHeader(http.StatusNoContent)
}

func (broker *FakeBroker) answerStubbed(operation string, w http.ResponseWriter) bool {
	broker.mutex.Lock()
	stub, ok := broker.stubs[operation]
	broker.mutex.Unlock()
	if !ok {
		return false
	}

	w.WriteHeader(stub.StatusCode)
	w.Write([]byte(stub.Body))
	return true
}

func (broker *FakeBroker) record(req *http.Request) {
	received := ReceivedRequest{
		Method:        req.Method,
		Path:          req.URL.Path,
		CorrelationID: req.Header.Get("X-VCAP-Request-ID"),
		ContentType:   req.Header.Get("Content-Type"),
	}

	var body map[string]interface{}
	if err := json.NewDecoder(req.Body).Decode(&body); err == nil {
		received.Body = body
	}

	broker.mutex.Lock()
	broker.requests = append(broker.requests, received)
	broker.mutex.Unlock()
}

func writeJSON(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(body)
}
