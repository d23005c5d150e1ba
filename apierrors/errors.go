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

// Package apierrors defines the errors raised by the service broker client.
// Every error carries a fixed chain of classification labels, ordered from
// most to least specific, and renders itself as a structured form suitable
// for audit logging.
package apierrors

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

// Classification labels. The chains are declared per error kind rather than
// derived from any type hierarchy, so consumers rendering the error as
// structured data always see the same list.
const (
	structuredErrorLabel      = "StructuredError"
	httpRequestErrorLabel     = "HttpRequestError"
	httpResponseErrorLabel    = "HttpResponseError"
	apiUnreachableLabel       = "ServiceBrokerApiUnreachable"
	apiTimeoutLabel           = "ServiceBrokerApiTimeout"
	badResponseLabel          = "ServiceBrokerBadResponse"
	conflictLabel             = "ServiceBrokerConflict"
	authenticationFailedLabel = "ServiceBrokerApiAuthenticationFailed"
	responseMalformedLabel    = "ServiceBrokerResponseMalformed"
)

// StructuredError is implemented by every error returned from the broker
// client.
type StructuredError interface {
	error

	// Types returns the classification labels, most specific first.
	Types() []string

	// StructuredForm renders the error the way the audit layer consumes it:
	//
	//	{
	//	  "description": <human readable message>,
	//	  "error": {
	//	    "types":     [<labels>...],
	//	    "backtrace": [<frames>...],
	//	    "error":     <upstream error body, when present>
	//	  }
	//	}
	StructuredForm() map[string]interface{}
}

type brokerError struct {
	description string
	types       []string
	backtrace   []string
	payload     interface{}
	cause       error
}

func (e *brokerError) Error() string {
	return e.description
}

func (e *brokerError) Types() []string {
	return append([]string(nil), e.types...)
}

func (e *brokerError) Unwrap() error {
	return e.cause
}

func (e *brokerError) StructuredForm() map[string]interface{} {
	detail := map[string]interface{}{
		"types":     e.Types(),
		"backtrace": append([]string(nil), e.backtrace...),
	}
	if e.payload != nil {
		detail["error"] = e.payload
	}

	return map[string]interface{}{
		"description": e.description,
		"error":       detail,
	}
}

// APIUnreachableError means the broker could not be reached at all: name
// resolution failed, the connection was refused, or the connect attempt
// timed out.
type APIUnreachableError struct {
	brokerError
	URL string
}

func NewAPIUnreachable(url string, cause error) *APIUnreachableError {
	return &APIUnreachableError{
		URL: url,
		brokerError: brokerError{
			description: fmt.Sprintf("The service broker API could not be reached: %s", url),
			types:       []string{apiUnreachableLabel, httpRequestErrorLabel, structuredErrorLabel},
			backtrace:   backtrace(),
			cause:       cause,
		},
	}
}

// APITimeoutError means the request was sent but the broker did not answer
// in time, or disconnected mid response.
type APITimeoutError struct {
	brokerError
	URL string
}

func NewAPITimeout(url string, cause error) *APITimeoutError {
	return &APITimeoutError{
		URL: url,
		brokerError: brokerError{
			description: fmt.Sprintf("The service broker API timed out: %s", url),
			types:       []string{apiTimeoutLabel, httpRequestErrorLabel, structuredErrorLabel},
			backtrace:   backtrace(),
			cause:       cause,
		},
	}
}

// BadResponseError means the broker answered with a status outside the
// success range for the operation. Body holds the parsed upstream error
// payload, or nil when the body was not valid JSON.
type BadResponseError struct {
	brokerError
	URL        string
	StatusCode int
	Reason     string
	Body       interface{}
}

func NewBadResponse(url string, statusCode int, reason string, body interface{}) *BadResponseError {
	return &BadResponseError{
		URL:        url,
		StatusCode: statusCode,
		Reason:     reason,
		Body:       body,
		brokerError: brokerError{
			description: fmt.Sprintf("The service broker API returned an error from %s: %d %s", url, statusCode, reason),
			types:       []string{badResponseLabel, httpResponseErrorLabel, structuredErrorLabel},
			backtrace:   backtrace(),
			payload:     body,
		},
	}
}

// ConflictError is the 409 answer to a provision request: the instance
// already exists at the broker.
type ConflictError struct {
	BadResponseError
}

func NewConflict(url string, body interface{}) *ConflictError {
	return &ConflictError{
		BadResponseError: BadResponseError{
			URL:        url,
			StatusCode: http.StatusConflict,
			Reason:     http.StatusText(http.StatusConflict),
			Body:       body,
			brokerError: brokerError{
				description: fmt.Sprintf("Resource already provisioned: %s", url),
				types:       []string{conflictLabel, badResponseLabel, httpResponseErrorLabel, structuredErrorLabel},
				backtrace:   backtrace(),
				payload:     body,
			},
		},
	}
}

// AuthenticationFailedError is the 401 answer to any operation.
type AuthenticationFailedError struct {
	brokerError
	URL string
}

func NewAuthenticationFailed(url string) *AuthenticationFailedError {
	return &AuthenticationFailedError{
		URL: url,
		brokerError: brokerError{
			description: fmt.Sprintf("Authentication with the service broker API failed: %s", url),
			types:       []string{authenticationFailedLabel, httpResponseErrorLabel, structuredErrorLabel},
			backtrace:   backtrace(),
		},
	}
}

// ResponseMalformedError means the broker answered with a success status but
// the body could not be decoded as a JSON object.
type ResponseMalformedError struct {
	brokerError
	URL string
}

func NewResponseMalformed(url string, cause error) *ResponseMalformedError {
	return &ResponseMalformedError{
		URL: url,
		brokerError: brokerError{
			description: fmt.Sprintf("The service broker response was not understood: %s", url),
			types:       []string{responseMalformedLabel, httpResponseErrorLabel, structuredErrorLabel},
			backtrace:   backtrace(),
			cause:       cause,
		},
	}
}

type stackTracer interface {
	StackTrace() errors.StackTrace
}

// backtrace renders the call stack at the raise site, one frame per string.
func backtrace() []string {
	tracer, ok := errors.New("").(stackTracer)
	if !ok {
		return nil
	}

	stack := tracer.StackTrace()
	// Drop the backtrace helper and the constructor frames.
	if len(stack) > 2 {
		stack = stack[2:]
	}

	frames := make([]string, 0, len(stack))
	for _, frame := range stack {
		frames = append(frames, fmt.Sprintf("%n (%s:%d)", frame, frame, frame))
	}
	return frames
}
