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

package brokerclient_test

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"time"

	"code.cloudfoundry.org/lager/v3/lagertest"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/pivotal-cf/brokerclient"
	"github.com/pivotal-cf/brokerclient/apierrors"
	"github.com/pivotal-cf/brokerclient/fakes"
)

type timeoutError struct{}

func (timeoutError) Error() string   { return "i/o timeout" }
func (timeoutError) Timeout() bool   { return true }
func (timeoutError) Temporary() bool { return true }

type brokenBody struct{}

func (brokenBody) Read([]byte) (int, error) { return 0, io.ErrUnexpectedEOF }
func (brokenBody) Close() error             { return nil }

var _ = Describe("Transport classification", func() {
	const authToken = "opensesame"

	var (
		doer   *fakes.FakeHTTPDoer
		client *brokerclient.Client
		ctx    context.Context
	)

	newClient := func(opts ...brokerclient.Option) *brokerclient.Client {
		opts = append(opts, brokerclient.WithLogger(lagertest.NewTestLogger("test")))
		c, err := brokerclient.New("http://broker.example.com", authToken, opts...)
		Expect(err).NotTo(HaveOccurred())
		return c
	}

	BeforeEach(func() {
		doer = new(fakes.FakeHTTPDoer)
		client = newClient(brokerclient.WithHTTPClient(doer))
		ctx = context.Background()
	})

	It("classifies a name resolution failure as unreachable", func() {
		doer.DoReturns(nil, &net.DNSError{Err: "no such host", Name: "broker.example.com", IsNotFound: true})

		_, err := client.Catalog(ctx)

		var unreachable *apierrors.APIUnreachableError
		Expect(err).To(BeAssignableToTypeOf(unreachable))
		Expect(err.Error()).To(Equal("The service broker API could not be reached: http://broker.example.com/v2/catalog"))
	})

	It("classifies a refused connection as unreachable", func() {
		doer.DoReturns(nil, &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")})

		_, err := client.Provision(ctx, "instance-guid", "plan-guid", "org-guid", "space-guid")

		var unreachable *apierrors.APIUnreachableError
		Expect(err).To(BeAssignableToTypeOf(unreachable))
	})

	It("classifies a connect timeout as unreachable, not as a broker timeout", func() {
		doer.DoReturns(nil, &net.OpError{Op: "dial", Net: "tcp", Err: timeoutError{}})

		err := client.Unbind(ctx, "binding-guid")

		var unreachable *apierrors.APIUnreachableError
		Expect(err).To(BeAssignableToTypeOf(unreachable))
	})

	It("classifies a post-connect timeout as a broker timeout", func() {
		doer.DoReturns(nil, timeoutError{})

		err := client.Deprovision(ctx, "instance-guid")

		var timeout *apierrors.APITimeoutError
		Expect(err).To(BeAssignableToTypeOf(timeout))
	})

	It("classifies a keep-alive disconnect as a broker timeout", func() {
		doer.DoReturns(nil, io.EOF)

		_, err := client.Bind(ctx, "binding-guid", "instance-guid")

		var timeout *apierrors.APITimeoutError
		Expect(err).To(BeAssignableToTypeOf(timeout))
		Expect(errors.Is(err, io.EOF)).To(BeTrue())
	})

	It("classifies a disconnect while reading the body as a broker timeout", func() {
		doer.DoReturns(&http.Response{
			StatusCode: http.StatusOK,
			Status:     "200 OK",
			Header:     http.Header{},
			Body:       brokenBody{},
		}, nil)

		_, err := client.Catalog(ctx)

		var timeout *apierrors.APITimeoutError
		Expect(err).To(BeAssignableToTypeOf(timeout))
	})

	It("classifies an unrecognized transport failure as unreachable", func() {
		doer.DoReturns(nil, errors.New("something strange happened"))

		_, err := client.Catalog(ctx)

		var unreachable *apierrors.APIUnreachableError
		Expect(err).To(BeAssignableToTypeOf(unreachable))
	})

	Context("against a real transport", func() {
		It("classifies a refused connection as unreachable", func() {
			server := httptest.NewServer(http.NotFoundHandler())
			brokerURL := server.URL
			server.Close()

			c, err := brokerclient.New(brokerURL, authToken,
				brokerclient.WithLogger(lagertest.NewTestLogger("test")),
			)
			Expect(err).NotTo(HaveOccurred())

			_, err = c.Catalog(ctx)

			var unreachable *apierrors.APIUnreachableError
			Expect(err).To(BeAssignableToTypeOf(unreachable))
		})

		It("classifies a slow broker as a broker timeout", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				time.Sleep(500 * time.Millisecond)
			}))
			defer server.Close()

			c, err := brokerclient.New(server.URL, authToken,
				brokerclient.WithLogger(lagertest.NewTestLogger("test")),
				brokerclient.WithHTTPClient(&http.Client{Timeout: 50 * time.Millisecond}),
			)
			Expect(err).NotTo(HaveOccurred())

			_, err = c.Catalog(ctx)

			var timeout *apierrors.APITimeoutError
			Expect(err).To(BeAssignableToTypeOf(timeout))
		})
	})
})
