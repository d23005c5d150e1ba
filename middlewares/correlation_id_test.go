package middlewares_test

import (
	"context"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/pivotal-cf/brokerclient/middlewares"
)

var _ = Describe("Correlation ID", func() {
	Describe("AddCorrelationIDToContext", func() {
		var capturedID string

		makeRequest := func(configure func(*http.Request)) {
			handler := middlewares.AddCorrelationIDToContext(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				capturedID, _ = middlewares.CorrelationIDFromContext(req.Context())
			}))

			request := httptest.NewRequest("GET", "/v2/service_instances/abc", nil)
			configure(request)
			handler.ServeHTTP(httptest.NewRecorder(), request)
		}

		It("lifts a recognized header into the context", func() {
			makeRequest(func(req *http.Request) {
				req.Header.Set("X-Vcap-Request-Id", "vcap-id")
			})
			Expect(capturedID).To(Equal("vcap-id"))
		})

		It("prefers the first recognized header", func() {
			makeRequest(func(req *http.Request) {
				req.Header.Set("X-Correlation-ID", "correlation-id")
				req.Header.Set("X-Request-ID", "request-id")
			})
			Expect(capturedID).To(Equal("correlation-id"))
		})

		It("generates an ID when no header is present", func() {
			makeRequest(func(*http.Request) {})
			Expect(capturedID).NotTo(BeEmpty())
		})
	})

	Describe("CorrelationIDFromContext", func() {
		It("round-trips through WithCorrelationID", func() {
			ctx := middlewares.WithCorrelationID(context.Background(), "some-id")

			id, ok := middlewares.CorrelationIDFromContext(ctx)
			Expect(ok).To(BeTrue())
			Expect(id).To(Equal("some-id"))
		})

		It("reports a context without an ID", func() {
			_, ok := middlewares.CorrelationIDFromContext(context.Background())
			Expect(ok).To(BeFalse())
		})
	})
})
