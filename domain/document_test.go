package domain_test

import (
	"encoding/json"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/pivotal-cf/brokerclient/domain"
)

var _ = Describe("JSONObject", func() {
	var doc domain.JSONObject

	BeforeEach(func() {
		raw := `{
			"dashboard_url": "http://dashboard.example.com",
			"credentials": {"username": "user"},
			"services": [{"plans": []}],
			"count": 3
		}`
		Expect(json.Unmarshal([]byte(raw), &doc)).To(Succeed())
	})

	Describe("StringField", func() {
		It("returns present string fields", func() {
			value, ok := doc.StringField("dashboard_url")
			Expect(ok).To(BeTrue())
			Expect(value).To(Equal("http://dashboard.example.com"))
		})

		It("reports absent fields", func() {
			_, ok := doc.StringField("nope")
			Expect(ok).To(BeFalse())
		})

		It("reports fields of the wrong shape", func() {
			_, ok := doc.StringField("count")
			Expect(ok).To(BeFalse())
		})
	})

	Describe("ObjectField", func() {
		It("returns nested objects as documents", func() {
			credentials, ok := doc.ObjectField("credentials")
			Expect(ok).To(BeTrue())

			username, ok := credentials.StringField("username")
			Expect(ok).To(BeTrue())
			Expect(username).To(Equal("user"))
		})

		It("reports fields of the wrong shape", func() {
			_, ok := doc.ObjectField("services")
			Expect(ok).To(BeFalse())
		})
	})

	Describe("ListField", func() {
		It("returns list fields", func() {
			services, ok := doc.ListField("services")
			Expect(ok).To(BeTrue())
			Expect(services).To(HaveLen(1))
		})

		It("reports fields of the wrong shape", func() {
			_, ok := doc.ListField("credentials")
			Expect(ok).To(BeFalse())
		})
	})
})
