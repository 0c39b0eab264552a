package main_test

import (
	"context"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestSpendWise(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "SpendWise Suite")
}

var _ = Describe("OpenAPI document", func() {
	It("should load and validate", func() {
		loader := openapi3.NewLoader()
		doc, err := loader.LoadFromFile("api/openapi.yml")
		Expect(err).NotTo(HaveOccurred())

		Expect(doc.Validate(context.Background())).To(Succeed())
	})

	It("should describe every API operation the router serves", func() {
		loader := openapi3.NewLoader()
		doc, err := loader.LoadFromFile("api/openapi.yml")
		Expect(err).NotTo(HaveOccurred())

		paths := []string{
			"/ping",
			"/health",
			"/auth/token",
			"/auth/refresh",
			"/categories",
			"/expenses",
			"/expenses/recent",
			"/expenses/{id}",
			"/budget",
			"/analytics/summary",
			"/analytics/months",
			"/dashboard",
		}
		for _, p := range paths {
			Expect(doc.Paths.Find(p)).NotTo(BeNil(), "missing path %s", p)
		}
	})
})
