package auth_test

import (
	"testing"
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/frahmantamala/spendwise-server/internal/auth"
)

func TestAuth(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Auth Module Suite")
}

var _ = ginkgo.Describe("AuthService", func() {
	var (
		svc      *auth.Service
		tokenGen *auth.JWTTokenGenerator
	)

	ginkgo.BeforeEach(func() {
		hash, err := auth.HashAccessKey("correct-horse-battery-staple")
		gomega.Expect(err).ToNot(gomega.HaveOccurred())

		tokenGen = auth.NewJWTTokenGenerator("test-secret-that-is-long-enough!", 15*time.Minute, time.Hour)
		svc = auth.NewService(hash, tokenGen)
	})

	ginkgo.Describe("Authenticate", func() {
		ginkgo.It("should issue a token pair for the correct access key", func() {
			tokens, err := svc.Authenticate(auth.TokenRequestDTO{AccessKey: "correct-horse-battery-staple"})

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(tokens.AccessToken).ToNot(gomega.BeEmpty())
			gomega.Expect(tokens.RefreshToken).ToNot(gomega.BeEmpty())
		})

		ginkgo.It("should reject a wrong access key", func() {
			_, err := svc.Authenticate(auth.TokenRequestDTO{AccessKey: "guess"})

			gomega.Expect(err).To(gomega.MatchError(auth.ErrInvalidAccessKey))
		})

		ginkgo.It("should reject an empty access key", func() {
			_, err := svc.Authenticate(auth.TokenRequestDTO{})

			gomega.Expect(err).To(gomega.HaveOccurred())
		})
	})

	ginkgo.Describe("ValidateAccessToken", func() {
		ginkgo.It("should accept a freshly issued access token", func() {
			tokens, err := svc.Authenticate(auth.TokenRequestDTO{AccessKey: "correct-horse-battery-staple"})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			claims, err := svc.ValidateAccessToken(tokens.AccessToken)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(claims.Subject).To(gomega.Equal("spendwise"))
		})

		ginkgo.It("should reject a refresh token used as an access token", func() {
			tokens, err := svc.Authenticate(auth.TokenRequestDTO{AccessKey: "correct-horse-battery-staple"})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			_, err = svc.ValidateAccessToken(tokens.RefreshToken)

			gomega.Expect(err).To(gomega.MatchError(auth.ErrInvalidToken))
		})

		ginkgo.It("should reject garbage", func() {
			_, err := svc.ValidateAccessToken("not.a.token")

			gomega.Expect(err).To(gomega.MatchError(auth.ErrInvalidToken))
		})

		ginkgo.It("should reject an expired token", func() {
			expiredGen := auth.NewJWTTokenGenerator("test-secret-that-is-long-enough!", time.Nanosecond, time.Nanosecond)
			token, err := expiredGen.GenerateAccessToken()
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			time.Sleep(10 * time.Millisecond)
			_, err = svc.ValidateAccessToken(token)

			gomega.Expect(err).To(gomega.MatchError(auth.ErrTokenExpired))
		})

		ginkgo.It("should reject a token signed with a different secret", func() {
			otherGen := auth.NewJWTTokenGenerator("a-completely-different-secret!!!", 15*time.Minute, time.Hour)
			token, err := otherGen.GenerateAccessToken()
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			_, err = svc.ValidateAccessToken(token)

			gomega.Expect(err).To(gomega.MatchError(auth.ErrInvalidToken))
		})
	})

	ginkgo.Describe("RefreshTokens", func() {
		ginkgo.It("should rotate the pair for a valid refresh token", func() {
			tokens, err := svc.Authenticate(auth.TokenRequestDTO{AccessKey: "correct-horse-battery-staple"})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			rotated, err := svc.RefreshTokens(tokens.RefreshToken)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(rotated.AccessToken).ToNot(gomega.BeEmpty())
			gomega.Expect(rotated.RefreshToken).ToNot(gomega.BeEmpty())
		})

		ginkgo.It("should reject an access token presented for refresh", func() {
			tokens, err := svc.Authenticate(auth.TokenRequestDTO{AccessKey: "correct-horse-battery-staple"})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			_, err = svc.RefreshTokens(tokens.AccessToken)

			gomega.Expect(err).To(gomega.MatchError(auth.ErrInvalidToken))
		})
	})
})
