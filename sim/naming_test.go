package sim

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("NameMustBeValid", func() {
	It("should accept dot-separated identifier tokens", func() {
		Expect(func() { NameMustBeValid("Session") }).ToNot(Panic())
		Expect(func() { NameMustBeValid("Session.ReadyQueue") }).ToNot(Panic())
		Expect(func() { NameMustBeValid("Session.Controller_1") }).ToNot(Panic())
	})

	It("should reject malformed names", func() {
		Expect(func() { NameMustBeValid("") }).To(Panic())
		Expect(func() { NameMustBeValid(".Queue") }).To(Panic())
		Expect(func() { NameMustBeValid("Session..Queue") }).To(Panic())
		Expect(func() { NameMustBeValid("1Queue") }).To(Panic())
		Expect(func() { NameMustBeValid("Queue smith") }).To(Panic())
	})
})
