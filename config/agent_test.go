package config_test

import (
	"boardsight/config"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Agent settings", func() {

	It("resolves models.<name> to the model label", func() {
		_, f := writeFixture("config.hcl", fullBaseHCL())
		cfg, err := config.LoadFile(f)
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.Agent.Model).To(Equal("groq"))

		m, err := cfg.ResolveModel()
		Expect(err).NotTo(HaveOccurred())
		Expect(m.Provider).To(Equal(config.ProviderGroq))
	})

	It("applies defaults to omitted limits", func() {
		_, f := writeFixture("config.hcl", fullBaseHCL())
		cfg, err := config.LoadFile(f)
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.Agent.MaxIterations).To(Equal(8))
		Expect(cfg.Agent.ContextItemLimit).To(Equal(50))
		Expect(cfg.Agent.MaxTokens).To(Equal(4096))
	})

	It("keeps explicit limits", func() {
		hcl := minimalVarsHCL() + minimalModelHCL() + `
agent {
  model              = models.groq
  max_iterations     = 3
  context_item_limit = 10
  max_tokens         = 1024
}
`
		_, f := writeFixture("config.hcl", hcl)
		cfg, err := config.LoadFile(f)
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.Agent.MaxIterations).To(Equal(3))
		Expect(cfg.Agent.ContextItemLimit).To(Equal(10))
		Expect(cfg.Agent.MaxTokens).To(Equal(1024))
	})

	It("picks the only model when there is no agent block", func() {
		_, f := writeFixture("config.hcl", minimalVarsHCL()+minimalModelHCL())
		cfg, err := config.LoadFile(f)
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.Agent.Model).To(Equal("groq"))
		Expect(cfg.Validate()).To(Succeed())
	})

	It("fails to decode a reference to an undefined model", func() {
		hcl := minimalVarsHCL() + minimalModelHCL() + `
agent {
  model = models.openai
}
`
		_, f := writeFixture("config.hcl", hcl)
		_, err := config.LoadFile(f)
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("decode agent"))
	})

	DescribeTable("Validate",
		func(a config.AgentSettings, errSubstring string) {
			models := []config.Model{{Name: "groq", Provider: config.ProviderGroq, Model: "m"}}
			err := a.Validate(models)
			if errSubstring == "" {
				Expect(err).NotTo(HaveOccurred())
				return
			}
			Expect(err).To(MatchError(ContainSubstring(errSubstring)))
		},
		Entry("valid", config.AgentSettings{Model: "groq", MaxIterations: 8, ContextItemLimit: 50, MaxTokens: 4096}, ""),
		Entry("missing model", config.AgentSettings{MaxIterations: 8, ContextItemLimit: 50, MaxTokens: 1}, "model is required"),
		Entry("unknown model", config.AgentSettings{Model: "gpt", MaxIterations: 8, ContextItemLimit: 50, MaxTokens: 1}, "'gpt' is not defined"),
		Entry("negative iterations", config.AgentSettings{Model: "groq", MaxIterations: -1, ContextItemLimit: 50, MaxTokens: 1}, "max_iterations"),
		Entry("negative item limit", config.AgentSettings{Model: "groq", MaxIterations: 8, ContextItemLimit: -5, MaxTokens: 1}, "context_item_limit"),
		Entry("negative max tokens", config.AgentSettings{Model: "groq", MaxIterations: 8, ContextItemLimit: 50, MaxTokens: -1}, "max_tokens"),
	)
})
