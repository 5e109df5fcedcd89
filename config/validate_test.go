package config_test

import (
	"boardsight/config"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Config.Validate", func() {

	load := func(extra string) *config.Config {
		_, f := writeFixture("config.hcl", fullBaseHCL()+extra)
		cfg, err := config.LoadFile(f)
		Expect(err).NotTo(HaveOccurred())
		return cfg
	}

	It("accepts the minimal config", func() {
		Expect(load("").Validate()).To(Succeed())
	})

	It("reports the failing model by name", func() {
		cfg := load(`
model "broken" {
  provider = "cohere"
  model    = "command"
}
`)
		err := cfg.Validate()
		Expect(err).To(MatchError(ContainSubstring("model 'broken'")))
		Expect(err.Error()).To(ContainSubstring("Unsupported provider"))
	})

	DescribeTable("settings blocks",
		func(block, errSubstring string) {
			Expect(load(block).Validate()).To(MatchError(ContainSubstring(errSubstring)))
		},
		Entry("negative item limit", `monday { item_limit = -1 }`, "item_limit"),
		Entry("negative timeout", `monday { timeout_seconds = -3 }`, "timeout_seconds"),
		Entry("unknown log level", `logging { level = "loud" }`, "unknown level"),
		Entry("unknown log format", `logging { format = "xml" }`, "format must be"),
	)
})
