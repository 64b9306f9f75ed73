/*
Copyright 2026 the Story Spoiler Test Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

//nolint:testpackage,revive // test package in suites is standard for these tests, dot imports standard for Ginkgo
package suites

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/storyspoiler/storyspoiler-tests/test/api/scenario"
)

var _ = Describe("Story Spoiler Lifecycle", func() {
	Context("When the ordered story lifecycle has run", func() {
		DescribeTable("each check should pass on its own",
			func(step string) {
				result, ok := report.Result(step)
				Expect(ok).To(BeTrue(), "step %q is not part of the lifecycle", step)
				Expect(result.Err).NotTo(HaveOccurred(), "step %q failed", step)
			},
			Entry("should create a story with the required fields", scenario.StepCreateStory),
			Entry("should edit the created story", scenario.StepEditStory),
			Entry("should list a non-empty set of stories", scenario.StepListStories),
			Entry("should delete the created story", scenario.StepDeleteStory),
			Entry("should reject a story without required fields", scenario.StepCreateInvalidStory),
			Entry("should report no spoilers when editing a missing story", scenario.StepEditMissingStory),
			Entry("should refuse to delete a missing story", scenario.StepDeleteMissingStory),
		)

		It("should capture a story identifier on create", func() {
			Expect(report.State.StoryID).NotTo(BeEmpty())
		})

		It("should not leave the created story behind", func() {
			Expect(report.State.Orphans()).To(BeEmpty())
		})
	})
})
