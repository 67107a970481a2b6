// SPDX-License-Identifier: MIT

package glm

// HalveStep_TestOnly exposes the step-halving kernel to glm_test.
var HalveStep_TestOnly = halveStep
