package stale

import (
	"strings"

	"github.com/simplesurance/prkeeper/internal/githubclt"
)

const (
	ReasonFailingChecks    = "failing checks"
	ReasonChangesRequested = "changes requested"
	ReasonPendingReview    = "pending review"
)

// Reason returns why a pull request with the status is not merged yet.
// Failing required checks take precedence over the review state.
// An empty string is returned if the pull request is approved and no
// required check failed.
func Reason(status *githubclt.ReviewStatus) string {
	if status.CIStatus == githubclt.CIStatusFailure {
		failed := status.FailedChecks(true)
		if len(failed) == 0 {
			return ReasonFailingChecks
		}

		return ReasonFailingChecks + ": " + strings.Join(failed, ", ")
	}

	switch status.ReviewDecision {
	case githubclt.ReviewDecisionChangesRequested:
		return ReasonChangesRequested

	case githubclt.ReviewDecisionReviewRequired:
		return ReasonPendingReview

	default:
		return ""
	}
}
