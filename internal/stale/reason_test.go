package stale

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/simplesurance/prkeeper/internal/githubclt"
)

func TestReason(t *testing.T) {
	tcs := []struct {
		name   string
		status githubclt.ReviewStatus
		reason string
	}{
		{
			name: "failing checks win over review state",
			status: githubclt.ReviewStatus{
				CIStatus:       githubclt.CIStatusFailure,
				ReviewDecision: githubclt.ReviewDecisionChangesRequested,
				Statuses: []*githubclt.CIJobStatus{
					{Name: "test", Status: githubclt.CIStatusFailure, Required: true},
					{Name: "build", Status: githubclt.CIStatusFailure, Required: true},
					{Name: "optional", Status: githubclt.CIStatusFailure},
				},
			},
			reason: "failing checks: build, test",
		},
		{
			name:   "changes requested",
			status: githubclt.ReviewStatus{CIStatus: githubclt.CIStatusSuccess, ReviewDecision: githubclt.ReviewDecisionChangesRequested},
			reason: ReasonChangesRequested,
		},
		{
			name:   "review required",
			status: githubclt.ReviewStatus{CIStatus: githubclt.CIStatusPending, ReviewDecision: githubclt.ReviewDecisionReviewRequired},
			reason: ReasonPendingReview,
		},
		{
			name:   "approved",
			status: githubclt.ReviewStatus{CIStatus: githubclt.CIStatusSuccess, ReviewDecision: githubclt.ReviewDecisionApproved},
			reason: "",
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.reason, Reason(&tc.status))
		})
	}
}
