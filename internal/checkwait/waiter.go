package checkwait

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/simplesurance/prkeeper/internal/githubclt"
	"github.com/simplesurance/prkeeper/internal/logfields"
)

const (
	checkStatusCompleted  = "completed"
	checkConclusionSucess = "success"
)

// RequiredCompleted returns for each required check run name if a check run
// with the name completed successfully.
// done is true when all required check runs completed successfully.
func RequiredCompleted(required []string, runs []*githubclt.CheckRun) (status map[string]bool, done bool) {
	status = make(map[string]bool, len(required))
	for _, name := range required {
		status[name] = false
	}

	for _, run := range runs {
		if _, isRequired := status[run.Name]; !isRequired {
			continue
		}

		if run.Status == checkStatusCompleted && run.Conclusion == checkConclusionSucess {
			status[run.Name] = true
		}
	}

	for _, ok := range status {
		if !ok {
			return status, false
		}
	}

	return status, true
}

// Waiter waits until the required check runs of a commit succeeded.
type Waiter struct {
	clt      githubclt.API
	poller   *Poller
	required []string
	logger   *zap.Logger
}

func NewWaiter(clt githubclt.API, poller *Poller, required []string) *Waiter {
	return &Waiter{
		clt:      clt,
		poller:   poller,
		required: required,
		logger:   zap.L().Named("check_waiter"),
	}
}

// Wait blocks until all required check runs for the commit sha completed
// successfully.
// If they did not succeed after the maximum number of attempts,
// ErrAttemptsExhausted is returned.
func (w *Waiter) Wait(ctx context.Context, owner, repo, sha string) error {
	logger := w.logger.With(
		logfields.RepositoryOwner(owner),
		logfields.Repository(repo),
		logfields.Commit(sha),
	)

	if len(w.required) == 0 {
		logger.Info("no required workflows configured, not waiting")
		return nil
	}

	err := w.poller.Run(ctx, func(ctx context.Context) (bool, error) {
		runs, err := w.clt.CheckRuns(ctx, owner, repo, sha)
		if err != nil {
			return false, fmt.Errorf("retrieving check runs failed: %w", err)
		}

		status, done := RequiredCompleted(w.required, runs)

		var pending []string
		for _, name := range w.required {
			if !status[name] {
				pending = append(pending, name)
			}
		}

		logger.Debug("evaluated check runs", zap.Strings("pending", pending))

		return done, nil
	})
	if err != nil {
		return err
	}

	logger.Info("all required workflows completed successfully", logfields.Event("required_checks_succeeded"))

	return nil
}
