package logfields

import "go.uber.org/zap"

func PullRequest(val int) zap.Field {
	return zap.Int("github.pull_request", val)
}

func Repository(val string) zap.Field {
	return zap.String("git.repository", val)
}

func RepositoryOwner(val string) zap.Field {
	return zap.String("github.repository_owner", val)
}

func Commit(val string) zap.Field {
	return zap.String("git.commit", val)
}

func Branch(val string) zap.Field {
	return zap.String("git.branch", val)
}

func Label(val string) zap.Field {
	return zap.String("github.label", val)
}

func Labels(val []string) zap.Field {
	return zap.Strings("github.labels", val)
}

func Assignees(val []string) zap.Field {
	return zap.Strings("github.assignees", val)
}

func User(val string) zap.Field {
	return zap.String("github.user", val)
}

func CheckRun(val string) zap.Field {
	return zap.String("github.check_run", val)
}
