package logfields

import "go.uber.org/zap"

func Event(val string) zap.Field {
	return zap.String("event", val)
}

func Job(val string) zap.Field {
	return zap.String("job", val)
}

func RunID(val string) zap.Field {
	return zap.String("run_id", val)
}

func DryRun(val bool) zap.Field {
	return zap.Bool("dry_run", val)
}

func Reason(val string) zap.Field {
	return zap.String("reason", val)
}
