package providers

import (
	"rankd/internal/models"
	"rankd/internal/services"
)

// LogEventSink is the production notification sink: emitted events are written
// as structured log lines on the write-traffic channel, where downstream
// consumers tail them.
type LogEventSink struct {
	logger Logger
}

func NewEventSink(logger Logger) services.EventSink {
	return &LogEventSink{logger: logger}
}

func (s *LogEventSink) ResultSubmitted(ev models.ResultSubmitted) {
	s.logger.Infof(TypePost,
		"event=result_submitted id=%s player=%s day=%d points=%d delta=%d total=%d time=%d moves=%d",
		ev.ID, ev.PlayerID, ev.Day, ev.Points, ev.Delta, ev.TotalPoints, ev.TimeSeconds, ev.MoveCount)
}

func (s *LogEventSink) LeaderboardUpdated(ev models.LeaderboardUpdated) {
	s.logger.Infof(TypePost,
		"event=leaderboard_updated id=%s day=%d rank=%d player=%s points=%d",
		ev.ID, ev.Day, ev.Rank, ev.PlayerID, ev.Points)
}
