package services

import (
	"log"

	"stash/internal/httperr"
	"stash/internal/models"
	"stash/internal/repositories"
	"stash/pkg/rabbitmq"
)

// LogService is the append-only log pipeline. Every handled request and
// every internal caller (the cascade runner) records through it. When a
// message queue client is configured, entries are also published as events.
type LogService struct {
	repo     repositories.LogRepository
	mqClient *rabbitmq.Client
}

func NewLogService(repo repositories.LogRepository, mqClient *rabbitmq.Client) *LogService {
	return &LogService{repo: repo, mqClient: mqClient}
}

// Append records one entry. Logging failures are reported to the process log
// and otherwise swallowed; the request that triggered the entry has its own
// outcome and should not fail because the sink did.
func (s *LogService) Append(user string, level models.LogLevel, message string, details map[string]any) {
	if err := s.repo.Append(user, level, message, details); err != nil {
		log.Printf("Failed to append log entry: %v", err)
		return
	}
	if s.mqClient != nil {
		event := map[string]any{
			"user":    user,
			"level":   string(level),
			"message": message,
			"details": details,
		}
		if err := s.mqClient.Publish("log.appended", event); err != nil {
			log.Printf("Warning: failed to publish log event: %v", err)
		}
	}
}

func (s *LogService) Info(user, message string, details map[string]any) {
	s.Append(user, models.LevelInfo, message, details)
}

func (s *LogService) Error(user, message string, details map[string]any) {
	s.Append(user, models.LevelError, message, details)
}

// Query returns stored entries matching the filters; level names are parsed
// case-insensitively and unknown names are a bad request.
func (s *LogService) Query(users, levelNames []string) ([]models.Log, *httperr.Error) {
	levels := make([]models.LogLevel, 0, len(levelNames))
	for _, name := range levelNames {
		level, err := models.ParseLogLevel(name)
		if err != nil {
			return nil, httperr.BadRequest("Invalid request -- %v", err)
		}
		levels = append(levels, level)
	}
	logs, err := s.repo.Query(users, levels)
	if err != nil {
		return nil, httperr.Internal("Failed to query logs: %v", err)
	}
	return logs, nil
}
