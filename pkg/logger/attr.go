package logger

import "log/slog"

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// UserID records the user identifier under the key "user_id".
// If id is nil, it returns an empty Attr.
func UserID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("user_id", id)
}

// ArticleID records the content identifier under the key "article_id".
func ArticleID(id string) slog.Attr {
	return slog.String("article_id", id)
}

// LessonID records the lesson identifier under the key "lesson_id".
func LessonID(id string) slog.Attr {
	return slog.String("lesson_id", id)
}

// PlanID records the plan identifier under the key "plan_id".
func PlanID(id string) slog.Attr {
	return slog.String("plan_id", id)
}

// EventType records the billing event type under the key "event_type".
func EventType(eventType string) slog.Attr {
	return slog.String("event_type", eventType)
}
